package cli

import (
	"context"

	"github.com/MouseCreator/Long-arithmetic-system/calc"
	"github.com/spf13/cobra"
)

func fieldBinaryOp(f func(c *calc.Calculator, ctx context.Context, a, b, g, m string) (string, error)) operation {
	return func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
		return f(c, ctx, args[0], args[1], args[2], args[3])
	}
}

func polyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poly",
		Short: "Polynomial arithmetic over ℤ/mℤ.",
	}

	ab := []string{"a", "b", "m"}
	cmd.AddCommand(
		leaf("parse", []string{"a"}, "Split a polynomial into coefficient and degree pairs.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				ts, err := c.PolyParse(ctx, args[0])
				if err != nil {
					return nil, err
				}

				return terms(ts), nil
			}),
		leaf("add", ab, "Compute a + b.", binaryOp((*calc.Calculator).PolyAdd)),
		leaf("sub", ab, "Compute a - b.", binaryOp((*calc.Calculator).PolySub)),
		leaf("mul", ab, "Compute a * b.", binaryOp((*calc.Calculator).PolyMul)),
		leaf("div", ab, "Compute the quotient of a / b.", binaryOp((*calc.Calculator).PolyDiv)),
		leaf("rest", ab, "Compute the remainder of a / b.", binaryOp((*calc.Calculator).PolyRest)),
		leaf("gcd", ab, "Compute gcd(a, b).", binaryOp((*calc.Calculator).PolyGCD)),
		leaf("derivative", []string{"a", "m"}, "Compute the formal derivative of a.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.PolyDerivative(ctx, args[0], args[1])
			}),
		leaf("evaluate", []string{"a", "m", "x"}, "Compute a(x) mod m.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.PolyEvaluate(ctx, args[0], args[1], args[2])
			}),
		leaf("cyclotomic", []string{"order", "m"}, "Compute the cyclotomic polynomial of the given order.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.Cyclotomic(ctx, args[0], args[1])
			}),
	)

	return cmd
}

func fieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Arithmetic in GF(m)[x]/(f).",
	}

	ab := []string{"a", "b", "f", "m"}
	cmd.AddCommand(
		leaf("add", ab, "Compute a + b.", fieldBinaryOp((*calc.Calculator).FieldAdd)),
		leaf("sub", ab, "Compute a - b.", fieldBinaryOp((*calc.Calculator).FieldSub)),
		leaf("mul", ab, "Compute a * b.", fieldBinaryOp((*calc.Calculator).FieldMul)),
		leaf("div", ab, "Compute a * b^-1.", fieldBinaryOp((*calc.Calculator).FieldDiv)),
		leaf("inverse", []string{"a", "f", "m"}, "Compute a^-1.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.FieldInverse(ctx, args[0], args[1], args[2])
			}),
		leaf("pow", []string{"a", "e", "f", "m"}, "Compute a^e.",
			fieldBinaryOp((*calc.Calculator).FieldPow)),
		leaf("irreducible", []string{"f", "m"}, "Check whether f is irreducible over GF(m).",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.FieldIsIrreducible(ctx, args[0], args[1])
			}),
	)

	return cmd
}
