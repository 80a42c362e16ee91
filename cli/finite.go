package cli

import (
	"context"
	"strconv"

	"github.com/MouseCreator/Long-arithmetic-system/calc"
	"github.com/spf13/cobra"
)

// binaryOp adapts a calculator method of the form f(ctx, a, b, m).
func binaryOp(f func(c *calc.Calculator, ctx context.Context, a, b, m string) (string, error)) operation {
	return func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
		return f(c, ctx, args[0], args[1], args[2])
	}
}

func finiteCommands() []*cobra.Command {
	cmds := []*cobra.Command{
		leaf("add", []string{"a", "b", "m"}, "Compute a + b mod m.",
			binaryOp((*calc.Calculator).Add)),
		leaf("sub", []string{"a", "b", "m"}, "Compute a - b mod m.",
			binaryOp((*calc.Calculator).Sub)),
		leaf("mul", []string{"a", "b", "m"}, "Compute a * b mod m.",
			binaryOp((*calc.Calculator).Mul)),
		leaf("div", []string{"a", "b", "m"}, "Compute a * b^-1 mod m.",
			binaryOp((*calc.Calculator).Div)),
		leaf("pow", []string{"a", "e", "m"}, "Compute a^e mod m.",
			binaryOp((*calc.Calculator).FastPow)),
		leaf("inverse", []string{"a", "m"}, "Compute a^-1 mod m.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.Inverse(ctx, args[0], args[1])
			}),
		leaf("sqrt", []string{"n", "m"}, "Find the square roots of n modulo a prime m.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.DiscreteSqrt(ctx, args[0], args[1])
			}),
		leaf("log", []string{"n", "base", "m"}, "Find the smallest x with base^x = n mod m.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.DiscreteLog(ctx, args[0], args[1], args[2])
			}),
		leaf("generator", []string{"g", "m"}, "Check whether g generates the multiplicative group modulo a prime m.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.IsGenerator(ctx, args[0], args[1])
			}),
		leaf("order", []string{"n", "m"}, "Compute the multiplicative order of n modulo m.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.Order(ctx, args[0], args[1])
			}),
		leaf("euler", []string{"n"}, "Compute Euler's totient φ(n).",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.EulerFunction(ctx, args[0], "")
			}),
		leaf("carmichael", []string{"n"}, "Compute the Carmichael function λ(n).",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.CarmichaelFunction(ctx, args[0], "")
			}),
		leaf("randomprime", []string{"lo", "hi"}, "Pick a prime in [lo, hi].",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.RandomPrime(ctx, args[0], args[1])
			}),
		leaf("eval", []string{"expression", "m"}, "Evaluate an expression modulo m, or over the integers if m is 0.",
			func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
				return c.Evaluate(ctx, args[0], args[1])
			}),
	}

	var factorizeCmd *cobra.Command
	factorizeCmd = leaf("factorize", []string{"n"}, "Factor n into primes.",
		func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
			if getFlag(factorizeCmd, "simple") {
				return c.FactorizeSimple(ctx, args[0], "")
			}

			return c.FactorizePollard(ctx, args[0], "")
		})
	factorizeCmd.Flags().Bool("simple", false, "use trial division instead of Pollard's rho")

	var isPrimeCmd *cobra.Command
	isPrimeCmd = leaf("isprime", []string{"n"}, "Run the Miller-Rabin test on n.",
		func(ctx context.Context, c *calc.Calculator, args []string) (any, error) {
			k := getInt(isPrimeCmd, "iterations")
			return c.IsPrime(ctx, args[0], "", strconv.Itoa(k))
		})
	isPrimeCmd.Flags().IntP("iterations", "k", 20, "number of Miller-Rabin rounds")

	return append(cmds, factorizeCmd, isPrimeCmd)
}
