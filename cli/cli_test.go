package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/MouseCreator/Long-arithmetic-system/calc"
	"github.com/MouseCreator/Long-arithmetic-system/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	var out, stderr bytes.Buffer

	cmd := cli.NewRootCmd()
	cmd.SetArgs(append([]string{"--seed", "cli-test"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Add", []string{"add", "7", "5", "11"}, "1\n"},
		{"Sub", []string{"sub", "5", "7", "11"}, "9\n"},
		{"Mul", []string{"mul", "4", "5", "7"}, "6\n"},
		{"Div", []string{"div", "1", "3", "7"}, "5\n"},
		{"Pow", []string{"pow", "2", "10", "1000"}, "24\n"},
		{"Inverse", []string{"inverse", "3", "7"}, "5\n"},
		{"Factorize", []string{"factorize", "60"}, "2 2 3 5\n"},
		{"FactorizeSimple", []string{"factorize", "--simple", "60"}, "2 2 3 5\n"},
		{"Sqrt", []string{"sqrt", "2", "7"}, "3 4\n"},
		{"Log", []string{"log", "4", "2", "7"}, "2\n"},
		{"Generator", []string{"generator", "3", "7"}, "true\n"},
		{"NotGenerator", []string{"generator", "2", "7"}, "false\n"},
		{"Order", []string{"order", "2", "7"}, "3\n"},
		{"NegativeOperand", []string{"add", "--", "-5", "3", "7"}, "5\n"},
		{"Euler", []string{"euler", "36"}, "12\n"},
		{"Carmichael", []string{"carmichael", "36"}, "6\n"},
		{"IsPrime", []string{"isprime", "97"}, "true\n"},
		{"IsComposite", []string{"isprime", "-k", "10", "91"}, "false\n"},
		{"RandomPrime", []string{"randomprime", "90", "100"}, "97\n"},
		{"Eval", []string{"eval", "2^10 + 1", "0"}, "1025\n"},
		{"EvalModular", []string{"eval", "inv(3) * 3", "7"}, "1\n"},

		{"PolyParse", []string{"poly", "parse", "3x^2+7"}, "3 2\n7 0\n"},
		{"PolyAdd", []string{"poly", "add", "x+1", "x+2", "3"}, "2x\n"},
		{"PolyMul", []string{"poly", "mul", "x+1", "x+1", "2"}, "x^2+1\n"},
		{"PolyDiv", []string{"poly", "div", "x^3+2x+1", "x+1", "5"}, "x^2+4x+3\n"},
		{"PolyRest", []string{"poly", "rest", "x^3+2x+1", "x+1", "5"}, "3\n"},
		{"PolyDerivative", []string{"poly", "derivative", "x^3+x", "5"}, "3x^2+1\n"},
		{"PolyEvaluate", []string{"poly", "evaluate", "x^2+1", "7", "3"}, "3\n"},
		{"Cyclotomic", []string{"poly", "cyclotomic", "6", "7"}, "x^2+6x+1\n"},

		{"FieldMul", []string{"field", "mul", "x", "x", "x^2+1", "3"}, "2\n"},
		{"FieldInverse", []string{"field", "inverse", "x^6+x^4+x+1", "x^8+x^4+x^3+x+1", "2"}, "x^7+x^6+x^3+x\n"},
		{"FieldPow", []string{"field", "pow", "x", "4", "x^2+1", "3"}, "1\n"},
		{"FieldIrreducible", []string{"field", "irreducible", "x^2+1", "3"}, "true\n"},
		{"FieldReducible", []string{"field", "irreducible", "x^2+1", "5"}, "false\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestErrors(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		out, err := run("inverse", "2", "4")
		assert.Error(t, err)
		assert.Empty(t, out)
	})

	t.Run("WrongArity", func(t *testing.T) {
		_, err := run("add", "1", "2")
		assert.Error(t, err)
	})

	t.Run("UnknownCommand", func(t *testing.T) {
		_, err := run("frobnicate")
		assert.Error(t, err)
	})
}

func TestJSON(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		out, err := run("--json", "add", "7", "5", "11")
		require.NoError(t, err)

		var resp calc.Response
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "1", resp.Data)
		assert.Empty(t, resp.Error)
	})

	t.Run("List", func(t *testing.T) {
		out, err := run("--json", "factorize", "12")
		require.NoError(t, err)

		var resp calc.Response
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, []any{"2", "2", "3"}, resp.Data)
	})

	t.Run("Failure", func(t *testing.T) {
		out, err := run("--json", "inverse", "2", "4")
		assert.Error(t, err)

		var resp calc.Response
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "NotInvertibleError", resp.Kind)
		assert.NotEmpty(t, resp.Error)
	})
}
