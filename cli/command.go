package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MouseCreator/Long-arithmetic-system/calc"
	"github.com/MouseCreator/Long-arithmetic-system/poly"
	"github.com/spf13/cobra"
)

// operation is the body of a leaf command.
type operation func(ctx context.Context, c *calc.Calculator, args []string) (any, error)

// leaf builds a command taking exactly the named positional arguments.
func leaf(name string, params []string, short string, op operation) *cobra.Command {
	use := name
	if len(params) > 0 {
		use += " " + strings.Join(params, " ")
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(len(params)),
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := NewPerfStats()
			c := calc.New(readOptions(cmd))
			data, err := op(cmd.Context(), c, args)
			stats.Log(cmd.CommandPath())

			return report(cmd, data, err)
		},
	}
}

// term is the printable form of a parsed polynomial term.
type term struct {
	Coeff  string `json:"coeff"`
	Degree int    `json:"degree"`
}

func terms(ts []poly.Term) []term {
	out := make([]term, len(ts))
	for i, t := range ts {
		out[i] = term{Coeff: t.Coeff.String(), Degree: t.Degree}
	}

	return out
}

// report writes the outcome of a command to its output stream.
// With --json, both results and failures are written as a response envelope;
// the error is still returned so that the process exits with a failure code.
func report(cmd *cobra.Command, data any, err error) error {
	out := cmd.OutOrStdout()

	if getFlag(cmd, "json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		if e := enc.Encode(calc.NewResponse(data, err)); e != nil {
			return e
		}

		if err != nil {
			cmd.SilenceErrors = true
		}

		return err
	}

	if err != nil {
		return err
	}

	switch v := data.(type) {
	case []string:
		fmt.Fprintln(out, strings.Join(v, " "))
	case []term:
		for _, t := range v {
			fmt.Fprintf(out, "%s %d\n", t.Coeff, t.Degree)
		}
	default:
		fmt.Fprintln(out, v)
	}

	return nil
}
