// Package cli implements the longarith command tree.
package cli

import (
	"os"

	"github.com/MouseCreator/Long-arithmetic-system/calc"
	"github.com/MouseCreator/Long-arithmetic-system/modular"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the base command together with all of its children.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "longarith",
		Short: "Long arithmetic over finite fields and polynomial rings.",
		Long: `Long arithmetic over finite fields and polynomial rings.
	Integers are given in base 10 and may be arbitrarily large.
	Polynomials are given as sums of terms such as "3x^2-x+7".
	Put -- before the operands when one of them is negative,
	otherwise it is read as a flag: longarith add -- -5 3 7`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if getFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("json", false, "print results as a JSON envelope")
	rootCmd.PersistentFlags().Duration("timeout", calc.DefaultTimeout, "deadline of a single operation (0 disables it)")
	rootCmd.PersistentFlags().String("seed", "", "seed of the witness sampler (random if empty)")
	rootCmd.PersistentFlags().Int("pollard-iterations", 0, "rho steps per seed before Pollard's rho restarts")
	rootCmd.PersistentFlags().Int("bsgs-limit", 0, "maximum size of a baby-step giant-step table")

	rootCmd.AddCommand(finiteCommands()...)
	rootCmd.AddCommand(polyCmd(), fieldCmd())

	return rootCmd
}

// Execute runs the command tree on the process arguments.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// readOptions turns the persistent flags into calculator options.
func readOptions(cmd *cobra.Command) calc.Options {
	lit := modular.DefaultParametersLiteral

	if n := getInt(cmd, "pollard-iterations"); n > 0 {
		lit.PollardIterations = n
	}

	if n := getInt(cmd, "bsgs-limit"); n > 0 {
		lit.BSGSLimit = n
	}

	if s := getString(cmd, "seed"); s != "" {
		lit.Seed = []byte(s)
	}

	return calc.Options{
		Parameters: lit.Compile(),
		Timeout:    getDuration(cmd, "timeout"),
	}
}
