// Command rupeecalc runs the INR financial calculators from the command line
// and serves them, with the advisory chat, over HTTP.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rupeecalc/rupee-calculator/internal/calculation"
	"github.com/rupeecalc/rupee-calculator/internal/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
	debug    bool
	logger   *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "rupeecalc",
		Short:         "Indian rupee financial calculators",
		Long:          "rupeecalc computes compound interest, home loan EMIs, SIP returns, retirement corpus and goal savings in INR.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = logging.Init(cmd.ErrOrStderr(), opts.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log the headline figures of every calculation")

	root.AddCommand(
		newCalcCmd(opts),
		newRunCmd(opts),
		newExampleCmd(),
		newFormatsCmd(),
		newServeCmd(opts),
	)
	return root
}

// engine returns a calculation engine logging through the root logger.
func (o *rootOptions) engine() *calculation.CalculationEngine {
	ce := calculation.NewCalculationEngine()
	ce.Debug = o.debug
	if o.logger != nil {
		ce.SetLogger(logging.NewCalcLogger(o.logger))
	}
	return ce
}
