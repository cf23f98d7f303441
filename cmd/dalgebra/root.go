package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rldelgado/dalgebra/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "dalgebra",
	Short: "Commutation conditions for differential operators",
	Long: "dalgebra computes the algebraic conditions under which an ansatz\n" +
		"operator commutes with a normal-form operator L, by expanding the\n" +
		"ansatz over the almost-commuting basis and collecting the residual\n" +
		"coefficients of [L, P] into an ideal.",
	PersistentPreRun: func(*cobra.Command, []string) {
		logging.Init(logging.ParseLevel(rootFlags.logLevel), rootFlags.logFormat)
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(equationsCmd)
	rootCmd.AddCommand(hierarchyCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
