package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fconst/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "foldcheck",
	Short: "Fortran constant-folding checker",
	Long:  `foldcheck folds standalone Fortran constant expressions and reports the diagnostics the fold would raise.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "accepted; no subcommand reads it")
	rootCmd.PersistentFlags().Bool("timings", false, "accepted; no subcommand reads it")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("rounding", "nearest", "IEEE rounding mode (nearest|zero|up|down)")
	rootCmd.PersistentFlags().Bool("flush-subnormals", false, "flush subnormal REAL results to zero")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
