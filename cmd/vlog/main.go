package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vlog/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "vlog",
	Short: "Verilog netlist frontend and toolchain",
	Long:  `vlog parses structural Verilog into a syntax graph and provides diagnostic, printing, and caching tools`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the stream we are writing to
// and keeps the fatih/color global in sync for styled output elsewhere.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		colorFlag = "auto"
	}
	on := colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
	if colorFlag == "on" {
		color.NoColor = false
	}
	if colorFlag == "off" {
		color.NoColor = true
	}
	return on
}
