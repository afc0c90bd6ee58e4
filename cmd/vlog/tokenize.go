package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vlog/internal/diagfmt"
	"vlog/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.v",
	Short: "Tokenize a Verilog source file",
	Long:  `Tokenize breaks down a Verilog source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs, tokens, bag, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if err := reportDiagnostics(cmd, bag, fs); err != nil {
		return err
	}

	switch format {
	case "pretty":
		diagfmt.FormatTokensPretty(os.Stdout, tokens, fs)
		return nil
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
