package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vlog/internal/driver"
	"vlog/internal/printer"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] file.v",
	Short: "Re-emit a Verilog file from its syntax graph",
	Long:  `Print parses a Verilog file and writes it back out from the graph, normalizing whitespace and operator spacing`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().String("module", "", "print only the named module")
}

func runPrint(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	only, err := cmd.Flags().GetString("module")
	if err != nil {
		return fmt.Errorf("failed to get module flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("%s: cannot print a file with syntax errors", args[0])
	}

	printed := false
	for i, id := range result.Modules {
		name := result.Graph.Module(id).Name
		if only != "" && name != only {
			continue
		}
		if printed && i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		if err := printer.Print(result.Graph, id, os.Stdout); err != nil {
			return err
		}
		printed = true
	}
	if only != "" && !printed {
		return fmt.Errorf("%s: no module named %q", args[0], only)
	}
	return nil
}
