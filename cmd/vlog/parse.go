package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vlog/internal/diag"
	"vlog/internal/diagfmt"
	"vlog/internal/driver"
	"vlog/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.v|directory>",
	Short: "Parse Verilog sources into a syntax graph",
	Long:  `Parse analyzes a Verilog file or every *.v file under a directory and reports the resulting syntax graphs`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "summary", "output format (summary|dump|json)")
	parseCmd.Flags().String("diag-format", "pretty", "diagnostics format on stderr (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "auto", "interactive progress for directories (auto|on|off)")
}

type moduleSummary struct {
	Name  string `json:"name"`
	Ports int    `json:"ports"`
	Items int    `json:"items"`
}

type fileSummary struct {
	Path        string                     `json:"path"`
	Nodes       int                        `json:"nodes"`
	Modules     []moduleSummary            `json:"modules"`
	Diagnostics int                        `json:"diagnostics"`
	Report      *diagfmt.DiagnosticsOutput `json:"report,omitempty"`
	Error       string                     `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	diagFormat, err := cmd.Flags().GetString("diag-format")
	if err != nil {
		return fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	if diagFormat != "pretty" && diagFormat != "json" {
		return fmt.Errorf("unknown diag-format: %s", diagFormat)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	manifest, err := loadManifestFor(path, st.IsDir())
	if err != nil {
		return err
	}
	maxDiagnostics = manifestMaxDiagnostics(manifest, maxDiagnostics,
		cmd.Root().PersistentFlags().Changed("max-diagnostics"))

	if !st.IsDir() {
		result, err := driver.Parse(path, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
			return err
		}
		return emitResults(cmd, format, result.FileSet, []driver.FileResult{{
			Path:    path,
			FileID:  result.File.ID,
			Graph:   result.Graph,
			Modules: result.Modules,
			Bag:     result.Bag,
		}})
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	jobs = manifestJobs(manifest, jobs, cmd.Flags().Changed("jobs"))
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	opts := driver.DirOptions{MaxDiagnostics: maxDiagnostics, Jobs: jobs}

	var fs *source.FileSet
	var results []driver.FileResult
	switch {
	case manifest != nil:
		// The manifest picks the files so its excludes hold.
		var files []string
		files, err = manifestFilesUnder(manifest, path)
		if err != nil {
			return err
		}
		if shouldUseTUI(mode) && len(files) > 0 {
			fs, results, err = runParseUI(cmd.Context(), path, files, opts)
		} else {
			fs, results, err = driver.ParseFiles(cmd.Context(), files, opts)
		}
	case shouldUseTUI(mode):
		var files []string
		files, err = driver.ListVerilogFiles(path)
		if err == nil {
			if len(files) == 0 {
				fs = source.NewFileSet()
			} else {
				fs, results, err = runParseUI(cmd.Context(), path, files, opts)
			}
		}
	default:
		fs, results, err = driver.ParseDir(cmd.Context(), path, opts)
	}
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := reportDiagnostics(cmd, mergeBags(results), fs); err != nil {
		return err
	}
	return emitResults(cmd, format, fs, results)
}

// mergeBags folds the per-file bags into one so a directory parse prints a
// single sorted diagnostic stream.
func mergeBags(results []driver.FileResult) *diag.Bag {
	merged := diag.NewBag(0)
	for _, r := range results {
		if r.Bag != nil {
			merged.Merge(r.Bag)
		}
	}
	return merged
}

func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return nil
	}
	bag.Sort()
	bag.Dedup()
	if df, err := cmd.Flags().GetString("diag-format"); err == nil && df == "json" {
		return diagfmt.JSON(os.Stderr, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		ShowNotes: true,
	})
	return nil
}

func emitResults(cmd *cobra.Command, format string, fs *source.FileSet, results []driver.FileResult) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	switch format {
	case "summary":
		for _, r := range results {
			s := summarize(r)
			if s.Error != "" {
				fmt.Fprintf(os.Stdout, "%s: %s\n", s.Path, s.Error)
				continue
			}
			fmt.Fprintf(os.Stdout, "%s: %d modules, %d nodes, %d diagnostics\n",
				s.Path, len(s.Modules), s.Nodes, s.Diagnostics)
			if quiet {
				continue
			}
			for _, m := range s.Modules {
				fmt.Fprintf(os.Stdout, "  module %s: %d ports, %d items\n", m.Name, m.Ports, m.Items)
			}
		}
		return nil
	case "dump":
		for idx, r := range results {
			if r.Graph == nil {
				continue
			}
			if !quiet {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			diagfmt.DumpGraph(os.Stdout, r.Graph)
			if !quiet && idx < len(results)-1 {
				fmt.Fprintln(os.Stdout)
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summarizeAll(fs, results))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func summarize(r driver.FileResult) fileSummary {
	s := fileSummary{Path: r.Path}
	if r.Err != nil {
		s.Error = r.Err.Error()
		return s
	}
	s.Nodes = int(r.Graph.Len())
	if r.Bag != nil {
		s.Diagnostics = r.Bag.Len()
	}
	for _, id := range r.Modules {
		m := r.Graph.Module(id)
		s.Modules = append(s.Modules, moduleSummary{
			Name:  m.Name,
			Ports: len(m.Args),
			Items: len(m.Decls),
		})
	}
	return s
}

// summarizeAll builds the json payload, embedding the full diagnostic
// report of every file that has one.
func summarizeAll(fs *source.FileSet, results []driver.FileResult) []fileSummary {
	out := make([]fileSummary, 0, len(results))
	for _, r := range results {
		s := summarize(r)
		if r.Bag != nil && r.Bag.Len() > 0 {
			report := diagfmt.BuildDiagnosticsOutput(r.Bag, fs, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
			})
			s.Report = &report
		}
		out = append(out, s)
	}
	return out
}
