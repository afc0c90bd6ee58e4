package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vlog/internal/driver"
	"vlog/internal/source"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the parse snapshot cache",
	Long:  `Snapshot stores parse outcomes keyed by content hash so unchanged files can skip reparsing`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save file.v",
	Short: "Parse a file and store its snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotSave,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show file.v",
	Short: "Look up the stored snapshot for a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotShow,
}

var snapshotDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Remove every stored snapshot",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotDrop,
}

func init() {
	snapshotCmd.PersistentFlags().String("dir", "", "cache directory (default: the per-user cache)")
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotDropCmd)
}

// openCache resolves the cache directory: --dir wins, then the manifest's
// [parse].snapshot_dir, then the per-user cache. startDir anchors the
// manifest walk-up.
func openCache(cmd *cobra.Command, startDir string) (*driver.SnapshotCache, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		m, mErr := loadManifestFor(startDir, true)
		if mErr != nil {
			return nil, mErr
		}
		dir = manifestSnapshotDir(m, dir)
	}
	return driver.OpenSnapshotCache(dir)
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	cache, err := openCache(cmd, filepath.Dir(args[0]))
	if err != nil {
		return err
	}
	snap := driver.SnapshotOf(result)
	if err := cache.Put(snap); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	fmt.Fprintf(os.Stdout, "stored %s: %d modules, %d nodes\n", args[0], len(snap.Modules), snap.NodeCount)
	return nil
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	if err != nil {
		return err
	}

	cache, err := openCache(cmd, filepath.Dir(args[0]))
	if err != nil {
		return err
	}
	snap, ok, err := cache.Get(fs.Get(fileID).Hash)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s: no snapshot for the current content", args[0])
	}

	fmt.Fprintf(os.Stdout, "path: %s\n", snap.Path)
	fmt.Fprintf(os.Stdout, "modules: %s\n", strings.Join(snap.Modules, ", "))
	fmt.Fprintf(os.Stdout, "nodes: %d\n", snap.NodeCount)
	fmt.Fprintf(os.Stdout, "diagnostics: %d\n", snap.Diagnostics)
	if snap.HadErrors {
		fmt.Fprintln(os.Stdout, "status: had errors")
	} else {
		fmt.Fprintln(os.Stdout, "status: clean")
	}
	return nil
}

func runSnapshotDrop(cmd *cobra.Command, _ []string) error {
	cache, err := openCache(cmd, ".")
	if err != nil {
		return err
	}
	return cache.Drop()
}
