package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"vlog/internal/ast"
)

// Current schema version, increment when Snapshot format changes.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the cached outcome of parsing one file, keyed by the content
// hash. It carries metadata only: a hit tells the caller the file parsed
// to the same modules and diagnostics count last time, so diagnostic-only
// runs can skip the parse.
type Snapshot struct {
	Schema      uint16
	Path        string
	Hash        [32]byte
	Modules     []string
	NodeCount   int
	Diagnostics int
	HadErrors   bool
}

// SnapshotOf builds a snapshot from a completed parse.
func SnapshotOf(res *ParseResult) *Snapshot {
	names := make([]string, len(res.Modules))
	for i, id := range res.Modules {
		names[i] = res.Graph.Module(id).Name
	}
	s := &Snapshot{
		Schema:    snapshotSchemaVersion,
		Path:      res.File.Path,
		Hash:      res.File.Hash,
		Modules:   names,
		NodeCount: int(res.Graph.Len()),
	}
	if res.Bag != nil {
		s.Diagnostics = res.Bag.Len()
		s.HadErrors = res.Bag.HasErrors()
	}
	return s
}

// ModuleIDs re-resolves the snapshot's module names against a live graph.
// Missing names are skipped; a fully resolved snapshot returns one id per
// recorded module.
func (s *Snapshot) ModuleIDs(g *ast.Graph, modules []ast.NodeID) []ast.NodeID {
	byName := make(map[string]ast.NodeID, len(modules))
	for _, id := range modules {
		byName[g.Module(id).Name] = id
	}
	out := make([]ast.NodeID, 0, len(s.Modules))
	for _, name := range s.Modules {
		if id, ok := byName[name]; ok {
			out = append(out, id)
		}
	}
	return out
}

// SnapshotCache persists snapshots under a directory, one msgpack file per
// content hash. Safe for concurrent use.
type SnapshotCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenSnapshotCache creates (if needed) and opens a cache directory. An
// empty dir selects the standard per-user location.
func OpenSnapshotCache(dir string) (*SnapshotCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "vlog")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &SnapshotCache{dir: dir}, nil
}

func (c *SnapshotCache) pathFor(hash [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".mp")
}

// Put writes a snapshot atomically: encode to a temp file, then rename.
func (c *SnapshotCache) Put(s *Snapshot) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(s.Hash)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck // gone already after the rename

	if err := msgpack.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the snapshot for a content hash. A missing entry or a schema
// mismatch is a miss, not an error.
func (c *SnapshotCache) Get(hash [32]byte) (*Snapshot, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	var s Snapshot
	if err := msgpack.NewDecoder(f).Decode(&s); err != nil {
		return nil, false, err
	}
	if s.Schema != snapshotSchemaVersion {
		return nil, false, nil
	}
	return &s, true, nil
}

// Drop removes every cached snapshot.
func (c *SnapshotCache) Drop() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".mp" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
