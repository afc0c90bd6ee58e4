package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the file extension the walker collects.
const SourceExt = ".v"

// SourceFiles expands the [sources] section into a sorted list of Verilog
// files, absolute paths. Include entries may be files or directories; an
// empty include list means the manifest root. Exclude patterns match the
// slash-separated path relative to the root.
func (m *Manifest) SourceFiles() ([]string, error) {
	includes := m.Config.Sources.Include
	if len(includes) == 0 {
		includes = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) error {
		rel, err := filepath.Rel(m.Root, path)
		if err != nil {
			rel = path
		}
		if m.excluded(filepath.ToSlash(rel)) {
			return nil
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
		return nil
	}

	for _, inc := range includes {
		path := filepath.Join(m.Root, filepath.FromSlash(inc))
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%s: include %q: %w", m.Path, inc, err)
		}
		if !info.IsDir() {
			if err := add(path); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, SourceExt) {
				return nil
			}
			return add(p)
		})
		if err != nil {
			return nil, fmt.Errorf("%s: walking include %q: %w", m.Path, inc, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func (m *Manifest) excluded(rel string) bool {
	for _, pat := range m.Config.Sources.Exclude {
		if ok, err := filepath.Match(pat, rel); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pat, filepath.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
