package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"vlog/internal/ast"
	"vlog/internal/diag"
	"vlog/internal/lexer"
	"vlog/internal/parser"
	"vlog/internal/project"
	"vlog/internal/source"
)

// FileResult is the outcome for one file of a directory parse. Err is set
// when the file could not be loaded; Graph is nil in that case.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Graph   *ast.Graph
	Modules []ast.NodeID
	Bag     *diag.Bag
	Err     error
}

// Event reports per-file progress of a directory parse.
type Event struct {
	Path   string
	Done   int
	Total  int
	Failed bool
}

// DirOptions configures ParseDir.
type DirOptions struct {
	MaxDiagnostics int
	Jobs           int          // 0 means GOMAXPROCS
	Events         chan<- Event // optional progress sink, closed by ParseDir
}

// ListVerilogFiles walks dir and returns every *.v file, sorted.
func ListVerilogFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, project.SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every *.v file under dir in parallel. Files are parsed
// into separate graphs since graph interning is not safe for concurrent
// writers. Results come back in sorted path order regardless of completion
// order.
func ParseDir(ctx context.Context, dir string, opts DirOptions) (*source.FileSet, []FileResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}

	files, err := ListVerilogFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return ParseFiles(ctx, files, opts)
}

// ParseFiles parses an explicit file list in parallel, same contract as
// ParseDir except the caller owns the list (and the Events channel).
func ParseFiles(ctx context.Context, files []string, opts DirOptions) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}

	// FileSet appends are not synchronized, load everything up front. A path
	// listed twice (overlapping include patterns) collapses to one parse;
	// the FileSet index tracks what is already loaded.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	uniq := make([]string, 0, len(files))
	for _, path := range files {
		if _, seen := fileSet.Lookup(path); seen {
			continue
		}
		if _, failed := loadErrors[path]; failed {
			continue
		}
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			uniq = append(uniq, path)
			continue
		}
		fileIDs[path] = fileID
		uniq = append(uniq, path)
	}
	files = uniq

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				results[i] = FileResult{Path: path, Err: loadErr}
				return emit(gctx, opts.Events, Event{
					Path:   path,
					Done:   int(done.Add(1)),
					Total:  len(files),
					Failed: true,
				})
			}

			fileID := fileIDs[path]
			rep := diag.NewBagReporter(maxDiagnostics)
			lx := lexer.New(fileSet.Get(fileID), rep)
			res := parser.ParseFile(lx, ast.NewGraph(0), parser.Options{
				MaxErrors: uint(maxDiagnostics), //nolint:gosec // checked non-negative above
				Reporter:  rep,
			})

			// Index i is unique per goroutine, no mutex needed.
			results[i] = FileResult{
				Path:    path,
				FileID:  fileID,
				Graph:   res.Graph,
				Modules: res.Modules,
				Bag:     res.Bag,
			}
			return emit(gctx, opts.Events, Event{
				Path:   path,
				Done:   int(done.Add(1)),
				Total:  len(files),
				Failed: res.Bag.HasErrors(),
			})
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func emit(ctx context.Context, events chan<- Event, ev Event) error {
	if events == nil {
		return nil
	}
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
