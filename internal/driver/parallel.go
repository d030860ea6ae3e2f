package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"tinge/internal/source"
)

// Stage marks the progress of one file through the pipeline.
type Stage uint8

const (
	// StageQueued means the file is known but not started.
	StageQueued Stage = iota
	// StageColorizing means the file is being scanned.
	StageColorizing
	// StageDone means the file finished, possibly with an error.
	StageDone
)

// Event reports per-file progress to an observer such as the TUI.
type Event struct {
	Path  string
	Stage Stage
	Err   error
}

// ListSourceFiles returns the sorted relative paths of every file under
// dir whose extension is bound to a registered mode.
func ListSourceFiles(dir string, opts Options) ([]string, error) {
	reg := opts.registry()
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := reg.ForExtension(filepath.Ext(path)); !ok {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// HighlightDir colorizes every recognized source file under dir in
// parallel. Results come back in deterministic path order; the first
// error cancels the remaining work.
func HighlightDir(ctx context.Context, dir string, opts Options) ([]*FileResult, error) {
	files, err := ListSourceFiles(dir, opts)
	if err != nil {
		return nil, err
	}

	results := make([]*FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(opts.Events, Event{Path: rel, Stage: StageColorizing})

			// each worker owns its FileSet; nothing is shared
			fileSet := source.NewFileSet()
			res, err := HighlightFile(fileSet, filepath.Join(dir, rel), opts)
			emit(opts.Events, Event{Path: rel, Stage: StageDone, Err: err})
			if err != nil {
				return err
			}
			res.Path = rel
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
