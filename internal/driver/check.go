package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ListSourceFiles returns every .zn file under dir, sorted by path.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".zn") {
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

// CheckDir compiles every .zn file under dir in parallel, reporting
// per-file progress through sink. jobs <= 0 means GOMAXPROCS workers.
// Results come back in the same order as ListSourceFiles.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int, sink ProgressSink) ([]*Result, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	for _, f := range files {
		emit(sink, Event{File: f, Stage: StageParse, Status: StatusQueued})
	}

	results := make([]*Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			emit(sink, Event{File: path, Stage: StageCheck, Status: StatusWorking})
			res, err := Compile(path, opts)
			if err != nil {
				emit(sink, Event{File: path, Stage: StageCheck, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return err
			}
			results[i] = res
			status := StatusDone
			if res.HasErrors() {
				status = StatusError
			}
			emit(sink, Event{File: path, Stage: StageCheck, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
