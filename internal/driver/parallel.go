package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DirResult pairs one file's path with its expansion result.
type DirResult struct {
	Path   string
	Result *ExpandResult
	Err    error
}

// listCaptureFiles returns the sorted list of all *.cap files under dir.
func listCaptureFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".cap") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sorted for deterministic output order.
	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every *.cap file under dir in parallel. Per-file load
// errors land in that file's DirResult; the function itself fails only on
// directory walking or context cancellation.
func ExpandDir(ctx context.Context, dir string, opts ExpandOptions, jobs int) ([]DirResult, error) {
	files, err := listCaptureFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indices are unique per goroutine, no mutex needed.
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := Expand(path, opts)
			results[i] = DirResult{Path: path, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
