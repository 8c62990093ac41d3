package driver

import (
	"github.com/JakobDegen/captures/internal/ast"
	"github.com/JakobDegen/captures/internal/capture"
	"github.com/JakobDegen/captures/internal/diag"
	"github.com/JakobDegen/captures/internal/format"
	"github.com/JakobDegen/captures/internal/observ"
	"github.com/JakobDegen/captures/internal/source"
)

// ExpandOptions configures one expansion run.
type ExpandOptions struct {
	// Only selects hygienic mode: the closure body is rewritten so that only
	// directive-named upvars reach call-site bindings.
	Only           bool
	MaxDiagnostics int
	Format         format.Options
	// Cache, when non-nil, is consulted before expanding and updated after a
	// clean expansion.
	Cache *DiskCache
	// TreeRequired bypasses cache reads so the result always carries a
	// Builder and Root. The cache stores rendered text only; a hit could not
	// serve callers that need the expansion tree. Writes still happen.
	TreeRequired bool
	// Timer, when non-nil, records per-phase durations.
	Timer *observ.Timer
}

// ExpandResult carries one expanded file. Output is nil when parsing
// reported errors; the Bag explains why.
type ExpandResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Bag     *diag.Bag
	Root    ast.ExprID
	Hygiene source.Hygiene
	Output  []byte
	Cached  bool
}

// Expand loads path, parses it as a capture input, expands it, and renders
// the expansion as source text.
func Expand(path string, opts ExpandOptions) (*ExpandResult, error) {
	fs := source.NewFileSet()
	phase := opts.Timer.Begin("load")
	fileID, err := fs.Load(path)
	opts.Timer.End(phase, path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	res := &ExpandResult{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	key := CacheKey(file.Hash, opts.Only, opts.Format)
	if opts.Cache != nil && !opts.TreeRequired {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err == nil && hit && payload.ContentHash == file.Hash {
			res.Output = payload.Output
			res.Cached = true
			return res, nil
		}
	}

	res.Builder = ast.NewBuilder(ast.Hints{})
	phase = opts.Timer.Begin("parse")
	input, ok, err := parseFile(file, res.Builder, res.Bag, opts.MaxDiagnostics)
	opts.Timer.End(phase, "")
	if err != nil {
		return nil, err
	}
	if !ok || res.Bag.HasErrors() {
		return res, nil
	}

	phase = opts.Timer.Begin("expand")
	var exp capture.Expansion
	if opts.Only {
		exp = capture.ExpandOnly(res.Builder, &input)
	} else {
		exp = capture.Expand(res.Builder, &input)
	}
	res.Root = exp.Root
	res.Hygiene = exp.Hygiene
	opts.Timer.End(phase, "")

	phase = opts.Timer.Begin("print")
	output, err := format.PrintExpr(res.Builder, exp.Root, opts.Format)
	opts.Timer.End(phase, "")
	if err != nil {
		return nil, err
	}
	res.Output = output

	if opts.Cache != nil {
		payload := DiskPayload{
			Schema:      diskCacheSchemaVersion,
			Path:        file.Path,
			Only:        opts.Only,
			ContentHash: file.Hash,
			Output:      output,
		}
		// Cache write failures are not fatal; the expansion already
		// succeeded.
		_ = opts.Cache.Put(key, &payload)
	}

	return res, nil
}
