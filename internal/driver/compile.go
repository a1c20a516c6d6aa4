// Package driver wires the compilation phases together: load, parse,
// resolve, generate. Commands call into it instead of touching the
// phases directly.
package driver

import (
	"zinc/internal/atlas"
	"zinc/internal/codegen"
	"zinc/internal/diag"
	"zinc/internal/observ"
	"zinc/internal/parser"
	"zinc/internal/source"
	"zinc/internal/symbols"
	"zinc/internal/types"
)

// Options tunes a single compilation.
type Options struct {
	// MaxDiagnostics bounds the bag; 0 means unbounded.
	MaxDiagnostics int
	// CheckOnly stops after type resolution and skips Rust emission.
	CheckOnly bool
	// Cache, when set, is consulted before generating and updated after.
	Cache *DiskCache
}

// Result carries everything a command might want to show: diagnostics,
// the resolved table, the generated source and phase timings.
type Result struct {
	Path      string
	FileSet   *source.FileSet
	FileID    source.FileID
	Bag       *diag.Bag
	Table     *symbols.Table
	Rust      string
	Timing    observ.Report
	FromCache bool
}

// HasErrors reports whether any phase produced an error diagnostic.
func (r *Result) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// Compile runs the full pipeline over one file on disk. A failing phase
// short-circuits the rest; no Rust is produced for a program with errors.
func Compile(path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compileFile(fs, id, path, opts), nil
}

// CompileSource runs the pipeline over in-memory content.
func CompileSource(name string, content []byte, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return compileFile(fs, id, name, opts)
}

func compileFile(fs *source.FileSet, id source.FileID, path string, opts Options) *Result {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	timer := observ.NewTimer()
	res := &Result{Path: path, FileSet: fs, FileID: id, Bag: bag}
	file := fs.Get(id)

	if !opts.CheckOnly && opts.Cache != nil {
		var payload CachePayload
		if ok, err := opts.Cache.Get(file.Hash, &payload); err == nil && ok {
			res.Rust = payload.Rust
			res.FromCache = true
			res.Timing = timer.Report()
			return res
		}
	}

	phase := timer.Begin("parse")
	parsed := parser.ParseFile(file, reporter)
	timer.End(phase, "")
	if bag.HasErrors() {
		res.Timing = timer.Report()
		return res
	}

	phase = timer.Begin("atlas")
	atl := atlas.Build(parsed, reporter)
	timer.End(phase, "")
	if atl == nil || bag.HasErrors() {
		res.Timing = timer.Report()
		return res
	}

	phase = timer.Begin("symbols")
	res.Table = symbols.Resolve(atl, types.NewInterner(), reporter)
	timer.End(phase, "")
	if bag.HasErrors() || opts.CheckOnly {
		res.Timing = timer.Report()
		return res
	}

	phase = timer.Begin("codegen")
	res.Rust = codegen.Generate(res.Table)
	timer.End(phase, "")

	if opts.Cache != nil {
		// Best effort; a cold cache next run costs one regeneration.
		_ = opts.Cache.Put(file.Hash, &CachePayload{
			Schema: cacheSchemaVersion,
			Path:   path,
			Rust:   res.Rust,
		})
	}
	res.Timing = timer.Report()
	return res
}
