package driver

import (
	"context"
	"errors"
	"fmt"

	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/parser"
	"wgslfront/internal/source"
	"wgslfront/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Unit is nil when the parse failed.
	Unit *ast.TranslationUnit
	// Err is the parse error, also present in Bag as a diagnostic.
	Err *parser.Error
	Bag *diag.Bag
}

// Parse loads and parses a single file.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	done := opts.track("load")
	fileID, err := fs.Load(path)
	if err != nil {
		done("error")
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	done(path)

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "parse", trace.SpanFrom(ctx))
	done = opts.track("parse")

	bag := diag.NewBag(opts.MaxDiagnostics)
	file := fs.Get(fileID)
	unit, perr := parseFile(ctx, file, bag, opts, span.ID())
	if perr != nil {
		done("error")
		span.End("error")
	} else {
		done(fmt.Sprintf("%d decls", unit.Decls.Len()))
		span.End("ok")
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Unit:    unit,
		Err:     perr,
		Bag:     bag,
	}, nil
}

// parseFile runs a fresh parser over file. Warnings go to bag as they are
// reported; the first error is added last.
func parseFile(ctx context.Context, file *source.File, bag *diag.Bag, opts Options, parent uint64) (*ast.TranslationUnit, *parser.Error) {
	unit, err := parser.ParseFile(file, parser.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		Tracer:          trace.FromContext(ctx),
		TraceParent:     parent,
		MaxBraceNesting: opts.MaxBraceNesting,
	})
	if err == nil {
		return unit, nil
	}
	var perr *parser.Error
	if !errors.As(err, &perr) {
		perr = &parser.Error{Code: diag.SynInternalError, Spans: []source.Span{{File: file.ID}}, Name: err.Error()}
	}
	bag.Add(perr.Diagnostic())
	return nil, perr
}
