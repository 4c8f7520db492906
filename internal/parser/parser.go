// Package parser turns WGSL source into an ast.TranslationUnit.
//
// It is a recursive-descent parser that stops at the first error. Name
// resolution is limited to function locals: every other identifier becomes an
// unresolved reference recorded in the enclosing declaration's dependency set
// for a later pass.
package parser

import (
	"strconv"

	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/lexer"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
	"wgslfront/internal/trace"
)

// DefaultMaxBraceNesting bounds `{` depth inside a function, body included.
const DefaultMaxBraceNesting uint8 = 64

type Options struct {
	// Reporter receives warnings (unknown diagnostic rules, non-NFC
	// identifiers). Errors are returned, never reported.
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// TraceParent is the span id the per-file span hangs under.
	TraceParent uint64
	// MaxBraceNesting; 0 means DefaultMaxBraceNesting.
	MaxBraceNesting uint8
}

// Parser holds state for one parse at a time. Reusing it sequentially is
// fine; sharing it between goroutines is not.
type Parser struct {
	opts     Options
	reporter diag.Reporter
	rules    []ruleEntry
	lx       *lexer.Lexer
	unit     *ast.TranslationUnit
	fileSpan *trace.Span
}

func New(opts Options) *Parser {
	if opts.MaxBraceNesting == 0 {
		opts.MaxBraceNesting = DefaultMaxBraceNesting
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Parser{opts: opts}
}

// ParseFile parses file with a fresh parser.
func ParseFile(file *source.File, opts Options) (*ast.TranslationUnit, error) {
	return New(opts).Parse(file)
}

func (p *Parser) reset() {
	p.rules = p.rules[:0]
	p.lx = nil
	p.unit = nil
}

// Parse parses a whole module. On failure it returns the first *Error and
// no unit.
func (p *Parser) Parse(file *source.File) (*ast.TranslationUnit, error) {
	p.reset()
	defer p.reset()

	p.reporter = diag.NopReporter{}
	if p.opts.Reporter != nil {
		// lookahead re-lexes tokens, so lexer warnings would repeat
		p.reporter = diag.NewDedupReporter(p.opts.Reporter)
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: p.reporter})
	p.unit = ast.NewTranslationUnit(ast.Hints{Exprs: uint(len(file.Content) / 6)})

	p.fileSpan = trace.Begin(p.opts.Tracer, trace.ScopeFile, "parse:"+file.Path, p.opts.TraceParent)
	unit, err := p.translationUnit()
	if err != nil {
		trace.Fail(p.opts.Tracer, trace.ScopeFile, "parse-error", err.Error(), p.fileSpan.ID())
		p.fileSpan.End("error")
		return nil, err
	}
	p.fileSpan.
		WithExtra("decls", strconv.FormatUint(uint64(unit.Decls.Len()), 10)).
		WithExtra("exprs", strconv.FormatUint(uint64(unit.Exprs.Len()), 10)).
		End("ok")
	return unit, nil
}

func (p *Parser) warn(code diag.Code, sp source.Span, msg string) {
	p.reporter.Report(code, diag.SevWarning, sp, msg, nil)
}

func (p *Parser) translationUnit() (*ast.TranslationUnit, error) {
	if err := p.directives(); err != nil {
		return nil, err
	}
	for {
		if err := p.globalDecl(); err != nil {
			return nil, err
		}
		if p.lx.Peek().Kind == token.End {
			return p.unit, nil
		}
	}
}
