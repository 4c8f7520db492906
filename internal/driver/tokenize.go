package driver

import (
	"context"
	"fmt"
	"strconv"

	"wgslfront/internal/diag"
	"wgslfront/internal/lexer"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
	"wgslfront/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and runs the lexer over it. Lexer warnings and
// invalid-token errors land in the bag.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	done := opts.track("load")
	fileID, err := fs.Load(path)
	if err != nil {
		done("error")
		return nil, fmt.Errorf("tokenize %s: %w", path, err)
	}
	done(path)
	file := fs.Get(fileID)

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePass, "tokenize", trace.SpanFrom(ctx))
	done = opts.track("tokenize")

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	tokens := lx.All()
	reportInvalidTokens(bag, tokens)

	done(strconv.Itoa(len(tokens)) + " tokens")
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// reportInvalidTokens turns tokens the parser would reject outright into
// diagnostics so a token dump still explains them.
func reportInvalidTokens(bag *diag.Bag, tokens []token.Token) {
	for _, tok := range tokens {
		switch {
		case tok.Kind == token.Invalid && tok.Text == "/*":
			bag.Add(diag.NewError(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment"))
		case tok.Kind == token.Invalid:
			bag.Add(diag.NewError(diag.LexUnknownChar, tok.Span, "unknown character '"+tok.Text+"'"))
		case tok.NumErr != nil:
			bag.Add(diag.NewError(diag.LexBadNumber, tok.Span, tok.NumErr.Error()))
		}
	}
}
