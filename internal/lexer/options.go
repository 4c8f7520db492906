package lexer

import (
	"wgslfront/internal/diag"
	"wgslfront/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives soft findings (non-NFC identifiers). May be nil.
	// Lookahead re-scans tokens, so pass a diag.DedupReporter when it matters.
	Reporter diag.Reporter
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil)
	}
}
