package lexer

import (
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// Lexer is a pull tokenizer over one WGSL file.
//
// It has no token buffer: Peek scans ahead on a copy and throws it away, so a
// Lexer is a small value that can be cloned for arbitrary lookahead and restored.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	lastEnd uint32 // end of the last consumed token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File { return lx.file }

// Next consumes the next significant token in normal mode.
// After End it keeps returning End.
func (lx *Lexer) Next() token.Token {
	return lx.consume(false)
}

// NextGeneric consumes the next token with '<' and '>' always lexed as single
// brackets; used inside generic argument lists.
func (lx *Lexer) NextGeneric() token.Token {
	return lx.consume(true)
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	clone := *lx
	return clone.Next()
}

// Clone returns a copy that advances independently.
func (lx *Lexer) Clone() Lexer {
	return *lx
}

// Restore rewinds the lexer to a previously cloned state.
func (lx *Lexer) Restore(state Lexer) {
	*lx = state
}

// StartOffset skips trivia and returns the offset where the next token begins.
func (lx *Lexer) StartOffset() uint32 {
	lx.skipTrivia()
	return lx.cursor.Off
}

// LastEnd is the end offset of the most recently consumed token.
func (lx *Lexer) LastEnd() uint32 { return lx.lastEnd }

// SpanFrom returns [start, end of last consumed token).
func (lx *Lexer) SpanFrom(start uint32) source.Span {
	end := lx.lastEnd
	if end < start {
		end = start
	}
	return source.Span{File: lx.file.ID, Start: start, End: end}
}

// All tokenizes the rest of the input, End included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.End {
			return out
		}
	}
}

func (lx *Lexer) consume(generic bool) token.Token {
	unterminated := lx.skipTrivia()
	start := lx.cursor.Mark()

	var tok token.Token
	switch ch := lx.cursor.Peek(); {
	case unterminated:
		lx.cursor.Advance(2)
		tok = token.Token{Kind: token.Invalid}
	case lx.cursor.EOF():
		tok = token.Token{Kind: token.End}
	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		tok = lx.scanNumber()
	case ch == '_' || isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanWord()
	default:
		tok = lx.scanPunct(generic)
	}

	tok.Span = lx.cursor.SpanFrom(start)
	if tok.Text == "" {
		tok.Text = string(lx.file.Content[tok.Span.Start:tok.Span.End])
	}
	if tok.Kind != token.End {
		lx.lastEnd = tok.Span.End
	}
	return tok
}
