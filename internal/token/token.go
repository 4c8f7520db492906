package token

import (
	"wgslfront/internal/source"
)

// Token is one lexeme of a WGSL module.
type Token struct {
	Kind   Kind
	Op     byte // concrete character for punctuation/operator classes
	Span   source.Span
	Text   string
	Num    NumberValue
	NumErr *NumberError // set instead of Num when the literal is malformed
}

// Is reports whether t is of class k with operator character op.
func (t Token) Is(k Kind, op byte) bool {
	return t.Kind == k && t.Op == op
}

// IsWord reports whether t is the word w.
func (t Token) IsWord(w string) bool {
	return t.Kind == Word && t.Text == w
}

// IsParen reports whether t is the given bracket.
func (t Token) IsParen(ch byte) bool { return t.Is(Paren, ch) }

// IsSeparator reports whether t is the given separator.
func (t Token) IsSeparator(ch byte) bool { return t.Is(Separator, ch) }

// Describe returns a short human form used in "found ..." messages.
func (t Token) Describe() string {
	switch t.Kind {
	case End:
		return "end of input"
	case Word:
		return "'" + t.Text + "'"
	case Number:
		return "number '" + t.Text + "'"
	case Invalid:
		if t.Text == "/*" {
			return "unterminated block comment"
		}
		return "unknown character '" + t.Text + "'"
	default:
		if t.Text != "" {
			return "'" + t.Text + "'"
		}
		return t.Kind.String()
	}
}
