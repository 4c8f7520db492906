package lexer

import (
	"unicode/utf8"

	"wgslfront/internal/token"
)

// scanPunct recognizes punctuation and operators, longest match first.
// In generic mode '<' and '>' are single brackets whatever follows them.
func (lx *Lexer) scanPunct(generic bool) token.Token {
	c := &lx.cursor
	ch := c.Bump()
	next := c.Peek()

	switch ch {
	case '(', ')', '{', '}', '[', ']':
		return op(token.Paren, ch)
	case '<', '>':
		switch {
		case generic:
			return op(token.Paren, ch)
		case next == '=':
			c.Bump()
			return op(token.LogicalOperation, ch)
		case next == ch:
			c.Bump()
			if c.Eat('=') {
				return op(token.AssignmentOperation, ch)
			}
			return op(token.ShiftOperation, ch)
		}
		return op(token.Paren, ch)
	case ':', ';', ',', '.':
		return op(token.Separator, ch)
	case '@':
		return op(token.Attribute, ch)
	case '=', '!':
		if c.Eat('=') {
			return op(token.LogicalOperation, ch)
		}
		return op(token.Operation, ch)
	case '-':
		switch {
		case c.Eat('>'):
			return op(token.Arrow, ch)
		case c.Eat('-'):
			return op(token.Decrement, ch)
		}
	case '+':
		if c.Eat('+') {
			return op(token.Increment, ch)
		}
	case '&', '|':
		if c.Eat(ch) {
			return op(token.LogicalOperation, ch)
		}
	case '~':
		return op(token.Operation, ch)
	case '*', '/', '%', '^':
	default:
		// вернуть курсор и съесть руну целиком
		c.Off--
		_, sz := utf8.DecodeRune(c.Rest())
		c.Advance(sz)
		return token.Token{Kind: token.Invalid}
	}

	if c.Eat('=') {
		return op(token.AssignmentOperation, ch)
	}
	return op(token.Operation, ch)
}

func op(k token.Kind, ch byte) token.Token {
	return token.Token{Kind: k, Op: ch}
}
