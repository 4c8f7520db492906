package parser

import (
	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// Helpers over the raw token stream. They live here rather than in the lexer
// because they produce parser errors.

func (p *Parser) expect(k token.Kind, op byte) error {
	_, err := p.expectSpan(k, op)
	return err
}

func (p *Parser) expectSpan(k token.Kind, op byte) (source.Span, error) {
	tok := p.lx.Next()
	if !tok.Is(k, op) {
		return tok.Span, unexpected(tok, expectTok(string(op)))
	}
	return tok.Span, nil
}

func (p *Parser) expectWord(w string) error {
	tok := p.lx.Next()
	if !tok.IsWord(w) {
		return unexpected(tok, expectTok(w))
	}
	return nil
}

// skip consumes the next token when it is (k, op).
func (p *Parser) skip(k token.Kind, op byte) bool {
	if p.lx.Peek().Is(k, op) {
		p.lx.Next()
		return true
	}
	return false
}

// skipKind is skip for the classes that carry no meaningful operator
// character (`@`, `->`, `++`, `--`).
func (p *Parser) skipKind(k token.Kind) bool {
	if p.lx.Peek().Kind == k {
		p.lx.Next()
		return true
	}
	return false
}

func (p *Parser) skipWord(w string) bool {
	if p.lx.Peek().IsWord(w) {
		p.lx.Next()
		return true
	}
	return false
}

// expectGenericParen reads a single '<' or '>' even when '>>' or '>=' follows.
func (p *Parser) expectGenericParen(ch byte) error {
	tok := p.lx.NextGeneric()
	if !tok.IsParen(ch) {
		return unexpected(tok, expectTok(string(ch)))
	}
	return nil
}

// captureSpan runs f and returns the span of everything it consumed.
func captureSpan[T any](p *Parser, f func() (T, error)) (T, source.Span, error) {
	start := p.lx.StartOffset()
	v, err := f()
	return v, p.lx.SpanFrom(start), err
}

// nextIdentWithSpan reads a word that may be a keyword; '_' and '__x' are
// rejected.
func (p *Parser) nextIdentWithSpan() (string, source.Span, error) {
	tok := p.lx.Next()
	switch {
	case tok.Kind != token.Word:
		return "", tok.Span, unexpected(tok, ExpectedToken{Kind: ExpectIdentifier})
	case tok.Text == "_":
		return "", tok.Span, newError(diag.SynInvalidIdentUnderscore, tok.Span)
	case len(tok.Text) >= 2 && tok.Text[:2] == "__":
		return "", tok.Span, namedError(diag.SynReservedIdentifierPrefix, tok.Span, tok.Text)
	}
	return tok.Text, tok.Span, nil
}

// peekIdentWithSpan is nextIdentWithSpan on a copy of the lexer.
func (p *Parser) peekIdentWithSpan() (string, source.Span, bool) {
	saved := p.lx.Clone()
	name, sp, err := p.nextIdentWithSpan()
	p.lx.Restore(saved)
	return name, sp, err == nil
}

// nextIdent reads a user-chosen name: reserved words are refused too.
func (p *Parser) nextIdent() (ast.Ident, error) {
	name, sp, err := p.nextIdentWithSpan()
	if err != nil {
		return ast.Ident{}, err
	}
	if token.IsReserved(name) {
		return ast.Ident{}, namedError(diag.SynReservedKeyword, sp, name)
	}
	return ast.Ident{Name: name, Span: sp}, nil
}

// nextScalarGeneric reads `<scalar>`.
func (p *Parser) nextScalarGeneric() (ast.Scalar, source.Span, error) {
	if err := p.expectGenericParen('<'); err != nil {
		return ast.Scalar{}, source.Span{}, err
	}
	name, sp, err := p.nextIdentWithSpan()
	if err != nil {
		return ast.Scalar{}, sp, err
	}
	scalar, ok, err := scalarType(name, sp)
	if err != nil {
		return ast.Scalar{}, sp, err
	}
	if !ok {
		return ast.Scalar{}, sp, namedError(diag.SynUnknownScalarType, sp, name)
	}
	if err := p.expectGenericParen('>'); err != nil {
		return ast.Scalar{}, sp, err
	}
	return scalar, sp, nil
}

func (p *Parser) nextStorageAccess() (ast.StorageAccess, error) {
	name, sp, err := p.nextIdentWithSpan()
	if err != nil {
		return 0, err
	}
	return storageAccess(name, sp)
}

// nextFormatGeneric reads `<format, access>` of a storage texture.
func (p *Parser) nextFormatGeneric() (ast.StorageFormat, ast.StorageAccess, error) {
	if err := p.expectGenericParen('<'); err != nil {
		return 0, 0, err
	}
	name, sp, err := p.nextIdentWithSpan()
	if err != nil {
		return 0, 0, err
	}
	format, err := storageFormat(name, sp)
	if err != nil {
		return 0, 0, err
	}
	if err := p.expect(token.Separator, ','); err != nil {
		return 0, 0, err
	}
	access, err := p.nextStorageAccess()
	if err != nil {
		return 0, 0, err
	}
	if err := p.expectGenericParen('>'); err != nil {
		return 0, 0, err
	}
	return format, access, nil
}

func (p *Parser) openArguments() error {
	return p.expect(token.Paren, '(')
}

// closeArguments accepts one trailing comma.
func (p *Parser) closeArguments() error {
	p.skip(token.Separator, ',')
	return p.expect(token.Paren, ')')
}

// nextArgument reports whether another argument follows; it consumes the
// separating comma or the closing parenthesis.
func (p *Parser) nextArgument() (bool, error) {
	if p.skip(token.Separator, ',') {
		return !p.skip(token.Paren, ')'), nil
	}
	return false, p.expect(token.Paren, ')')
}
