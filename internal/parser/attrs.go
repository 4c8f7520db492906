package parser

import (
	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// parsedAttribute is a slot that one attribute run may fill at most once.
type parsedAttribute[T any] struct {
	value T
	ok    bool
}

func (a *parsedAttribute[T]) set(v T, nameSpan source.Span, name string) error {
	if a.ok {
		return namedError(diag.SynRepeatedAttribute, nameSpan, name)
	}
	a.value, a.ok = v, true
	return nil
}

// parenExpression reads `( expr )` after an attribute name.
func (p *Parser) parenExpression(ctx *declCtx) (ast.ExprID, error) {
	if err := p.expect(token.Paren, '('); err != nil {
		return ast.NoExprID, err
	}
	id, err := p.generalExpression(ctx)
	if err != nil {
		return ast.NoExprID, err
	}
	if err := p.expect(token.Paren, ')'); err != nil {
		return ast.NoExprID, err
	}
	return id, nil
}

// parenWord reads `( word )` and maps word with conv.
func parenWord[T any](p *Parser, conv func(string, source.Span) (T, error)) (T, error) {
	var zero T
	if err := p.expect(token.Paren, '('); err != nil {
		return zero, err
	}
	name, sp, err := p.nextIdentWithSpan()
	if err != nil {
		return zero, err
	}
	v, err := conv(name, sp)
	if err != nil {
		return zero, err
	}
	if err := p.expect(token.Paren, ')'); err != nil {
		return zero, err
	}
	return v, nil
}

// bindingParser collects the I/O attributes of a parameter, result or struct
// member.
type bindingParser struct {
	location          parsedAttribute[ast.ExprID]
	secondBlendSource parsedAttribute[bool]
	builtIn           parsedAttribute[ast.BuiltIn]
	interpolation     parsedAttribute[ast.Interpolation]
	sampling          parsedAttribute[ast.Sampling]
	invariant         parsedAttribute[bool]
}

func (b *bindingParser) parse(p *Parser, ctx *declCtx, name string, nameSpan source.Span) error {
	switch name {
	case "location":
		loc, err := p.parenExpression(ctx)
		if err != nil {
			return err
		}
		return b.location.set(loc, nameSpan, name)
	case "builtin":
		bi, err := parenWord(p, builtIn)
		if err != nil {
			return err
		}
		return b.builtIn.set(bi, nameSpan, name)
	case "interpolate":
		if err := p.expect(token.Paren, '('); err != nil {
			return err
		}
		word, sp, err := p.nextIdentWithSpan()
		if err != nil {
			return err
		}
		interp, err := interpolation(word, sp)
		if err != nil {
			return err
		}
		if err := b.interpolation.set(interp, nameSpan, name); err != nil {
			return err
		}
		if p.skip(token.Separator, ',') {
			if word, sp, err = p.nextIdentWithSpan(); err != nil {
				return err
			}
			s, err := sampling(word, sp)
			if err != nil {
				return err
			}
			if err := b.sampling.set(s, nameSpan, name); err != nil {
				return err
			}
		}
		return p.expect(token.Paren, ')')
	case "second_blend_source":
		return b.secondBlendSource.set(true, nameSpan, name)
	case "invariant":
		return b.invariant.set(true, nameSpan, name)
	}
	return namedError(diag.SynUnknownAttribute, nameSpan, name)
}

// finish validates the combination. Allowed: nothing; a location with
// optional interpolation, sampling and blend source; a builtin; position
// with @invariant.
func (b *bindingParser) finish(sp source.Span) (*ast.Binding, error) {
	invariant := b.invariant.ok && b.invariant.value
	switch {
	case !b.location.ok && !b.builtIn.ok && !b.interpolation.ok && !b.sampling.ok && !invariant:
		return nil, nil
	case b.location.ok && !b.builtIn.ok && !invariant:
		return &ast.Binding{
			Kind:              ast.BindingLocation,
			Location:          b.location.value,
			Interpolation:     b.interpolation.value,
			Sampling:          b.sampling.value,
			SecondBlendSource: b.secondBlendSource.value,
		}, nil
	case !b.location.ok && b.builtIn.ok && !b.interpolation.ok && !b.sampling.ok:
		if b.builtIn.value == ast.BuiltInPosition {
			return &ast.Binding{Kind: ast.BindingBuiltIn, BuiltIn: ast.BuiltInPosition, Invariant: invariant}, nil
		}
		if !invariant {
			return &ast.Binding{Kind: ast.BindingBuiltIn, BuiltIn: b.builtIn.value}, nil
		}
	}
	return nil, newError(diag.SynInconsistentBinding, sp)
}

// varyingBinding parses the attribute run in front of a parameter or result.
func (p *Parser) varyingBinding(ctx *declCtx) (*ast.Binding, error) {
	var b bindingParser
	p.pushRule(ruleAttribute)
	for p.skipKind(token.Attribute) {
		name, sp, err := p.nextIdentWithSpan()
		if err != nil {
			return nil, err
		}
		if err := b.parse(p, ctx, name, sp); err != nil {
			return nil, err
		}
	}
	return b.finish(p.popRule())
}
