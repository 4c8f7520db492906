package parser

import (
	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// newScalar adds the implied component type of vec3f and friends; it has no
// source span.
func (p *Parser) newScalar(s ast.Scalar) ast.TypeID {
	return p.unit.NewType(ast.Type{Kind: ast.TypeScalar, Scalar: s})
}

// typeDecl parses a type reference. Names that are not built-in types become
// TypeUser and a dependency of the declaration.
func (p *Parser) typeDecl(ctx *declCtx) (ast.TypeID, error) {
	p.pushRule(ruleTypeDecl)
	name, sp, err := p.nextIdentWithSpan()
	if err != nil {
		return ast.NoTypeID, err
	}
	ty, ok, err := p.typeDeclImpl(ctx, name, sp)
	if err != nil {
		return ast.NoTypeID, err
	}
	if !ok {
		ctx.depend(name, sp)
		ty = ast.Type{Kind: ast.TypeUser, Name: ast.Ident{Name: name, Span: sp}}
	}
	ty.Span = p.popRule()
	return p.unit.NewType(ty), nil
}

// singularGeneric reads `<type>` and returns the type with its span.
func (p *Parser) singularGeneric(ctx *declCtx) (ast.TypeID, source.Span, error) {
	if err := p.expectGenericParen('<'); err != nil {
		return ast.NoTypeID, source.Span{}, err
	}
	ty, sp, err := captureSpan(p, func() (ast.TypeID, error) { return p.typeDecl(ctx) })
	if err != nil {
		return ast.NoTypeID, sp, err
	}
	if err := p.expectGenericParen('>'); err != nil {
		return ast.NoTypeID, sp, err
	}
	return ty, sp, nil
}

// arrayTail reads `<base[, size]>` after `array` / `binding_array`.
func (p *Parser) arrayTail(ctx *declCtx, size func(*declCtx) (ast.ExprID, error)) (ast.TypeID, ast.ArraySize, error) {
	if err := p.expectGenericParen('<'); err != nil {
		return ast.NoTypeID, ast.ArraySize{}, err
	}
	base, err := p.typeDecl(ctx)
	if err != nil {
		return ast.NoTypeID, ast.ArraySize{}, err
	}
	var n ast.ArraySize
	if p.skip(token.Separator, ',') {
		if n.Constant, err = size(ctx); err != nil {
			return ast.NoTypeID, ast.ArraySize{}, err
		}
	}
	if err := p.expectGenericParen('>'); err != nil {
		return ast.NoTypeID, ast.ArraySize{}, err
	}
	return base, n, nil
}

// typeDeclImpl recognizes the built-in type spellings; ok is false for any
// other word.
func (p *Parser) typeDeclImpl(ctx *declCtx, word string, sp source.Span) (ast.Type, bool, error) {
	scalar, ok, err := scalarType(word, sp)
	if err != nil {
		return ast.Type{}, false, err
	}
	if ok {
		return ast.Type{Kind: ast.TypeScalar, Scalar: scalar}, true, nil
	}

	if sh, ok := shapes[word]; ok {
		ty := ast.Type{Kind: ast.TypeVector, Size: sh.size}
		if sh.matrix {
			ty = ast.Type{Kind: ast.TypeMatrix, Columns: sh.columns, Rows: sh.rows}
		}
		if sh.scalar != nil {
			ty.Elem = p.newScalar(*sh.scalar)
		} else if ty.Elem, ty.ElemSpan, err = p.singularGeneric(ctx); err != nil {
			return ast.Type{}, false, err
		}
		return ty, true, nil
	}

	if desc, ok := textures[word]; ok {
		img := ast.ImageType{Dim: desc.dim, Arrayed: desc.arrayed, Class: desc.class, Multi: desc.multi}
		switch desc.class {
		case ast.ImageSampled:
			sample, sampleSpan, err := p.nextScalarGeneric()
			if err != nil {
				return ast.Type{}, false, err
			}
			if err := checkTextureSampleType(sample, sampleSpan); err != nil {
				return ast.Type{}, false, err
			}
			img.Sample = sample
		case ast.ImageStorage:
			if img.Format, img.Access, err = p.nextFormatGeneric(); err != nil {
				return ast.Type{}, false, err
			}
		}
		return ast.Type{Kind: ast.TypeImage, Image: img}, true, nil
	}

	switch word {
	case "atomic":
		s, _, err := p.nextScalarGeneric()
		if err != nil {
			return ast.Type{}, false, err
		}
		return ast.Type{Kind: ast.TypeAtomic, Scalar: s}, true, nil

	case "ptr":
		if err := p.expectGenericParen('<'); err != nil {
			return ast.Type{}, false, err
		}
		name, nameSpan, err := p.nextIdentWithSpan()
		if err != nil {
			return ast.Type{}, false, err
		}
		space, err := addressSpace(name, nameSpan)
		if err != nil {
			return ast.Type{}, false, err
		}
		if err := p.expect(token.Separator, ','); err != nil {
			return ast.Type{}, false, err
		}
		base, err := p.typeDecl(ctx)
		if err != nil {
			return ast.Type{}, false, err
		}
		if space.Kind == ast.SpaceStorage && p.skip(token.Separator, ',') {
			if space.Access, err = p.nextStorageAccess(); err != nil {
				return ast.Type{}, false, err
			}
		}
		if err := p.expectGenericParen('>'); err != nil {
			return ast.Type{}, false, err
		}
		return ast.Type{Kind: ast.TypePointer, Base: base, Space: space}, true, nil

	case "array":
		base, size, err := p.arrayTail(ctx, p.constGenericExpression)
		if err != nil {
			return ast.Type{}, false, err
		}
		return ast.Type{Kind: ast.TypeArray, Base: base, ArraySize: size}, true, nil

	case "binding_array":
		base, size, err := p.arrayTail(ctx, p.unaryExpression)
		if err != nil {
			return ast.Type{}, false, err
		}
		return ast.Type{Kind: ast.TypeBindingArray, Base: base, ArraySize: size}, true, nil

	case "sampler":
		return ast.Type{Kind: ast.TypeSampler}, true, nil
	case "sampler_comparison":
		return ast.Type{Kind: ast.TypeSampler, Comparison: true}, true, nil
	case "acceleration_structure":
		return ast.Type{Kind: ast.TypeAccelerationStructure}, true, nil
	case "ray_query":
		return ast.Type{Kind: ast.TypeRayQuery}, true, nil
	case "RayDesc":
		return ast.Type{Kind: ast.TypeRayDesc}, true, nil
	case "RayIntersection":
		return ast.Type{Kind: ast.TypeRayIntersection}, true, nil
	}
	return ast.Type{}, false, nil
}

// checkTextureSampleType: sampled textures hold 32-bit float, sint or uint.
func checkTextureSampleType(s ast.Scalar, sp source.Span) error {
	if s.Width == 4 {
		switch s.Kind {
		case ast.ScalarFloat, ast.ScalarSint, ast.ScalarUint:
			return nil
		}
	}
	return &Error{Code: diag.SynBadTextureSampleType, Spans: []source.Span{sp}, Scalar: s}
}

// constructorType decides whether word (already consumed) starts a
// constructor. Partial forms pick up `<T>` (or `<T, N>` for arrays) when it
// follows.
func (p *Parser) constructorType(ctx *declCtx, word string, sp source.Span) (ast.ConstructorType, bool, error) {
	scalar, ok, err := scalarType(word, sp)
	if err != nil {
		return ast.ConstructorType{}, false, err
	}
	if ok {
		return ast.ConstructorType{Kind: ast.CtorScalar, Scalar: scalar}, true, nil
	}

	if sh, ok := shapes[word]; ok {
		ct := ast.ConstructorType{Kind: ast.CtorPartialVector, Size: sh.size}
		if sh.matrix {
			ct = ast.ConstructorType{Kind: ast.CtorPartialMatrix, Columns: sh.columns, Rows: sh.rows}
		}
		switch {
		case sh.scalar != nil:
			ct.Elem = p.newScalar(*sh.scalar)
		case p.lx.Peek().IsParen('<'):
			if ct.Elem, ct.ElemSpan, err = p.singularGeneric(ctx); err != nil {
				return ast.ConstructorType{}, false, err
			}
		default:
			return ct, true, nil
		}
		if sh.matrix {
			ct.Kind = ast.CtorMatrix
		} else {
			ct.Kind = ast.CtorVector
		}
		return ct, true, nil
	}

	if word == "array" {
		if !p.lx.Peek().IsParen('<') {
			return ast.ConstructorType{Kind: ast.CtorPartialArray}, true, nil
		}
		base, size, err := p.arrayTail(ctx, p.constGenericExpression)
		if err != nil {
			return ast.ConstructorType{}, false, err
		}
		return ast.ConstructorType{Kind: ast.CtorArray, Base: base, ArraySize: size}, true, nil
	}

	if notConstructible[word] {
		return ast.ConstructorType{}, false, namedError(diag.SynTypeNotConstructible, sp, word)
	}
	return ast.ConstructorType{}, false, nil
}
