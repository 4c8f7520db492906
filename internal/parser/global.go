package parser

import (
	"strconv"

	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/diagfilter"
	"wgslfront/internal/directive"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
	"wgslfront/internal/trace"
)

// declAttrs is everything an attribute run in front of a global declaration
// can carry.
type declAttrs struct {
	stage         parsedAttribute[ast.ShaderStage]
	computeSpan   source.Span
	workgroupSize parsedAttribute[[3]ast.ExprID]
	earlyDepth    parsedAttribute[ast.EarlyDepthTest]
	bindIndex     parsedAttribute[ast.ExprID]
	bindGroup     parsedAttribute[ast.ExprID]
	id            parsedAttribute[ast.ExprID]
	filters       diagfilter.Map
}

func (p *Parser) declAttributes(ctx *declCtx, a *declAttrs) error {
	for p.skipKind(token.Attribute) {
		name, nameSpan, err := p.nextIdentWithSpan()
		if err != nil {
			return err
		}
		if kind, ok := directive.LookupKind(name); ok && kind == directive.Diagnostic {
			f, err := p.diagnosticFilter()
			if err != nil {
				return err
			}
			if err := addFilter(&a.filters, f, p.peekRule(), diagfilter.DuplicatesConflict); err != nil {
				return err
			}
			continue
		}

		switch name {
		case "binding", "group", "id":
			var e ast.ExprID
			if e, err = p.parenExpression(ctx); err != nil {
				return err
			}
			slot := &a.id
			switch name {
			case "binding":
				slot = &a.bindIndex
			case "group":
				slot = &a.bindGroup
			}
			err = slot.set(e, nameSpan, name)
		case "vertex":
			err = a.stage.set(ast.StageVertex, nameSpan, name)
		case "fragment":
			err = a.stage.set(ast.StageFragment, nameSpan, name)
		case "compute":
			err = a.stage.set(ast.StageCompute, nameSpan, name)
			a.computeSpan = nameSpan
		case "workgroup_size":
			var size [3]ast.ExprID
			if size, err = p.workgroupSize(ctx); err == nil {
				err = a.workgroupSize.set(size, nameSpan, name)
			}
		case "early_depth_test":
			var edt ast.EarlyDepthTest
			if p.skip(token.Paren, '(') {
				edt.Conservative, err = func() (ast.ConservativeDepth, error) {
					word, sp, err := p.nextIdentWithSpan()
					if err != nil {
						return 0, err
					}
					d, err := conservativeDepth(word, sp)
					if err != nil {
						return 0, err
					}
					return d, p.expect(token.Paren, ')')
				}()
			}
			if err == nil {
				err = a.earlyDepth.set(edt, nameSpan, name)
			}
		default:
			err = namedError(diag.SynUnknownAttribute, nameSpan, name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// workgroupSize reads `(x[, y[, z]])`.
func (p *Parser) workgroupSize(ctx *declCtx) ([3]ast.ExprID, error) {
	var size [3]ast.ExprID
	if err := p.expect(token.Paren, '('); err != nil {
		return size, err
	}
	for i := range size {
		e, err := p.generalExpression(ctx)
		if err != nil {
			return size, err
		}
		size[i] = e
		tok := p.lx.Next()
		switch {
		case tok.IsParen(')'):
			return size, nil
		case tok.IsSeparator(',') && i != len(size)-1:
		default:
			return size, unexpected(tok, ExpectedToken{Kind: ExpectWorkgroupSizeSeparator})
		}
	}
	return size, nil
}

// resourceBinding pairs @group and @binding; one without the other is an error.
func (a *declAttrs) resourceBinding(sp source.Span) (*ast.ResourceBinding, error) {
	switch {
	case a.bindGroup.ok && a.bindIndex.ok:
		return &ast.ResourceBinding{Group: a.bindGroup.value, Binding: a.bindIndex.value}, nil
	case a.bindGroup.ok:
		return nil, namedError(diag.SynMissingAttribute, sp, "binding")
	case a.bindIndex.ok:
		return nil, namedError(diag.SynMissingAttribute, sp, "group")
	}
	return nil, nil
}

// globalDecl parses one module-scope declaration with its attributes. It
// returns without adding anything at a `;` or at the end of input.
func (p *Parser) globalDecl() error {
	ctx := newDeclCtx()
	var attrs declAttrs

	p.pushRule(ruleAttribute)
	if err := p.declAttributes(ctx, &attrs); err != nil {
		return err
	}
	binding, err := attrs.resourceBinding(p.popRule())
	if err != nil {
		return err
	}

	start := p.lx.StartOffset()
	tok := p.lx.Next()
	if tok.Kind == token.End {
		return nil
	}
	span := trace.Begin(p.opts.Tracer, trace.ScopeRule, "decl:"+tok.Text, p.fileSpan.ID())

	decl := ast.GlobalDecl{}
	skipped := false
	switch {
	case tok.IsSeparator(';'):
		if err := attributeFilters(&attrs.filters, diag.SynDiagnosticAttrNotSupported, "semicolons"); err != nil {
			return err
		}
		skipped = true

	case tok.Kind == token.Word && isDirective(tok.Text):
		return namedError(diag.SynDirectiveAfterDecl, tok.Span, tok.Text)

	case tok.IsWord("struct"):
		if err := attributeFilters(&attrs.filters, diag.SynDiagnosticAttrNotSupported, "`struct`s"); err != nil {
			return err
		}
		name, err := p.nextIdent()
		if err != nil {
			return err
		}
		members, err := p.structBody(ctx)
		if err != nil {
			return err
		}
		decl.Kind, decl.Struct = ast.DeclStruct, &ast.Struct{Name: name, Members: members}

	case tok.IsWord("alias"):
		if err := attributeFilters(&attrs.filters, diag.SynDiagnosticAttrNotSupported, "`alias`es"); err != nil {
			return err
		}
		name, err := p.nextIdent()
		if err != nil {
			return err
		}
		if err := p.expect(token.Operation, '='); err != nil {
			return err
		}
		ty, err := p.typeDecl(ctx)
		if err != nil {
			return err
		}
		if err := p.expect(token.Separator, ';'); err != nil {
			return err
		}
		decl.Kind, decl.Alias = ast.DeclAlias, &ast.TypeAlias{Name: name, Type: ty}

	case tok.IsWord("const"):
		if err := attributeFilters(&attrs.filters, diag.SynDiagnosticAttrNotSupported, "`const`s"); err != nil {
			return err
		}
		c, err := p.constDecl(ctx)
		if err != nil {
			return err
		}
		decl.Kind, decl.Const = ast.DeclConst, c

	case tok.IsWord("override"):
		if err := attributeFilters(&attrs.filters, diag.SynDiagnosticAttrNotSupported, "`override`s"); err != nil {
			return err
		}
		o, err := p.overrideDecl(ctx)
		if err != nil {
			return err
		}
		o.ID = attrs.id.value
		decl.Kind, decl.Override = ast.DeclOverride, o

	case tok.IsWord("var"):
		if err := attributeFilters(&attrs.filters, diag.SynDiagnosticAttrNotSupported, "`var`s"); err != nil {
			return err
		}
		v, err := p.variableDecl(ctx)
		if err != nil {
			return err
		}
		v.Binding, binding = binding, nil
		decl.Kind, decl.Var = ast.DeclVar, v

	case tok.IsWord("fn"):
		leaf := p.unit.DiagnosticFilters.Write(&attrs.filters, p.unit.DiagnosticFilterLeaf)
		fn, err := p.functionDecl(ctx, leaf)
		if err != nil {
			return err
		}
		if attrs.stage.ok {
			if attrs.stage.value == ast.StageCompute && !attrs.workgroupSize.ok {
				return newError(diag.SynMissingWorkgroupSize, attrs.computeSpan)
			}
			fn.EntryPoint = &ast.EntryPoint{
				Stage:            attrs.stage.value,
				WorkgroupSize:    attrs.workgroupSize.value,
				HasWorkgroupSize: attrs.workgroupSize.ok,
			}
			if attrs.earlyDepth.ok {
				edt := attrs.earlyDepth.value
				fn.EntryPoint.EarlyDepthTest = &edt
			}
		}
		decl.Kind, decl.Fn = ast.DeclFn, fn

	case tok.IsWord("const_assert"):
		if err := attributeFilters(&attrs.filters, diag.SynDiagnosticAttrNotSupported, "`const_assert`s"); err != nil {
			return err
		}
		cond, err := p.constAssertBody(ctx)
		if err != nil {
			return err
		}
		decl.Kind, decl.ConstAssert = ast.DeclConstAssert, cond

	default:
		return unexpected(tok, ExpectedToken{Kind: ExpectGlobalItem})
	}

	if !skipped {
		decl.Span = p.lx.SpanFrom(start)
		decl.Dependencies = ctx.deps
		p.unit.Decls.Allocate(decl)
		span.WithExtra("deps", strconv.Itoa(ctx.deps.Len())).End(decl.Kind.String())
	} else {
		span.End("empty")
	}

	if len(p.rules) != 0 {
		trace.Fail(p.opts.Tracer, trace.ScopeFile, "rule-stack", p.ruleStack(), p.fileSpan.ID())
		return namedError(diag.SynInternalError, p.lx.SpanFrom(start), "rule stack is not empty")
	}
	if binding != nil {
		return namedError(diag.SynInternalError, p.lx.SpanFrom(start), "we had the attribute but no var?")
	}
	return nil
}

func isDirective(word string) bool {
	_, ok := directive.LookupKind(word)
	return ok
}

// constDecl parses `name [: type] = init;` after `const`.
func (p *Parser) constDecl(ctx *declCtx) (*ast.Const, error) {
	name, err := p.nextIdent()
	if err != nil {
		return nil, err
	}
	c := &ast.Const{Name: name}
	if p.skip(token.Separator, ':') {
		if c.Type, err = p.typeDecl(ctx); err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.Operation, '='); err != nil {
		return nil, err
	}
	if c.Init, err = p.generalExpression(ctx); err != nil {
		return nil, err
	}
	return c, p.expect(token.Separator, ';')
}

// overrideDecl parses `name [: type] [= init];` after `override`.
func (p *Parser) overrideDecl(ctx *declCtx) (*ast.Override, error) {
	name, err := p.nextIdent()
	if err != nil {
		return nil, err
	}
	o := &ast.Override{Name: name}
	if p.skip(token.Separator, ':') {
		if o.Type, err = p.typeDecl(ctx); err != nil {
			return nil, err
		}
	}
	if p.skip(token.Operation, '=') {
		if o.Init, err = p.generalExpression(ctx); err != nil {
			return nil, err
		}
	}
	return o, p.expect(token.Separator, ';')
}

// variableDecl parses `[<space[, access]>] name [: type] [= init];` after
// `var`. Without a space the variable lives in the handle space.
func (p *Parser) variableDecl(ctx *declCtx) (*ast.GlobalVariable, error) {
	p.pushRule(ruleVariableDecl)
	v := &ast.GlobalVariable{Space: ast.AddressSpace{Kind: ast.SpaceHandle}}

	if p.skip(token.Paren, '<') {
		word, sp, err := p.nextIdentWithSpan()
		if err != nil {
			return nil, err
		}
		if v.Space, err = addressSpace(word, sp); err != nil {
			return nil, err
		}
		if v.Space.Kind == ast.SpaceStorage && p.skip(token.Separator, ',') {
			if v.Space.Access, err = p.nextStorageAccess(); err != nil {
				return nil, err
			}
		}
		if err := p.expect(token.Paren, '>'); err != nil {
			return nil, err
		}
	}

	name, err := p.nextIdent()
	if err != nil {
		return nil, err
	}
	v.Name = name
	if p.skip(token.Separator, ':') {
		if v.Type, err = p.typeDecl(ctx); err != nil {
			return nil, err
		}
	}
	if p.skip(token.Operation, '=') {
		if v.Init, err = p.generalExpression(ctx); err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.Separator, ';'); err != nil {
		return nil, err
	}
	p.popRule()
	return v, nil
}

// structBody parses `{ member, ... }`; members are separated by commas and a
// trailing one is allowed.
func (p *Parser) structBody(ctx *declCtx) ([]ast.StructMember, error) {
	if err := p.expect(token.Paren, '{'); err != nil {
		return nil, err
	}
	var members []ast.StructMember
	ready := true
	for !p.skip(token.Paren, '}') {
		if !ready {
			return nil, unexpected(p.lx.Next(), expectTok(","))
		}

		var (
			size, align parsedAttribute[ast.ExprID]
			bind        bindingParser
		)
		p.pushRule(ruleAttribute)
		for p.skipKind(token.Attribute) {
			name, nameSpan, err := p.nextIdentWithSpan()
			if err != nil {
				return nil, err
			}
			switch name {
			case "size", "align":
				e, err := p.parenExpression(ctx)
				if err != nil {
					return nil, err
				}
				slot := &size
				if name == "align" {
					slot = &align
				}
				if err := slot.set(e, nameSpan, name); err != nil {
					return nil, err
				}
			default:
				if err := bind.parse(p, ctx, name, nameSpan); err != nil {
					return nil, err
				}
			}
		}
		binding, err := bind.finish(p.popRule())
		if err != nil {
			return nil, err
		}

		name, err := p.nextIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Separator, ':'); err != nil {
			return nil, err
		}
		ty, err := p.typeDecl(ctx)
		if err != nil {
			return nil, err
		}
		ready = p.skip(token.Separator, ',')

		members = append(members, ast.StructMember{
			Name:    name,
			Type:    ty,
			Binding: binding,
			Size:    size.value,
			Align:   align.value,
		})
	}
	return members, nil
}

// functionDecl parses the rest of `fn`. Arguments and the body share one
// scope; the body is brace level 1.
func (p *Parser) functionDecl(ctx *declCtx, leaf diagfilter.NodeID) (*ast.Function, error) {
	p.pushRule(ruleFunctionDecl)
	name, err := p.nextIdent()
	if err != nil {
		return nil, err
	}
	fn := &ast.Function{Name: name, Locals: ctx.locals, DiagnosticFilterLeaf: leaf}
	ctx.scopes.push()

	if err := p.expect(token.Paren, '('); err != nil {
		return nil, err
	}
	ready := true
	for !p.skip(token.Paren, ')') {
		if !ready {
			return nil, unexpected(p.lx.Next(), expectTok(","))
		}
		binding, err := p.varyingBinding(ctx)
		if err != nil {
			return nil, err
		}
		argName, err := p.nextIdent()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Separator, ':'); err != nil {
			return nil, err
		}
		ty, err := p.typeDecl(ctx)
		if err != nil {
			return nil, err
		}
		handle, err := ctx.declareLocal(argName)
		if err != nil {
			return nil, err
		}
		fn.Arguments = append(fn.Arguments, ast.FunctionArgument{Name: argName, Type: ty, Binding: binding, Handle: handle})
		ready = p.skip(token.Separator, ',')
	}

	if p.skipKind(token.Arrow) {
		binding, err := p.varyingBinding(ctx)
		if err != nil {
			return nil, err
		}
		ty, err := p.typeDecl(ctx)
		if err != nil {
			return nil, err
		}
		fn.Result = &ast.FunctionResult{Type: ty, Binding: binding}
	}

	// not p.block: the arguments' scope is the body's scope
	brace, err := p.expectSpan(token.Paren, '{')
	if err != nil {
		return nil, err
	}
	const level = 1
	for !p.skip(token.Paren, '}') {
		if err := p.statement(ctx, &fn.Body, level); err != nil {
			return nil, err
		}
	}
	fn.Body.Span = p.lx.SpanFrom(brace.Start)

	ctx.scopes.pop()
	p.popRule()
	return fn, nil
}
