package parser

import (
	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/diagfilter"
	"wgslfront/internal/directive"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// increaseBraceNesting enters one more `{`; the function body is level 1.
func (p *Parser) increaseBraceNesting(level uint8, brace source.Span) (uint8, error) {
	limit := p.opts.MaxBraceNesting
	if int(level)+1 > int(limit) {
		return level, &Error{Code: diag.SynNestingLimit, Spans: []source.Span{brace}, Limit: limit}
	}
	return level + 1, nil
}

// block parses a compound statement in its own scope.
func (p *Parser) block(ctx *declCtx, level uint8) (ast.Block, source.Span, error) {
	p.pushRule(ruleBlock)
	ctx.scopes.push()

	var filters diagfilter.Map
	p.pushRule(ruleAttribute)
	for p.skipKind(token.Attribute) {
		name, sp, err := p.nextIdentWithSpan()
		if err != nil {
			return ast.Block{}, source.Span{}, err
		}
		if kind, ok := directive.LookupKind(name); !ok || kind != directive.Diagnostic {
			return ast.Block{}, source.Span{}, &Error{
				Code:     diag.SynUnexpectedToken,
				Spans:    []source.Span{sp},
				Expected: ExpectedToken{Kind: ExpectDiagnosticAttribute},
				Found:    "'" + name + "'",
			}
		}
		f, err := p.diagnosticFilter()
		if err != nil {
			return ast.Block{}, source.Span{}, err
		}
		if err := addFilter(&filters, f, p.peekRule(), diagfilter.DuplicatesConflict); err != nil {
			return ast.Block{}, source.Span{}, err
		}
	}
	p.popRule()
	if err := attributeFilters(&filters, diag.SynDiagnosticAttrNotYetImpl, "compound statements"); err != nil {
		return ast.Block{}, source.Span{}, err
	}

	brace, err := p.expectSpan(token.Paren, '{')
	if err != nil {
		return ast.Block{}, source.Span{}, err
	}
	if level, err = p.increaseBraceNesting(level, brace); err != nil {
		return ast.Block{}, source.Span{}, err
	}
	var b ast.Block
	for !p.skip(token.Paren, '}') {
		if err := p.statement(ctx, &b, level); err != nil {
			return ast.Block{}, source.Span{}, err
		}
	}

	ctx.scopes.pop()
	b.Span = p.popRule()
	return b, b.Span, nil
}

// statement parses one statement and appends what it produced to b. Empty
// statements produce nothing; `for` may append its initializer as well.
func (p *Parser) statement(ctx *declCtx, b *ast.Block, level uint8) error {
	p.pushRule(ruleStatement)
	tok := p.lx.Peek()
	switch {
	case tok.IsSeparator(';'):
		p.lx.Next()
		p.popRule()
		return nil

	case tok.IsParen('{'), tok.Kind == token.Attribute:
		inner, sp, err := p.block(ctx, level)
		if err != nil {
			return err
		}
		b.Push(ast.Stmt{Kind: ast.StmtBlock, Span: sp, Block: &inner})
		p.popRule()
		return nil

	case tok.Kind == token.Word:
		st, ok, err := p.keywordStatement(ctx, b, tok, level)
		if err != nil {
			return err
		}
		if ok {
			st.Span = p.popRule()
			b.Push(st)
			return nil
		}
		if err := p.functionCallOrAssignment(ctx, b); err != nil {
			return err
		}
	default:
		if err := p.assignmentStatement(ctx, b); err != nil {
			return err
		}
	}
	if err := p.expect(token.Separator, ';'); err != nil {
		return err
	}
	p.popRule()
	return nil
}

// keywordStatement handles statements introduced by a keyword; ok is false
// when tok is not one of them and nothing was consumed.
func (p *Parser) keywordStatement(ctx *declCtx, b *ast.Block, tok token.Token, level uint8) (ast.Stmt, bool, error) {
	var (
		st  ast.Stmt
		err error
	)
	switch tok.Text {
	case "_":
		p.lx.Next()
		st, err = p.phonyStatement(ctx)
	case "let":
		st, err = p.localDecl(ctx, ast.LocalLet)
	case "const":
		st, err = p.localDecl(ctx, ast.LocalConst)
	case "var":
		st, err = p.localDecl(ctx, ast.LocalVar)
	case "return":
		p.lx.Next()
		st = ast.Stmt{Kind: ast.StmtReturn}
		if !p.lx.Peek().IsSeparator(';') {
			if st.Expr, err = p.generalExpression(ctx); err != nil {
				break
			}
		}
		err = p.expect(token.Separator, ';')
	case "if":
		st, err = p.ifStatement(ctx, level)
	case "switch":
		st, err = p.switchStatement(ctx, level)
	case "loop":
		st, err = p.loopStatement(ctx, level)
	case "while":
		st, err = p.whileStatement(ctx, level)
	case "for":
		st, err = p.forStatement(ctx, b, level)
	case "break":
		p.lx.Next()
		if next := p.lx.Peek(); next.IsWord("if") {
			return ast.Stmt{}, false, newError(diag.SynInvalidBreakIf, tok.Span.Until(next.Span))
		}
		st = ast.Stmt{Kind: ast.StmtBreak}
		err = p.expect(token.Separator, ';')
	case "continue":
		p.lx.Next()
		st = ast.Stmt{Kind: ast.StmtContinue}
		err = p.expect(token.Separator, ';')
	case "discard":
		p.lx.Next()
		st = ast.Stmt{Kind: ast.StmtKill}
		err = p.expect(token.Separator, ';')
	case "const_assert":
		p.lx.Next()
		var cond ast.ExprID
		if cond, err = p.constAssertBody(ctx); err == nil {
			st = ast.Stmt{Kind: ast.StmtConstAssert, Expr: cond}
		}
	default:
		return ast.Stmt{}, false, nil
	}
	if err != nil {
		return ast.Stmt{}, false, err
	}
	return st, true, nil
}

func (p *Parser) phonyStatement(ctx *declCtx) (ast.Stmt, error) {
	if err := p.expect(token.Operation, '='); err != nil {
		return ast.Stmt{}, err
	}
	value, err := p.generalExpression(ctx)
	if err != nil {
		return ast.Stmt{}, err
	}
	if err := p.expect(token.Separator, ';'); err != nil {
		return ast.Stmt{}, err
	}
	return ast.Stmt{Kind: ast.StmtPhony, Expr: value}, nil
}

// constAssertBody reads `cond;` or `(cond);` after `const_assert`.
func (p *Parser) constAssertBody(ctx *declCtx) (ast.ExprID, error) {
	paren := p.skip(token.Paren, '(')
	cond, err := p.generalExpression(ctx)
	if err != nil {
		return ast.NoExprID, err
	}
	if paren {
		if err := p.expect(token.Paren, ')'); err != nil {
			return ast.NoExprID, err
		}
	}
	if err := p.expect(token.Separator, ';'); err != nil {
		return ast.NoExprID, err
	}
	return cond, nil
}

// localDecl parses let/const/var. The name is bound after the initializer,
// so `let x = x;` reads an outer x.
func (p *Parser) localDecl(ctx *declCtx, kind ast.LocalDeclKind) (ast.Stmt, error) {
	p.lx.Next()
	name, err := p.nextIdent()
	if err != nil {
		return ast.Stmt{}, err
	}
	decl := &ast.LocalDecl{Kind: kind, Name: name}
	if p.skip(token.Separator, ':') {
		if decl.Type, err = p.typeDecl(ctx); err != nil {
			return ast.Stmt{}, err
		}
	}
	if kind == ast.LocalVar {
		if p.skip(token.Operation, '=') {
			if decl.Init, err = p.generalExpression(ctx); err != nil {
				return ast.Stmt{}, err
			}
		}
	} else {
		if err := p.expect(token.Operation, '='); err != nil {
			return ast.Stmt{}, err
		}
		if decl.Init, err = p.generalExpression(ctx); err != nil {
			return ast.Stmt{}, err
		}
	}
	if err := p.expect(token.Separator, ';'); err != nil {
		return ast.Stmt{}, err
	}
	if decl.Handle, err = ctx.declareLocal(name); err != nil {
		return ast.Stmt{}, err
	}
	return ast.Stmt{Kind: ast.StmtLocalDecl, Local: decl}, nil
}

// ifStatement folds `else if` chains into nested ifs in the reject branch.
func (p *Parser) ifStatement(ctx *declCtx, level uint8) (ast.Stmt, error) {
	p.lx.Next()
	cond, err := p.generalExpression(ctx)
	if err != nil {
		return ast.Stmt{}, err
	}
	accept, _, err := p.block(ctx, level)
	if err != nil {
		return ast.Stmt{}, err
	}

	type elseIf struct {
		start uint32
		cond  ast.ExprID
		body  ast.Block
	}
	var (
		chain  []elseIf
		reject ast.Block
	)
	start := p.lx.StartOffset()
	for p.skipWord("else") {
		if !p.skipWord("if") {
			if reject, _, err = p.block(ctx, level); err != nil {
				return ast.Stmt{}, err
			}
			break
		}
		c, err := p.generalExpression(ctx)
		if err != nil {
			return ast.Stmt{}, err
		}
		body, _, err := p.block(ctx, level)
		if err != nil {
			return ast.Stmt{}, err
		}
		chain = append(chain, elseIf{start: start, cond: c, body: body})
		start = p.lx.StartOffset()
	}

	for i := len(chain) - 1; i >= 0; i-- {
		e := chain[i]
		nested := ast.Stmt{
			Kind: ast.StmtIf,
			Span: p.lx.SpanFrom(e.start),
			If:   &ast.IfStmt{Condition: e.cond, Accept: e.body, Reject: reject},
		}
		reject = ast.Block{Stmts: []ast.Stmt{nested}, Span: nested.Span}
	}
	return ast.Stmt{Kind: ast.StmtIf, If: &ast.IfStmt{Condition: cond, Accept: accept, Reject: reject}}, nil
}

func (p *Parser) switchValue(ctx *declCtx) (ast.SwitchValue, error) {
	if p.skipWord("default") {
		return ast.SwitchValue{Default: true}, nil
	}
	e, err := p.generalExpression(ctx)
	if err != nil {
		return ast.SwitchValue{}, err
	}
	return ast.SwitchValue{Expr: e}, nil
}

// switchStatement: `case a, b:` shares one body; the entries before the
// last value are empty fall-through cases.
func (p *Parser) switchStatement(ctx *declCtx, level uint8) (ast.Stmt, error) {
	p.lx.Next()
	selector, err := p.generalExpression(ctx)
	if err != nil {
		return ast.Stmt{}, err
	}
	brace, err := p.expectSpan(token.Paren, '{')
	if err != nil {
		return ast.Stmt{}, err
	}
	if level, err = p.increaseBraceNesting(level, brace); err != nil {
		return ast.Stmt{}, err
	}

	sw := &ast.SwitchStmt{Selector: selector}
	for {
		tok := p.lx.Next()
		switch {
		case tok.IsWord("case"):
			var value ast.SwitchValue
			for {
				if value, err = p.switchValue(ctx); err != nil {
					return ast.Stmt{}, err
				}
				if !p.skip(token.Separator, ',') {
					break
				}
				// the list ends with ':' or the body
				if next := p.lx.Peek(); next.IsSeparator(':') || next.IsParen('{') {
					break
				}
				sw.Cases = append(sw.Cases, ast.SwitchCase{Value: value, FallThrough: true})
			}
			p.skip(token.Separator, ':')
			body, _, err := p.block(ctx, level)
			if err != nil {
				return ast.Stmt{}, err
			}
			sw.Cases = append(sw.Cases, ast.SwitchCase{Value: value, Body: body})
		case tok.IsWord("default"):
			p.skip(token.Separator, ':')
			body, _, err := p.block(ctx, level)
			if err != nil {
				return ast.Stmt{}, err
			}
			sw.Cases = append(sw.Cases, ast.SwitchCase{Value: ast.SwitchValue{Default: true}, Body: body})
		case tok.IsParen('}'):
			return ast.Stmt{Kind: ast.StmtSwitch, Switch: sw}, nil
		default:
			return ast.Stmt{}, unexpected(tok, ExpectedToken{Kind: ExpectSwitchItem})
		}
	}
}

// loopStatement: a `continuing` block must close the loop, and `break if`
// must close the continuing block.
func (p *Parser) loopStatement(ctx *declCtx, level uint8) (ast.Stmt, error) {
	p.lx.Next()
	brace, err := p.expectSpan(token.Paren, '{')
	if err != nil {
		return ast.Stmt{}, err
	}
	if level, err = p.increaseBraceNesting(level, brace); err != nil {
		return ast.Stmt{}, err
	}
	ctx.scopes.push()

	loop := &ast.LoopStmt{}
	for {
		if p.skipWord("continuing") {
			if err := p.continuingBlock(ctx, loop, level); err != nil {
				return ast.Stmt{}, err
			}
			if err := p.expect(token.Paren, '}'); err != nil {
				return ast.Stmt{}, err
			}
			break
		}
		if p.skip(token.Paren, '}') {
			break
		}
		if err := p.statement(ctx, &loop.Body, level); err != nil {
			return ast.Stmt{}, err
		}
	}

	ctx.scopes.pop()
	return ast.Stmt{Kind: ast.StmtLoop, Loop: loop}, nil
}

func (p *Parser) continuingBlock(ctx *declCtx, loop *ast.LoopStmt, level uint8) error {
	brace, err := p.expectSpan(token.Paren, '{')
	if err != nil {
		return err
	}
	if level, err = p.increaseBraceNesting(level, brace); err != nil {
		return err
	}
	for {
		switch {
		case p.skipWord("break"):
			if err := p.expectWord("if"); err != nil {
				return err
			}
			if loop.BreakIf, err = p.generalExpression(ctx); err != nil {
				return err
			}
			if err := p.expect(token.Separator, ';'); err != nil {
				return err
			}
			return p.expect(token.Paren, '}')
		case p.skip(token.Paren, '}'):
			return nil
		default:
			if err := p.statement(ctx, &loop.Continuing, level); err != nil {
				return err
			}
		}
	}
}

// breakUnless is `if cond {} else { break; }`, the head of a desugared loop.
func breakUnless(cond ast.ExprID, sp source.Span) ast.Stmt {
	reject := ast.Block{Stmts: []ast.Stmt{{Kind: ast.StmtBreak, Span: sp}}, Span: sp}
	return ast.Stmt{Kind: ast.StmtIf, Span: sp, If: &ast.IfStmt{Condition: cond, Reject: reject}}
}

func (p *Parser) whileStatement(ctx *declCtx, level uint8) (ast.Stmt, error) {
	p.lx.Next()
	cond, sp, err := captureSpan(p, func() (ast.ExprID, error) { return p.generalExpression(ctx) })
	if err != nil {
		return ast.Stmt{}, err
	}
	loop := &ast.LoopStmt{}
	loop.Body.Push(breakUnless(cond, sp))

	body, bodySpan, err := p.block(ctx, level)
	if err != nil {
		return ast.Stmt{}, err
	}
	loop.Body.Push(ast.Stmt{Kind: ast.StmtBlock, Span: bodySpan, Block: &body})
	return ast.Stmt{Kind: ast.StmtLoop, Loop: loop}, nil
}

// forStatement desugars `for (init; cond; update) body`. The initializer is
// appended to the enclosing block b; its name is visible only inside.
func (p *Parser) forStatement(ctx *declCtx, b *ast.Block, level uint8) (ast.Stmt, error) {
	p.lx.Next()
	if err := p.expect(token.Paren, '('); err != nil {
		return ast.Stmt{}, err
	}
	ctx.scopes.push()

	if !p.skip(token.Separator, ';') {
		before := len(b.Stmts)
		_, sp, err := captureSpan(p, func() (struct{}, error) {
			return struct{}{}, p.statement(ctx, b, level)
		})
		if err != nil {
			return ast.Stmt{}, err
		}
		if len(b.Stmts) != before {
			switch b.Stmts[len(b.Stmts)-1].Kind {
			case ast.StmtCall, ast.StmtAssign, ast.StmtLocalDecl:
			default:
				return ast.Stmt{}, newError(diag.SynInvalidForInitializer, sp)
			}
		}
	}

	loop := &ast.LoopStmt{}
	if !p.skip(token.Separator, ';') {
		cond, sp, err := captureSpan(p, func() (ast.ExprID, error) {
			c, err := p.generalExpression(ctx)
			if err != nil {
				return ast.NoExprID, err
			}
			return c, p.expect(token.Separator, ';')
		})
		if err != nil {
			return ast.Stmt{}, err
		}
		loop.Body.Push(breakUnless(cond, sp))
	}

	if !p.skip(token.Paren, ')') {
		if err := p.functionCallOrAssignment(ctx, &loop.Continuing); err != nil {
			return ast.Stmt{}, err
		}
		if err := p.expect(token.Paren, ')'); err != nil {
			return ast.Stmt{}, err
		}
	}

	body, bodySpan, err := p.block(ctx, level)
	if err != nil {
		return ast.Stmt{}, err
	}
	loop.Body.Push(ast.Stmt{Kind: ast.StmtBlock, Span: bodySpan, Block: &body})

	ctx.scopes.pop()
	return ast.Stmt{Kind: ast.StmtLoop, Loop: loop}, nil
}

// functionCallOrAssignment looks two tokens ahead: `name(` is a call
// statement, anything else is an assignment.
func (p *Parser) functionCallOrAssignment(ctx *declCtx, b *ast.Block) error {
	start := p.lx.StartOffset()
	if tok := p.lx.Peek(); tok.Kind == token.Word {
		saved := p.lx.Clone()
		p.lx.Next()
		if p.lx.Peek().IsParen('(') {
			return p.functionStatement(ctx, b, ast.Ident{Name: tok.Text, Span: tok.Span}, start)
		}
		p.lx.Restore(saved)
	}
	return p.assignmentStatement(ctx, b)
}

// functionStatement parses the arguments of a call statement; the name is
// already consumed.
func (p *Parser) functionStatement(ctx *declCtx, b *ast.Block, name ast.Ident, start uint32) error {
	p.pushRule(ruleSingularExpr)
	ctx.depend(name.Name, name.Span)
	args, err := p.arguments(ctx)
	if err != nil {
		return err
	}
	b.Push(ast.Stmt{
		Kind: ast.StmtCall,
		Span: p.lx.SpanFrom(start),
		Call: &ast.CallStmt{Function: name, Args: args},
	})
	p.popRule()
	return nil
}

var compoundOps = map[byte]ast.BinaryOp{
	'<': ast.OpShiftLeft,
	'>': ast.OpShiftRight,
	'+': ast.OpAdd,
	'-': ast.OpSubtract,
	'*': ast.OpMultiply,
	'/': ast.OpDivide,
	'%': ast.OpModulo,
	'&': ast.OpAnd,
	'|': ast.OpInclusiveOr,
	'^': ast.OpExclusiveOr,
}

func (p *Parser) assignmentStatement(ctx *declCtx, b *ast.Block) error {
	start := p.lx.StartOffset()
	target, err := p.generalExpression(ctx)
	if err != nil {
		return err
	}

	tok := p.lx.Next()
	st := ast.Stmt{Kind: ast.StmtAssign}
	switch {
	case tok.Is(token.Operation, '='):
		value, err := p.generalExpression(ctx)
		if err != nil {
			return err
		}
		st.Assign = &ast.AssignStmt{Target: target, Value: value}
	case tok.Kind == token.AssignmentOperation:
		op, ok := compoundOps[tok.Op]
		if !ok {
			return unexpected(tok, ExpectedToken{Kind: ExpectAssignment})
		}
		value, err := p.generalExpression(ctx)
		if err != nil {
			return err
		}
		st.Assign = &ast.AssignStmt{Target: target, Op: &op, Value: value}
	case tok.Kind == token.Increment:
		st = ast.Stmt{Kind: ast.StmtIncrement, Expr: target}
	case tok.Kind == token.Decrement:
		st = ast.Stmt{Kind: ast.StmtDecrement, Expr: target}
	default:
		return unexpected(tok, ExpectedToken{Kind: ExpectAssignment})
	}
	st.Span = p.lx.SpanFrom(start)
	b.Push(st)
	return nil
}
