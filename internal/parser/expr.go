package parser

import (
	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/directive"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// opEntry classifies one token as a binary operator of a precedence level.
type opEntry struct {
	kind token.Kind
	ch   byte
	op   ast.BinaryOp
}

type opTable []opEntry

func (t opTable) classify(tok token.Token) (ast.BinaryOp, bool) {
	for _, e := range t {
		if tok.Is(e.kind, e.ch) {
			return e.op, true
		}
	}
	return 0, false
}

var (
	logicalOrOps  = opTable{{token.LogicalOperation, '|', ast.OpLogicalOr}}
	logicalAndOps = opTable{{token.LogicalOperation, '&', ast.OpLogicalAnd}}
	bitOrOps      = opTable{{token.Operation, '|', ast.OpInclusiveOr}}
	bitXorOps     = opTable{{token.Operation, '^', ast.OpExclusiveOr}}
	bitAndOps     = opTable{{token.Operation, '&', ast.OpAnd}}
	equalityOps   = opTable{
		{token.LogicalOperation, '=', ast.OpEqual},
		{token.LogicalOperation, '!', ast.OpNotEqual},
	}
	relationalOps = opTable{
		{token.Paren, '<', ast.OpLess},
		{token.Paren, '>', ast.OpGreater},
		{token.LogicalOperation, '<', ast.OpLessEqual},
		{token.LogicalOperation, '>', ast.OpGreaterEqual},
	}
	// inside a generic list a bare '<'/'>' belongs to the list
	relationalGenericOps = opTable{
		{token.LogicalOperation, '<', ast.OpLessEqual},
		{token.LogicalOperation, '>', ast.OpGreaterEqual},
	}
	shiftOps = opTable{
		{token.ShiftOperation, '<', ast.OpShiftLeft},
		{token.ShiftOperation, '>', ast.OpShiftRight},
	}
	// `>>` may be two closing brackets
	shiftGenericOps = opTable{{token.ShiftOperation, '<', ast.OpShiftLeft}}
	additiveOps     = opTable{
		{token.Operation, '+', ast.OpAdd},
		{token.Operation, '-', ast.OpSubtract},
	}
	multiplicativeOps = opTable{
		{token.Operation, '*', ast.OpMultiply},
		{token.Operation, '/', ast.OpDivide},
		{token.Operation, '%', ast.OpModulo},
	}
)

// binaryLevel parses `operand (op operand)*` left-associatively. Every node
// spans from the start of the leftmost operand.
func (p *Parser) binaryLevel(ctx *declCtx, ops opTable, operand func(*declCtx) (ast.ExprID, error)) (ast.ExprID, error) {
	start := p.lx.StartOffset()
	left, err := operand(ctx)
	if err != nil {
		return ast.NoExprID, err
	}
	for {
		op, ok := ops.classify(p.lx.Peek())
		if !ok {
			return left, nil
		}
		p.lx.Next()
		right, err := operand(ctx)
		if err != nil {
			return ast.NoExprID, err
		}
		left = p.unit.Exprs.NewBinary(p.lx.SpanFrom(start), op, left, right)
	}
}

func (p *Parser) generalExpression(ctx *declCtx) (ast.ExprID, error) {
	p.pushRule(ruleGeneralExpr)
	id, err := p.logicalOr(ctx)
	if err != nil {
		return ast.NoExprID, err
	}
	p.popRule()
	return id, nil
}

func (p *Parser) logicalOr(ctx *declCtx) (ast.ExprID, error) {
	return p.binaryLevel(ctx, logicalOrOps, p.logicalAnd)
}

func (p *Parser) logicalAnd(ctx *declCtx) (ast.ExprID, error) {
	return p.binaryLevel(ctx, logicalAndOps, p.inclusiveOr)
}

func (p *Parser) inclusiveOr(ctx *declCtx) (ast.ExprID, error) {
	return p.binaryLevel(ctx, bitOrOps, p.exclusiveOr)
}

func (p *Parser) exclusiveOr(ctx *declCtx) (ast.ExprID, error) {
	return p.binaryLevel(ctx, bitXorOps, p.bitAnd)
}

func (p *Parser) bitAnd(ctx *declCtx) (ast.ExprID, error) {
	return p.binaryLevel(ctx, bitAndOps, p.equality)
}

func (p *Parser) equality(ctx *declCtx) (ast.ExprID, error) {
	return p.binaryLevel(ctx, equalityOps, p.relational)
}

func (p *Parser) relational(ctx *declCtx) (ast.ExprID, error) {
	ops := relationalOps
	if p.inGeneric() {
		ops = relationalGenericOps
	}
	return p.binaryLevel(ctx, ops, p.shift)
}

func (p *Parser) shift(ctx *declCtx) (ast.ExprID, error) {
	ops := shiftOps
	if p.inGeneric() {
		ops = shiftGenericOps
	}
	return p.binaryLevel(ctx, ops, p.additive)
}

func (p *Parser) additive(ctx *declCtx) (ast.ExprID, error) {
	return p.binaryLevel(ctx, additiveOps, p.multiplicative)
}

func (p *Parser) multiplicative(ctx *declCtx) (ast.ExprID, error) {
	return p.binaryLevel(ctx, multiplicativeOps, p.unaryExpression)
}

// enclosedExpression parses inside ( ) or [ ], where '<' compares again.
func (p *Parser) enclosedExpression(ctx *declCtx) (ast.ExprID, error) {
	p.pushRule(ruleEnclosedExpr)
	id, err := p.generalExpression(ctx)
	if err != nil {
		return ast.NoExprID, err
	}
	p.popRule()
	return id, nil
}

// constGenericExpression parses a generic argument such as an array length.
func (p *Parser) constGenericExpression(ctx *declCtx) (ast.ExprID, error) {
	p.pushRule(ruleGenericExpr)
	id, err := p.generalExpression(ctx)
	if err != nil {
		return ast.NoExprID, err
	}
	p.popRule()
	return id, nil
}

func (p *Parser) unaryExpression(ctx *declCtx) (ast.ExprID, error) {
	p.pushRule(ruleUnaryExpr)
	tok := p.lx.Peek()
	var id ast.ExprID
	if tok.Kind == token.Operation && isPrefixOp(tok.Op) {
		p.lx.Next()
		operand, err := p.unaryExpression(ctx)
		if err != nil {
			return ast.NoExprID, err
		}
		sp := p.peekRule()
		switch tok.Op {
		case '-':
			id = p.unit.Exprs.NewUnary(sp, ast.OpNegate, operand)
		case '!':
			id = p.unit.Exprs.NewUnary(sp, ast.OpLogicalNot, operand)
		case '~':
			id = p.unit.Exprs.NewUnary(sp, ast.OpBitwiseNot, operand)
		case '*':
			id = p.unit.Exprs.NewDeref(sp, operand)
		case '&':
			id = p.unit.Exprs.NewAddrOf(sp, operand)
		}
	} else {
		var err error
		if id, err = p.singularExpression(ctx); err != nil {
			return ast.NoExprID, err
		}
	}
	p.popRule()
	return id, nil
}

func isPrefixOp(ch byte) bool {
	switch ch {
	case '-', '!', '~', '*', '&':
		return true
	}
	return false
}

func (p *Parser) singularExpression(ctx *declCtx) (ast.ExprID, error) {
	start := p.lx.StartOffset()
	p.pushRule(ruleSingularExpr)
	primary, err := p.primaryExpression(ctx)
	if err != nil {
		return ast.NoExprID, err
	}
	id, err := p.postfix(ctx, start, primary)
	if err != nil {
		return ast.NoExprID, err
	}
	p.popRule()
	return id, nil
}

// postfix applies `.field` and `[index]` links; each link spans from start.
func (p *Parser) postfix(ctx *declCtx, start uint32, base ast.ExprID) (ast.ExprID, error) {
	for {
		tok := p.lx.Peek()
		switch {
		case tok.IsSeparator('.'):
			p.lx.Next()
			field, err := p.nextIdent()
			if err != nil {
				return ast.NoExprID, err
			}
			base = p.unit.Exprs.NewMember(p.lx.SpanFrom(start), base, field)
		case tok.IsParen('['):
			p.lx.Next()
			index, err := p.enclosedExpression(ctx)
			if err != nil {
				return ast.NoExprID, err
			}
			if err := p.expect(token.Paren, ']'); err != nil {
				return ast.NoExprID, err
			}
			base = p.unit.Exprs.NewIndex(p.lx.SpanFrom(start), base, index)
		default:
			return base, nil
		}
	}
}

func (p *Parser) primaryExpression(ctx *declCtx) (ast.ExprID, error) {
	p.pushRule(rulePrimaryExpr)
	tok := p.lx.Peek()

	switch {
	case tok.IsParen('('):
		p.lx.Next()
		inner, err := p.enclosedExpression(ctx)
		if err != nil {
			return ast.NoExprID, err
		}
		if err := p.expect(token.Paren, ')'); err != nil {
			return ast.NoExprID, err
		}
		p.popRule()
		return inner, nil

	case tok.IsWord("true"), tok.IsWord("false"):
		p.lx.Next()
		return p.unit.Exprs.NewBool(p.popRule(), tok.Text == "true"), nil

	case tok.Kind == token.Number:
		p.lx.Next()
		if tok.NumErr != nil {
			if tok.NumErr.Kind == token.NumUnimplementedF16 {
				return ast.NoExprID, namedError(diag.SynEnableExtensionNotEnabled, tok.Span, directive.F16.String())
			}
			return ast.NoExprID, &Error{Code: diag.SynBadNumber, Spans: []source.Span{tok.Span}, Number: tok.NumErr}
		}
		return p.unit.Exprs.NewNumber(p.popRule(), tok.Num), nil

	case tok.Kind == token.Word:
		if v, ok := rayConstants[tok.Text]; ok {
			p.lx.Next()
			return p.unit.Exprs.NewNumber(p.popRule(), token.NumberValue{Kind: token.U32, Uint: v}), nil
		}
		return p.wordExpression(ctx, tok)
	}
	return ast.NoExprID, unexpected(tok, ExpectedToken{Kind: ExpectPrimaryExpression})
}

// wordExpression: constructor, call, bitcast or plain identifier. The
// PrimaryExpr rule is on top on entry and popped here.
func (p *Parser) wordExpression(ctx *declCtx, tok token.Token) (ast.ExprID, error) {
	start := p.lx.StartOffset()
	p.lx.Next()

	ctor, ok, err := p.constructorType(ctx, tok.Text, tok.Span)
	if err != nil {
		return ast.NoExprID, err
	}
	if ok {
		tySpan := p.lx.SpanFrom(start)
		args, err := p.arguments(ctx)
		if err != nil {
			return ast.NoExprID, err
		}
		return p.unit.Exprs.NewConstruct(p.popRule(), ctor, tySpan, args), nil
	}

	if p.lx.Peek().IsParen('(') || tok.Text == "bitcast" {
		p.popRule()
		return p.functionCall(ctx, ast.Ident{Name: tok.Text, Span: tok.Span})
	}

	sp := p.popRule()
	if local, ok := ctx.scopes.lookup(tok.Text); ok {
		return p.unit.Exprs.NewLocalRef(sp, tok.Text, local), nil
	}
	ctx.depend(tok.Text, tok.Span)
	return p.unit.Exprs.NewUnresolved(sp, tok.Text), nil
}

// functionCall parses the arguments after a callee name; the SingularExpr
// rule still on top gives the call its span.
func (p *Parser) functionCall(ctx *declCtx, name ast.Ident) (ast.ExprID, error) {
	if name.Name == "bitcast" {
		to, tySpan, err := p.singularGeneric(ctx)
		if err != nil {
			return ast.NoExprID, err
		}
		if err := p.openArguments(); err != nil {
			return ast.NoExprID, err
		}
		value, err := p.generalExpression(ctx)
		if err != nil {
			return ast.NoExprID, err
		}
		if err := p.closeArguments(); err != nil {
			return ast.NoExprID, err
		}
		return p.unit.Exprs.NewBitcast(p.peekRule(), value, to, tySpan), nil
	}

	// builtins are calls too; a user function may shadow them, so resolution waits
	args, err := p.arguments(ctx)
	if err != nil {
		return ast.NoExprID, err
	}
	ctx.depend(name.Name, name.Span)
	return p.unit.Exprs.NewCall(p.peekRule(), name, args), nil
}

// arguments parses `( [expr {, expr} [,]] )`.
func (p *Parser) arguments(ctx *declCtx) ([]ast.ExprID, error) {
	p.pushRule(ruleEnclosedExpr)
	if err := p.openArguments(); err != nil {
		return nil, err
	}
	var args []ast.ExprID
	for {
		if len(args) > 0 {
			more, err := p.nextArgument()
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		} else if p.skip(token.Paren, ')') {
			break
		}
		arg, err := p.generalExpression(ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.popRule()
	return args, nil
}
