package parser

import (
	"strings"

	"wgslfront/internal/source"
)

// rule names a grammar production for span tracking.
type rule uint8

const (
	ruleAttribute rule = iota
	ruleVariableDecl
	ruleTypeDecl
	ruleFunctionDecl
	ruleBlock
	ruleStatement
	rulePrimaryExpr
	ruleSingularExpr
	ruleUnaryExpr
	ruleGeneralExpr
	ruleDirective
	ruleGenericExpr
	ruleEnclosedExpr
)

var ruleNames = [...]string{
	ruleAttribute:    "attribute",
	ruleVariableDecl: "variable_decl",
	ruleTypeDecl:     "type_decl",
	ruleFunctionDecl: "function_decl",
	ruleBlock:        "block",
	ruleStatement:    "statement",
	rulePrimaryExpr:  "primary_expr",
	ruleSingularExpr: "singular_expr",
	ruleUnaryExpr:    "unary_expr",
	ruleGeneralExpr:  "general_expr",
	ruleDirective:    "directive",
	ruleGenericExpr:  "generic_expr",
	ruleEnclosedExpr: "enclosed_expr",
}

func (r rule) String() string { return ruleNames[r] }

type ruleEntry struct {
	rule  rule
	start uint32
}

// pushRule records the start of the next token under r.
func (p *Parser) pushRule(r rule) {
	p.rules = append(p.rules, ruleEntry{rule: r, start: p.lx.StartOffset()})
}

// popRule drops the innermost rule and returns its span so far.
func (p *Parser) popRule() source.Span {
	top := p.rules[len(p.rules)-1]
	p.rules = p.rules[:len(p.rules)-1]
	return p.lx.SpanFrom(top.start)
}

// peekRule is popRule without the pop.
func (p *Parser) peekRule() source.Span {
	return p.lx.SpanFrom(p.rules[len(p.rules)-1].start)
}

// race reports which of a or b is nearest the top of the stack.
func (p *Parser) race(a, b rule) (rule, bool) {
	for i := len(p.rules) - 1; i >= 0; i-- {
		if r := p.rules[i].rule; r == a || r == b {
			return r, true
		}
	}
	return 0, false
}

// inGeneric: '<' and '>' close a generic list rather than compare.
func (p *Parser) inGeneric() bool {
	r, ok := p.race(ruleGenericExpr, ruleEnclosedExpr)
	return ok && r == ruleGenericExpr
}

func (p *Parser) ruleStack() string {
	names := make([]string, len(p.rules))
	for i, e := range p.rules {
		names[i] = e.rule.String()
	}
	return strings.Join(names, " > ")
}
