package parser

import (
	"errors"
	"fmt"

	"wgslfront/internal/diag"
	"wgslfront/internal/diagfilter"
	"wgslfront/internal/directive"
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

// directives consumes the leading `diagnostic`/`enable`/`requires` run.
func (p *Parser) directives() error {
	var filters diagfilter.Map
	for {
		name, _, ok := p.peekIdentWithSpan()
		if !ok {
			break
		}
		kind, isDirective := directive.LookupKind(name)
		if !isDirective {
			break
		}
		p.pushRule(ruleDirective)
		p.lx.Next()

		switch kind {
		case directive.Diagnostic:
			f, err := p.diagnosticFilter()
			if err != nil {
				return err
			}
			if err := addFilter(&filters, f, p.peekRule(), diagfilter.DuplicatesAllowed); err != nil {
				return err
			}
			if err := p.expect(token.Separator, ';'); err != nil {
				return err
			}
		case directive.Enable:
			err := p.directiveIdentList(func(name string, sp source.Span) error {
				ext, ok := directive.LookupEnable(name)
				switch {
				case !ok:
					return namedError(diag.SynUnknownEnableExtension, sp, name)
				case !ext.Implemented():
					return namedError(diag.SynEnableExtensionNotYetImplemented, sp, name)
				}
				p.unit.EnableExtensions.Add(ext)
				return nil
			})
			if err != nil {
				return err
			}
		case directive.Requires:
			err := p.directiveIdentList(func(name string, sp source.Span) error {
				ext, ok := directive.LookupLanguage(name)
				switch {
				case !ok:
					return namedError(diag.SynUnknownLanguageExtension, sp, name)
				case !ext.Implemented():
					return namedError(diag.SynLanguageExtNotYetImplemented, sp, name)
				}
				p.unit.LanguageExtensions.Add(ext)
				return nil
			})
			if err != nil {
				return err
			}
		}
		p.popRule()
	}
	p.unit.DiagnosticFilterLeaf = p.unit.DiagnosticFilters.Write(&filters, diagfilter.NoNode)
	return nil
}

// directiveIdentList reads `a, b, c;` (a trailing comma is fine) calling
// handle for every name.
func (p *Parser) directiveIdentList(handle func(string, source.Span) error) error {
	for {
		name, sp, err := p.nextIdentWithSpan()
		if err != nil {
			return err
		}
		if err := handle(name, sp); err != nil {
			return err
		}
		want := ExpectedToken{Kind: ExpectAfterIdentListArg}
		if p.lx.Peek().IsSeparator(',') {
			p.lx.Next()
			if p.lx.Peek().Kind == token.Word {
				continue
			}
			want = ExpectedToken{Kind: ExpectAfterIdentListComma}
		}
		if tok := p.lx.Next(); !tok.IsSeparator(';') {
			// reported at the last name, the list is what went wrong
			return &Error{Code: diag.SynUnexpectedToken, Spans: []source.Span{sp}, Expected: want, Found: tok.Describe()}
		}
		return nil
	}
}

// diagnosticFilter reads `(severity, rule[.sub][,])`; the `diagnostic` word
// is already consumed.
func (p *Parser) diagnosticFilter() (diagfilter.Filter, error) {
	if err := p.expect(token.Paren, '('); err != nil {
		return diagfilter.Filter{}, err
	}
	sevName, sevSpan, err := p.nextIdentWithSpan()
	if err != nil {
		return diagfilter.Filter{}, err
	}
	severity, ok := diagfilter.LookupSeverity(sevName)
	if !ok {
		return diagfilter.Filter{}, namedError(diag.SynDiagnosticInvalidSeverity, sevSpan, sevName)
	}
	if err := p.expect(token.Separator, ','); err != nil {
		return diagfilter.Filter{}, err
	}

	ruleName, ruleSpan, err := p.nextIdentWithSpan()
	if err != nil {
		return diagfilter.Filter{}, err
	}
	var trigger diagfilter.TriggeringRule
	if p.skip(token.Separator, '.') {
		sub, _, err := p.nextIdentWithSpan()
		if err != nil {
			return diagfilter.Filter{}, err
		}
		trigger = diagfilter.User(ruleName, sub)
	} else if std, ok := diagfilter.LookupStandard(ruleName); ok {
		trigger = diagfilter.Standard(std)
	} else {
		p.warn(diag.SynUnknownDiagnosticRule, ruleSpan, fmt.Sprintf("unknown diagnostic rule name '%s'", ruleName))
		trigger = diagfilter.Unknown(ruleName)
	}

	p.skip(token.Separator, ',')
	if err := p.expect(token.Paren, ')'); err != nil {
		return diagfilter.Filter{}, err
	}
	return diagfilter.Filter{Rule: trigger, Severity: severity}, nil
}

func addFilter(m *diagfilter.Map, f diagfilter.Filter, sp source.Span, policy diagfilter.Policy) error {
	err := m.Add(f, sp, policy)
	var conflict *diagfilter.ConflictError
	if errors.As(err, &conflict) {
		return &Error{
			Code:  diag.SynDiagnosticConflict,
			Spans: []source.Span{conflict.Spans[1], conflict.Spans[0]},
			Name:  conflict.Rule.String(),
		}
	}
	return err
}

// attributeFilters rejects a non-empty filter run on a site that cannot carry one.
func attributeFilters(m *diagfilter.Map, code diag.Code, site string) error {
	if m.Len() == 0 {
		return nil
	}
	return &Error{Code: code, Spans: m.Spans(), Name: site}
}
