package parser

import (
	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/source"
)

// scopeTable maps local names to handles, innermost frame last.
type scopeTable struct {
	frames []map[string]ast.LocalID
}

func (s *scopeTable) push() { s.frames = append(s.frames, make(map[string]ast.LocalID)) }

func (s *scopeTable) pop() { s.frames = s.frames[:len(s.frames)-1] }

func (s *scopeTable) lookup(name string) (ast.LocalID, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if id, ok := s.frames[i][name]; ok {
			return id, true
		}
	}
	return ast.NoLocalID, false
}

// add binds name in the innermost frame and returns what it replaced there.
// Outer frames are untouched, so shadowing is not a redefinition.
func (s *scopeTable) add(name string, id ast.LocalID) (ast.LocalID, bool) {
	top := s.frames[len(s.frames)-1]
	old, had := top[name]
	top[name] = id
	return old, had
}

// declCtx is the per-declaration state: expressions and types go straight to
// the unit, everything else lives only while the declaration is parsed.
type declCtx struct {
	deps   ast.Dependencies
	locals *ast.Arena[ast.Local]
	scopes scopeTable
}

func newDeclCtx() *declCtx {
	return &declCtx{locals: ast.NewArena[ast.Local](0)}
}

func (c *declCtx) depend(name string, usage source.Span) {
	c.deps.Add(name, usage)
}

// declareLocal allocates a local for name; a name already bound in the
// same scope is a redefinition.
func (c *declCtx) declareLocal(name ast.Ident) (ast.LocalID, error) {
	id := ast.LocalID(c.locals.Allocate(ast.Local{Span: name.Span}))
	if old, had := c.scopes.add(name.Name, id); had {
		prev := c.locals.Get(uint32(old)).Span
		return id, &Error{
			Code:  diag.SynRedefinition,
			Spans: []source.Span{name.Span, prev},
			Name:  name.Name,
		}
	}
	return id, nil
}
