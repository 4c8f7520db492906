package ast

import (
	"wgslfront/internal/diagfilter"
	"wgslfront/internal/directive"
)

// Hints preallocates arenas.
type Hints struct{ Decls, Exprs, Types uint }

// TranslationUnit is the parse result of one WGSL module.
type TranslationUnit struct {
	Decls *Arena[GlobalDecl]
	Exprs *Exprs
	Types *Arena[Type]

	EnableExtensions   directive.EnableSet
	LanguageExtensions directive.LanguageSet

	DiagnosticFilters *diagfilter.Tree
	// DiagnosticFilterLeaf is the module-level leaf (from `diagnostic` directives).
	DiagnosticFilterLeaf diagfilter.NodeID
}

func NewTranslationUnit(hints Hints) *TranslationUnit {
	if hints.Decls == 0 {
		hints.Decls = 1 << 5
	}
	if hints.Types == 0 {
		hints.Types = 1 << 6
	}
	return &TranslationUnit{
		Decls:             NewArena[GlobalDecl](hints.Decls),
		Exprs:             NewExprs(hints.Exprs),
		Types:             NewArena[Type](hints.Types),
		DiagnosticFilters: &diagfilter.Tree{},
	}
}

// Decl returns the declaration with the given ID.
func (u *TranslationUnit) Decl(id DeclID) *GlobalDecl {
	return u.Decls.Get(uint32(id))
}

// Type returns the type with the given ID.
func (u *TranslationUnit) Type(id TypeID) *Type {
	return u.Types.Get(uint32(id))
}

// Expr returns the expression with the given ID.
func (u *TranslationUnit) Expr(id ExprID) *Expr {
	return u.Exprs.Get(id)
}

// NewType appends t and returns its handle.
func (u *TranslationUnit) NewType(t Type) TypeID {
	return TypeID(u.Types.Allocate(t))
}

// DeclIDs returns all declaration handles in source order.
func (u *TranslationUnit) DeclIDs() []DeclID {
	out := make([]DeclID, u.Decls.Len())
	for i := range out {
		out[i] = DeclID(i + 1)
	}
	return out
}
