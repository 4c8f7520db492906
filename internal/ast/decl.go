package ast

import (
	"wgslfront/internal/diagfilter"
	"wgslfront/internal/source"
)

// Dependency is a global name used by a declaration, with its first usage span.
type Dependency struct {
	Name  string
	Usage source.Span
}

// Dependencies is an insertion-ordered set keyed by name.
type Dependencies struct {
	list  []Dependency
	index map[string]int
}

// Add records name; a repeated name keeps its first usage span.
func (d *Dependencies) Add(name string, usage source.Span) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if _, ok := d.index[name]; ok {
		return
	}
	d.index[name] = len(d.list)
	d.list = append(d.list, Dependency{Name: name, Usage: usage})
}

func (d *Dependencies) Contains(name string) bool {
	_, ok := d.index[name]
	return ok
}

func (d *Dependencies) Len() int { return len(d.list) }

// List returns the dependencies in first-use order.
func (d *Dependencies) List() []Dependency { return d.list }

type DeclKind uint8

const (
	DeclFn DeclKind = iota
	DeclVar
	DeclConst
	DeclOverride
	DeclStruct
	DeclAlias
	DeclConstAssert
)

var declKindNames = [...]string{
	DeclFn: "fn", DeclVar: "var", DeclConst: "const", DeclOverride: "override",
	DeclStruct: "struct", DeclAlias: "alias", DeclConstAssert: "const_assert",
}

func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return "decl(?)"
}

// GlobalDecl is one module-scope declaration; the payload matching Kind is set.
type GlobalDecl struct {
	Kind         DeclKind
	Span         source.Span
	Dependencies Dependencies

	Fn          *Function
	Var         *GlobalVariable
	Const       *Const
	Override    *Override
	Struct      *Struct
	Alias       *TypeAlias
	ConstAssert ExprID
}

// Name returns the declared name, empty for const_assert.
func (d *GlobalDecl) Name() Ident {
	switch d.Kind {
	case DeclFn:
		return d.Fn.Name
	case DeclVar:
		return d.Var.Name
	case DeclConst:
		return d.Const.Name
	case DeclOverride:
		return d.Override.Name
	case DeclStruct:
		return d.Struct.Name
	case DeclAlias:
		return d.Alias.Name
	}
	return Ident{}
}

type FunctionArgument struct {
	Name    Ident
	Type    TypeID
	Binding *Binding
	Handle  LocalID
}

type FunctionResult struct {
	Type    TypeID
	Binding *Binding
}

type Function struct {
	EntryPoint *EntryPoint
	Name       Ident
	Arguments  []FunctionArgument
	Result     *FunctionResult
	Body       Block
	// Locals are the function's own handles; LocalDecl.Handle and argument
	// handles index into it.
	Locals *Arena[Local]
	// DiagnosticFilterLeaf is the innermost filter in effect for the body.
	DiagnosticFilterLeaf diagfilter.NodeID
}

type GlobalVariable struct {
	Name    Ident
	Space   AddressSpace
	Binding *ResourceBinding
	Type    TypeID // NoTypeID when omitted
	Init    ExprID
}

type Const struct {
	Name Ident
	Type TypeID
	Init ExprID
}

type Override struct {
	Name Ident
	ID   ExprID
	Type TypeID
	Init ExprID
}

type StructMember struct {
	Name    Ident
	Type    TypeID
	Binding *Binding
	Align   ExprID
	Size    ExprID
}

type Struct struct {
	Name    Ident
	Members []StructMember
}

type TypeAlias struct {
	Name Ident
	Type TypeID
}
