package ast

import (
	"wgslfront/internal/source"
	"wgslfront/internal/token"
)

type ExprKind uint8

const (
	ExprLiteral ExprKind = iota
	ExprIdent
	ExprUnary
	ExprBinary
	ExprCall
	ExprBitcast
	ExprMember
	ExprIndex
	ExprConstruct
	ExprAddrOf
	ExprDeref
)

var exprKindNames = [...]string{
	ExprLiteral: "Literal", ExprIdent: "Ident", ExprUnary: "Unary", ExprBinary: "Binary",
	ExprCall: "Call", ExprBitcast: "Bitcast", ExprMember: "Member", ExprIndex: "Index",
	ExprConstruct: "Construct", ExprAddrOf: "AddrOf", ExprDeref: "Deref",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Expr(?)"
}

// Expr is the arena record; the kind-specific data sits in the matching payload arena.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type LiteralKind uint8

const (
	LitBool LiteralKind = iota
	LitNumber
)

type ExprLiteralData struct {
	Kind   LiteralKind
	Bool   bool
	Number token.NumberValue
}

// ExprIdentData is a name use. Local is set when the name resolved to a local
// of the current function; otherwise the name is an unresolved global reference.
type ExprIdentData struct {
	Name  string
	Local LocalID
}

func (d *ExprIdentData) IsLocal() bool { return d.Local.IsValid() }

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Function Ident
	Args     []ExprID
}

type ExprBitcastData struct {
	Value    ExprID
	To       TypeID
	TypeSpan source.Span
}

type ExprMemberData struct {
	Base  ExprID
	Field Ident
}

type ExprIndexData struct {
	Base  ExprID
	Index ExprID
}

type ExprConstructData struct {
	Type       ConstructorType
	TypeSpan   source.Span
	Components []ExprID
}

// ExprRefData is the operand of AddrOf / Deref.
type ExprRefData struct {
	Operand ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena      *Arena[Expr]
	Literals   *Arena[ExprLiteralData]
	Idents     *Arena[ExprIdentData]
	Unaries    *Arena[ExprUnaryData]
	Binaries   *Arena[ExprBinaryData]
	Calls      *Arena[ExprCallData]
	Bitcasts   *Arena[ExprBitcastData]
	Members    *Arena[ExprMemberData]
	Indices    *Arena[ExprIndexData]
	Constructs *Arena[ExprConstructData]
	Refs       *Arena[ExprRefData]
}

// NewExprs preallocates every arena with capHint slots (1<<8 when zero).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:      NewArena[Expr](capHint),
		Literals:   NewArena[ExprLiteralData](capHint),
		Idents:     NewArena[ExprIdentData](capHint),
		Unaries:    NewArena[ExprUnaryData](capHint / 4),
		Binaries:   NewArena[ExprBinaryData](capHint),
		Calls:      NewArena[ExprCallData](capHint / 4),
		Bitcasts:   NewArena[ExprBitcastData](0),
		Members:    NewArena[ExprMemberData](capHint / 4),
		Indices:    NewArena[ExprIndexData](capHint / 4),
		Constructs: NewArena[ExprConstructData](capHint / 4),
		Refs:       NewArena[ExprRefData](0),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Len is the number of expressions allocated so far.
func (e *Exprs) Len() uint32 { return e.Arena.Len() }

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewBool(span source.Span, v bool) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: LitBool, Bool: v}))
}

func (e *Exprs) NewNumber(span source.Span, n token.NumberValue) ExprID {
	return e.new(ExprLiteral, span, e.Literals.Allocate(ExprLiteralData{Kind: LitNumber, Number: n}))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	p, ok := e.payload(id, ExprLiteral)
	return e.Literals.Get(p), ok
}

// NewLocalRef references a local declared in the current function.
func (e *Exprs) NewLocalRef(span source.Span, name string, local LocalID) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name, Local: local}))
}

// NewUnresolved references a name left for the resolution pass.
func (e *Exprs) NewUnresolved(span source.Span, name string) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	p, ok := e.payload(id, ExprIdent)
	return e.Idents.Get(p), ok
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	return e.Unaries.Get(p), ok
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	return e.Binaries.Get(p), ok
}

func (e *Exprs) NewCall(span source.Span, fn Ident, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{Function: fn, Args: args}))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	return e.Calls.Get(p), ok
}

func (e *Exprs) NewBitcast(span source.Span, value ExprID, to TypeID, typeSpan source.Span) ExprID {
	return e.new(ExprBitcast, span, e.Bitcasts.Allocate(ExprBitcastData{Value: value, To: to, TypeSpan: typeSpan}))
}

func (e *Exprs) Bitcast(id ExprID) (*ExprBitcastData, bool) {
	p, ok := e.payload(id, ExprBitcast)
	return e.Bitcasts.Get(p), ok
}

func (e *Exprs) NewMember(span source.Span, base ExprID, field Ident) ExprID {
	return e.new(ExprMember, span, e.Members.Allocate(ExprMemberData{Base: base, Field: field}))
}

func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	p, ok := e.payload(id, ExprMember)
	return e.Members.Get(p), ok
}

func (e *Exprs) NewIndex(span source.Span, base, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Base: base, Index: index}))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	p, ok := e.payload(id, ExprIndex)
	return e.Indices.Get(p), ok
}

func (e *Exprs) NewConstruct(span source.Span, ty ConstructorType, tySpan source.Span, components []ExprID) ExprID {
	return e.new(ExprConstruct, span, e.Constructs.Allocate(ExprConstructData{Type: ty, TypeSpan: tySpan, Components: components}))
}

func (e *Exprs) Construct(id ExprID) (*ExprConstructData, bool) {
	p, ok := e.payload(id, ExprConstruct)
	return e.Constructs.Get(p), ok
}

func (e *Exprs) NewAddrOf(span source.Span, operand ExprID) ExprID {
	return e.new(ExprAddrOf, span, e.Refs.Allocate(ExprRefData{Operand: operand}))
}

func (e *Exprs) NewDeref(span source.Span, operand ExprID) ExprID {
	return e.new(ExprDeref, span, e.Refs.Allocate(ExprRefData{Operand: operand}))
}

// Ref returns the operand of an AddrOf or Deref expression.
func (e *Exprs) Ref(id ExprID) (*ExprRefData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprAddrOf && expr.Kind != ExprDeref) {
		return nil, false
	}
	return e.Refs.Get(uint32(expr.Payload)), true
}
