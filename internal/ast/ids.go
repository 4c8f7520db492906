package ast

import "wgslfront/internal/source"

type (
	ExprID  uint32
	TypeID  uint32
	LocalID uint32
	DeclID  uint32
	// PayloadID indexes a per-kind expression payload arena.
	PayloadID uint32
)

const (
	NoExprID    ExprID    = 0
	NoTypeID    TypeID    = 0
	NoLocalID   LocalID   = 0
	NoDeclID    DeclID    = 0
	NoPayloadID PayloadID = 0
)

func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id TypeID) IsValid() bool    { return id != NoTypeID }
func (id LocalID) IsValid() bool   { return id != NoLocalID }
func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }

// Ident is a name together with where it was written.
type Ident struct {
	Name string
	Span source.Span
}

// Local stands in for a local variable or argument; what it is lives in the
// statement (or parameter) that declared it.
type Local struct {
	Span source.Span
}
