package ast

import "wgslfront/internal/source"

// Block is a braced statement list (or a synthesized one for desugared loops).
type Block struct {
	Stmts []Stmt
	Span  source.Span
}

func (b *Block) Push(s Stmt) { b.Stmts = append(b.Stmts, s) }

type StmtKind uint8

const (
	StmtLocalDecl StmtKind = iota
	StmtBlock
	StmtIf
	StmtSwitch
	StmtLoop
	StmtBreak
	StmtContinue
	StmtReturn
	StmtKill
	StmtCall
	StmtAssign
	StmtIncrement
	StmtDecrement
	StmtPhony
	StmtConstAssert
)

var stmtKindNames = [...]string{
	StmtLocalDecl: "LocalDecl", StmtBlock: "Block", StmtIf: "If", StmtSwitch: "Switch",
	StmtLoop: "Loop", StmtBreak: "Break", StmtContinue: "Continue", StmtReturn: "Return",
	StmtKill: "Kill", StmtCall: "Call", StmtAssign: "Assign", StmtIncrement: "Increment",
	StmtDecrement: "Decrement", StmtPhony: "Phony", StmtConstAssert: "ConstAssert",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Stmt(?)"
}

// Stmt is a statement; exactly the payload matching Kind is set.
// Return, Increment, Decrement, Phony and ConstAssert use Expr
// (NoExprID for a bare `return;`).
type Stmt struct {
	Kind StmtKind
	Span source.Span

	Local  *LocalDecl
	Block  *Block
	If     *IfStmt
	Switch *SwitchStmt
	Loop   *LoopStmt
	Call   *CallStmt
	Assign *AssignStmt
	Expr   ExprID
}

type LocalDeclKind uint8

const (
	LocalVar LocalDeclKind = iota
	LocalLet
	LocalConst
)

func (k LocalDeclKind) String() string {
	return [...]string{"var", "let", "const"}[k]
}

// LocalDecl declares one local; Handle is its entry in the function's locals.
type LocalDecl struct {
	Kind   LocalDeclKind
	Name   Ident
	Type   TypeID // NoTypeID when inferred
	Init   ExprID // NoExprID only for `var` without initializer
	Handle LocalID
}

type IfStmt struct {
	Condition ExprID
	Accept    Block
	Reject    Block
}

// SwitchValue is a case selector; Default is set for `default`.
type SwitchValue struct {
	Expr    ExprID
	Default bool
}

// SwitchCase: a case whose body is shared with the next one has FallThrough set
// and an empty Body.
type SwitchCase struct {
	Value       SwitchValue
	Body        Block
	FallThrough bool
}

type SwitchStmt struct {
	Selector ExprID
	Cases    []SwitchCase
}

type LoopStmt struct {
	Body       Block
	Continuing Block
	BreakIf    ExprID
}

type CallStmt struct {
	Function Ident
	Args     []ExprID
}

// AssignStmt; Op is nil for plain `=`.
type AssignStmt struct {
	Target ExprID
	Op     *BinaryOp
	Value  ExprID
}
