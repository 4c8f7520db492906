package ast

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpExclusiveOr
	OpInclusiveOr
	OpLogicalAnd
	OpLogicalOr
	OpShiftLeft
	OpShiftRight
)

var binaryOpNames = [...]string{
	OpAdd: "+", OpSubtract: "-", OpMultiply: "*", OpDivide: "/", OpModulo: "%",
	OpEqual: "==", OpNotEqual: "!=", OpLess: "<", OpLessEqual: "<=",
	OpGreater: ">", OpGreaterEqual: ">=", OpAnd: "&", OpExclusiveOr: "^",
	OpInclusiveOr: "|", OpLogicalAnd: "&&", OpLogicalOr: "||",
	OpShiftLeft: "<<", OpShiftRight: ">>",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

type UnaryOp uint8

const (
	OpNegate UnaryOp = iota
	OpLogicalNot
	OpBitwiseNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNegate:
		return "-"
	case OpLogicalNot:
		return "!"
	case OpBitwiseNot:
		return "~"
	}
	return "?"
}
