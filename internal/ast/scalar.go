package ast

import "fmt"

type ScalarKind uint8

const (
	ScalarBool ScalarKind = iota
	ScalarSint
	ScalarUint
	ScalarFloat
	ScalarAbstractInt
	ScalarAbstractFloat
)

// Scalar is a primitive kind with its byte width.
type Scalar struct {
	Kind  ScalarKind
	Width uint8
}

var (
	Bool = Scalar{ScalarBool, 1}
	I32  = Scalar{ScalarSint, 4}
	U32  = Scalar{ScalarUint, 4}
	F16  = Scalar{ScalarFloat, 2}
	F32  = Scalar{ScalarFloat, 4}
	I64  = Scalar{ScalarSint, 8}
	U64  = Scalar{ScalarUint, 8}
	F64  = Scalar{ScalarFloat, 8}
)

func (s Scalar) String() string {
	switch s.Kind {
	case ScalarBool:
		return "bool"
	case ScalarSint:
		return fmt.Sprintf("i%d", int(s.Width)*8)
	case ScalarUint:
		return fmt.Sprintf("u%d", int(s.Width)*8)
	case ScalarFloat:
		return fmt.Sprintf("f%d", int(s.Width)*8)
	case ScalarAbstractInt:
		return "abstract-int"
	default:
		return "abstract-float"
	}
}

// VectorSize is the component count of a vector or a matrix dimension (2..4).
type VectorSize uint8

const (
	Bi   VectorSize = 2
	Tri  VectorSize = 3
	Quad VectorSize = 4
)
