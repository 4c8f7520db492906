package token

import "fmt"

// NumberKind is the concrete type a literal was lexed as.
type NumberKind uint8

const (
	AbstractInt NumberKind = iota
	AbstractFloat
	I32
	U32
	I64
	U64
	F32
	F64
)

var numberKindNames = [...]string{
	AbstractInt:   "abstract-int",
	AbstractFloat: "abstract-float",
	I32:           "i32",
	U32:           "u32",
	I64:           "i64",
	U64:           "u64",
	F32:           "f32",
	F64:           "f64",
}

func (k NumberKind) String() string {
	if int(k) < len(numberKindNames) {
		return numberKindNames[k]
	}
	return "number(?)"
}

// NumberValue holds a parsed literal; only the field matching Kind is meaningful.
type NumberValue struct {
	Kind  NumberKind
	Int   int64   // AbstractInt, I32, I64
	Uint  uint64  // U32, U64
	Float float64 // AbstractFloat, F32, F64
}

func (n NumberValue) String() string {
	switch n.Kind {
	case AbstractInt, I32, I64:
		return fmt.Sprintf("%d:%s", n.Int, n.Kind)
	case U32, U64:
		return fmt.Sprintf("%d:%s", n.Uint, n.Kind)
	default:
		return fmt.Sprintf("%g:%s", n.Float, n.Kind)
	}
}

// NumberErrorKind classifies malformed literals.
type NumberErrorKind uint8

const (
	// NumInvalid: the text is not a valid literal.
	NumInvalid NumberErrorKind = iota
	// NumNotRepresentable: valid syntax, value out of range for its type.
	NumNotRepresentable
	// NumUnimplementedF16: 'h' suffix; f16 needs an extension we do not enable.
	NumUnimplementedF16
)

// NumberError describes why a numeric literal was rejected.
type NumberError struct {
	Kind   NumberErrorKind
	Reason string
}

func (e *NumberError) Error() string {
	switch e.Kind {
	case NumNotRepresentable:
		return "numeric literal not representable by target type: " + e.Reason
	case NumUnimplementedF16:
		return "f16 literals are not supported"
	default:
		if e.Reason != "" {
			return "invalid numeric literal: " + e.Reason
		}
		return "invalid numeric literal"
	}
}
