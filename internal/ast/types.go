package ast

import "wgslfront/internal/source"

type TypeKind uint8

const (
	TypeScalar TypeKind = iota
	TypeVector
	TypeMatrix
	TypeAtomic
	TypePointer
	TypeArray
	TypeBindingArray
	TypeSampler
	TypeImage
	TypeAccelerationStructure
	TypeRayQuery
	TypeRayDesc
	TypeRayIntersection
	TypeUser
)

var typeKindNames = [...]string{
	TypeScalar: "Scalar", TypeVector: "Vector", TypeMatrix: "Matrix", TypeAtomic: "Atomic",
	TypePointer: "Pointer", TypeArray: "Array", TypeBindingArray: "BindingArray",
	TypeSampler: "Sampler", TypeImage: "Image", TypeAccelerationStructure: "AccelerationStructure",
	TypeRayQuery: "RayQuery", TypeRayDesc: "RayDesc", TypeRayIntersection: "RayIntersection",
	TypeUser: "User",
}

func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return "Type(?)"
}

// Type is one entry of the type arena. Which fields are meaningful depends on Kind:
//
//	Scalar, Atomic         Scalar
//	Vector                 Size, Elem (+ElemSpan)
//	Matrix                 Columns, Rows, Elem (+ElemSpan)
//	Pointer                Base, Space
//	Array, BindingArray    Base, ArraySize
//	Sampler                Comparison
//	Image                  Image
//	User                   Name
type Type struct {
	Kind TypeKind
	Span source.Span

	Scalar     Scalar
	Size       VectorSize
	Columns    VectorSize
	Rows       VectorSize
	Elem       TypeID
	ElemSpan   source.Span
	Base       TypeID
	Space      AddressSpace
	ArraySize  ArraySize
	Comparison bool
	Image      ImageType
	Name       Ident
}

// ArraySize: Constant set for fixed-size arrays, NoExprID for runtime-sized ones.
type ArraySize struct {
	Constant ExprID
}

func (s ArraySize) IsDynamic() bool { return !s.Constant.IsValid() }

// StorageAccess is a load/store bit set.
type StorageAccess uint8

const (
	AccessLoad StorageAccess = 1 << iota
	AccessStore
)

func (a StorageAccess) String() string {
	switch a {
	case AccessLoad:
		return "read"
	case AccessStore:
		return "write"
	case AccessLoad | AccessStore:
		return "read_write"
	}
	return "none"
}

type AddressSpaceKind uint8

const (
	SpaceFunction AddressSpaceKind = iota
	SpacePrivate
	SpaceWorkGroup
	SpaceUniform
	SpaceStorage
	SpaceHandle
	SpacePushConstant
)

var addressSpaceNames = [...]string{
	SpaceFunction: "function", SpacePrivate: "private", SpaceWorkGroup: "workgroup",
	SpaceUniform: "uniform", SpaceStorage: "storage", SpaceHandle: "handle",
	SpacePushConstant: "push_constant",
}

func (k AddressSpaceKind) String() string { return addressSpaceNames[k] }

// AddressSpace; Access only matters for storage.
type AddressSpace struct {
	Kind   AddressSpaceKind
	Access StorageAccess
}

func (s AddressSpace) String() string {
	if s.Kind == SpaceStorage {
		return "storage, " + s.Access.String()
	}
	return s.Kind.String()
}

type ImageDim uint8

const (
	Dim1D ImageDim = iota
	Dim2D
	Dim3D
	DimCube
)

func (d ImageDim) String() string {
	return [...]string{"1d", "2d", "3d", "cube"}[d]
}

type ImageClassKind uint8

const (
	ImageSampled ImageClassKind = iota
	ImageDepth
	ImageStorage
)

// ImageType describes a texture; Sample is the sampled scalar for ImageSampled.
type ImageType struct {
	Dim     ImageDim
	Arrayed bool
	Class   ImageClassKind
	Multi   bool
	Sample  Scalar
	Format  StorageFormat
	Access  StorageAccess
}

// ConstructorKind is the shape written before a constructor's argument list.
type ConstructorKind uint8

const (
	CtorScalar ConstructorKind = iota
	CtorPartialVector
	CtorVector
	CtorPartialMatrix
	CtorMatrix
	CtorPartialArray
	CtorArray
	CtorType
)

// ConstructorType: partial forms (vec3(...), mat2x2(...), array(...)) leave the
// component type to be inferred from the arguments.
type ConstructorType struct {
	Kind      ConstructorKind
	Scalar    Scalar
	Size      VectorSize
	Columns   VectorSize
	Rows      VectorSize
	Elem      TypeID
	ElemSpan  source.Span
	Base      TypeID
	ArraySize ArraySize
	Type      TypeID
}
