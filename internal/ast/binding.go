package ast

type BuiltIn uint8

const (
	BuiltInPosition BuiltIn = iota
	BuiltInViewIndex
	BuiltInInstanceIndex
	BuiltInVertexIndex
	BuiltInClipDistance
	BuiltInFragDepth
	BuiltInFrontFacing
	BuiltInPrimitiveIndex
	BuiltInSampleIndex
	BuiltInSampleMask
	BuiltInGlobalInvocationID
	BuiltInLocalInvocationID
	BuiltInLocalInvocationIndex
	BuiltInWorkGroupID
	BuiltInNumWorkGroups
	BuiltInNumSubgroups
	BuiltInSubgroupID
	BuiltInSubgroupSize
	BuiltInSubgroupInvocationID
	builtInCount
)

var builtInNames = [builtInCount]string{
	"position", "view_index", "instance_index", "vertex_index", "clip_distances",
	"frag_depth", "front_facing", "primitive_index", "sample_index", "sample_mask",
	"global_invocation_id", "local_invocation_id", "local_invocation_index",
	"workgroup_id", "num_workgroups", "num_subgroups", "subgroup_id",
	"subgroup_size", "subgroup_invocation_id",
}

func (b BuiltIn) String() string {
	if b < builtInCount {
		return builtInNames[b]
	}
	return "builtin(?)"
}

// BuiltIns returns every builtin in declaration order.
func BuiltIns() []BuiltIn {
	out := make([]BuiltIn, builtInCount)
	for i := range out {
		out[i] = BuiltIn(i)
	}
	return out
}

type Interpolation uint8

const (
	InterpolationNone Interpolation = iota
	InterpolationPerspective
	InterpolationLinear
	InterpolationFlat
)

func (i Interpolation) String() string {
	return [...]string{"none", "perspective", "linear", "flat"}[i]
}

type Sampling uint8

const (
	SamplingNone Sampling = iota
	SamplingCenter
	SamplingCentroid
	SamplingSample
	SamplingFirst
	SamplingEither
)

func (s Sampling) String() string {
	return [...]string{"none", "center", "centroid", "sample", "first", "either"}[s]
}

type BindingKind uint8

const (
	BindingBuiltIn BindingKind = iota
	BindingLocation
)

// Binding is the validated result of an attribute run on an I/O value.
type Binding struct {
	Kind BindingKind

	BuiltIn   BuiltIn
	Invariant bool // only with BuiltInPosition

	Location          ExprID
	SecondBlendSource bool
	Interpolation     Interpolation
	Sampling          Sampling
}

// ResourceBinding is the @group/@binding pair of a global variable.
type ResourceBinding struct {
	Group   ExprID
	Binding ExprID
}

type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageCompute
)

func (s ShaderStage) String() string {
	return [...]string{"vertex", "fragment", "compute"}[s]
}

type ConservativeDepth uint8

const (
	DepthNone ConservativeDepth = iota
	DepthGreaterEqual
	DepthLessEqual
	DepthUnchanged
)

func (d ConservativeDepth) String() string {
	return [...]string{"none", "greater_equal", "less_equal", "unchanged"}[d]
}

// EarlyDepthTest is present when @early_depth_test was written; Conservative
// is DepthNone when no argument was given.
type EarlyDepthTest struct {
	Conservative ConservativeDepth
}

// EntryPoint marks a function invocable by the pipeline.
type EntryPoint struct {
	Stage          ShaderStage
	EarlyDepthTest *EarlyDepthTest
	// WorkgroupSize holds up to three dimensions; missing ones are NoExprID.
	WorkgroupSize    [3]ExprID
	HasWorkgroupSize bool
}
