package parser

import (
	"wgslfront/internal/ast"
	"wgslfront/internal/diag"
	"wgslfront/internal/directive"
	"wgslfront/internal/source"
)

// Keyword tables: WGSL spellings to AST values.

var scalarNames = map[string]ast.Scalar{
	"bool": ast.Bool,
	"i32":  ast.I32,
	"u32":  ast.U32,
	"f32":  ast.F32,
	"i64":  ast.I64,
	"u64":  ast.U64,
	"f64":  ast.F64,
}

// scalarType reports whether word names a scalar. f16 is a scalar only under
// `enable f16`, which is not available, so it is an error rather than a miss.
func scalarType(word string, sp source.Span) (ast.Scalar, bool, error) {
	if word == "f16" {
		return ast.Scalar{}, false, namedError(diag.SynEnableExtensionNotEnabled, sp, directive.F16.String())
	}
	s, ok := scalarNames[word]
	return s, ok, nil
}

var addressSpaces = map[string]ast.AddressSpaceKind{
	"function":      ast.SpaceFunction,
	"private":       ast.SpacePrivate,
	"workgroup":     ast.SpaceWorkGroup,
	"uniform":       ast.SpaceUniform,
	"storage":       ast.SpaceStorage,
	"push_constant": ast.SpacePushConstant,
}

// addressSpace maps a space name; storage defaults to read-only access.
func addressSpace(word string, sp source.Span) (ast.AddressSpace, error) {
	kind, ok := addressSpaces[word]
	if !ok {
		return ast.AddressSpace{}, namedError(diag.SynUnknownAddressSpace, sp, word)
	}
	space := ast.AddressSpace{Kind: kind}
	if kind == ast.SpaceStorage {
		space.Access = ast.AccessLoad
	}
	return space, nil
}

func storageAccess(word string, sp source.Span) (ast.StorageAccess, error) {
	switch word {
	case "read":
		return ast.AccessLoad, nil
	case "write":
		return ast.AccessStore, nil
	case "read_write":
		return ast.AccessLoad | ast.AccessStore, nil
	}
	return 0, namedError(diag.SynUnknownAccess, sp, word)
}

var builtInNames = func() map[string]ast.BuiltIn {
	m := make(map[string]ast.BuiltIn)
	for _, b := range ast.BuiltIns() {
		m[b.String()] = b
	}
	return m
}()

func builtIn(word string, sp source.Span) (ast.BuiltIn, error) {
	b, ok := builtInNames[word]
	if !ok {
		return 0, namedError(diag.SynUnknownBuiltin, sp, word)
	}
	if b == ast.BuiltInClipDistance {
		// needs `enable clip_distances`, which cannot be turned on yet
		return 0, namedError(diag.SynEnableExtensionNotEnabled, sp, directive.ClipDistances.String())
	}
	return b, nil
}

func interpolation(word string, sp source.Span) (ast.Interpolation, error) {
	switch word {
	case "perspective":
		return ast.InterpolationPerspective, nil
	case "linear":
		return ast.InterpolationLinear, nil
	case "flat":
		return ast.InterpolationFlat, nil
	}
	return 0, namedError(diag.SynUnknownInterpolation, sp, word)
}

func sampling(word string, sp source.Span) (ast.Sampling, error) {
	switch word {
	case "center":
		return ast.SamplingCenter, nil
	case "centroid":
		return ast.SamplingCentroid, nil
	case "sample":
		return ast.SamplingSample, nil
	case "first":
		return ast.SamplingFirst, nil
	case "either":
		return ast.SamplingEither, nil
	}
	return 0, namedError(diag.SynUnknownSampling, sp, word)
}

func conservativeDepth(word string, sp source.Span) (ast.ConservativeDepth, error) {
	switch word {
	case "greater_equal":
		return ast.DepthGreaterEqual, nil
	case "less_equal":
		return ast.DepthLessEqual, nil
	case "unchanged":
		return ast.DepthUnchanged, nil
	}
	return 0, namedError(diag.SynUnknownConservativeDepth, sp, word)
}

var storageFormatNames = func() map[string]ast.StorageFormat {
	m := make(map[string]ast.StorageFormat)
	for _, f := range ast.StorageFormats() {
		m[f.String()] = f
	}
	return m
}()

func storageFormat(word string, sp source.Span) (ast.StorageFormat, error) {
	f, ok := storageFormatNames[word]
	if !ok {
		return 0, namedError(diag.SynUnknownStorageFormat, sp, word)
	}
	return f, nil
}

// shape describes the vecN / matCxR families: one descriptor per spelling.
// A zero scalar means the component type comes from a generic argument
// (`vec3<f32>`) or, for constructors, from the arguments (`vec3(1.0)`).
type shape struct {
	matrix  bool
	size    ast.VectorSize // vectors
	columns ast.VectorSize // matrices
	rows    ast.VectorSize
	scalar  *ast.Scalar
}

var shapes = func() map[string]shape {
	sizes := []struct {
		digit string
		size  ast.VectorSize
	}{{"2", ast.Bi}, {"3", ast.Tri}, {"4", ast.Quad}}
	vecSuffixes := []struct {
		suffix string
		scalar ast.Scalar
	}{{"i", ast.I32}, {"u", ast.U32}, {"f", ast.F32}}
	f32 := ast.F32

	m := make(map[string]shape)
	for _, n := range sizes {
		m["vec"+n.digit] = shape{size: n.size}
		for _, s := range vecSuffixes {
			sc := s.scalar
			m["vec"+n.digit+s.suffix] = shape{size: n.size, scalar: &sc}
		}
		for _, r := range sizes {
			name := "mat" + n.digit + "x" + r.digit
			m[name] = shape{matrix: true, columns: n.size, rows: r.size}
			m[name+"f"] = shape{matrix: true, columns: n.size, rows: r.size, scalar: &f32}
		}
	}
	return m
}()

// notConstructible are type keywords that can never be used as constructors.
var notConstructible = map[string]bool{
	"atomic": true, "binding_array": true,
	"sampler": true, "sampler_comparison": true,
	"texture_1d": true, "texture_1d_array": true,
	"texture_2d": true, "texture_2d_array": true,
	"texture_3d": true, "texture_cube": true, "texture_cube_array": true,
	"texture_multisampled_2d": true, "texture_multisampled_2d_array": true,
	"texture_depth_2d": true, "texture_depth_2d_array": true,
	"texture_depth_cube": true, "texture_depth_cube_array": true,
	"texture_depth_multisampled_2d": true,
	"texture_storage_1d": true, "texture_storage_1d_array": true,
	"texture_storage_2d": true, "texture_storage_2d_array": true,
	"texture_storage_3d": true,
}

type textureDesc struct {
	dim     ast.ImageDim
	arrayed bool
	class   ast.ImageClassKind
	multi   bool
}

var textures = map[string]textureDesc{
	"texture_1d":                    {ast.Dim1D, false, ast.ImageSampled, false},
	"texture_1d_array":              {ast.Dim1D, true, ast.ImageSampled, false},
	"texture_2d":                    {ast.Dim2D, false, ast.ImageSampled, false},
	"texture_2d_array":              {ast.Dim2D, true, ast.ImageSampled, false},
	"texture_3d":                    {ast.Dim3D, false, ast.ImageSampled, false},
	"texture_cube":                  {ast.DimCube, false, ast.ImageSampled, false},
	"texture_cube_array":            {ast.DimCube, true, ast.ImageSampled, false},
	"texture_multisampled_2d":       {ast.Dim2D, false, ast.ImageSampled, true},
	"texture_multisampled_2d_array": {ast.Dim2D, true, ast.ImageSampled, true},
	"texture_depth_2d":              {ast.Dim2D, false, ast.ImageDepth, false},
	"texture_depth_2d_array":        {ast.Dim2D, true, ast.ImageDepth, false},
	"texture_depth_cube":            {ast.DimCube, false, ast.ImageDepth, false},
	"texture_depth_cube_array":      {ast.DimCube, true, ast.ImageDepth, false},
	"texture_depth_multisampled_2d": {ast.Dim2D, false, ast.ImageDepth, true},
	"texture_storage_1d":            {ast.Dim1D, false, ast.ImageStorage, false},
	"texture_storage_1d_array":      {ast.Dim1D, true, ast.ImageStorage, false},
	"texture_storage_2d":            {ast.Dim2D, false, ast.ImageStorage, false},
	"texture_storage_2d_array":      {ast.Dim2D, true, ast.ImageStorage, false},
	"texture_storage_3d":            {ast.Dim3D, false, ast.ImageStorage, false},
}

// Ray tracing constants that read like identifiers but are u32 literals.
var rayConstants = map[string]uint64{
	"RAY_FLAG_NONE":                    0,
	"RAY_FLAG_FORCE_OPAQUE":            0x01,
	"RAY_FLAG_FORCE_NO_OPAQUE":         0x02,
	"RAY_FLAG_TERMINATE_ON_FIRST_HIT":  0x04,
	"RAY_FLAG_SKIP_CLOSEST_HIT_SHADER": 0x08,
	"RAY_FLAG_CULL_BACK_FACING":        0x10,
	"RAY_FLAG_CULL_FRONT_FACING":       0x20,
	"RAY_FLAG_CULL_OPAQUE":             0x40,
	"RAY_FLAG_CULL_NO_OPAQUE":          0x80,
	"RAY_FLAG_SKIP_TRIANGLES":          0x100,
	"RAY_FLAG_SKIP_AABBS":              0x200,

	"RAY_QUERY_INTERSECTION_NONE":      0,
	"RAY_QUERY_INTERSECTION_TRIANGLE":  1,
	"RAY_QUERY_INTERSECTION_GENERATED": 2,
	"RAY_QUERY_INTERSECTION_AABB":      3,
}
