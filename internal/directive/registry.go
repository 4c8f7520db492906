package directive

import "slices"

// EnableExtension is a name accepted by `enable`.
type EnableExtension uint8

const (
	DualSourceBlending EnableExtension = iota + 1
	F16
	ClipDistances
)

// LanguageExtension is a name accepted by `requires`.
type LanguageExtension uint8

const (
	ReadonlyAndReadwriteStorageTextures LanguageExtension = iota + 1
	Packed4x8IntegerDotProduct
	PointerCompositeAccess
	UnrestrictedPointerParameters
)

type extInfo struct {
	name        string
	implemented bool
}

var enableRegistry = map[EnableExtension]extInfo{
	DualSourceBlending: {"dual_source_blending", true},
	F16:                {"f16", false},
	ClipDistances:      {"clip_distances", false},
}

var languageRegistry = map[LanguageExtension]extInfo{
	ReadonlyAndReadwriteStorageTextures: {"readonly_and_readwrite_storage_textures", true},
	Packed4x8IntegerDotProduct:          {"packed_4x8_integer_dot_product", true},
	PointerCompositeAccess:              {"pointer_composite_access", true},
	UnrestrictedPointerParameters:       {"unrestricted_pointer_parameters", false},
}

func lookup[K comparable](reg map[K]extInfo, name string) (K, bool) {
	for k, info := range reg {
		if info.name == name {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// LookupEnable maps an `enable` name to its extension.
func LookupEnable(name string) (EnableExtension, bool) {
	return lookup(enableRegistry, name)
}

// LookupLanguage maps a `requires` name to its extension.
func LookupLanguage(name string) (LanguageExtension, bool) {
	return lookup(languageRegistry, name)
}

func (e EnableExtension) String() string       { return enableRegistry[e].name }
func (e EnableExtension) Implemented() bool    { return enableRegistry[e].implemented }
func (e LanguageExtension) String() string    { return languageRegistry[e].name }
func (e LanguageExtension) Implemented() bool { return languageRegistry[e].implemented }

// EnableSet is the set of extensions enabled by a module.
type EnableSet uint32

func (s *EnableSet) Add(e EnableExtension)          { *s |= 1 << e }
func (s EnableSet) Contains(e EnableExtension) bool { return s&(1<<e) != 0 }

// List returns the members ordered by name.
func (s EnableSet) List() []EnableExtension {
	var out []EnableExtension
	for e := range enableRegistry {
		if s.Contains(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b EnableExtension) int { return compareStrings(a.String(), b.String()) })
	return out
}

// LanguageSet is the set of language extensions a module requires.
type LanguageSet uint32

func (s *LanguageSet) Add(e LanguageExtension)          { *s |= 1 << e }
func (s LanguageSet) Contains(e LanguageExtension) bool { return s&(1<<e) != 0 }

// List returns the members ordered by name.
func (s LanguageSet) List() []LanguageExtension {
	var out []LanguageExtension
	for e := range languageRegistry {
		if s.Contains(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b LanguageExtension) int { return compareStrings(a.String(), b.String()) })
	return out
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
