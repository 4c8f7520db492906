package ast

// StorageFormat is the texel format of a storage texture.
type StorageFormat uint8

const (
	FormatR8Unorm StorageFormat = iota
	FormatR8Snorm
	FormatR8Uint
	FormatR8Sint
	FormatR16Uint
	FormatR16Sint
	FormatR16Float
	FormatRg8Unorm
	FormatRg8Snorm
	FormatRg8Uint
	FormatRg8Sint
	FormatR32Uint
	FormatR32Sint
	FormatR32Float
	FormatRg16Uint
	FormatRg16Sint
	FormatRg16Float
	FormatRgba8Unorm
	FormatRgba8Snorm
	FormatRgba8Uint
	FormatRgba8Sint
	FormatBgra8Unorm
	FormatRgb10a2Uint
	FormatRgb10a2Unorm
	FormatRg11b10Ufloat
	FormatR64Uint
	FormatRg32Uint
	FormatRg32Sint
	FormatRg32Float
	FormatRgba16Uint
	FormatRgba16Sint
	FormatRgba16Float
	FormatRgba32Uint
	FormatRgba32Sint
	FormatRgba32Float
	FormatR16Unorm
	FormatR16Snorm
	FormatRg16Unorm
	FormatRg16Snorm
	FormatRgba16Unorm
	FormatRgba16Snorm
	formatCount
)

var storageFormatNames = [formatCount]string{
	"r8unorm", "r8snorm", "r8uint", "r8sint", "r16uint", "r16sint", "r16float",
	"rg8unorm", "rg8snorm", "rg8uint", "rg8sint", "r32uint", "r32sint", "r32float",
	"rg16uint", "rg16sint", "rg16float", "rgba8unorm", "rgba8snorm", "rgba8uint",
	"rgba8sint", "bgra8unorm", "rgb10a2uint", "rgb10a2unorm", "rg11b10ufloat",
	"r64uint", "rg32uint", "rg32sint", "rg32float", "rgba16uint", "rgba16sint",
	"rgba16float", "rgba32uint", "rgba32sint", "rgba32float", "r16unorm",
	"r16snorm", "rg16unorm", "rg16snorm", "rgba16unorm", "rgba16snorm",
}

func (f StorageFormat) String() string {
	if f < formatCount {
		return storageFormatNames[f]
	}
	return "format(?)"
}

// StorageFormats returns every format in declaration order.
func StorageFormats() []StorageFormat {
	out := make([]StorageFormat, formatCount)
	for i := range out {
		out[i] = StorageFormat(i)
	}
	return out
}
