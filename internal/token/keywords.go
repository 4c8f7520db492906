package token

// keywords are the WGSL keywords; none of them may be used as an identifier.
var keywords = []string{
	"alias", "break", "case", "const", "const_assert", "continue", "continuing",
	"default", "diagnostic", "discard", "else", "enable", "false", "fn", "for",
	"if", "let", "loop", "override", "requires", "return", "struct", "switch",
	"true", "var", "while",
}

// reserved are words set aside for future use by the language.
var reserved = []string{
	"NULL", "Self", "abstract", "active", "alignas", "alignof", "as", "asm",
	"asm_fragment", "async", "attribute", "auto", "await", "become", "cast",
	"catch", "class", "co_await", "co_return", "co_yield", "coherent",
	"column_major", "common", "compile", "compile_fragment", "concept",
	"const_cast", "consteval", "constexpr", "constinit", "crate", "debugger",
	"decltype", "delete", "demote", "demote_to_helper", "do", "dynamic_cast",
	"enum", "explicit", "export", "extends", "extern", "external", "fallthrough",
	"filter", "final", "finally", "friend", "from", "fxgroup", "get", "goto",
	"groupshared", "highp", "impl", "implements", "import", "inline",
	"instanceof", "interface", "layout", "lowp", "macro", "macro_rules", "match",
	"mediump", "meta", "mod", "module", "move", "mut", "mutable", "namespace",
	"new", "nil", "noexcept", "noinline", "nointerpolation", "noperspective",
	"null", "nullptr", "of", "operator", "package", "packoffset", "partition",
	"pass", "patch", "pixelfragment", "precise", "precision", "premerge", "priv",
	"protected", "pub", "public", "readonly", "ref", "regardless", "register",
	"reinterpret_cast", "require", "resource", "restrict", "self", "set",
	"shared", "sizeof", "smooth", "snorm", "static", "static_assert",
	"static_cast", "std", "subroutine", "super", "target", "template", "this",
	"thread_local", "throw", "trait", "try", "type", "typedef", "typeid",
	"typename", "typeof", "union", "unless", "unorm", "unsafe", "unsized", "use",
	"using", "varying", "virtual", "volatile", "wgsl", "where", "with",
	"writeonly", "yield",
}

var reservedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(keywords)+len(reserved))
	for _, w := range keywords {
		m[w] = struct{}{}
	}
	for _, w := range reserved {
		m[w] = struct{}{}
	}
	return m
}()

// IsReserved reports whether word is a keyword or a reserved word.
func IsReserved(word string) bool {
	_, ok := reservedSet[word]
	return ok
}
