// Package directive describes the module-level directives (diagnostic, enable,
// requires) and the extension names they accept.
package directive

// Kind is the leading word of a global directive.
type Kind uint8

const (
	Diagnostic Kind = iota + 1
	Enable
	Requires
)

var kindNames = map[string]Kind{
	"diagnostic": Diagnostic,
	"enable":     Enable,
	"requires":   Requires,
}

// LookupKind reports whether word starts a directive.
func LookupKind(word string) (Kind, bool) {
	k, ok := kindNames[word]
	return k, ok
}

func (k Kind) String() string {
	switch k {
	case Diagnostic:
		return "diagnostic"
	case Enable:
		return "enable"
	case Requires:
		return "requires"
	}
	return "directive(?)"
}
