// Package diagfilter models WGSL diagnostic filters: severity overrides for a
// triggering rule, scoped to the syntactic region that declared them.
//
// Filters declared together (one directive list or one attribute run) are first
// collected in a Map; Tree.Write then folds the map into a parent-linked chain of
// nodes hanging off the enclosing scope's leaf. Lookup walks leaf to root, so the
// innermost filter for a rule wins.
package diagfilter

import (
	"strings"

	"wgslfront/internal/source"
)

// Severity is the reporting level a filter assigns.
type Severity uint8

const (
	Off Severity = iota
	Info
	Warning
	Error
)

var severityNames = [...]string{Off: "off", Info: "info", Warning: "warning", Error: "error"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "severity(?)"
}

// LookupSeverity maps the WGSL severity control name.
func LookupSeverity(name string) (Severity, bool) {
	for i, n := range severityNames {
		if n == name {
			return Severity(i), true
		}
	}
	return Off, false
}

// StandardRule is a triggering rule defined by the language.
type StandardRule uint8

const (
	DerivativeUniformity StandardRule = iota + 1
	SubgroupUniformity
)

var standardNames = map[StandardRule]string{
	DerivativeUniformity: "derivative_uniformity",
	SubgroupUniformity:   "subgroup_uniformity",
}

// LookupStandard maps a rule name to a standard rule.
func LookupStandard(name string) (StandardRule, bool) {
	for r, n := range standardNames {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

func (r StandardRule) String() string { return standardNames[r] }

// DefaultSeverity is the severity in effect when no filter applies.
func (r StandardRule) DefaultSeverity() Severity {
	return Error
}

// RuleKind distinguishes the three forms a triggering rule can take.
type RuleKind uint8

const (
	RuleStandard RuleKind = iota
	RuleUnknown           // single name the front end does not know
	RuleUser              // two-part dotted name, e.g. vendor.rule
)

// TriggeringRule names the diagnostic a filter applies to.
type TriggeringRule struct {
	Kind     RuleKind
	Standard StandardRule
	Name     string    // RuleUnknown
	User     [2]string // RuleUser
}

func Standard(r StandardRule) TriggeringRule { return TriggeringRule{Kind: RuleStandard, Standard: r} }
func Unknown(name string) TriggeringRule     { return TriggeringRule{Kind: RuleUnknown, Name: name} }
func User(a, b string) TriggeringRule        { return TriggeringRule{Kind: RuleUser, User: [2]string{a, b}} }

func (r TriggeringRule) String() string {
	switch r.Kind {
	case RuleStandard:
		return r.Standard.String()
	case RuleUser:
		return strings.Join(r.User[:], ".")
	default:
		return r.Name
	}
}

// Filter is one rule -> severity override.
type Filter struct {
	Rule     TriggeringRule
	Severity Severity
}

// Policy decides whether an exact duplicate (same rule, same severity) in one
// list is a conflict. A duplicate with a different severity always conflicts.
type Policy uint8

const (
	// DuplicatesAllowed: repeating a filter verbatim is accepted (module directives).
	DuplicatesAllowed Policy = iota
	// DuplicatesConflict: any repeat of a rule is an error (attribute runs).
	DuplicatesConflict
)

// ConflictError reports two filters for the same rule in one list.
type ConflictError struct {
	Rule  TriggeringRule
	Spans [2]source.Span // first occurrence, then the conflicting one
}

func (e *ConflictError) Error() string {
	return "conflicting diagnostic filters for rule '" + e.Rule.String() + "'"
}
