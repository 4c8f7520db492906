package diagfilter

import (
	"wgslfront/internal/source"
)

type mapEntry struct {
	rule     TriggeringRule
	severity Severity
	span     source.Span
}

// Map accumulates the filters of one directive list, in declaration order.
type Map struct {
	entries []mapEntry
}

// Add inserts f; on a repeated rule the first entry is kept or a conflict is
// returned according to policy.
func (m *Map) Add(f Filter, span source.Span, policy Policy) error {
	for _, e := range m.entries {
		if e.rule != f.Rule {
			continue
		}
		if e.severity != f.Severity || policy == DuplicatesConflict {
			return &ConflictError{Rule: f.Rule, Spans: [2]source.Span{e.span, span}}
		}
		return nil
	}
	m.entries = append(m.entries, mapEntry{rule: f.Rule, severity: f.Severity, span: span})
	return nil
}

func (m *Map) Len() int { return len(m.entries) }

// Spans returns the span of every entry, in order.
func (m *Map) Spans() []source.Span {
	out := make([]source.Span, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.span
	}
	return out
}

// NodeID is a 1-based handle into a Tree; NoNode means "no filter".
type NodeID uint32

const NoNode NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNode }

// Node is one filter linked to the filter in effect around it.
type Node struct {
	Filter Filter
	Parent NodeID
	Span   source.Span
}

// Tree stores all filter nodes of a translation unit.
type Tree struct {
	nodes []Node
}

func (t *Tree) Len() int { return len(t.nodes) }

// Get returns the node for id, nil for NoNode.
func (t *Tree) Get(id NodeID) *Node {
	if id == NoNode || int(id) > len(t.nodes) {
		return nil
	}
	return &t.nodes[id-1]
}

// Nodes returns the backing slice; node i has NodeID i+1.
func (t *Tree) Nodes() []Node { return t.nodes }

// Write appends one node per entry of m, each pointing at the node created
// before it (the first at parent), and returns the last one as the new leaf.
// An empty map returns parent unchanged.
func (t *Tree) Write(m *Map, parent NodeID) NodeID {
	for _, e := range m.entries {
		t.nodes = append(t.nodes, Node{
			Filter: Filter{Rule: e.rule, Severity: e.severity},
			Parent: parent,
			Span:   e.span,
		})
		parent = NodeID(len(t.nodes))
	}
	return parent
}

// Lookup walks from leaf toward the root and returns the first severity set
// for rule.
func (t *Tree) Lookup(leaf NodeID, rule TriggeringRule) (Severity, bool) {
	for id := leaf; id != NoNode; {
		n := t.Get(id)
		if n == nil {
			break
		}
		if n.Filter.Rule == rule {
			return n.Filter.Severity, true
		}
		id = n.Parent
	}
	return Off, false
}

// Effective resolves the severity of a standard rule at leaf, falling back to
// the rule's default.
func (t *Tree) Effective(leaf NodeID, rule StandardRule) Severity {
	if sev, ok := t.Lookup(leaf, Standard(rule)); ok {
		return sev
	}
	return rule.DefaultSeverity()
}
