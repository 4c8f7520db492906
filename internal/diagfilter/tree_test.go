package diagfilter

import (
	"errors"
	"testing"

	"wgslfront/internal/source"
)

func sp(a, b uint32) source.Span { return source.Span{Start: a, End: b} }

func TestMapAddPolicy(t *testing.T) {
	off := Filter{Rule: Standard(DerivativeUniformity), Severity: Off}
	warn := Filter{Rule: Standard(DerivativeUniformity), Severity: Warning}

	tests := []struct {
		name     string
		second   Filter
		policy   Policy
		conflict bool
	}{
		{"same severity allowed", off, DuplicatesAllowed, false},
		{"same severity conflicts", off, DuplicatesConflict, true},
		{"different severity allowed policy", warn, DuplicatesAllowed, true},
		{"different severity conflict policy", warn, DuplicatesConflict, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Map
			if err := m.Add(off, sp(0, 5), tt.policy); err != nil {
				t.Fatalf("first Add: %v", err)
			}
			err := m.Add(tt.second, sp(10, 15), tt.policy)
			if (err != nil) != tt.conflict {
				t.Fatalf("err = %v, want conflict=%v", err, tt.conflict)
			}
			if err != nil {
				var ce *ConflictError
				if !errors.As(err, &ce) || ce.Spans != [2]source.Span{sp(0, 5), sp(10, 15)} {
					t.Errorf("conflict = %+v", err)
				}
			}
			if m.Len() != 1 {
				t.Errorf("Len = %d, want 1", m.Len())
			}
		})
	}
}

func TestTreeInnermostWins(t *testing.T) {
	var tree Tree

	var module Map
	_ = module.Add(Filter{Rule: Standard(DerivativeUniformity), Severity: Off}, sp(0, 1), DuplicatesAllowed)
	_ = module.Add(Filter{Rule: User("vendor", "lint"), Severity: Info}, sp(2, 3), DuplicatesAllowed)
	root := tree.Write(&module, NoNode)

	var fn Map
	_ = fn.Add(Filter{Rule: Standard(DerivativeUniformity), Severity: Warning}, sp(10, 11), DuplicatesConflict)
	leaf := tree.Write(&fn, root)

	if tree.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tree.Len())
	}
	if n := tree.Get(leaf); n.Parent != root {
		t.Errorf("leaf parent = %d, want %d", n.Parent, root)
	}
	if n := tree.Get(root); n.Parent != 1 || tree.Get(1).Parent != NoNode {
		t.Errorf("module chain broken: %+v", tree.Nodes())
	}

	if got := tree.Effective(leaf, DerivativeUniformity); got != Warning {
		t.Errorf("inner severity = %v, want warning", got)
	}
	if got := tree.Effective(root, DerivativeUniformity); got != Off {
		t.Errorf("module severity = %v, want off", got)
	}
	if got := tree.Effective(NoNode, SubgroupUniformity); got != Error {
		t.Errorf("default severity = %v", got)
	}
	if sev, ok := tree.Lookup(leaf, User("vendor", "lint")); !ok || sev != Info {
		t.Errorf("user rule lookup = %v %v", sev, ok)
	}

	var empty Map
	if got := tree.Write(&empty, leaf); got != leaf {
		t.Errorf("empty write changed leaf to %d", got)
	}
}

func TestNames(t *testing.T) {
	if s, ok := LookupSeverity("warning"); !ok || s != Warning {
		t.Error("warning lookup")
	}
	if _, ok := LookupSeverity("fatal"); ok {
		t.Error("fatal is not a severity")
	}
	if r, ok := LookupStandard("subgroup_uniformity"); !ok || r != SubgroupUniformity {
		t.Error("subgroup_uniformity lookup")
	}
	if User("a", "b").String() != "a.b" || Unknown("x").String() != "x" {
		t.Error("rule String")
	}
}
