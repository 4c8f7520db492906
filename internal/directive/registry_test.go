package directive

import "testing"

func TestLookupKind(t *testing.T) {
	for word, want := range map[string]Kind{"diagnostic": Diagnostic, "enable": Enable, "requires": Requires} {
		got, ok := LookupKind(word)
		if !ok || got != want || got.String() != word {
			t.Errorf("LookupKind(%q) = %v, %v", word, got, ok)
		}
	}
	if _, ok := LookupKind("fn"); ok {
		t.Error("fn is not a directive")
	}
}

func TestEnableRegistry(t *testing.T) {
	tests := []struct {
		name        string
		known       bool
		implemented bool
	}{
		{"dual_source_blending", true, true},
		{"f16", true, false},
		{"clip_distances", true, false},
		{"subgroups", false, false},
	}
	for _, tt := range tests {
		ext, ok := LookupEnable(tt.name)
		if ok != tt.known {
			t.Errorf("LookupEnable(%q) known = %v", tt.name, ok)
			continue
		}
		if ok && ext.Implemented() != tt.implemented {
			t.Errorf("%q implemented = %v", tt.name, ext.Implemented())
		}
	}
}

func TestLanguageRegistry(t *testing.T) {
	ext, ok := LookupLanguage("pointer_composite_access")
	if !ok || !ext.Implemented() {
		t.Fatalf("pointer_composite_access: %v %v", ext, ok)
	}
	ext, ok = LookupLanguage("unrestricted_pointer_parameters")
	if !ok || ext.Implemented() {
		t.Fatalf("unrestricted_pointer_parameters: %v %v", ext, ok)
	}
}

func TestSets(t *testing.T) {
	var s EnableSet
	s.Add(F16)
	s.Add(DualSourceBlending)
	if !s.Contains(F16) || s.Contains(ClipDistances) {
		t.Error("Contains mismatch")
	}
	list := s.List()
	if len(list) != 2 || list[0] != DualSourceBlending || list[1] != F16 {
		t.Errorf("List = %v", list)
	}

	var l LanguageSet
	l.Add(PointerCompositeAccess)
	l.Add(Packed4x8IntegerDotProduct)
	if got := l.List(); len(got) != 2 || got[0] != Packed4x8IntegerDotProduct {
		t.Errorf("List = %v", got)
	}
}
