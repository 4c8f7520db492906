package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 10}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 3, End: 4}, Span{File: 1, Start: 0, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 10}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanUntil(t *testing.T) {
	a := Span{Start: 4, End: 6}
	if got := a.Until(Span{Start: 10, End: 12}); got != (Span{Start: 4, End: 12}) {
		t.Errorf("Until = %v", got)
	}
	if got := a.Until(Span{Start: 0, End: 2}); got != a {
		t.Errorf("Until backwards = %v, want unchanged", got)
	}
}

func TestSpanBasics(t *testing.T) {
	s := From(3, 5, 9)
	if s.Len() != 4 || s.Empty() {
		t.Errorf("Len/Empty wrong for %v", s)
	}
	if s.String() != "3:5-9" {
		t.Errorf("String = %q", s.String())
	}
	if !s.Contains(From(3, 6, 9)) || s.Contains(From(3, 4, 9)) {
		t.Error("Contains mismatch")
	}
	if !Undefined.Empty() {
		t.Error("Undefined must be empty")
	}
}
