package diag

import (
	"testing"

	"wgslfront/internal/source"
)

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexBadNumber, "LEX1003"},
		{SynRedefinition, "SYN2030"},
		{IOLoadFileError, "IO4001"},
		{PrjBadConfig, "PRJ5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if Code(2999).Title() != "Unknown error" {
		t.Error("unlisted code must fall back to the unknown title")
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}
	r.Report(SynUnexpectedToken, SevError, source.Span{Start: 10, End: 11}, "late", nil)
	r.Report(SynUnknownDiagnosticRule, SevWarning, source.Span{Start: 1, End: 2}, "early", nil)
	r.Report(SynInternalError, SevError, source.Span{}, "dropped", nil)

	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	b.Sort()
	if b.Items()[0].Message != "early" {
		t.Errorf("first after sort = %q", b.Items()[0].Message)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("expected both errors and warnings")
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Start: 3, End: 7}
	for range 3 {
		r.Report(LexNonNormalizedIdent, SevWarning, sp, "not NFC", nil)
	}
	Emit(r, New(SevWarning, LexNonNormalizedIdent, source.Span{Start: 9, End: 12}, "not NFC").
		WithNote(sp, "first seen here"))
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if len(b.Items()[1].Notes) != 1 {
		t.Errorf("notes lost: %+v", b.Items()[1])
	}
}

func TestBagDedupAndMerge(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynBadNumber, source.Span{Start: 1, End: 2}, "x"))
	other := NewBag(0)
	other.Add(NewError(SynBadNumber, source.Span{Start: 1, End: 2}, "y"))
	other.Add(NewError(SynRedefinition, source.Span{Start: 5, End: 6}, "z"))
	a.Merge(other)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("after merge Len=%d Cap=%d", a.Len(), a.Cap())
	}
	a.Dedup()
	if a.Len() != 2 {
		t.Errorf("after dedup Len=%d, want 2", a.Len())
	}
}

func TestEmitReporterFunc(t *testing.T) {
	var got []Code
	r := ReporterFunc(func(code Code, _ Severity, _ source.Span, _ string, _ []Note) {
		got = append(got, code)
	})
	Emit(r, NewError(SynUnexpectedToken, source.Span{}, "x"))
	Emit(nil, NewError(SynUnexpectedToken, source.Span{}, "ignored"))
	if len(got) != 1 || got[0] != SynUnexpectedToken {
		t.Errorf("got %v", got)
	}
}
