package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{" phase ", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "parse", 0)
	file := Begin(tr, ScopeFile, "parse:a.wgsl", root.ID())
	if file.ID() != 0 {
		t.Errorf("file span should be inert at phase level")
	}
	file.End("ok")
	root.WithExtra("files", "1").End("done")

	out := buf.String()
	if strings.Contains(out, "a.wgsl") {
		t.Errorf("file scope leaked:\n%s", out)
	}
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (done) {files=1}") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFailPassesErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)

	Point(tr, ScopeFile, "checkpoint", "", 0)
	Fail(tr, ScopeFile, "parse-error", "expected ';'", 0)

	out := buf.String()
	if strings.Contains(out, "checkpoint") {
		t.Errorf("point reached error-level stream:\n%s", out)
	}
	if !strings.Contains(out, "✗ parse-error (expected ';')") {
		t.Errorf("error event missing:\n%s", out)
	}

	Fail(Nop, ScopeFile, "ignored", "", 0)
}

func TestRingAtErrorLevelKeepsFileContext(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	sp := Begin(ring, ScopeFile, "parse:a.wgsl", 0)
	Begin(ring, ScopeRule, "decl:fn", sp.ID()).End("fn")
	Fail(ring, ScopeFile, "parse-error", "boom", sp.ID())
	sp.End("error")

	events := ring.Snapshot()
	var kinds []string
	for _, ev := range events {
		kinds = append(kinds, ev.Kind.String()+":"+ev.Name)
	}
	want := "begin:parse:a.wgsl,error:parse-error,end:parse:a.wgsl"
	if got := strings.Join(kinds, ","); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRingWrapsOldestFirst(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeRule, name, "", 0)
	}
	events := ring.Snapshot()
	if len(events) != 3 {
		t.Fatalf("len = %d", len(events))
	}
	for i, want := range []string{"c", "d", "e"} {
		if events[i].Name != want {
			t.Errorf("event %d = %s, want %s", i, events[i].Name, want)
		}
	}
	if events[0].Seq >= events[2].Seq {
		t.Errorf("sequence not increasing: %d, %d", events[0].Seq, events[2].Seq)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Errorf("dump has %d lines", n)
	}
}

func TestNDJSON(t *testing.T) {
	ev := &Event{
		Time:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Seq:    7,
		Kind:   KindSpanEnd,
		Scope:  ScopePass,
		SpanID: 3,
		Name:   "lex",
		Detail: "ok",
		Extra:  map[string]string{"tokens": "12"},
	}
	line := FormatEvent(ev, FormatNDJSON)
	if line[len(line)-1] != '\n' {
		t.Fatal("missing newline")
	}
	var got map[string]any
	if err := json.Unmarshal(line, &got); err != nil {
		t.Fatal(err)
	}
	if got["kind"] != "end" || got["scope"] != "pass" || got["name"] != "lex" {
		t.Errorf("got %v", got)
	}
	if _, ok := got["parent_id"]; ok {
		t.Errorf("zero parent should be omitted")
	}
}

func TestNewAndRing(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, Mode: ModeBoth})
	if err != nil || tr != Nop {
		t.Fatalf("off: %v %v", tr, err)
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ring, ok := Ring(tr)
	if !ok {
		t.Fatal("both mode has no ring")
	}
	Point(tr, ScopeFile, "x", "", 0)
	if len(ring.Snapshot()) != 1 || !strings.Contains(buf.String(), "• x") {
		t.Errorf("event not fanned out: ring=%d stream=%q", len(ring.Snapshot()), buf.String())
	}

	if _, err := New(Config{Level: LevelDetail}); err == nil {
		t.Errorf("missing mode should fail")
	}
	if _, ok := Ring(Nop); ok {
		t.Errorf("nop has a ring")
	}
}

func TestParseModeAndFormat(t *testing.T) {
	if m, err := ParseMode("Ring"); err != nil || m != ModeRing {
		t.Errorf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Errorf("ParseMode(disk) should fail")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat = %v, %v", f, err)
	}
}
