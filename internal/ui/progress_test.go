package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"wgslfront/internal/driver"
)

func newTestModel(files ...string) *progressModel {
	return NewProgressModel("parse", files, nil).(*progressModel)
}

func TestApplyEvent(t *testing.T) {
	m := newTestModel("shaders/a.wgsl", "./shaders/b.wgsl", "shaders/c.wgsl")

	tests := []struct {
		ev     driver.Event
		idx    int
		status string
	}{
		{driver.Event{File: "shaders/a.wgsl", Stage: driver.StageParse, Status: driver.StatusWorking}, 0, "parsing"},
		{driver.Event{File: "shaders/b.wgsl", Stage: driver.StageCache, Status: driver.StatusDone}, 1, "cached"},
		{driver.Event{File: "shaders/c.wgsl", Stage: driver.StageParse, Status: driver.StatusError, Err: errors.New("x")}, 2, "error"},
		{driver.Event{File: "shaders/a.wgsl", Stage: driver.StageParse, Status: driver.StatusDone}, 0, "done"},
		// финальный статус не перезаписывается
		{driver.Event{File: "shaders/a.wgsl", Stage: driver.StageLoad, Status: driver.StatusQueued}, 0, "done"},
	}
	for _, tt := range tests {
		m.applyEvent(tt.ev)
		if got := m.items[tt.idx].status; got != tt.status {
			t.Errorf("after %+v: status = %q, want %q", tt.ev, got, tt.status)
		}
	}
	if m.finished != 3 || m.failed != 1 || m.cached != 1 {
		t.Errorf("counters = %d/%d/%d", m.finished, m.failed, m.cached)
	}
	if p := m.percent(); p != 1 {
		t.Errorf("percent = %v", p)
	}

	// неизвестные файлы и события без файла игнорируются
	if cmd := m.applyEvent(driver.Event{File: "other.wgsl", Status: driver.StatusDone}); cmd != nil {
		t.Errorf("unknown file produced a command")
	}
	m.applyEvent(driver.Event{Stage: driver.StageParse, Status: driver.StatusDone})
	if m.finished != 3 {
		t.Errorf("run-level event counted as a file")
	}
}

func TestView(t *testing.T) {
	m := newTestModel("a.wgsl", "b.wgsl")
	m.applyEvent(driver.Event{File: "a.wgsl", Stage: driver.StageParse, Status: driver.StatusError})
	m.done = true

	out := m.View()
	for _, want := range []string{"done: parse 1/2", "a.wgsl", "queued", "1 failed, 0 cached"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if newTestModel().View() != "" {
		t.Errorf("empty model should render nothing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.wgsl", 20, "short.wgsl"},
		{"very/long/path/to/shader.wgsl", 12, "very/long..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
	if w := runewidth.StringWidth(truncate("シェーダー/シェーダー.wgsl", 10)); w > 10 {
		t.Errorf("wide truncate width = %d", w)
	}
}
