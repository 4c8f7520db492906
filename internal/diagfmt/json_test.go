package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"wgslfront/internal/diag"
	"wgslfront/internal/source"
)

func renderJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	return output
}

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("fn main() {\n\tlet x = 1 $ 2;\n}"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar, source.Span{File: fileID, Start: 23, End: 24}, "unknown character '$'"))

	output := renderJSON(t, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if output.Count != 1 || output.Errors != 1 || output.Warnings != 0 || output.Truncated {
		t.Fatalf("header = %+v", output)
	}
	got := output.Diagnostics[0]
	want := DiagnosticJSON{
		Severity: "ERROR",
		Code:     "LEX1001",
		Title:    "Unknown character",
		Message:  "unknown character '$'",
		Location: LocationJSON{File: "test.wgsl", StartByte: 23, EndByte: 24, StartLine: 2, StartCol: 12, EndLine: 2, EndCol: 13},
	}
	if got.Severity != want.Severity || got.Code != want.Code || got.Title != want.Title ||
		got.Message != want.Message || got.Location != want.Location {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestJSONWithNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("fn f() {\n  let a = 1;\n  let a = 2;\n}\n"))

	d := diag.NewError(diag.SynRedefinition, source.Span{File: fileID, Start: 28, End: 29}, "redefinition of 'a'").
		WithNote(source.Span{File: fileID, Start: 15, End: 16}, "previous definition of 'a'")
	bag := diag.NewBag(10)
	bag.Add(d)

	tests := []struct {
		name      string
		notes     bool
		wantNotes int
	}{
		{"with notes", true, 1},
		{"without notes", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := renderJSON(t, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: tt.notes})
			notes := output.Diagnostics[0].Notes
			if len(notes) != tt.wantNotes {
				t.Fatalf("got %d notes, want %d", len(notes), tt.wantNotes)
			}
			if tt.wantNotes == 0 {
				return
			}
			if notes[0].Message != "previous definition of 'a'" {
				t.Errorf("note message = %q", notes[0].Message)
			}
			if loc := notes[0].Location; loc.StartLine != 2 || loc.StartCol != 7 {
				t.Errorf("note location = %+v", loc)
			}
		})
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("const x = 42;"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevInfo, diag.LexUnknownChar, source.Span{File: fileID, Start: 4, End: 5}, "info"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	// omitempty прячет строки/колонки, байтовые позиции остаются
	if strings.Contains(buf.String(), "start_line") {
		t.Errorf("positions leaked:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"start_byte": 4`) {
		t.Errorf("byte offsets missing:\n%s", buf.String())
	}
}

func TestJSONMaxLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.wgsl", []byte("test content"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		sev := diag.SevError
		if i%2 == 1 {
			sev = diag.SevWarning
		}
		bag.Add(diag.New(sev, diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "message"))
	}

	output := renderJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3})
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Errorf("count = %d, entries = %d, want 3", output.Count, len(output.Diagnostics))
	}
	// счётчики серьёзности считаются по всему bag
	if output.Errors != 3 || output.Warnings != 2 || !output.Truncated {
		t.Errorf("totals = %d errors, %d warnings, truncated %v", output.Errors, output.Warnings, output.Truncated)
	}
	if bag.Len() != 5 {
		t.Errorf("bag modified: %d", bag.Len())
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.wgsl", []byte("test"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "error"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.wgsl"},
		{"Relative", PathModeRelative, "src/main.wgsl"},
		{"Basename", PathModeBasename, "main.wgsl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := renderJSON(t, bag, fs, JSONOpts{PathMode: tt.pathMode})
			if got := output.Diagnostics[0].Location.File; got != tt.expected {
				t.Errorf("file = %s, want %s", got, tt.expected)
			}
		})
	}
}
