package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"wgslfront/internal/diag"
	"wgslfront/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("var<private> x = 1 $ 2;\n")
	fileID := fs.AddVirtual("/home/user/project/shaders/test.wgsl", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnknownChar,
		source.Span{File: fileID, Start: 19, End: 20},
		"unknown character '$'",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/shaders/test.wgsl:1:20"},
		{"Relative path", PathModeRelative, "shaders/test.wgsl:1:20"},
		{"Basename only", PathModeBasename, "test.wgsl:1:20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1001: unknown character '$'") {
				t.Errorf("Expected header line, got:\n%s", output)
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.wgsl", "test.wgsl:1:"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.wgsl", "\nfile.wgsl:1:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("const x = 42;\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 10, End: 12}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := "\n" + buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("fn main() {\n\tlet value = 1 +;\n}\n")
	fileID := fs.AddVirtual("u.wgsl", content)

	bag := diag.NewBag(4)
	// "value" на второй строке, после табуляции
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 17, End: 22}, "expected expression"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})

	want := strings.Join([]string{
		"u.wgsl:2:6: ERROR SYN2001: expected expression",
		"1 | fn main() {",
		"2 |     let value = 1 +;",
		"  |         ^~~~~",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	// 名 занимает две колонки
	content := []byte("let 名 = x;")
	fileID := fs.AddVirtual("w.wgsl", content)

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 10, End: 11}, "bad"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	// "let 名 = " шириной 9 колонок
	if want := "  | " + strings.Repeat(" ", 9) + "^"; lines[2] != want {
		t.Errorf("caret line = %q", lines[2])
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const a = 1;\nconst a = 2;\n")
	fileID := fs.AddVirtual("test.wgsl", content)

	d := diag.NewError(diag.SynRedefinition, source.Span{File: fileID, Start: 19, End: 20}, "redefinition of 'a'")
	d = d.WithNote(source.Span{File: fileID, Start: 6, End: 7}, "previous definition of 'a'")
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	if !strings.Contains(output, "note: test.wgsl:1:7: previous definition of 'a'") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyColorAndMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.wgsl", []byte("x y z"))
	bag := diag.NewBag(4)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: i * 2, End: i*2 + 1}, "w"))
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true, Max: 2, PathMode: PathModeBasename})
	output := buf.String()
	if !strings.Contains(output, "\x1b[") {
		t.Errorf("expected ANSI escapes with Color=true:\n%q", output)
	}
	if strings.Count(output, "WARNING") != 2 || !strings.Contains(output, "... and 1 more") {
		t.Errorf("Max not applied:\n%s", output)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected ANSI escapes:\n%q", buf.String())
	}
}

func TestPrettyWidthTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.wgsl", []byte("const long_name_for_a_constant = 1;"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: 0, End: 5}, "x"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Width: 12})
	if !strings.Contains(buf.String(), "1 | const lon...\n") {
		t.Errorf("line not truncated:\n%s", buf.String())
	}
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{
		"":         PathModeAuto,
		"absolute": PathModeAbsolute,
		"relative": PathModeRelative,
		"basename": PathModeBasename,
	} {
		if got, ok := ParsePathMode(in); !ok || got != want {
			t.Errorf("ParsePathMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParsePathMode("short"); ok {
		t.Errorf("unknown mode accepted")
	}
}
