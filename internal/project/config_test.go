package project

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"wgslfront/internal/diag"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindConfig(nested)
	if err != nil || !ok || got != path {
		t.Fatalf("FindConfig = %q, %v, %v", got, ok, err)
	}
	dir, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || dir != root {
		t.Errorf("FindProjectRoot = %q, %v, %v", dir, ok, err)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// в /tmp выше может лежать чужой файл, проверяем только отсутствие ошибки
	if !ok && (cfg.Diagnostics.Max != 100 || cfg.Diagnostics.Color != "auto" || !cfg.Driver.Cache) {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadPartial(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[diagnostics]
color = "off"

[driver]
jobs = 4
cache = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Diagnostics.Color != "off" || cfg.Driver.Jobs != 4 || cfg.Driver.Cache {
		t.Errorf("decoded values lost: %+v", cfg)
	}
	// не заданные ключи сохраняют значения по умолчанию
	if cfg.Diagnostics.Max != 100 || cfg.Trace.Level != "off" || cfg.Trace.Output != "-" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if !slices.Equal(cfg.Driver.Extensions, []string{".wgsl"}) {
		t.Errorf("extensions = %v", cfg.Driver.Extensions)
	}
	if cfg.Path != path || cfg.Root != filepath.Dir(path) {
		t.Errorf("path = %q root = %q", cfg.Path, cfg.Root)
	}
}

func TestLoadZeroValuesAreExplicit(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[diagnostics]\nmax = 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Diagnostics.Max != 0 {
		t.Errorf("max = %d, want explicit 0", cfg.Diagnostics.Max)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"bad color", "[diagnostics]\ncolor = \"always\"\n", "diagnostics.color"},
		{"negative max", "[diagnostics]\nmax = -1\n", "diagnostics.max"},
		{"bad level", "[trace]\nlevel = \"loud\"\n", "trace.level"},
		{"negative jobs", "[driver]\njobs = -2\n", "driver.jobs"},
		{"extension without dot", "[driver]\nextensions = [\"wgsl\"]\n", "driver.extensions"},
		{"empty extensions", "[driver]\nextensions = []\n", "driver.extensions"},
		{"unknown key", "[driver]\nthreads = 2\n", "driver.threads"},
		{"syntax", "[driver\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
			if cerr.Key != tt.key {
				t.Errorf("key = %q, want %q", cerr.Key, tt.key)
			}
			if cerr.Code() != diag.PrjBadConfig || !strings.Contains(err.Error(), "PRJ5001") {
				t.Errorf("error = %v", err)
			}
		})
	}
}
