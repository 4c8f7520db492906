package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var snippetSeeds = []string{
	"",
	"fn main() {}\n",
	"const a = 1 + 2 * 3;",
	"alias T = array<vec2<f32>, 4>;",
	"var<private> p: ptr<function, i32>;",
	"@group(0) @binding(0) var t: texture_2d<f32>;",
	"struct S { @align(16) a: f32, @size(8) b: u32 }",
	"fn f() { for (var i = 0; i < 4; i++) { if i == 2 { break; } } }",
	"fn f() { loop { continuing { break if true; } } }",
	"fn f(x: i32) { switch x { case 1, default: {} } }",
	"enable f16;",
	"diagnostic(warning, derivative_uniformity);",
	"@diagnostic(off, subgroup_uniformity) fn f() {}",
	"const x = 0x1p4f + 1e-3 + 1h;",
	"/* unterminated",
	"fn f() { { { { } } } }",
	"fn f() { let a = array<array<i32, 2>, 2>(); _ = a[0][1]; }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippetSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.wgsl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".wgsl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(input []byte, limit int) []byte {
	if len(input) > limit {
		input = input[:limit]
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
