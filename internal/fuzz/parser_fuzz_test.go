package fuzztests

import (
	"testing"
	"time"

	"wgslfront/internal/diag"
	"wgslfront/internal/parser"
	"wgslfront/internal/source"
	"wgslfront/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

// FuzzParserSpans checks that a successful parse satisfies the span
// invariants and a failed one returns a typed error and no unit.
func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.wgsl", input))
		bag := diag.NewBag(128)

		unit, err := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err != nil {
			if unit != nil {
				t.Fatalf("unit returned together with error %v", err)
			}
			perr, ok := err.(*parser.Error)
			if !ok {
				t.Fatalf("error %T is not *parser.Error", err)
			}
			_ = perr.Diagnostic()
			return
		}
		if err := testkit.CheckSpanInvariants(unit, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// вложенность и незакрытые конструкции
	f.Add([]byte("fn f() { for (;;) { while true { loop { } } } }"))
	f.Add([]byte("fn f() { if a { } else if b { } else { "))
	f.Add([]byte("const x = ((((((((((1))))))))));"))
	f.Add([]byte("alias A = array<array<array<array<f32"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.wgsl", input))
			_, _ = parser.ParseFile(file, parser.Options{})
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}
