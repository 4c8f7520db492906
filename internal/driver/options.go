package driver

import (
	"wgslfront/internal/observ"
)

// DefaultExtensions are the file suffixes picked up by directory runs.
var DefaultExtensions = []string{".wgsl"}

// Options controls one driver run.
type Options struct {
	// MaxDiagnostics caps each file's bag; <= 0 means unlimited.
	MaxDiagnostics int
	// MaxBraceNesting is passed to the parser; 0 selects its default.
	MaxBraceNesting uint8
	// Jobs bounds directory parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Extensions filters directory walks; empty means DefaultExtensions.
	Extensions []string
	// Cache, when set, serves and stores directory parse results.
	Cache *DiskCache
	// Progress receives per-file events.
	Progress ProgressSink
	// Timer records run phases for --timings.
	Timer *observ.Timer
}

func (o Options) track(name string) func(string) {
	if o.Timer == nil {
		return func(string) {}
	}
	return o.Timer.Track(name)
}
