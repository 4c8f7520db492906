package main

import (
	"fmt"
	"io"

	"wgslfront/internal/diag"
	"wgslfront/internal/diagfmt"
	"wgslfront/internal/driver"
	"wgslfront/internal/source"
)

func (a *app) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     a.color,
		Context:   2,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
		Max:       a.maxDiagnostics,
	}
}

// writeDiagnostics renders bag to w in the requested format.
func (a *app) writeDiagnostics(w io.Writer, format string, bag *diag.Bag, fs *source.FileSet) error {
	switch format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, a.prettyOpts())
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			Max:              a.maxDiagnostics,
			IncludeNotes:     true,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// reportStderr prints pretty diagnostics to stderr when there are any.
func (a *app) reportStderr(bag *diag.Bag, fs *source.FileSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(a.stderr, bag, fs, a.prettyOpts())
}

// printTimings writes the phase report to stderr; JSON runs get JSON so
// scripts can parse both streams.
func (a *app) printTimings(format, path string) {
	if a.timer == nil {
		return
	}
	if format == "json" {
		if err := driver.WriteTimingsJSON(a.stderr, "", path, a.timer); err != nil {
			fmt.Fprintf(a.stderr, "timings: %v\n", err)
		}
		return
	}
	fmt.Fprint(a.stderr, a.timer.Summary())
}

func (a *app) printDirStats(stats driver.DirStats) {
	if a.quiet {
		return
	}
	fmt.Fprintf(a.stderr, "%d files, %d failed", stats.Files, stats.Failed)
	if stats.CacheHits > 0 {
		fmt.Fprintf(a.stderr, ", %d from cache", stats.CacheHits)
	}
	fmt.Fprintln(a.stderr)
}
