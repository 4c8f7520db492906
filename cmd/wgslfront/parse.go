package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wgslfront/internal/diagfmt"
	"wgslfront/internal/driver"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] FILE|DIR",
		Short: "Parse WGSL sources and print the syntax tree",
		Long: `Parse builds the AST of a WGSL file and prints it as a tree, JSON or a
declaration summary. A directory is parsed in parallel, one parser per file.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().String("format", "tree", "output format (tree|json|summary)")
	cmd.Flags().Int("jobs", 0, "parallel parsers for directories (0 = GOMAXPROCS)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		switch format {
		case "tree", "json", "summary":
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		opts := a.driverOptions()
		if cmd.Flags().Changed("jobs") {
			opts.Jobs, _ = cmd.Flags().GetInt("jobs")
		}

		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		if info.IsDir() {
			return a.parseDirCmd(cmd, args[0], format, opts)
		}
		return a.parseFileCmd(cmd, args[0], format, opts)
	}
	return cmd
}

func (a *app) parseFileCmd(cmd *cobra.Command, path, format string, opts driver.Options) error {
	res, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	a.reportStderr(res.Bag, res.FileSet)
	timingsFormat := timingsFormatFor(format)
	if res.Err != nil {
		a.printTimings(timingsFormat, path)
		return a.fail(cmd.Context())
	}

	switch format {
	case "tree":
		err = diagfmt.FormatASTPretty(a.stdout, res.Unit, res.File.ID, res.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(a.stdout, res.Unit)
	case "summary":
		writeSummary(a.stdout, path, driver.Summarize(res.Unit))
	}
	if err != nil {
		return err
	}
	a.printTimings(timingsFormat, path)
	return nil
}

type fileSummaryJSON struct {
	Path    string          `json:"path"`
	Failed  bool            `json:"failed"`
	Summary *driver.Summary `json:"summary,omitempty"`
}

func (a *app) parseDirCmd(cmd *cobra.Command, dir, format string, opts driver.Options) error {
	out := a.parseDir(cmd.Context(), "parse", dir, opts)
	if out.err != nil {
		return out.err
	}
	a.reportStderr(driver.MergeBags(out.results, a.maxDiagnostics), out.fs)

	switch format {
	case "tree":
		for i, r := range out.results {
			if r.Unit == nil {
				continue
			}
			if i > 0 {
				fmt.Fprintln(a.stdout)
			}
			if err := diagfmt.FormatASTPretty(a.stdout, r.Unit, r.FileID, out.fs); err != nil {
				return err
			}
		}
	case "json":
		list := make([]fileSummaryJSON, 0, len(out.results))
		for _, r := range out.results {
			list = append(list, fileSummaryJSON{Path: r.Path, Failed: r.Failed, Summary: r.Summary})
		}
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return err
		}
	case "summary":
		for _, r := range out.results {
			if r.Summary != nil {
				writeSummary(a.stdout, r.Path, r.Summary)
			}
		}
	}

	a.printDirStats(out.stats)
	a.printTimings(timingsFormatFor(format), dir)
	if out.stats.Failed > 0 {
		return a.fail(cmd.Context())
	}
	return nil
}

// writeSummary prints one line per directive and declaration.
func writeSummary(w io.Writer, path string, s *driver.Summary) {
	fmt.Fprintf(w, "%s:\n", path)
	if s == nil {
		return
	}
	if len(s.Enable) > 0 {
		fmt.Fprintf(w, "  enable %s\n", strings.Join(s.Enable, ", "))
	}
	if len(s.Requires) > 0 {
		fmt.Fprintf(w, "  requires %s\n", strings.Join(s.Requires, ", "))
	}
	if s.Filters > 0 {
		fmt.Fprintf(w, "  diagnostic filters: %d\n", s.Filters)
	}
	for _, d := range s.Decls {
		line := "  " + d.Kind
		if d.Name != "" {
			line += " " + d.Name
		}
		if d.Stage != "" {
			line += " [" + d.Stage + "]"
		}
		if len(d.Deps) > 0 {
			line += " -> " + strings.Join(d.Deps, ", ")
		}
		fmt.Fprintln(w, line)
	}
}

func timingsFormatFor(format string) string {
	if format == "json" {
		return "json"
	}
	return "pretty"
}
