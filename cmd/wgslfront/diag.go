package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wgslfront/internal/driver"
)

func newDiagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] FILE|DIR",
		Short: "Report syntax diagnostics for WGSL sources",
		Long: `Diag parses WGSL sources and prints their diagnostics. Directory runs reuse
cached results for unchanged files. The exit status is 1 when any file fails.`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the parse cache")
	cmd.Flags().Int("jobs", 0, "parallel parsers for directories (0 = GOMAXPROCS)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unknown format: %s", format)
		}
		noCache, _ := cmd.Flags().GetBool("no-cache")

		opts := a.driverOptions()
		if cmd.Flags().Changed("jobs") {
			opts.Jobs, _ = cmd.Flags().GetInt("jobs")
		}

		path := args[0]
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("diag: %w", err)
		}

		if !info.IsDir() {
			res, err := driver.Parse(cmd.Context(), path, opts)
			if err != nil {
				return err
			}
			res.Bag.Sort()
			if err := a.writeDiagnostics(a.stdout, format, res.Bag, res.FileSet); err != nil {
				return err
			}
			a.printTimings(format, path)
			if res.Bag.HasErrors() {
				return a.fail(cmd.Context())
			}
			return nil
		}

		if a.cfg.Driver.Cache && !noCache {
			cache, err := driver.OpenDiskCache("wgslfront")
			if err != nil {
				// без кэша работаем как обычно
				if !a.quiet {
					fmt.Fprintf(a.stderr, "warning: parse cache disabled: %v\n", err)
				}
			} else {
				opts.Cache = cache
			}
		}

		out := a.parseDir(cmd.Context(), "diag", path, opts)
		if out.err != nil {
			return out.err
		}
		bag := driver.MergeBags(out.results, a.maxDiagnostics)
		if err := a.writeDiagnostics(a.stdout, format, bag, out.fs); err != nil {
			return err
		}
		a.printDirStats(out.stats)
		a.printTimings(format, path)
		if out.stats.Failed > 0 || bag.HasErrors() {
			return a.fail(cmd.Context())
		}
		return nil
	}
	return cmd
}
