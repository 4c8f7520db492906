package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wgslfront/internal/diagfmt"
	"wgslfront/internal/driver"
)

func newTokenizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] FILE",
		Short: "Tokenize a WGSL source file",
		Long:  `Tokenize breaks a WGSL source file down into the tokens the parser consumes`,
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unknown format: %s", format)
		}

		result, err := driver.Tokenize(cmd.Context(), args[0], a.driverOptions())
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}

		// Диагностика в stderr, токены в stdout
		a.reportStderr(result.Bag, result.FileSet)

		if format == "json" {
			err = diagfmt.FormatTokensJSON(a.stdout, result.Tokens)
		} else {
			err = diagfmt.FormatTokensPretty(a.stdout, result.Tokens, result.FileSet)
		}
		if err != nil {
			return err
		}
		a.printTimings(format, args[0])
		return nil
	}
	return cmd
}
