package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"wgslfront/internal/driver"
	"wgslfront/internal/source"
	"wgslfront/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	stats   driver.DirStats
	err     error
}

// parseDir runs driver.ParseDir, with the progress view when enabled.
func (a *app) parseDir(ctx context.Context, title, dir string, opts driver.Options) dirOutcome {
	if !a.useTUI() {
		fs, results, stats, err := driver.ParseDir(ctx, dir, opts)
		return dirOutcome{fs: fs, results: results, stats: stats, err: err}
	}

	files, err := driver.ListShaderFiles(dir, opts.Extensions)
	if err != nil {
		return dirOutcome{err: err}
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChanSink(events)
		fs, results, stats, err := driver.ParseDir(ctx, dir, o)
		close(events)
		outcomeCh <- dirOutcome{fs: fs, results: results, stats: stats, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(a.stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал раньше времени: дочитываем события, чтобы разбор не завис
		for range events {
		}
	}
	outcome := <-outcomeCh
	if outcome.err == nil && uiErr != nil {
		outcome.err = uiErr
	}
	return outcome
}
