package driver

import "time"

// Stage names the step a file is in.
type Stage string

const (
	// StageLoad reads the file from disk.
	StageLoad Stage = "load"
	// StageTokenize runs the lexer only.
	StageTokenize Stage = "tokenize"
	// StageParse builds the translation unit.
	StageParse Stage = "parse"
	// StageCache serves the result from the on-disk cache.
	StageCache Stage = "cache"
)

// Status is the state of a file within its stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError: the file produced error diagnostics.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; directory runs report from several goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChanSink forwards events into a channel; the owner closes it after the run.
type ChanSink chan<- Event

func (c ChanSink) OnEvent(ev Event) { c <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
