package driver

import (
	"encoding/json"
	"io"

	"wgslfront/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// WriteTimingsJSON writes the timer report as one JSON object for
// machine-readable runs (--format json --timings).
func WriteTimingsJSON(w io.Writer, kind, path string, timer *observ.Timer) error {
	if timer == nil {
		return nil
	}
	if kind == "" {
		kind = "pipeline"
	}
	report := timer.Report()
	payload := timingPayload{
		Kind:    kind,
		Path:    path,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	if payload.Phases == nil {
		payload.Phases = []observ.PhaseReport{}
	}
	return json.NewEncoder(w).Encode(payload)
}
