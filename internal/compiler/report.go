package compiler

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/doccompile/internal/metrics"
	"git.home.luguber.info/inful/doccompile/internal/mode"
)

// Stage names the step of per-file processing that failed.
type Stage string

const (
	StageRead      Stage = "read"
	StageTransform Stage = "transform"
	StageWrite     Stage = "write"
)

// FileFailure records a file that could not be compiled.
type FileFailure struct {
	RelPath string
	Stage   Stage
	Err     error
}

func (f FileFailure) String() string {
	return fmt.Sprintf("%s (%s): %v", f.RelPath, f.Stage, f.Err)
}

// Report summarizes one compile run.
type Report struct {
	RunID      string
	Mode       mode.Name
	SourceRoot string
	OutputRoot string
	Start      time.Time
	End        time.Time
	Files      int // files discovered by the walker
	Compiled   int
	Skipped    int
	Failures   []FileFailure
	Outcome    metrics.RunOutcome
}

func newReport(runID string, profile mode.Profile, start time.Time) *Report {
	return &Report{
		RunID:      runID,
		Mode:       profile.Name,
		SourceRoot: profile.SourceRoot,
		OutputRoot: profile.OutputRoot,
		Start:      start,
	}
}

// Failed returns the number of files that failed.
func (r *Report) Failed() int {
	return len(r.Failures)
}

// Duration returns the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Summary returns a single-line human readable summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("outcome=%s files=%d compiled=%d skipped=%d failed=%d duration=%s",
		r.Outcome, r.Files, r.Compiled, r.Skipped, r.Failed(), r.Duration().Round(time.Millisecond))
}

func (r *Report) finish(end time.Time, canceled bool) {
	r.End = end
	switch {
	case canceled:
		r.Outcome = metrics.RunCanceled
	case r.Failed() > 0:
		r.Outcome = metrics.RunFailed
	default:
		r.Outcome = metrics.RunSuccess
	}
}

// abort marks a run that stopped before processing files.
func (r *Report) abort(end time.Time) {
	r.End = end
	r.Outcome = metrics.RunFailed
}
