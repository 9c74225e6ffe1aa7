package metrics

import "time"

// FileResult enumerates per-file outcomes for counters.
type FileResult string

const (
	FileCompiled FileResult = "compiled"
	FileSkipped  FileResult = "skipped"
	FileFailed   FileResult = "failed"
)

// RunOutcome enumerates the final status of a compile run.
type RunOutcome string

const (
	RunSuccess  RunOutcome = "success"
	RunFailed   RunOutcome = "failed"
	RunCanceled RunOutcome = "canceled"
)

// Recorder defines observability hooks for compile runs. Implementations may
// forward to Prometheus or similar backends.
type Recorder interface {
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcome)
	IncFileResult(result FileResult)
	ObservePluginDuration(plugin string, d time.Duration)
	IncWatchTrigger()
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(time.Duration)            {}
func (NoopRecorder) IncRunOutcome(RunOutcome)                    {}
func (NoopRecorder) IncFileResult(FileResult)                    {}
func (NoopRecorder) ObservePluginDuration(string, time.Duration) {}
func (NoopRecorder) IncWatchTrigger()                            {}
