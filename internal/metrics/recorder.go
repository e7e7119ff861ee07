package metrics

import "time"

// ResultLabel enumerates chapter outcomes for counters.
type ResultLabel string

const (
	ResultAnnotated ResultLabel = "annotated" // at least one block decorated
	ResultUnchanged ResultLabel = "unchanged" // nothing to decorate
	ResultFailed    ResultLabel = "failed"    // left as-is after a format error
)

// Recorder defines observability hooks for a preprocessing run.
type Recorder interface {
	ObserveChapterDuration(d time.Duration)
	IncChapterResult(result ResultLabel)
	IncBlockDecorated(language string)
	IncBlockPassed()
	IncColorWarning(language string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveChapterDuration(time.Duration) {}
func (NoopRecorder) IncChapterResult(ResultLabel)         {}
func (NoopRecorder) IncBlockDecorated(string)             {}
func (NoopRecorder) IncBlockPassed()                      {}
func (NoopRecorder) IncColorWarning(string)               {}
