package workflow

import (
	"fmt"
	"io"
	"time"
)

// Reporter receives pipeline lifecycle events. Reporters hold no state and
// may be shared freely.
type Reporter interface {
	StepStarted(inv Invocation)
	StepCompleted(inv Invocation, elapsed time.Duration)
	PipelineFailed(inv Invocation, err error)
}

// SilentReporter drops every event.
type SilentReporter struct{}

func (SilentReporter) StepStarted(Invocation)                  {}
func (SilentReporter) StepCompleted(Invocation, time.Duration) {}
func (SilentReporter) PipelineFailed(Invocation, error)        {}

// VerboseReporter writes one line per lifecycle event.
type VerboseReporter struct {
	W io.Writer
}

func (r VerboseReporter) StepStarted(inv Invocation) {
	fmt.Fprintf(r.W, "%s: starting\n", inv.Step)
}

func (r VerboseReporter) StepCompleted(inv Invocation, elapsed time.Duration) {
	fmt.Fprintf(r.W, "%s: completed in %s\n", inv.Step, roundDuration(elapsed))
}

func (r VerboseReporter) PipelineFailed(inv Invocation, err error) {
	fmt.Fprintf(r.W, "%s: failed: %v\n", inv.Step, err)
}
