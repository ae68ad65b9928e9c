package workflow

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Runner executes one resolved invocation and blocks until the external tool
// exits. Implementations live outside this package; the policies only decide
// what runs and in which order.
type Runner interface {
	Run(ctx context.Context, inv Invocation) error
}

// Backend is the parallel collaborator. Submit blocks until the backend
// reports completion; how the work is partitioned is the backend's concern.
type Backend interface {
	Submit(ctx context.Context, inv Invocation) error
}

// Policy executes a finalized plan. Exactly one policy is selected at
// startup and handed to the caller driving the pipeline.
type Policy interface {
	Execute(ctx context.Context, invs []Invocation, reporter Reporter) error
}

// PrintPolicy renders each invocation without running anything. It always
// succeeds.
type PrintPolicy struct {
	W io.Writer
}

func (p PrintPolicy) Execute(_ context.Context, invs []Invocation, reporter Reporter) error {
	for _, inv := range invs {
		reporter.StepStarted(inv)
		fmt.Fprintln(p.W, inv.String())
		reporter.StepCompleted(inv, 0)
	}

	return nil
}

// SerialPolicy runs invocations one at a time in list order and halts on the
// first failure, leaving completed steps' outputs in place for inspection.
type SerialPolicy struct {
	Runner Runner
	Timing *Timing
}

func (p SerialPolicy) Execute(ctx context.Context, invs []Invocation, reporter Reporter) error {
	return execute(ctx, invs, reporter, p.Timing, func(ctx context.Context, inv Invocation) error {
		return p.Runner.Run(ctx, inv)
	})
}

// ParallelPolicy delegates parallel-capable steps to the backend and runs
// everything else serially. A backend error fails the step exactly as a tool
// failure would.
type ParallelPolicy struct {
	Runner  Runner
	Backend Backend
	Timing  *Timing
}

func (p ParallelPolicy) Execute(ctx context.Context, invs []Invocation, reporter Reporter) error {
	return execute(ctx, invs, reporter, p.Timing, func(ctx context.Context, inv Invocation) error {
		if inv.Step.ParallelCapable() {
			return p.Backend.Submit(ctx, inv)
		}

		return p.Runner.Run(ctx, inv)
	})
}

// execute drives the shared step loop. The next step starts only once the
// previous result is known; failure stops the chain before the next step is
// issued, never by interrupting a running one.
func execute(ctx context.Context, invs []Invocation, reporter Reporter, timing *Timing, runFn func(context.Context, Invocation) error) error {
	for _, inv := range invs {
		reporter.StepStarted(inv)
		start := time.Now()
		if err := runFn(ctx, inv); err != nil {
			stepErr := &StepError{Step: inv.Step, Err: err}
			reporter.PipelineFailed(inv, err)

			return stepErr
		}
		elapsed := time.Since(start)
		if timing != nil {
			timing.Record(inv.Step, elapsed)
		}
		reporter.StepCompleted(inv, elapsed)
	}

	return nil
}
