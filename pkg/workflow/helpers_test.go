package workflow

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeRunner records the invocations it receives and fails the steps listed
// in failOn.
type fakeRunner struct {
	mu     sync.Mutex
	ran    []StepName
	failOn map[StepName]error
}

func (r *fakeRunner) Run(_ context.Context, inv Invocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ran = append(r.ran, inv.Step)
	if err, ok := r.failOn[inv.Step]; ok {
		return err
	}

	return nil
}

// fakeBackend records submissions, standing in for the parallel collaborator.
type fakeBackend struct {
	submitted []StepName
	err       error
}

func (b *fakeBackend) Submit(_ context.Context, inv Invocation) error {
	b.submitted = append(b.submitted, inv.Step)

	return b.err
}

// event is one recorded reporter lifecycle notification.
type event struct {
	kind string
	step StepName
}

// recordReporter captures lifecycle events in arrival order.
type recordReporter struct {
	events []event
}

func (r *recordReporter) StepStarted(inv Invocation) {
	r.events = append(r.events, event{kind: "started", step: inv.Step})
}

func (r *recordReporter) StepCompleted(inv Invocation, _ time.Duration) {
	r.events = append(r.events, event{kind: "completed", step: inv.Step})
}

func (r *recordReporter) PipelineFailed(inv Invocation, _ error) {
	r.events = append(r.events, event{kind: "failed", step: inv.Step})
}

func testPlanner(t *testing.T, root string) *Planner {
	t.Helper()
	dirs := &DirManager{Root: root}

	return &Planner{
		Builder: &Builder{Dirs: dirs},
		Dirs:    dirs,
	}
}

func stepNames(invs []Invocation) []StepName {
	names := make([]StepName, 0, len(invs))
	for _, inv := range invs {
		names = append(names, inv.Step)
	}

	return names
}
