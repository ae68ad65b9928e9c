package workflow

import (
	"sync"
	"time"
)

// Timing collects per-step wall-clock durations for reporting and for the
// plan drawer's heat colouring.
type Timing struct {
	mu        sync.Mutex
	durations map[StepName]time.Duration
}

func NewTiming() *Timing {
	return &Timing{durations: make(map[StepName]time.Duration)}
}

func (t *Timing) Record(step StepName, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.durations[step] = elapsed
}

func (t *Timing) Duration(step StepName) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed, ok := t.durations[step]

	return elapsed, ok
}

// Max returns the longest recorded duration, the scale anchor for the
// drawer's colour ramp.
func (t *Timing) Max() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	var max time.Duration
	for _, elapsed := range t.durations {
		if elapsed > max {
			max = elapsed
		}
	}

	return max
}

func roundDuration(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Minute:
		d = d.Round(time.Second)
	case d > time.Second:
		d = d.Round(10 * time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
