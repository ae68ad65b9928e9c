package workflow

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDenoiseInputs is returned when exactly one of the sff and mapping files
// is supplied. Denoising needs both; neither means the step is skipped.
var ErrDenoiseInputs = errors.New("sff and mapping files must be provided together for denoising")

// ConflictError reports an output directory that already exists and would be
// reused without the force flag.
type ConflictError struct {
	Dir string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("output directory %s already exists, choose a different directory or force overwrite", e.Dir)
}

// StepError reports the failure of one executed step. It wraps the underlying
// tool error, including whatever diagnostic output the runner captured.
type StepError struct {
	Step StepName
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
