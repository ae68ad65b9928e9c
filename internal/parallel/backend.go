// Package parallel delegates parallel-capable steps to an external backend.
//
// The orchestrator only decides whether a step is delegated; partitioning,
// job distribution and result merging belong to the backend. The one backend
// shipped here shells out to the tool's parallel wrapper script and blocks
// until it finishes, so from the pipeline's point of view dispatch-and-wait
// stays synchronous.
package parallel

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/otuflow/otuflow/pkg/workflow"
)

// DefaultPrefix is prepended to a tool name to obtain its parallel wrapper.
const DefaultPrefix = "parallel_"

// ScriptBackend rewrites an invocation to its parallel wrapper program and
// runs it through the shared runner.
type ScriptBackend struct {
	Runner workflow.Runner
	// Prefix overrides DefaultPrefix when set.
	Prefix string
	// Jobs is forwarded as --jobs_to_start when positive.
	Jobs int
}

func (b *ScriptBackend) Submit(ctx context.Context, inv workflow.Invocation) error {
	prefix := b.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	delegated := inv
	delegated.Program = prefix + inv.Program
	delegated.Args = append([]string{}, inv.Args...)
	if b.Jobs > 0 {
		delegated.Args = append(delegated.Args, "--jobs_to_start", strconv.Itoa(b.Jobs))
	}

	if err := b.Runner.Run(ctx, delegated); err != nil {
		return errors.Wrapf(err, "parallel backend for %s", inv.Step)
	}

	return nil
}
