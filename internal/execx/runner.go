// Package execx runs resolved workflow invocations as external processes.
package execx

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/otuflow/otuflow/pkg/workflow"
)

// stderrTailLines bounds how much tool diagnostic output is carried into the
// returned error.
const stderrTailLines = 5

// Runner executes one invocation at a time via os/exec. Tool output is
// streamed into the structured log; the tail of stderr is kept so a failing
// step surfaces the tool's own diagnostics.
type Runner struct {
	Log *slog.Logger
}

// Run creates the step's output directory, launches the tool and blocks
// until it exits. There is no mid-step cancellation beyond the context the
// process was started with.
func (r *Runner) Run(ctx context.Context, inv workflow.Invocation) error {
	if inv.OutputDir != "" {
		if err := os.MkdirAll(inv.OutputDir, 0o755); err != nil {
			return errors.Wrapf(err, "unable to create step directory %s", inv.OutputDir)
		}
	}

	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "unable to open stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return errors.Wrap(err, "unable to open stderr pipe")
	}

	r.log().Info("running step", "step", inv.Step.String(), "command", inv.String())

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "unable to start %s", inv.Program)
	}

	var tail []string
	grp := errgroup.Group{}
	grp.Go(func() error {
		return r.drain(stdout, inv.Step.String(), "stdout", nil)
	})
	grp.Go(func() error {
		return r.drain(stderr, inv.Step.String(), "stderr", &tail)
	})

	drainErr := grp.Wait()
	waitErr := cmd.Wait()

	if waitErr != nil {
		if len(tail) > 0 {
			return errors.Wrapf(waitErr, "%s failed: %s", inv.Program, strings.Join(tail, "; "))
		}

		return errors.Wrapf(waitErr, "%s failed", inv.Program)
	}
	if drainErr != nil {
		return errors.Wrapf(drainErr, "unable to read %s output", inv.Program)
	}

	return nil
}

// drain copies one output stream line by line into the log, optionally
// keeping the last few lines.
func (r *Runner) drain(stream io.Reader, step, name string, tail *[]string) error {
	scanner := bufio.NewScanner(stream)
	for scanner.Scan() {
		line := scanner.Text()
		r.log().Debug("tool output", "step", step, "stream", name, "line", line)
		if tail != nil {
			*tail = append(*tail, line)
			if len(*tail) > stderrTailLines {
				*tail = (*tail)[1:]
			}
		}
	}

	return scanner.Err()
}

func (r *Runner) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}

	return slog.Default()
}
