package workflow

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planInvocations(t *testing.T, req Request) []Invocation {
	t.Helper()
	plan, err := testPlanner(t, filepath.Join(t.TempDir(), "out")).Plan(req)
	require.NoError(t, err)

	return plan.Invocations
}

func TestPrintPolicy(t *testing.T) {
	invs := planInvocations(t, Request{Input: "seqs.fasta"})

	var buf bytes.Buffer
	err := PrintPolicy{W: &buf}.Execute(context.Background(), invs, SilentReporter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "pick_otus.py "))
	assert.True(t, strings.HasPrefix(lines[6], "make_otu_table.py "))
}

func TestPrintPolicyIdempotent(t *testing.T) {
	invs := planInvocations(t, Request{Input: "seqs.fasta", SFF: "run.sff.txt", Mapping: "map.txt"})

	var first, second bytes.Buffer
	require.NoError(t, PrintPolicy{W: &first}.Execute(context.Background(), invs, SilentReporter{}))
	require.NoError(t, PrintPolicy{W: &second}.Execute(context.Background(), invs, SilentReporter{}))

	assert.Equal(t, first.String(), second.String())
	assert.Len(t, strings.Split(strings.TrimRight(first.String(), "\n"), "\n"), 8)
}

func TestSerialPolicyRunsInOrder(t *testing.T) {
	invs := planInvocations(t, Request{Input: "seqs.fasta"})
	runner := &fakeRunner{}
	timing := NewTiming()

	err := SerialPolicy{Runner: runner, Timing: timing}.Execute(context.Background(), invs, SilentReporter{})
	require.NoError(t, err)

	assert.Equal(t, stepNames(invs), runner.ran)
	for _, inv := range invs {
		_, ok := timing.Duration(inv.Step)
		assert.True(t, ok, "missing timing for %s", inv.Step)
	}
}

func TestSerialPolicyHaltsOnFailure(t *testing.T) {
	invs := planInvocations(t, Request{Input: "seqs.fasta", SFF: "run.sff.txt", Mapping: "map.txt"})
	require.Len(t, invs, 8)

	// The third of eight steps fails.
	failing := invs[2].Step
	runner := &fakeRunner{failOn: map[StepName]error{failing: assert.AnError}}
	reporter := &recordReporter{}

	err := SerialPolicy{Runner: runner}.Execute(context.Background(), invs, reporter)
	require.Error(t, err)

	stepErr := &StepError{}
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, failing, stepErr.Step)
	assert.ErrorIs(t, err, assert.AnError)

	// Steps 1-2 ran and completed, step 3 failed, steps 4-8 never started.
	assert.Equal(t, []StepName{invs[0].Step, invs[1].Step, failing}, runner.ran)
	assert.Equal(t, []event{
		{kind: "started", step: invs[0].Step},
		{kind: "completed", step: invs[0].Step},
		{kind: "started", step: invs[1].Step},
		{kind: "completed", step: invs[1].Step},
		{kind: "started", step: failing},
		{kind: "failed", step: failing},
	}, reporter.events)
}

func TestParallelPolicyDelegation(t *testing.T) {
	invs := planInvocations(t, Request{Input: "seqs.fasta"})
	runner := &fakeRunner{}
	backend := &fakeBackend{}

	err := ParallelPolicy{Runner: runner, Backend: backend}.Execute(context.Background(), invs, SilentReporter{})
	require.NoError(t, err)

	assert.Equal(t, []StepName{StepAlignSeqs, StepAssignTaxonomy}, backend.submitted)
	assert.Equal(t, []StepName{
		StepPickOTUs,
		StepPickRepSet,
		StepFilterAlignment,
		StepMakePhylogeny,
		StepMakeOTUTable,
	}, runner.ran)
}

func TestParallelPolicyBackendFailure(t *testing.T) {
	invs := planInvocations(t, Request{Input: "seqs.fasta"})
	runner := &fakeRunner{}
	backend := &fakeBackend{err: assert.AnError}

	err := ParallelPolicy{Runner: runner, Backend: backend}.Execute(context.Background(), invs, SilentReporter{})
	require.Error(t, err)

	stepErr := &StepError{}
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepAlignSeqs, stepErr.Step)
	// Nothing after the failed delegation runs.
	assert.Equal(t, []StepName{StepPickOTUs, StepPickRepSet}, runner.ran)
}
