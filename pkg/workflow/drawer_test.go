package workflow

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawPlan(t *testing.T) {
	plan, err := testPlanner(t, filepath.Join(t.TempDir(), "out")).Plan(Request{Input: "seqs.fasta"})
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "plan.gv")
	require.NoError(t, NewDrawer(target).Draw(plan, nil))

	content, err := os.ReadFile(target)
	require.NoError(t, err)

	dotFile := string(content)
	assert.Contains(t, dotFile, "strict digraph")
	assert.Contains(t, dotFile, `"pick_otus" -> "pick_rep_set"`)
	assert.Contains(t, dotFile, `"assign_taxonomy" -> "make_otu_table"`)
	assert.NotContains(t, dotFile, "denoise")
	assert.NotContains(t, dotFile, "fillcolor")
}

func TestDrawPlanWithTimings(t *testing.T) {
	plan, err := testPlanner(t, filepath.Join(t.TempDir(), "out")).Plan(Request{Input: "seqs.fasta"})
	require.NoError(t, err)

	timing := NewTiming()
	timing.Record(StepPickOTUs, 10*time.Second)
	timing.Record(StepAlignSeqs, 40*time.Second)

	target := filepath.Join(t.TempDir(), "plan.gv")
	require.NoError(t, NewDrawer(target).Draw(plan, timing))

	content, err := os.ReadFile(target)
	require.NoError(t, err)

	dotFile := string(content)
	assert.Contains(t, dotFile, "fillcolor")
	// The slowest step renders fully red on the ramp.
	assert.Contains(t, dotFile, "#f00000")
	assert.Contains(t, dotFile, "40s")
}

func TestDrawDeterministic(t *testing.T) {
	plan, err := testPlanner(t, filepath.Join(t.TempDir(), "out")).Plan(Request{Input: "seqs.fasta"})
	require.NoError(t, err)

	timing := NewTiming()
	timing.Record(StepPickOTUs, 10*time.Second)
	timing.Record(StepAlignSeqs, 40*time.Second)

	dir := t.TempDir()
	first := filepath.Join(dir, "first.gv")
	second := filepath.Join(dir, "second.gv")
	require.NoError(t, NewDrawer(first).Draw(plan, timing))
	require.NoError(t, NewDrawer(second).Draw(plan, timing))

	firstContent, err := os.ReadFile(first)
	require.NoError(t, err)
	secondContent, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstContent), string(secondContent))
}

func TestHeatColor(t *testing.T) {
	tcs := map[string]struct {
		ratio    float64
		expected string
	}{
		"fastest":      {ratio: 0, expected: "#00f000"},
		"slowest":      {ratio: 1, expected: "#f00000"},
		"clamped low":  {ratio: -2, expected: "#00f000"},
		"clamped high": {ratio: 3, expected: "#f00000"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			got, err := heatColor(tc.ratio)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
