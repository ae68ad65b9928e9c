package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otuflow/otuflow/pkg/workflow"
)

// chdir switches the working directory for the rest of the test. It stands
// in for t.Chdir, which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Parallel.Jobs)
	assert.Equal(t, "parallel_", cfg.Parallel.WrapperPrefix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Tools.Programs)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otuflow.yaml")
	content := `
tools:
  programs:
    pick_otus: pick_otus_uclust.py
parallel:
  jobs: 8
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Parallel.Jobs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, map[workflow.StepName]string{
		workflow.StepPickOTUs: "pick_otus_uclust.py",
	}, cfg.StepPrograms())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
