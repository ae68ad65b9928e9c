package workflow

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// stepDirs names the subdirectory each step writes under the output root.
var stepDirs = map[StepName]string{
	StepDenoise:         "denoised",
	StepPickOTUs:        "picked_otus",
	StepPickRepSet:      "rep_set",
	StepAlignSeqs:       "aligned",
	StepAssignTaxonomy:  "taxonomy",
	StepFilterAlignment: "filtered_alignment",
	StepMakePhylogeny:   "phylogeny",
	StepMakeOTUTable:    "otu_table",
}

// DirManager owns the output root. It creates the root up front and leaves
// each step's subdirectory to be created when that step first runs, so
// skipped steps never leave an empty directory behind.
type DirManager struct {
	Root string
}

// Prepare creates the output root. An existing root is a *ConflictError
// unless force is set; with force, existing files are reused in place and
// never removed.
func (m *DirManager) Prepare(force bool) error {
	if _, err := os.Stat(m.Root); err == nil {
		if !force {
			return &ConflictError{Dir: m.Root}
		}
		return nil
	}

	if err := os.MkdirAll(m.Root, 0o755); err != nil {
		return errors.Wrapf(err, "unable to create output directory %s", m.Root)
	}

	return nil
}

// StepDir returns the step's subdirectory path without creating it.
func (m *DirManager) StepDir(step StepName) string {
	return filepath.Join(m.Root, stepDirs[step])
}
