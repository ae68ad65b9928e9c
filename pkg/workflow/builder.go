package workflow

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/otuflow/otuflow/pkg/params"
)

// defaultPrograms maps each step to the external tool it invokes.
var defaultPrograms = map[StepName]string{
	StepDenoise:         "denoise.py",
	StepPickOTUs:        "pick_otus.py",
	StepPickRepSet:      "pick_rep_set.py",
	StepAlignSeqs:       "align_seqs.py",
	StepAssignTaxonomy:  "assign_taxonomy.py",
	StepFilterAlignment: "filter_alignment.py",
	StepMakePhylogeny:   "make_phylogeny.py",
	StepMakeOTUTable:    "make_otu_table.py",
}

// ErrUnknownStep is returned when a build is requested for a step outside the
// chain enumeration.
var ErrUnknownStep = errors.New("unknown step")

// Inputs carries the upstream paths a step may consume. The planner fills in
// only the fields the step declares.
type Inputs struct {
	// Seqs is the primary sequence input threaded along the chain.
	Seqs string
	// SFF and Mapping are consumed by denoising only.
	SFF     string
	Mapping string
	// OTUs and Taxa are the cluster map and taxonomy assignments consumed
	// downstream of clustering.
	OTUs string
	Taxa string
}

// Builder constructs one Invocation per step. Construction is pure: no
// directory is created and no tool is touched.
type Builder struct {
	Dirs   *DirManager
	Params params.Params
	// Programs overrides the default tool name per step, typically from the
	// process-wide configuration.
	Programs map[StepName]string
}

func (b *Builder) program(step StepName) string {
	if prog, ok := b.Programs[step]; ok && prog != "" {
		return prog
	}

	return defaultPrograms[step]
}

// Build resolves the invocation for one step: the program, the fixed
// arguments wired to the upstream paths, the parameter overrides in sorted
// order, and the output the next step consumes.
func (b *Builder) Build(step StepName, in Inputs) (Invocation, error) {
	dir := b.Dirs.StepDir(step)

	inv := Invocation{
		Step:      step,
		Program:   b.program(step),
		OutputDir: dir,
	}

	switch step {
	case StepDenoise:
		inv.Input = in.SFF
		inv.Args = []string{"-i", in.SFF, "-f", in.Seqs, "-m", in.Mapping, "-o", dir}
		inv.Output = filepath.Join(dir, "denoised_seqs.fasta")
	case StepPickOTUs:
		inv.Input = in.Seqs
		inv.Args = []string{"-i", in.Seqs, "-o", dir}
		inv.Output = filepath.Join(dir, basename(in.Seqs)+"_otus.txt")
	case StepPickRepSet:
		out := filepath.Join(dir, basename(in.Seqs)+"_rep_set.fasta")
		inv.Input = in.OTUs
		inv.Args = []string{"-i", in.OTUs, "-f", in.Seqs, "-o", out}
		inv.Output = out
	case StepAlignSeqs:
		inv.Input = in.Seqs
		inv.Args = []string{"-i", in.Seqs, "-o", dir}
		inv.Output = filepath.Join(dir, basename(in.Seqs)+"_aligned.fasta")
	case StepAssignTaxonomy:
		inv.Input = in.Seqs
		inv.Args = []string{"-i", in.Seqs, "-o", dir}
		inv.Output = filepath.Join(dir, basename(in.Seqs)+"_tax_assignments.txt")
	case StepFilterAlignment:
		inv.Input = in.Seqs
		inv.Args = []string{"-i", in.Seqs, "-o", dir}
		inv.Output = filepath.Join(dir, basename(in.Seqs)+"_pfiltered.fasta")
	case StepMakePhylogeny:
		out := filepath.Join(dir, "rep_set.tre")
		inv.Input = in.Seqs
		inv.Args = []string{"-i", in.Seqs, "-r", out}
		inv.Output = out
	case StepMakeOTUTable:
		out := filepath.Join(dir, "otu_table.txt")
		inv.Input = in.OTUs
		inv.Args = []string{"-i", in.OTUs, "-t", in.Taxa, "-o", out}
		inv.Output = out
	default:
		return Invocation{}, errors.Wrapf(ErrUnknownStep, "%s", step)
	}

	inv.Args = append(inv.Args, optionArgs(b.Params.Options(step.String()))...)

	return inv, nil
}

func basename(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
