package workflow

// StepName identifies one step of the fixed analysis chain.
type StepName string

const (
	StepDenoise         StepName = "denoise"
	StepPickOTUs        StepName = "pick_otus"
	StepPickRepSet      StepName = "pick_rep_set"
	StepAlignSeqs       StepName = "align_seqs"
	StepAssignTaxonomy  StepName = "assign_taxonomy"
	StepFilterAlignment StepName = "filter_alignment"
	StepMakePhylogeny   StepName = "make_phylogeny"
	StepMakeOTUTable    StepName = "make_otu_table"
)

// ChainOrder is the full step sequence. Denoising is the one optional step;
// everything after it is unconditional and linear.
var ChainOrder = []StepName{
	StepDenoise,
	StepPickOTUs,
	StepPickRepSet,
	StepAlignSeqs,
	StepAssignTaxonomy,
	StepFilterAlignment,
	StepMakePhylogeny,
	StepMakeOTUTable,
}

// parallelCapable marks the steps whose underlying tools ship a partitioned
// wrapper. Eligibility is a static property of the step, not of the backend.
var parallelCapable = map[StepName]bool{
	StepAlignSeqs:      true,
	StepAssignTaxonomy: true,
}

// ParallelCapable reports whether the step may be delegated to a parallel
// backend.
func (s StepName) ParallelCapable() bool {
	return parallelCapable[s]
}

func (s StepName) String() string {
	return string(s)
}
