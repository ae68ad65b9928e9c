package workflow

import (
	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

// Request describes one pipeline run. SFF and Mapping enable the denoising
// branch and must be supplied together.
type Request struct {
	Input   string
	SFF     string
	Mapping string
	Force   bool
}

// Plan is the finalized command sequence plus the data-dependency graph
// linking the enabled steps. Neither is mutated after planning.
type Plan struct {
	Invocations []Invocation
	Graph       graph.Graph[string, string]
}

// Planner turns a Request into a Plan. Which steps are enabled depends only
// on the request: denoising runs iff both the sff and mapping files are
// given, every later step is unconditional.
type Planner struct {
	Builder *Builder
	Dirs    *DirManager
}

// Preflight rejects a run before any command is built: an inconsistent
// denoising input combination, or an output root that already exists without
// force. Analyses run for hours, so an accidental overwrite is caught here
// rather than mid-pipeline.
func (p *Planner) Preflight(req Request) error {
	if (req.SFF == "") != (req.Mapping == "") {
		return ErrDenoiseInputs
	}

	return p.Dirs.Prepare(req.Force)
}

// Plan builds the ordered invocation list. Each enabled step consumes the
// declared output of the step it depends on; the Graph records those
// dependencies for drawing and validation.
func (p *Planner) Plan(req Request) (*Plan, error) {
	if (req.SFF == "") != (req.Mapping == "") {
		return nil, ErrDenoiseInputs
	}

	plan := &Plan{
		Graph: graph.New(graph.StringHash, graph.Directed()),
	}

	seqs := req.Input
	denoising := req.SFF != "" && req.Mapping != ""

	if denoising {
		inv, err := p.addStep(plan, StepDenoise, Inputs{Seqs: seqs, SFF: req.SFF, Mapping: req.Mapping})
		if err != nil {
			return nil, err
		}
		seqs = inv.Output
	}

	otuInv, err := p.addStep(plan, StepPickOTUs, Inputs{Seqs: seqs})
	if err != nil {
		return nil, err
	}
	if denoising {
		if err := p.addLink(plan, StepDenoise, StepPickOTUs); err != nil {
			return nil, err
		}
	}

	repSetInv, err := p.addStep(plan, StepPickRepSet, Inputs{Seqs: seqs, OTUs: otuInv.Output})
	if err != nil {
		return nil, err
	}
	if err := p.addLink(plan, StepPickOTUs, StepPickRepSet); err != nil {
		return nil, err
	}

	alignInv, err := p.addStep(plan, StepAlignSeqs, Inputs{Seqs: repSetInv.Output})
	if err != nil {
		return nil, err
	}
	if err := p.addLink(plan, StepPickRepSet, StepAlignSeqs); err != nil {
		return nil, err
	}

	taxaInv, err := p.addStep(plan, StepAssignTaxonomy, Inputs{Seqs: repSetInv.Output})
	if err != nil {
		return nil, err
	}
	if err := p.addLink(plan, StepPickRepSet, StepAssignTaxonomy); err != nil {
		return nil, err
	}

	filteredInv, err := p.addStep(plan, StepFilterAlignment, Inputs{Seqs: alignInv.Output})
	if err != nil {
		return nil, err
	}
	if err := p.addLink(plan, StepAlignSeqs, StepFilterAlignment); err != nil {
		return nil, err
	}

	if _, err := p.addStep(plan, StepMakePhylogeny, Inputs{Seqs: filteredInv.Output}); err != nil {
		return nil, err
	}
	if err := p.addLink(plan, StepFilterAlignment, StepMakePhylogeny); err != nil {
		return nil, err
	}

	if _, err := p.addStep(plan, StepMakeOTUTable, Inputs{OTUs: otuInv.Output, Taxa: taxaInv.Output}); err != nil {
		return nil, err
	}
	if err := p.addLink(plan, StepPickOTUs, StepMakeOTUTable); err != nil {
		return nil, err
	}
	if err := p.addLink(plan, StepAssignTaxonomy, StepMakeOTUTable); err != nil {
		return nil, err
	}

	return plan, nil
}

func (p *Planner) addStep(plan *Plan, step StepName, in Inputs) (Invocation, error) {
	inv, err := p.Builder.Build(step, in)
	if err != nil {
		return Invocation{}, errors.Wrapf(err, "unable to build %s command", step)
	}
	if err := plan.Graph.AddVertex(step.String()); err != nil {
		return Invocation{}, errors.Wrapf(err, "unable to add step %s", step)
	}
	plan.Invocations = append(plan.Invocations, inv)

	return inv, nil
}

func (p *Planner) addLink(plan *Plan, parent, child StepName) error {
	err := plan.Graph.AddEdge(parent.String(), child.String())
	if err != nil {
		return errors.Wrapf(err, "unable to add link from %s to %s", parent, child)
	}

	return nil
}
