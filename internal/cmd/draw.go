package cmd

import (
	"github.com/spf13/cobra"

	"github.com/otuflow/otuflow/internal/config"
	"github.com/otuflow/otuflow/pkg/params"
	"github.com/otuflow/otuflow/pkg/workflow"
)

var (
	drawInput   string
	drawOutput  string
	drawParams  string
	drawSFF     string
	drawMapping string
)

var drawCmd = &cobra.Command{
	Use:   "draw <plan.gv>",
	Short: "Render the planned step graph as a DOT file without executing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrawPlan,
}

func init() {
	rootCmd.AddCommand(drawCmd)

	drawCmd.Flags().StringVarP(&drawInput, "input", "i", "", "input sequence fasta file")
	drawCmd.Flags().StringVarP(&drawOutput, "output-dir", "o", "", "output directory the plan would use")
	drawCmd.Flags().StringVarP(&drawParams, "parameters", "p", "", "parameter override file")
	drawCmd.Flags().StringVarP(&drawSFF, "sff", "s", "", "raw flowgram file (required for denoising)")
	drawCmd.Flags().StringVarP(&drawMapping, "mapping", "m", "", "metadata mapping file (required for denoising)")

	for _, flag := range []string{"input", "output-dir"} {
		cobra.CheckErr(drawCmd.MarkFlagRequired(flag))
	}
}

func runDrawPlan(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	overrides := params.Params{}
	if drawParams != "" {
		overrides, err = params.ParseFile(drawParams)
		if err != nil {
			return err
		}
	}

	dirs := &workflow.DirManager{Root: drawOutput}
	planner := &workflow.Planner{
		Builder: &workflow.Builder{
			Dirs:     dirs,
			Params:   overrides,
			Programs: cfg.StepPrograms(),
		},
		Dirs: dirs,
	}

	// Planning only: no preflight, no directories, nothing executed.
	plan, err := planner.Plan(workflow.Request{Input: drawInput, SFF: drawSFF, Mapping: drawMapping})
	if err != nil {
		return err
	}

	return workflow.NewDrawer(args[0]).Draw(plan, nil)
}
