package cmd

import (
	"github.com/spf13/cobra"

	"github.com/otuflow/otuflow/internal/config"
	"github.com/otuflow/otuflow/internal/execx"
	"github.com/otuflow/otuflow/internal/logging"
	"github.com/otuflow/otuflow/internal/parallel"
	"github.com/otuflow/otuflow/pkg/params"
	"github.com/otuflow/otuflow/pkg/workflow"
)

var (
	runInput     string
	runOutput    string
	runParams    string
	runSFF       string
	runMapping   string
	runDraw      string
	runForce     bool
	runPrintOnly bool
	runParallel  bool
	runVerbose   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plan and execute the analysis chain",
	Long: `Run plans the step sequence for the given inputs and executes it.

Supplying both an sff file (-s) and a mapping file (-m) enables the denoising
step ahead of OTU picking; supplying only one of the two is an error. With -w
the resolved commands are printed without being called.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "input sequence fasta file")
	runCmd.Flags().StringVarP(&runOutput, "output-dir", "o", "", "output directory")
	runCmd.Flags().StringVarP(&runParams, "parameters", "p", "", "parameter override file")
	runCmd.Flags().BoolVarP(&runForce, "force", "f", false, "force overwrite of an existing output directory (existing files are not removed)")
	runCmd.Flags().BoolVarP(&runPrintOnly, "print-only", "w", false, "print the commands without calling them")
	runCmd.Flags().BoolVarP(&runParallel, "parallel", "a", false, "run in parallel where available")
	runCmd.Flags().StringVarP(&runSFF, "sff", "s", "", "raw flowgram file (required for denoising)")
	runCmd.Flags().StringVarP(&runMapping, "mapping", "m", "", "metadata mapping file (required for denoising)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "print status updates per step")
	runCmd.Flags().StringVar(&runDraw, "draw", "", "write the executed plan as a DOT file")

	for _, flag := range []string{"input", "output-dir", "parameters"} {
		cobra.CheckErr(runCmd.MarkFlagRequired(flag))
	}
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	overrides, err := params.ParseFile(runParams)
	if err != nil {
		return err
	}

	dirs := &workflow.DirManager{Root: runOutput}
	planner := &workflow.Planner{
		Builder: &workflow.Builder{
			Dirs:     dirs,
			Params:   overrides,
			Programs: cfg.StepPrograms(),
		},
		Dirs: dirs,
	}

	req := workflow.Request{
		Input:   runInput,
		SFF:     runSFF,
		Mapping: runMapping,
		Force:   runForce,
	}

	if err := planner.Preflight(req); err != nil {
		return err
	}

	plan, err := planner.Plan(req)
	if err != nil {
		return err
	}

	log, logCloser, err := logging.New(runOutput, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	var reporter workflow.Reporter = workflow.SilentReporter{}
	if runVerbose {
		reporter = workflow.VerboseReporter{W: cmd.OutOrStdout()}
	}

	timing := workflow.NewTiming()
	runner := &execx.Runner{Log: log}

	var policy workflow.Policy
	switch {
	case runPrintOnly:
		policy = workflow.PrintPolicy{W: cmd.OutOrStdout()}
	case runParallel:
		policy = workflow.ParallelPolicy{
			Runner: runner,
			Backend: &parallel.ScriptBackend{
				Runner: runner,
				Prefix: cfg.Parallel.WrapperPrefix,
				Jobs:   cfg.Parallel.Jobs,
			},
			Timing: timing,
		}
	default:
		policy = workflow.SerialPolicy{Runner: runner, Timing: timing}
	}

	log.Info("pipeline planned",
		"steps", len(plan.Invocations),
		"input", runInput,
		"output_dir", runOutput,
		"print_only", runPrintOnly,
		"parallel", runParallel,
	)

	if err := policy.Execute(cmd.Context(), plan.Invocations, reporter); err != nil {
		log.Error("pipeline failed", "error", err.Error())

		return err
	}

	if runDraw != "" {
		if err := workflow.NewDrawer(runDraw).Draw(plan, timing); err != nil {
			return err
		}
	}

	return nil
}
