package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/victhorio/cachebench/bench"
	"github.com/victhorio/cachebench/bench/bedrock"
	"github.com/victhorio/cachebench/bench/core"
	"github.com/victhorio/cachebench/bench/report"
	"github.com/victhorio/cachebench/prompts"
)

var runFlags struct {
	model    string
	cached   bool
	plain    bool
	answers  bool
	noStore  bool
	out      string
	workload string
	volume   int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark one model in one mode",
	Long: `Run the benchmark conversation against a single model, either as a
plain baseline or with the prompt cache point enabled.

Examples:
  # Baseline, default model
  cachebench run

  # Same conversation with caching, watching cache hits per turn
  cachebench run --cached

  # A specific model, saving the result file
  cachebench run --model amazon.nova-lite-v1:0 --cached --out results.json`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.model, "model", string(bedrock.NovaPro), "Bedrock model ID")
	runCmd.Flags().BoolVar(&runFlags.cached, "cached", false, "add the prompt cache point")
	runCmd.Flags().BoolVar(&runFlags.plain, "plain", false, "line-by-line output instead of the live view")
	runCmd.Flags().BoolVar(&runFlags.answers, "answers", false, "show model answers")
	runCmd.Flags().BoolVar(&runFlags.noStore, "no-store", false, "skip writing run history")
	runCmd.Flags().StringVar(&runFlags.out, "out", "", "write the result as JSON to this path")
	runCmd.Flags().StringVar(&runFlags.workload, "workload", "", "custom workload YAML file")
	runCmd.Flags().IntVar(&runFlags.volume, "volume", 0, "conversations/day for projections (default from env)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runFlags.volume > 0 {
		cfg.ConversationsPerDay = runFlags.volume
	}

	workload, err := loadWorkload(runFlags.workload)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newBedrockClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg, runFlags.noStore)
	if err != nil {
		return err
	}
	defer closeStore()

	runner := bench.NewRunner(client, workload, store, cfg.ConversationsPerDay)
	modelID := bedrock.ModelID(runFlags.model)
	mode := core.ModeBaseline
	if runFlags.cached {
		mode = core.ModeCached
	}

	var result *core.RunResult
	if runFlags.plain {
		result, err = runPlain(ctx, runner, modelID, mode)
	} else {
		result, err = runLive(ctx, runner, modelID, mode)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(report.Summary(result))

	if runFlags.out != "" {
		if err := report.WriteRun(runFlags.out, result); err != nil {
			return err
		}
		fmt.Printf("Results saved to: %s\n", runFlags.out)
	}

	return nil
}

func loadWorkload(path string) (core.Workload, error) {
	if path != "" {
		return prompts.ReadWorkloadFile(path)
	}
	return prompts.LoadWorkload("support")
}

func openStore(cfg Config, disabled bool) (bench.Store, func(), error) {
	if disabled {
		return nil, func() {}, nil
	}

	store, err := bench.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open run history at %s: %w", cfg.DBPath, err)
	}
	return store, func() { store.Close() }, nil
}

// runPlain drives a single run with line-by-line progress output.
func runPlain(
	ctx context.Context,
	runner *bench.Runner,
	modelID bedrock.ModelID,
	mode core.Mode,
) (*core.RunResult, error) {
	type outcome struct {
		result *core.RunResult
		err    error
	}

	events := make(chan core.Event, 8)
	done := make(chan outcome, 1)

	go func() {
		result, err := runner.Run(ctx, modelID, mode, events)
		close(events)
		done <- outcome{result, err}
	}()

	printEvents(events, mode)

	oc := <-done
	if oc.err != nil {
		return nil, oc.err
	}
	return oc.result, nil
}

func printEvents(events <-chan core.Event, mode core.Mode) {
	cached := mode == core.ModeCached
	for ev := range events {
		switch ev.Type {
		case core.EvRunStart:
			fmt.Printf("%s — %s\n", ev.Model, ev.Mode.Label())
		case core.EvTurnStart:
			fmt.Printf("Q: %s\n", ev.Question)
		case core.EvTurnDone:
			fmt.Println(report.TurnLine(ev.Turn, cached))
			if runFlags.answers {
				fmt.Println(report.WrapAnswer(ev.Turn.Answer, 80))
			}
		case core.EvRunSkipped:
			fmt.Printf("  SKIPPED %s (%s): %v\n", ev.Model, ev.Mode, ev.Err)
		}
	}
}
