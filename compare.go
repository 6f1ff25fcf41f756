package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/victhorio/cachebench/bench"
	"github.com/victhorio/cachebench/bench/bedrock"
	"github.com/victhorio/cachebench/bench/core"
	"github.com/victhorio/cachebench/bench/report"
)

var compareFlags struct {
	models   []string
	noStore  bool
	out      string
	workload string
	volume   int
	pace     time.Duration
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Sweep every model with and without caching",
	Long: `Run the benchmark conversation for each model twice, once as a plain
baseline and once with the prompt cache point, then print a side by side
comparison of latency, token usage and projected monthly cost.`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	tiers := bedrock.Tiers()
	defaults := make([]string, len(tiers))
	for i, m := range tiers {
		defaults[i] = string(m)
	}

	compareCmd.Flags().StringSliceVar(&compareFlags.models, "models", defaults, "Bedrock model IDs to sweep")
	compareCmd.Flags().BoolVar(&compareFlags.noStore, "no-store", false, "skip writing run history")
	compareCmd.Flags().StringVar(&compareFlags.out, "out", "", "write all results as JSON to this path")
	compareCmd.Flags().StringVar(&compareFlags.workload, "workload", "", "custom workload YAML file")
	compareCmd.Flags().IntVar(&compareFlags.volume, "volume", 0, "conversations/day for projections (default from env)")
	compareCmd.Flags().DurationVar(&compareFlags.pace, "pace", 0, "delay between benchmark runs (default from env)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if compareFlags.volume > 0 {
		cfg.ConversationsPerDay = compareFlags.volume
	}
	if compareFlags.pace > 0 {
		cfg.Pace = compareFlags.pace
	}

	workload, err := loadWorkload(compareFlags.workload)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := newBedrockClient(ctx, cfg.Region)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg, compareFlags.noStore)
	if err != nil {
		return err
	}
	defer closeStore()

	models := make([]bedrock.ModelID, 0, len(compareFlags.models))
	for _, m := range compareFlags.models {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		models = append(models, bedrock.ModelID(m))
	}
	if len(models) == 0 {
		return fmt.Errorf("no models to compare")
	}

	runner := bench.NewRunner(client, workload, store, cfg.ConversationsPerDay)
	suite := bench.NewSuite(runner, models, cfg.Pace)

	type outcome struct {
		result *bench.SuiteResult
		err    error
	}

	events := make(chan core.Event, 8)
	done := make(chan outcome, 1)

	go func() {
		result, err := suite.Run(ctx, events)
		close(events)
		done <- outcome{result, err}
	}()

	for ev := range events {
		switch ev.Type {
		case core.EvRunStart:
			fmt.Printf("\n%s — %s\n", ev.Model, ev.Mode.Label())
		case core.EvTurnDone:
			fmt.Println(report.TurnLine(ev.Turn, ev.Turn.Usage.CacheRead > 0 || ev.Turn.Usage.CacheWrite > 0))
		case core.EvRunSkipped:
			fmt.Printf("  SKIPPED %s (%s): %v\n", ev.Model, ev.Mode, ev.Err)
		}
	}

	oc := <-done
	if oc.err != nil {
		return oc.err
	}
	sr := oc.result

	if len(sr.Runs) == 0 {
		return fmt.Errorf("every benchmark was skipped; nothing to compare")
	}

	fmt.Println()
	fmt.Println(report.ComparisonTable(sr.Runs))
	if len(sr.Comparisons) > 0 {
		fmt.Println(report.Improvements(sr.Comparisons))
	}

	if compareFlags.out != "" {
		if err := report.WriteSuite(compareFlags.out, sr.Runs); err != nil {
			return err
		}
		fmt.Printf("Results saved to: %s\n", compareFlags.out)
	}

	return nil
}
