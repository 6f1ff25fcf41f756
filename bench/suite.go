package bench

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/victhorio/cachebench/bench/bedrock"
	"github.com/victhorio/cachebench/bench/core"
)

// Suite runs every model in both modes and pairs the results up into
// comparisons. Runs are paced with a limiter so back-to-back benchmarks
// don't trip API throttling.
type Suite struct {
	runner  *Runner
	models  []bedrock.ModelID
	limiter *rate.Limiter
}

func NewSuite(runner *Runner, models []bedrock.ModelID, pace time.Duration) *Suite {
	if pace <= 0 {
		pace = time.Nanosecond
	}
	return &Suite{
		runner:  runner,
		models:  models,
		limiter: rate.NewLimiter(rate.Every(pace), 1),
	}
}

type SuiteResult struct {
	Runs        []*core.RunResult
	Comparisons []core.Comparison
}

// Run sweeps all model/mode combinations. A failing run (a model the account
// has no access to, for instance) is skipped with an event rather than
// aborting the sweep; context cancellation does abort.
func (s *Suite) Run(ctx context.Context, events chan<- core.Event) (*SuiteResult, error) {
	sr := &SuiteResult{}

	for _, model := range s.models {
		var baseline, cached *core.RunResult

		for _, mode := range []core.Mode{core.ModeBaseline, core.ModeCached} {
			if err := s.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("Suite.Run: %w", err)
			}

			result, err := s.runner.Run(ctx, model, mode, events)
			if err != nil {
				if ctx.Err() != nil {
					return nil, fmt.Errorf("Suite.Run: context error: %w", ctx.Err())
				}
				log.Printf("skipping %s (%s): %v", model, mode, err)
				emit(ctx, events, core.NewEvRunSkipped(string(model), mode, err))
				continue
			}

			sr.Runs = append(sr.Runs, result)
			if mode == core.ModeCached {
				cached = result
			} else {
				baseline = result
			}
		}

		if baseline != nil && cached != nil {
			sr.Comparisons = append(sr.Comparisons, core.Compare(baseline, cached))
		}
	}

	return sr, nil
}
