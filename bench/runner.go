// Package bench drives benchmark runs: a fixed multi-turn conversation is
// replayed against one model with or without the cache marker, usage and
// latency are accumulated per turn, and the finished run is priced,
// projected, and persisted.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/victhorio/cachebench/bench/bedrock"
	"github.com/victhorio/cachebench/bench/core"
	"github.com/victhorio/cachebench/bench/pricing"
)

// Inference settings shared by every run so that baseline and cached numbers
// stay comparable.
const (
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.1
)

type Runner struct {
	client   bedrock.ConverseAPI
	workload core.Workload
	store    Store
	perDay   int
}

// NewRunner wires a runner. store may be nil when persistence isn't wanted.
func NewRunner(client bedrock.ConverseAPI, workload core.Workload, store Store, conversationsPerDay int) *Runner {
	return &Runner{
		client:   client,
		workload: workload,
		store:    store,
		perDay:   conversationsPerDay,
	}
}

// Run executes one benchmark run. Turns are strictly sequential: each answer
// joins the history before the next question goes out, so later turns carry a
// growing prefix the cache marker can exploit. Progress events are emitted to
// events if it is non-nil.
func (r *Runner) Run(
	ctx context.Context,
	modelID bedrock.ModelID,
	mode core.Mode,
	events chan<- core.Event,
) (*core.RunResult, error) {
	model := bedrock.NewModel(
		modelID,
		r.workload.System,
		DefaultMaxTokens,
		DefaultTemperature,
		mode == core.ModeCached,
	)

	result := &core.RunResult{
		ID:        uuid.NewString(),
		Model:     model.ID(),
		Mode:      mode,
		Workload:  r.workload.Name,
		StartedAt: time.Now(),
	}

	emit(ctx, events, core.NewEvRunStart(result.ID, result.Model, mode))

	history := make([]bedrock.Exchange, 0, len(r.workload.Questions))
	for i, question := range r.workload.Questions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("Runner.Run: context error: %w", err)
		}

		emit(ctx, events, core.NewEvTurnStart(result.ID, question))

		start := time.Now()
		reply, err := model.Ask(ctx, r.client, history, question)
		if err != nil {
			return nil, fmt.Errorf("Runner.Run: turn %d/%d: %w", i+1, len(r.workload.Questions), err)
		}
		latency := time.Since(start)

		turn := core.TurnResult{
			Turn:     i + 1,
			Question: question,
			Answer:   reply.Text,
			Latency:  latency,
			Usage:    reply.Usage,
		}
		result.Turns = append(result.Turns, turn)
		result.Totals.Inc(reply.Usage)
		result.Latency += latency

		history = append(history, bedrock.Exchange{Question: question, Answer: reply.Text})

		emit(ctx, events, core.NewEvTurnDone(result.ID, turn))
	}

	result.Projection = pricing.Project(result.Totals.Cost, r.perDay)

	if r.store != nil {
		if err := r.store.Append(result); err != nil {
			return nil, fmt.Errorf("Runner.Run: error persisting run: %w", err)
		}
	}

	emit(ctx, events, core.NewEvRunDone(result))
	return result, nil
}

// emit sends an event without blocking past context cancellation. A nil
// channel silently drops events.
func emit(ctx context.Context, events chan<- core.Event, ev core.Event) {
	if events == nil {
		return
	}
	select {
	case <-ctx.Done():
	case events <- ev:
	}
}
