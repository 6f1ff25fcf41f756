package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/victhorio/cachebench/bench/core"
)

// The JSON result files favor plain USD floats and flat token counts over
// the internal integer representation, so they stay easy to diff and to
// load from notebooks.

type TurnJSON struct {
	Turn             int     `json:"turn"`
	Question         string  `json:"question"`
	LatencyS         float64 `json:"latency_s"`
	InputTokens      int64   `json:"input_tokens"`
	OutputTokens     int64   `json:"output_tokens"`
	CacheReadTokens  int64   `json:"cache_read_tokens"`
	CacheWriteTokens int64   `json:"cache_write_tokens"`
}

type TotalsJSON struct {
	InputTokens      int64   `json:"input_tokens"`
	OutputTokens     int64   `json:"output_tokens"`
	CacheReadTokens  int64   `json:"cache_read_tokens"`
	CacheWriteTokens int64   `json:"cache_write_tokens"`
	LatencyS         float64 `json:"latency_s"`
	CostUSD          float64 `json:"cost_usd"`
}

type ProjectionJSON struct {
	Conversations  int     `json:"conversations"`
	DailyCostUSD   float64 `json:"daily_cost_usd"`
	MonthlyCostUSD float64 `json:"monthly_cost_usd"`
}

type RunJSON struct {
	Benchmark       string         `json:"benchmark"`
	Model           string         `json:"model"`
	Workload        string         `json:"workload"`
	Turns           []TurnJSON     `json:"turns"`
	Totals          TotalsJSON     `json:"totals"`
	DailyProjection ProjectionJSON `json:"daily_projection"`
}

func RunToJSON(r *core.RunResult) RunJSON {
	benchmark := "baseline_no_cache"
	if r.Mode == core.ModeCached {
		benchmark = "with_prompt_caching"
	}

	out := RunJSON{
		Benchmark: benchmark,
		Model:     r.Model,
		Workload:  r.Workload,
		Turns:     make([]TurnJSON, 0, len(r.Turns)),
		Totals: TotalsJSON{
			InputTokens:      r.Totals.Input,
			OutputTokens:     r.Totals.Output,
			CacheReadTokens:  r.Totals.CacheRead,
			CacheWriteTokens: r.Totals.CacheWrite,
			LatencyS:         round(r.Latency.Seconds(), 2),
			CostUSD:          round(r.Totals.CostUSD(), 6),
		},
		DailyProjection: ProjectionJSON{
			Conversations:  r.Projection.ConversationsPerDay,
			DailyCostUSD:   round(r.Projection.DailyUSD(), 2),
			MonthlyCostUSD: round(r.Projection.MonthlyUSD(), 2),
		},
	}

	for _, t := range r.Turns {
		out.Turns = append(out.Turns, TurnJSON{
			Turn:             t.Turn,
			Question:         t.Question,
			LatencyS:         round(t.Latency.Seconds(), 2),
			InputTokens:      t.Usage.Input,
			OutputTokens:     t.Usage.Output,
			CacheReadTokens:  t.Usage.CacheRead,
			CacheWriteTokens: t.Usage.CacheWrite,
		})
	}

	return out
}

// WriteRun saves a single run result.
func WriteRun(path string, r *core.RunResult) error {
	return writeJSON(path, RunToJSON(r))
}

// WriteSuite saves a full sweep keyed by "<model>_<mode>".
func WriteSuite(path string, runs []*core.RunResult) error {
	out := make(map[string]RunJSON, len(runs))
	for _, r := range runs {
		out[configKey(r)] = RunToJSON(r)
	}
	return writeJSON(path, out)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create results directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
