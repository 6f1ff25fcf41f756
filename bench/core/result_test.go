package core

import (
	"testing"
	"time"
)

func TestUsageInc(t *testing.T) {
	var u Usage
	u.Inc(Usage{Input: 3000, CacheWrite: 3200, Output: 400, Total: 6600, Cost: 5_000_000})
	u.Inc(Usage{Input: 500, CacheRead: 3200, Output: 350, Total: 4050, Cost: 1_200_000})

	if u.Input != 3500 {
		t.Errorf("expected 3500 input tokens, got %d", u.Input)
	}
	if u.CacheRead != 3200 {
		t.Errorf("expected 3200 cache read tokens, got %d", u.CacheRead)
	}
	if u.CacheWrite != 3200 {
		t.Errorf("expected 3200 cache write tokens, got %d", u.CacheWrite)
	}
	if u.Output != 750 {
		t.Errorf("expected 750 output tokens, got %d", u.Output)
	}
	if u.Total != 10650 {
		t.Errorf("expected 10650 total tokens, got %d", u.Total)
	}
	if u.Cost != 6_200_000 {
		t.Errorf("expected cost 6200000, got %d", u.Cost)
	}
}

func TestUsageCostUSD(t *testing.T) {
	u := Usage{Cost: 1_500_000_000_000}
	if got := u.CostUSD(); got != 1.5 {
		t.Errorf("expected $1.50, got %f", got)
	}
}

func TestCompare(t *testing.T) {
	baseline := &RunResult{
		Model:   "amazon.nova-pro-v1:0",
		Mode:    ModeBaseline,
		Latency: 20 * time.Second,
		Totals:  Usage{Cost: 100_000_000},
		Projection: Projection{
			ConversationsPerDay: 1000,
			DailyCost:           100_000_000_000,
			MonthlyCost:         3_000_000_000_000,
		},
	}
	cached := &RunResult{
		Model:   "amazon.nova-pro-v1:0",
		Mode:    ModeCached,
		Latency: 12 * time.Second,
		Totals:  Usage{Cost: 40_000_000},
		Projection: Projection{
			ConversationsPerDay: 1000,
			DailyCost:           40_000_000_000,
			MonthlyCost:         1_200_000_000_000,
		},
	}

	c := Compare(baseline, cached)

	if c.Model != "amazon.nova-pro-v1:0" {
		t.Errorf("unexpected model: %s", c.Model)
	}
	if c.LatencyDelta != 40 {
		t.Errorf("expected 40%% latency improvement, got %f", c.LatencyDelta)
	}
	if c.CostDelta != 60 {
		t.Errorf("expected 60%% cost improvement, got %f", c.CostDelta)
	}
	if c.MonthlySavings != 1_800_000_000_000 {
		t.Errorf("expected 1.8T monthly savings, got %d", c.MonthlySavings)
	}
}

func TestCompareZeroBaseline(t *testing.T) {
	// A failed baseline shouldn't produce NaN deltas.
	c := Compare(&RunResult{Model: "m"}, &RunResult{Model: "m"})
	if c.LatencyDelta != 0 || c.CostDelta != 0 {
		t.Errorf("expected zero deltas, got latency=%f cost=%f", c.LatencyDelta, c.CostDelta)
	}
}

func TestAvgLatency(t *testing.T) {
	r := RunResult{
		Turns:   make([]TurnResult, 5),
		Latency: 10 * time.Second,
	}
	if got := r.AvgLatency(); got != 2*time.Second {
		t.Errorf("expected 2s average latency, got %s", got)
	}

	empty := RunResult{}
	if got := empty.AvgLatency(); got != 0 {
		t.Errorf("expected 0 average latency for empty run, got %s", got)
	}
}

func TestWorkloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       Workload
		wantErr bool
	}{
		{"valid", Workload{Name: "support", System: "You are helpful.", Questions: []string{"Hi?"}}, false},
		{"no name", Workload{System: "s", Questions: []string{"q"}}, true},
		{"no system", Workload{Name: "w", Questions: []string{"q"}}, true},
		{"no questions", Workload{Name: "w", System: "s"}, true},
		{"empty question", Workload{Name: "w", System: "s", Questions: []string{"q", ""}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
