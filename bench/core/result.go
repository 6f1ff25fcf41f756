package core

import (
	"time"
)

// Mode selects whether a run sends the cache point marker or not.
type Mode string

const (
	ModeBaseline Mode = "baseline"
	ModeCached   Mode = "cached"
)

func (m Mode) Label() string {
	if m == ModeCached {
		return "with prompt caching"
	}
	return "no caching"
}

// Usage holds the token counters reported by the Converse API for one or more
// calls. Input excludes tokens served from or written to the prompt cache;
// those are counted separately in CacheRead and CacheWrite.
type Usage struct {
	Input      int64 `json:"input"`
	CacheRead  int64 `json:"cacheRead"`
	CacheWrite int64 `json:"cacheWrite"`
	Output     int64 `json:"output"`
	Total      int64 `json:"total"`
	// unit here is a millionth of a millionth of a dollar
	// this means that a value of a trillion equals 1 USD
	Cost int64 `json:"cost"`
}

func (u *Usage) Inc(ou Usage) {
	u.Input += ou.Input
	u.CacheRead += ou.CacheRead
	u.CacheWrite += ou.CacheWrite
	u.Output += ou.Output
	u.Total += ou.Total
	u.Cost += ou.Cost
}

func (u Usage) CostUSD() float64 {
	return float64(u.Cost) / 1e12
}

// TurnResult records a single question/answer exchange.
type TurnResult struct {
	Turn     int           `json:"turn"`
	Question string        `json:"question"`
	Answer   string        `json:"answer"`
	Latency  time.Duration `json:"latency"`
	Usage    Usage         `json:"usage"`
}

// Projection extrapolates a session cost to sustained production volume.
type Projection struct {
	ConversationsPerDay int   `json:"conversationsPerDay"`
	DailyCost           int64 `json:"dailyCost"`
	MonthlyCost         int64 `json:"monthlyCost"`
}

func (p Projection) DailyUSD() float64   { return float64(p.DailyCost) / 1e12 }
func (p Projection) MonthlyUSD() float64 { return float64(p.MonthlyCost) / 1e12 }

// RunResult is one full benchmark run: a single model in a single mode,
// driven through the whole workload.
type RunResult struct {
	ID         string        `json:"id"`
	Model      string        `json:"model"`
	Mode       Mode          `json:"mode"`
	Workload   string        `json:"workload"`
	StartedAt  time.Time     `json:"startedAt"`
	Turns      []TurnResult  `json:"turns"`
	Totals     Usage         `json:"totals"`
	Latency    time.Duration `json:"latency"`
	Projection Projection    `json:"projection"`
}

func (r *RunResult) AvgLatency() time.Duration {
	if len(r.Turns) == 0 {
		return 0
	}
	return r.Latency / time.Duration(len(r.Turns))
}

// Comparison quantifies what caching bought for one model. Deltas are
// percentages relative to the baseline; positive means the cached run
// was cheaper or faster.
type Comparison struct {
	Model          string
	Baseline       *RunResult
	Cached         *RunResult
	LatencyDelta   float64
	CostDelta      float64
	MonthlySavings int64
}

func Compare(baseline, cached *RunResult) Comparison {
	c := Comparison{
		Model:          baseline.Model,
		Baseline:       baseline,
		Cached:         cached,
		MonthlySavings: baseline.Projection.MonthlyCost - cached.Projection.MonthlyCost,
	}

	if baseline.Latency > 0 {
		c.LatencyDelta = float64(baseline.Latency-cached.Latency) / float64(baseline.Latency) * 100
	}
	if baseline.Totals.Cost > 0 {
		c.CostDelta = float64(baseline.Totals.Cost-cached.Totals.Cost) / float64(baseline.Totals.Cost) * 100
	}

	return c
}
