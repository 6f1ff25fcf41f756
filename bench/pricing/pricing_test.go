package pricing

import (
	"testing"

	"github.com/victhorio/cachebench/bench/core"
)

func TestLookupExact(t *testing.T) {
	r := Lookup("amazon.nova-lite-v1:0")
	if r.In != 60_000 {
		t.Errorf("expected nova lite input rate 60000, got %d", r.In)
	}
	if r.InCacheRead != 6_000 {
		t.Errorf("expected nova lite cache read rate 6000, got %d", r.InCacheRead)
	}
}

func TestLookupNormalized(t *testing.T) {
	// Cross-region inference profiles prefix the model ID.
	r := Lookup("us.amazon.nova-micro-v1:0")
	if r.Out != 140_000 {
		t.Errorf("expected nova micro output rate 140000, got %d", r.Out)
	}
}

func TestLookupUnknownFallsBack(t *testing.T) {
	r := Lookup("anthropic.claude-3-haiku-20240307-v1:0")
	pro := Lookup("amazon.nova-pro-v1:0")
	if r != pro {
		t.Errorf("expected nova pro fallback rates, got %+v", r)
	}
}

func TestKnown(t *testing.T) {
	if !Known("amazon.nova-pro-v1:0") {
		t.Error("nova pro should be a known model")
	}
	if Known("us.amazon.nova-pro-v1:0") {
		t.Error("prefixed IDs should not count as known")
	}
}

func TestFromUsage(t *testing.T) {
	tests := []struct {
		name  string
		model string
		usage core.Usage
		want  int64
	}{
		{
			name:  "baseline turn, input and output only",
			model: "amazon.nova-pro-v1:0",
			usage: core.Usage{Input: 1_000_000, Output: 1_000_000},
			// $0.80 + $3.20
			want: 4_000_000_000_000,
		},
		{
			name:  "cache write turn",
			model: "amazon.nova-pro-v1:0",
			usage: core.Usage{Input: 100, CacheWrite: 3200, Output: 400},
			want:  800_000*100 + 1_000_000*3200 + 3_200_000*400,
		},
		{
			name:  "cache read turn",
			model: "amazon.nova-micro-v1:0",
			usage: core.Usage{Input: 150, CacheRead: 3200, Output: 380},
			want:  35_000*150 + 3_500*3200 + 140_000*380,
		},
		{
			name:  "zero usage costs nothing",
			model: "amazon.nova-lite-v1:0",
			usage: core.Usage{},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromUsage(tt.model, tt.usage)
			if got != tt.want {
				t.Errorf("expected cost %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFromUsageCacheDiscount(t *testing.T) {
	// The whole point of the exercise: the same prefix read from cache must
	// be 90% cheaper than processing it as fresh input.
	fresh := FromUsage("amazon.nova-pro-v1:0", core.Usage{Input: 3200})
	cached := FromUsage("amazon.nova-pro-v1:0", core.Usage{CacheRead: 3200})
	if cached*10 != fresh {
		t.Errorf("expected cache reads at a 90%% discount: fresh=%d cached=%d", fresh, cached)
	}
}

func TestProject(t *testing.T) {
	p := Project(1_000_000_000, 1000) // $0.001 session
	if p.ConversationsPerDay != 1000 {
		t.Errorf("expected 1000 conversations/day, got %d", p.ConversationsPerDay)
	}
	if p.DailyCost != 1_000_000_000_000 {
		t.Errorf("expected $1.00 daily, got %d", p.DailyCost)
	}
	if p.MonthlyCost != 30_000_000_000_000 {
		t.Errorf("expected $30.00 monthly, got %d", p.MonthlyCost)
	}
	if got := p.MonthlyUSD(); got != 30.0 {
		t.Errorf("expected $30.00, got %f", got)
	}
}
