// Package pricing holds the static Bedrock on-demand rate table and the
// arithmetic that turns usage counters into dollars.
package pricing

import (
	"log"
	"strings"

	"github.com/victhorio/cachebench/bench/core"
)

// Rates are expressed per single token in the same unit as core.Usage.Cost:
// a millionth of a millionth of a dollar, so 800_000 reads as $0.80 per 1M.
// Cache reads are billed at a steep discount and cache writes at a premium
// over the plain input rate. Verify against the published Bedrock pricing
// page before trusting absolute numbers.
type Rates struct {
	In           int64
	InCacheWrite int64
	InCacheRead  int64
	Out          int64
}

var modelRates = map[string]Rates{
	"amazon.nova-pro-v1:0": {
		In:           800_000,   // $0.80 per 1M
		InCacheWrite: 1_000_000, // $1.00 per 1M
		InCacheRead:  80_000,    // $0.08 per 1M
		Out:          3_200_000, // $3.20 per 1M
	},
	"amazon.nova-lite-v1:0": {
		In:           60_000,  // $0.06 per 1M
		InCacheWrite: 75_000,  // $0.075 per 1M
		InCacheRead:  6_000,   // $0.006 per 1M
		Out:          240_000, // $0.24 per 1M
	},
	"amazon.nova-micro-v1:0": {
		In:           35_000,  // $0.035 per 1M
		InCacheWrite: 44_000,  // $0.044 per 1M
		InCacheRead:  3_500,   // $0.0035 per 1M
		Out:          140_000, // $0.14 per 1M
	},
}

// Lookup resolves the rate table entry for a model ID, trying an exact match
// first and then a normalized one so that inference-profile prefixed IDs like
// "us.amazon.nova-pro-v1:0" still resolve. Unknown models fall back to Nova
// Pro rates, which overestimates rather than hides cost.
func Lookup(model string) Rates {
	if r, ok := modelRates[model]; ok {
		return r
	}

	normalized := normalizeModelID(model)
	for id, r := range modelRates {
		if strings.Contains(normalized, normalizeModelID(id)) {
			return r
		}
	}

	log.Printf("pricing: unknown model %q, assuming nova pro rates", model)
	return modelRates["amazon.nova-pro-v1:0"]
}

// Known reports whether a model has a real entry in the rate table.
func Known(model string) bool {
	_, ok := modelRates[model]
	return ok
}

func normalizeModelID(id string) string {
	id = strings.ToLower(id)
	id = strings.ReplaceAll(id, "-", "")
	id = strings.ReplaceAll(id, ".", "")
	return id
}

// FromUsage prices a usage record for a model. The four buckets are billed
// independently: Input from the API already excludes anything counted under
// CacheRead or CacheWrite.
func FromUsage(model string, u core.Usage) int64 {
	r := Lookup(model)
	return r.In*u.Input +
		r.InCacheWrite*u.CacheWrite +
		r.InCacheRead*u.CacheRead +
		r.Out*u.Output
}
