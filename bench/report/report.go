// Package report renders benchmark results for the terminal and exports
// them as JSON files.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/victhorio/cachebench/bench/core"
	"github.com/victhorio/cachebench/bench/pricing"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	savingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	cacheStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// USD formats a session-scale cost with enough precision that a fraction of
// a cent still shows up.
func USD(cost int64) string {
	return fmt.Sprintf("$%.6f", float64(cost)/1e12)
}

// USDWhole formats projection-scale costs in cents.
func USDWhole(cost int64) string {
	return fmt.Sprintf("$%.2f", float64(cost)/1e12)
}

// Tokens renders a token count with thousands separators.
func Tokens(n int64) string {
	return humanize.Comma(n)
}

// WrapAnswer wraps a model answer for terminal display.
func WrapAnswer(text string, width int) string {
	if width <= 0 {
		width = 80
	}
	return wordwrap.String(text, width)
}

// TurnLine is the one-line per-turn progress output for plain mode.
func TurnLine(t core.TurnResult, cached bool) string {
	line := fmt.Sprintf("  Turn %d: %.2fs | in=%s out=%s",
		t.Turn, t.Latency.Seconds(), Tokens(t.Usage.Input), Tokens(t.Usage.Output))
	if cached {
		line += cacheStyle.Render(fmt.Sprintf(" | cache_r=%s cache_w=%s",
			Tokens(t.Usage.CacheRead), Tokens(t.Usage.CacheWrite)))
		if t.Usage.CacheWrite > 0 && t.Usage.CacheRead == 0 {
			line += dimStyle.Render("  (prefix stored)")
		} else if t.Usage.CacheRead > 0 {
			line += dimStyle.Render("  (cache hit)")
		}
	}
	return line
}

// Summary renders the full post-run block: totals, cost breakdown, and the
// volume projection.
func Summary(r *core.RunResult) string {
	var sb strings.Builder
	rates := pricing.Lookup(r.Model)

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s — %s", r.Model, r.Mode.Label())))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Turns:               %d\n", len(r.Turns))
	fmt.Fprintf(&sb, "Total latency:       %.2fs (%.2fs/turn)\n",
		r.Latency.Seconds(), r.AvgLatency().Seconds())
	fmt.Fprintf(&sb, "Input tokens:        %s\n", Tokens(r.Totals.Input))
	if r.Mode == core.ModeCached {
		fmt.Fprintf(&sb, "Cache read tokens:   %s\n", Tokens(r.Totals.CacheRead))
		fmt.Fprintf(&sb, "Cache write tokens:  %s\n", Tokens(r.Totals.CacheWrite))
	}
	fmt.Fprintf(&sb, "Output tokens:       %s\n", Tokens(r.Totals.Output))

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("Cost breakdown"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Input:       %s x %s/1M = %s\n",
		Tokens(r.Totals.Input), ratePerMillion(rates.In), USD(rates.In*r.Totals.Input))
	if r.Mode == core.ModeCached {
		fmt.Fprintf(&sb, "  Cache read:  %s x %s/1M = %s\n",
			Tokens(r.Totals.CacheRead), ratePerMillion(rates.InCacheRead), USD(rates.InCacheRead*r.Totals.CacheRead))
		fmt.Fprintf(&sb, "  Cache write: %s x %s/1M = %s\n",
			Tokens(r.Totals.CacheWrite), ratePerMillion(rates.InCacheWrite), USD(rates.InCacheWrite*r.Totals.CacheWrite))
	}
	fmt.Fprintf(&sb, "  Output:      %s x %s/1M = %s\n",
		Tokens(r.Totals.Output), ratePerMillion(rates.Out), USD(rates.Out*r.Totals.Output))
	fmt.Fprintf(&sb, "  Session:     %s\n", USD(r.Totals.Cost))

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf(
		"Projection (%s conversations/day)", Tokens(int64(r.Projection.ConversationsPerDay)))))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Daily:       %s\n", USDWhole(r.Projection.DailyCost))
	fmt.Fprintf(&sb, "  Monthly:     %s\n", USDWhole(r.Projection.MonthlyCost))

	return sb.String()
}

// ComparisonTable renders all runs side by side, the way the full sweep
// finishes.
func ComparisonTable(runs []*core.RunResult) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Full comparison"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf(
		"%-32s %9s %11s %10s %12s %10s",
		"Config", "Latency", "Input tok", "Cache r", "Cost", "Monthly")))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("-", 88)))
	sb.WriteString("\n")

	for _, r := range runs {
		fmt.Fprintf(&sb, "%-32s %8.2fs %11s %10s %12s %10s\n",
			configKey(r),
			r.Latency.Seconds(),
			Tokens(r.Totals.Input),
			Tokens(r.Totals.CacheRead),
			USD(r.Totals.Cost),
			USDWhole(r.Projection.MonthlyCost),
		)
	}

	return sb.String()
}

// Improvements renders per-model deltas between baseline and cached runs.
func Improvements(comparisons []core.Comparison) string {
	if len(comparisons) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Improvements from caching"))
	sb.WriteString("\n")

	for _, c := range comparisons {
		sb.WriteString("\n")
		sb.WriteString(headerStyle.Render(c.Model))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  Latency:  %.2fs -> %.2fs (%+.1f%%)\n",
			c.Baseline.Latency.Seconds(), c.Cached.Latency.Seconds(), c.LatencyDelta)
		fmt.Fprintf(&sb, "  Cost:     %s -> %s (%+.1f%%)\n",
			USD(c.Baseline.Totals.Cost), USD(c.Cached.Totals.Cost), c.CostDelta)
		fmt.Fprintf(&sb, "  Monthly:  %s -> %s (save %s)\n",
			USDWhole(c.Baseline.Projection.MonthlyCost),
			USDWhole(c.Cached.Projection.MonthlyCost),
			savingStyle.Render(USDWhole(c.MonthlySavings)))
	}

	return sb.String()
}

// History renders stored runs, newest first.
func History(runs []*core.RunResult) string {
	if len(runs) == 0 {
		return dimStyle.Render("no stored runs") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf(
		"%-20s %-32s %-9s %9s %12s %10s",
		"Started", "Config", "Workload", "Latency", "Cost", "Monthly")))
	sb.WriteString("\n")

	for _, r := range runs {
		fmt.Fprintf(&sb, "%-20s %-32s %-9s %8.2fs %12s %10s\n",
			r.StartedAt.Local().Format(time.DateTime),
			configKey(r),
			r.Workload,
			r.Latency.Seconds(),
			USD(r.Totals.Cost),
			USDWhole(r.Projection.MonthlyCost),
		)
	}

	return sb.String()
}

func configKey(r *core.RunResult) string {
	return fmt.Sprintf("%s_%s", shortModel(r.Model), r.Mode)
}

// shortModel trims "amazon.nova-pro-v1:0" down to "nova-pro".
func shortModel(model string) string {
	s := strings.TrimPrefix(model, "amazon.")
	if i := strings.Index(s, "-v1:"); i > 0 {
		s = s[:i]
	}
	return s
}

func ratePerMillion(rate int64) string {
	return "$" + strconv.FormatFloat(float64(rate)/1e6, 'f', -1, 64)
}
