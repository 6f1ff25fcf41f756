package pricing

import "github.com/victhorio/cachebench/bench/core"

// DaysPerMonth is the billing-month length used for projections.
const DaysPerMonth = 30

// Project extrapolates a single-session cost to sustained volume: the session
// stands in for one full conversation, repeated conversationsPerDay times,
// every day for a 30-day month.
func Project(sessionCost int64, conversationsPerDay int) core.Projection {
	daily := sessionCost * int64(conversationsPerDay)
	return core.Projection{
		ConversationsPerDay: conversationsPerDay,
		DailyCost:           daily,
		MonthlyCost:         daily * DaysPerMonth,
	}
}
