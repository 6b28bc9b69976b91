package usecase

import "reputation_server/internal/domain"

type badgeRule struct {
	badge   domain.Badge
	applies func(domain.PerformanceMetrics) bool
}

// badgeCatalog is fixed. An agent's badge set is whatever predicates hold
// right now; nothing is accumulated across verifications.
var badgeCatalog = []badgeRule{
	{
		badge: domain.Badge{ID: "first_trade", Name: "First Trade", Description: "Completed at least one trade"},
		applies: func(m domain.PerformanceMetrics) bool {
			return m.TotalTrades >= 1
		},
	},
	{
		badge: domain.Badge{ID: "profitable", Name: "Profitable", Description: "Positive total P&L"},
		applies: func(m domain.PerformanceMetrics) bool {
			return m.TotalPnL > 0
		},
	},
	{
		badge: domain.Badge{ID: "sharpshooter", Name: "Sharpshooter", Description: "Win rate of 60% or better"},
		applies: func(m domain.PerformanceMetrics) bool {
			return m.TotalTrades > 0 && m.WinRatePct() >= 60
		},
	},
	{
		badge: domain.Badge{ID: "centurion", Name: "Centurion", Description: "100 trades or more"},
		applies: func(m domain.PerformanceMetrics) bool {
			return m.TotalTrades >= 100
		},
	},
	{
		badge: domain.Badge{ID: "whale", Name: "Whale", Description: "Total P&L of $10,000 or more"},
		applies: func(m domain.PerformanceMetrics) bool {
			return m.TotalPnL >= 10_000
		},
	},
	{
		badge: domain.Badge{ID: "fast_hands", Name: "Fast Hands", Description: "Average execution under 100ms"},
		applies: func(m domain.PerformanceMetrics) bool {
			return m.TotalTrades > 0 && m.AvgExecutionMs < 100
		},
	},
}

func evaluateBadges(m domain.PerformanceMetrics) []domain.Badge {
	var badges []domain.Badge
	for _, rule := range badgeCatalog {
		if rule.applies(m) {
			badges = append(badges, rule.badge)
		}
	}
	return badges
}
