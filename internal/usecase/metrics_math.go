package usecase

import (
	"math"
	"time"

	"reputation_server/internal/domain"
)

// applyFill folds one fill into the aggregates in place. Callers must hold
// the agent's entry lock; the running mean uses the pre-update trade count.
func applyFill(m *domain.PerformanceMetrics, pnl, execMs float64, at time.Time) {
	oldCount := m.TotalTrades

	m.AvgExecutionMs = runningMean(m.AvgExecutionMs, oldCount, execMs)
	m.TotalTrades = oldCount + 1
	if pnl > 0 {
		m.WinningTrades++
	}
	m.TotalPnL += pnl

	if pnl < 0 {
		if bps := drawdownBps(pnl); bps > m.MaxDrawdownBps {
			m.MaxDrawdownBps = bps
		}
	}

	m.SharpeProxy = sharpeProxy(m.WinningTrades, m.TotalTrades)
	m.LastUpdated = at
}

func runningMean(oldMean float64, oldCount int64, value float64) float64 {
	return (oldMean*float64(oldCount) + value) / float64(oldCount+1)
}

func sharpeProxy(wins, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 2
}

func drawdownBps(pnl float64) int64 {
	return int64(math.Round(math.Abs(pnl) * 100))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
