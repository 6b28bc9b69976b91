package usecase

import (
	"math"
	"testing"
	"time"

	"reputation_server/internal/domain"
)

func TestApplyFillTenTradeSequence(t *testing.T) {
	pnls := []float64{150, -50, 200, 75, -25, 300, 125, -100, 180, 250}
	execs := []float64{85, 120, 95, 110, 88, 92, 78, 105, 82, 90}

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := domain.PerformanceMetrics{AgentID: "agent-1"}
	for i := range pnls {
		applyFill(&m, pnls[i], execs[i], start.Add(time.Duration(i)*time.Second))
	}

	if m.TotalTrades != 10 {
		t.Fatalf("expected 10 trades, got %d", m.TotalTrades)
	}
	if m.WinningTrades != 7 {
		t.Fatalf("expected 7 winning trades, got %d", m.WinningTrades)
	}
	if math.Abs(m.TotalPnL-1105) > 1e-9 {
		t.Fatalf("unexpected total pnl: %f", m.TotalPnL)
	}
	if math.Abs(m.AvgExecutionMs-94.5) > 1e-9 {
		t.Fatalf("unexpected avg execution: %f", m.AvgExecutionMs)
	}
	if math.Abs(m.WinRatePct()-70) > 1e-9 {
		t.Fatalf("unexpected win rate: %f", m.WinRatePct())
	}
	if math.Abs(m.SharpeProxy-1.4) > 1e-9 {
		t.Fatalf("unexpected sharpe proxy: %f", m.SharpeProxy)
	}
	if m.MaxDrawdownBps != 10000 {
		t.Fatalf("unexpected max drawdown: %d", m.MaxDrawdownBps)
	}
	if !m.LastUpdated.Equal(start.Add(9 * time.Second)) {
		t.Fatalf("unexpected last updated: %v", m.LastUpdated)
	}
}

func TestApplyFillZeroPnLIsNotAWin(t *testing.T) {
	m := domain.PerformanceMetrics{}
	applyFill(&m, 0, 50, time.Now())

	if m.TotalTrades != 1 {
		t.Fatalf("expected 1 trade, got %d", m.TotalTrades)
	}
	if m.WinningTrades != 0 {
		t.Fatalf("breakeven trade counted as win")
	}
	if m.MaxDrawdownBps != 0 {
		t.Fatalf("breakeven trade recorded a drawdown: %d", m.MaxDrawdownBps)
	}
	if m.SharpeProxy != 0 {
		t.Fatalf("expected zero sharpe proxy, got %f", m.SharpeProxy)
	}
}

func TestApplyFillDrawdownNeverDecreases(t *testing.T) {
	now := time.Now()
	m := domain.PerformanceMetrics{}

	applyFill(&m, -100, 50, now)
	if m.MaxDrawdownBps != 10000 {
		t.Fatalf("unexpected drawdown after first loss: %d", m.MaxDrawdownBps)
	}

	applyFill(&m, -50, 50, now)
	if m.MaxDrawdownBps != 10000 {
		t.Fatalf("smaller loss moved the drawdown: %d", m.MaxDrawdownBps)
	}

	applyFill(&m, -200.5, 50, now)
	if m.MaxDrawdownBps != 20050 {
		t.Fatalf("unexpected drawdown after larger loss: %d", m.MaxDrawdownBps)
	}
}

func TestRunningMeanUsesPreUpdateCount(t *testing.T) {
	mean := runningMean(0, 0, 100)
	if mean != 100 {
		t.Fatalf("unexpected first mean: %f", mean)
	}

	mean = runningMean(mean, 1, 200)
	if mean != 150 {
		t.Fatalf("unexpected second mean: %f", mean)
	}

	mean = runningMean(mean, 2, 50)
	if math.Abs(mean-400.0/3) > 1e-9 {
		t.Fatalf("unexpected third mean: %f", mean)
	}
}

func TestSharpeProxyTracksWinRate(t *testing.T) {
	if got := sharpeProxy(0, 0); got != 0 {
		t.Fatalf("expected zero sharpe with no trades, got %f", got)
	}
	if got := sharpeProxy(7, 10); math.Abs(got-1.4) > 1e-9 {
		t.Fatalf("unexpected sharpe: %f", got)
	}
	if got := sharpeProxy(10, 10); math.Abs(got-2) > 1e-9 {
		t.Fatalf("expected sharpe cap at 2 for perfect record, got %f", got)
	}
}
