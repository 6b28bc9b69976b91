package domain

import "time"

// Agent is a registered trading agent. Identity fields never change after
// registration; everything that evolves lives on PerformanceMetrics.
type Agent struct {
	ID             string
	Name           string
	PublicKey      string
	CredentialHash string
	CreatedAt      time.Time
}

// PerformanceMetrics holds the plaintext aggregates for one agent. The
// in-memory copy is authoritative; durable rows are a write-behind mirror.
type PerformanceMetrics struct {
	AgentID        string
	TotalTrades    int64
	WinningTrades  int64
	TotalPnL       float64
	MaxDrawdownBps int64
	SharpeProxy    float64
	AvgExecutionMs float64
	UptimePct      float64
	LastUpdated    time.Time
}

// WinRateFraction returns winning/total in [0,1], zero before the first trade.
func (m PerformanceMetrics) WinRateFraction() float64 {
	if m.TotalTrades == 0 {
		return 0
	}
	return float64(m.WinningTrades) / float64(m.TotalTrades)
}

// WinRatePct returns the win rate as a percentage in [0,100].
func (m PerformanceMetrics) WinRatePct() float64 {
	return m.WinRateFraction() * 100
}

// TradeFill is one executed trade as reported by an agent. Fills are append
// only; aggregates are the record of truth once a fill is folded in.
type TradeFill struct {
	ID          string
	AgentID     string
	TokenIn     string
	TokenOut    string
	AmountIn    float64
	AmountOut   float64
	PnL         float64
	ExecutionMs float64
	CreatedAt   time.Time
}

// HandleMode tags how an encrypted handle was produced.
type HandleMode string

const (
	// HandleModeLive marks ciphertext the collaborator has folded trade by trade.
	HandleModeLive HandleMode = "live"
	// HandleModeComputed marks ciphertext re-derived from aggregates.
	HandleModeComputed HandleMode = "computed"
)

// EncryptedMetricsHandle is the opaque ciphertext/proof pair issued by the
// privacy collaborator. The core stores and forwards it, never inspects it.
type EncryptedMetricsHandle struct {
	AgentID     string
	Ciphertext  string
	Proof       string
	Mode        HandleMode
	LastUpdated time.Time
}

// Empty reports whether no collaborator handle has been obtained yet.
func (h EncryptedMetricsHandle) Empty() bool {
	return h.Ciphertext == ""
}
