package domain

import "time"

// ProofType names a claim an agent can request an attestation for.
type ProofType string

const (
	ProofWinRate      ProofType = "win_rate"
	ProofPnLThreshold ProofType = "pnl_threshold"
	ProofTradeCount   ProofType = "trade_count"
	ProofComposite    ProofType = "composite"
)

// Valid reports whether t names a supported proof type.
func (t ProofType) Valid() bool {
	switch t {
	case ProofWinRate, ProofPnLThreshold, ProofTradeCount, ProofComposite:
		return true
	}
	return false
}

// ProofTTL is the fixed lifetime of every generated proof.
const ProofTTL = 24 * time.Hour

// ReputationProof is one attestation over an agent's aggregates. ProofData
// and VerificationKey are opaque blobs; only the public input/output maps
// carry local meaning. Records are immutable once written and are purged by
// the expiry sweep after ExpiresAt.
type ReputationProof struct {
	ID              string
	AgentID         string
	ProofType       ProofType
	ProofData       string
	VerificationKey string
	PublicInputs    map[string]any
	PublicOutputs   map[string]any
	CircuitTag      string
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// Expired reports whether the proof is past its lifetime at the given instant.
// The sweep is advisory; consumers reject on this check regardless of it.
func (p ReputationProof) Expired(at time.Time) bool {
	return at.After(p.ExpiresAt)
}

// ProofVerification is the outcome of checking a stored proof.
type ProofVerification struct {
	ProofID    string
	AgentID    string
	ProofType  ProofType
	Valid      bool
	Evidence   string
	VerifiedAt time.Time
	ExpiresAt  time.Time
}
