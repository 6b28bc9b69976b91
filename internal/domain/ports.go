package domain

import (
	"context"
	"time"
)

// AgentRepository stores agents with their aggregates and encrypted handles.
// Reads are served from the authoritative in-memory tier; implementations
// mirror writes to a durable backend on a best-effort basis.
type AgentRepository interface {
	CreateAgent(ctx context.Context, agent Agent, metrics PerformanceMetrics) error
	GetAgent(ctx context.Context, agentID string) (Agent, error)
	ListAgents(ctx context.Context) ([]Agent, error)
	GetMetrics(ctx context.Context, agentID string) (PerformanceMetrics, error)
	// UpdateMetrics runs fn on the agent's aggregates under that agent's own
	// lock and returns the updated copy. Concurrent updates for one agent are
	// serialized; unrelated agents proceed independently.
	UpdateMetrics(ctx context.Context, agentID string, fn func(*PerformanceMetrics)) (PerformanceMetrics, error)
	GetHandle(ctx context.Context, agentID string) (EncryptedMetricsHandle, error)
	PutHandle(ctx context.Context, handle EncryptedMetricsHandle) error
}

// TradeRepository appends immutable fill records. Fills are an audit trail
// for the durable backend only; aggregates never re-read them.
type TradeRepository interface {
	AppendTrade(ctx context.Context, trade TradeFill) error
}

// ProofRepository stores attestations until their expiry sweep.
type ProofRepository interface {
	PutProof(ctx context.Context, proof ReputationProof) error
	GetProof(ctx context.Context, proofID string) (ReputationProof, error)
	ProofsByAgent(ctx context.Context, agentID string) ([]ReputationProof, error)
	// DeleteExpired removes every proof with expires_at before the cutoff and
	// returns how many were purged.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// ReputationRepository stores the latest verification outcome per agent.
type ReputationRepository interface {
	UpsertReputation(ctx context.Context, rep VerifiedReputation) error
	GetReputation(ctx context.Context, agentID string) (VerifiedReputation, error)
	ListReputations(ctx context.Context) ([]VerifiedReputation, error)
}

// EncryptedPayload is the collaborator's ciphertext envelope. Fold responses
// omit Mode; callers keep the handle's previous mode then.
type EncryptedPayload struct {
	Ciphertext string
	Proof      string
	Mode       HandleMode
}

// ProveRequest carries the claim being proven and the private values backing
// it. Private inputs never leave the process except through this call.
type ProveRequest struct {
	AgentID       string
	ProofType     ProofType
	PublicInputs  map[string]any
	PrivateInputs map[string]any
}

// ProveResult is the collaborator's attestation material.
type ProveResult struct {
	Proof           string
	VerificationKey string
	PublicOutputs   map[string]any
	CircuitTag      string
}

// VerifyRequest submits a stored proof for re-checking.
type VerifyRequest struct {
	Proof           string
	VerificationKey string
	PublicInputs    map[string]any
}

// VerifyResult reports the verifier's judgement.
type VerifyResult struct {
	Valid    bool
	Evidence string
}

// ScoreRequest asks for an MPC-style reputation score over the encrypted
// handle and the agent's unexpired proof blobs.
type ScoreRequest struct {
	AgentID    string
	Ciphertext string
	Proofs     []string
}

// ScoreResult carries the collaborator's verdict. Score is nil when the
// response omitted one, which callers treat the same as a failed call.
type ScoreResult struct {
	Score       *float64
	Tier        string
	Attestation string
}

// PrivacyProvider is the external capability provider for encryption, proof
// generation/verification and score computation. Every method may fail;
// callers own a local fallback for each and never propagate these failures
// to their own callers when one exists.
type PrivacyProvider interface {
	Encrypt(ctx context.Context, value float64) (EncryptedPayload, error)
	Fold(ctx context.Context, ciphertext string, delta float64) (EncryptedPayload, error)
	Prove(ctx context.Context, req ProveRequest) (ProveResult, error)
	Verify(ctx context.Context, req VerifyRequest) (VerifyResult, error)
	Score(ctx context.Context, req ScoreRequest) (ScoreResult, error)
}
