package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reputation_server/internal/domain"
)

// ProofService is the attestation ledger. Proofs are generated through the
// privacy collaborator when it answers and synthesized locally when it does
// not; either way the stored public outputs are computed locally as ground
// truth, every proof lives exactly 24 hours, and the sweep that purges
// expired entries is advisory because every read rejects them independently.
type ProofService struct {
	proofs  domain.ProofRepository
	agents  domain.AgentRepository
	privacy domain.PrivacyProvider
	log     zerolog.Logger
	now     func() time.Time
}

func NewProofService(proofs domain.ProofRepository, agents domain.AgentRepository, privacy domain.PrivacyProvider, log zerolog.Logger) (*ProofService, error) {
	if proofs == nil {
		return nil, errors.New("proof repository required")
	}
	if agents == nil {
		return nil, errors.New("agent repository required")
	}
	if privacy == nil {
		return nil, errors.New("privacy provider required")
	}
	return &ProofService{
		proofs:  proofs,
		agents:  agents,
		privacy: privacy,
		log:     log,
		now:     time.Now,
	}, nil
}

// GenerateProof builds the claim for proofType over the agent's current
// aggregates and records the resulting attestation with a fixed 24h expiry.
func (s *ProofService) GenerateProof(ctx context.Context, agentID string, proofType domain.ProofType, publicInputs map[string]any) (domain.ReputationProof, error) {
	if agentID == "" {
		return domain.ReputationProof{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}
	if !proofType.Valid() {
		return domain.ReputationProof{}, fmt.Errorf("%w: unknown proof type %q", domain.ErrValidation, proofType)
	}

	metrics, err := s.agents.GetMetrics(ctx, agentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ReputationProof{}, fmt.Errorf("agent %s: %w", agentID, domain.ErrNotFound)
		}
		return domain.ReputationProof{}, fmt.Errorf("load metrics: %w", err)
	}

	outputs, err := buildPublicOutputs(proofType, publicInputs, metrics)
	if err != nil {
		return domain.ReputationProof{}, err
	}

	createdAt := s.now().UTC()
	proof := domain.ReputationProof{
		ID:            uuid.NewString(),
		AgentID:       agentID,
		ProofType:     proofType,
		PublicInputs:  publicInputs,
		PublicOutputs: outputs,
		CreatedAt:     createdAt,
		ExpiresAt:     createdAt.Add(domain.ProofTTL),
	}

	result, err := s.privacy.Prove(ctx, domain.ProveRequest{
		AgentID:       agentID,
		ProofType:     proofType,
		PublicInputs:  publicInputs,
		PrivateInputs: privateInputs(proofType, metrics),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Str("proof_type", string(proofType)).
			Msg("collaborator prove failed, synthesizing locally")

		blob := localProofBlob(agentID, proofType, outputs, createdAt)
		proof.ProofData = blob
		proof.VerificationKey = localVerificationKey(blob)
		proof.CircuitTag = localCircuitTag(proofType)
	} else {
		proof.ProofData = result.Proof
		proof.VerificationKey = result.VerificationKey
		proof.CircuitTag = result.CircuitTag
		if proof.CircuitTag == "" {
			proof.CircuitTag = defaultCircuitTag(proofType)
		}
	}

	if err := s.proofs.PutProof(ctx, proof); err != nil {
		return domain.ReputationProof{}, fmt.Errorf("store proof: %w", err)
	}

	return proof, nil
}

// VerifyProof re-checks a stored proof. Expiry beats everything else: a
// proof past its TTL reports Expired no matter what the collaborator or the
// sweep have done.
func (s *ProofService) VerifyProof(ctx context.Context, proofID string) (domain.ProofVerification, error) {
	if proofID == "" {
		return domain.ProofVerification{}, fmt.Errorf("%w: proof id required", domain.ErrValidation)
	}

	proof, err := s.proofs.GetProof(ctx, proofID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ProofVerification{}, fmt.Errorf("proof %s: %w", proofID, domain.ErrNotFound)
		}
		return domain.ProofVerification{}, fmt.Errorf("load proof: %w", err)
	}

	verifiedAt := s.now().UTC()
	if proof.Expired(verifiedAt) {
		return domain.ProofVerification{}, fmt.Errorf("proof %s: %w", proofID, domain.ErrProofExpired)
	}

	verification := domain.ProofVerification{
		ProofID:    proof.ID,
		AgentID:    proof.AgentID,
		ProofType:  proof.ProofType,
		VerifiedAt: verifiedAt,
		ExpiresAt:  proof.ExpiresAt,
	}

	result, err := s.privacy.Verify(ctx, domain.VerifyRequest{
		Proof:           proof.ProofData,
		VerificationKey: proof.VerificationKey,
		PublicInputs:    proof.PublicOutputs,
	})
	if err == nil {
		verification.Valid = result.Valid
		verification.Evidence = result.Evidence
		return verification, nil
	}

	s.log.Warn().Err(err).Str("proof_id", proofID).Msg("collaborator verify failed, checking locally")

	if isLocalProof(proof.CircuitTag) {
		blob := localProofBlob(proof.AgentID, proof.ProofType, proof.PublicOutputs, proof.CreatedAt)
		verification.Valid = blob == proof.ProofData && localVerificationKey(blob) == proof.VerificationKey
		verification.Evidence = "local digest recomputed"
		return verification, nil
	}

	// A collaborator-issued proof cannot be judged without its verifier;
	// report invalid rather than guessing.
	verification.Valid = false
	verification.Evidence = "verifier unavailable"
	return verification, nil
}

// ProofsFor lists the agent's currently unexpired proofs.
func (s *ProofService) ProofsFor(ctx context.Context, agentID string) ([]domain.ReputationProof, error) {
	if agentID == "" {
		return nil, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}

	all, err := s.proofs.ProofsByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	unexpired := make([]domain.ReputationProof, 0, len(all))
	for _, p := range all {
		if !p.Expired(now) {
			unexpired = append(unexpired, p)
		}
	}

	return unexpired, nil
}

// SweepExpired purges proofs past their TTL and returns the count removed.
// Idempotent; safe concurrently with generation and verification.
func (s *ProofService) SweepExpired(ctx context.Context) (int, error) {
	purged, err := s.proofs.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("sweep proofs: %w", err)
	}

	if purged > 0 {
		s.log.Info().Int("purged", purged).Msg("expired proofs swept")
	}

	return purged, nil
}

func buildPublicOutputs(proofType domain.ProofType, inputs map[string]any, metrics domain.PerformanceMetrics) (map[string]any, error) {
	switch proofType {
	case domain.ProofWinRate:
		threshold, ok := floatInput(inputs, "threshold")
		if !ok || threshold < 0 || threshold > 100 {
			return nil, fmt.Errorf("%w: win_rate proof requires a threshold in [0,100]", domain.ErrValidation)
		}
		return map[string]any{
			"threshold":       threshold,
			"meets_threshold": metrics.WinRatePct() >= threshold,
		}, nil

	case domain.ProofPnLThreshold:
		min, hasMin := floatInput(inputs, "min")
		max, hasMax := floatInput(inputs, "max")
		if !hasMin && !hasMax {
			return nil, fmt.Errorf("%w: pnl_threshold proof requires min and/or max", domain.ErrValidation)
		}
		if hasMin && hasMax && min > max {
			return nil, fmt.Errorf("%w: pnl_threshold min exceeds max", domain.ErrValidation)
		}

		within := true
		outputs := map[string]any{}
		if hasMin {
			outputs["min"] = min
			within = within && metrics.TotalPnL >= min
		}
		if hasMax {
			outputs["max"] = max
			within = within && metrics.TotalPnL <= max
		}
		outputs["within_range"] = within
		return outputs, nil

	case domain.ProofTradeCount:
		minimum, ok := floatInput(inputs, "minimum")
		if !ok || minimum < 0 {
			return nil, fmt.Errorf("%w: trade_count proof requires a non-negative minimum", domain.ErrValidation)
		}
		return map[string]any{
			"minimum":       minimum,
			"meets_minimum": float64(metrics.TotalTrades) >= minimum,
		}, nil

	case domain.ProofComposite:
		outputs := map[string]any{}
		all := true
		criteria := 0

		if threshold, ok := floatInput(inputs, "win_rate_threshold"); ok {
			met := metrics.WinRatePct() >= threshold
			outputs["win_rate_threshold"] = threshold
			outputs["win_rate_met"] = met
			all = all && met
			criteria++
		}
		if min, ok := floatInput(inputs, "min_pnl"); ok {
			met := metrics.TotalPnL >= min
			outputs["min_pnl"] = min
			outputs["min_pnl_met"] = met
			all = all && met
			criteria++
		}
		if max, ok := floatInput(inputs, "max_pnl"); ok {
			met := metrics.TotalPnL <= max
			outputs["max_pnl"] = max
			outputs["max_pnl_met"] = met
			all = all && met
			criteria++
		}
		if minTrades, ok := floatInput(inputs, "min_trades"); ok {
			met := float64(metrics.TotalTrades) >= minTrades
			outputs["min_trades"] = minTrades
			outputs["min_trades_met"] = met
			all = all && met
			criteria++
		}
		if minSharpe, ok := floatInput(inputs, "min_sharpe"); ok {
			met := metrics.SharpeProxy >= minSharpe
			outputs["min_sharpe"] = minSharpe
			outputs["min_sharpe_met"] = met
			all = all && met
			criteria++
		}
		if maxDrawdown, ok := floatInput(inputs, "max_drawdown_bps"); ok {
			met := float64(metrics.MaxDrawdownBps) <= maxDrawdown
			outputs["max_drawdown_bps"] = maxDrawdown
			outputs["max_drawdown_met"] = met
			all = all && met
			criteria++
		}

		if criteria == 0 {
			return nil, fmt.Errorf("%w: composite proof requires at least one criterion", domain.ErrValidation)
		}
		outputs["all_criteria_met"] = all
		return outputs, nil
	}

	return nil, fmt.Errorf("%w: unknown proof type %q", domain.ErrValidation, proofType)
}

// privateInputs picks the raw aggregate values the claim is proven over.
// They go to the collaborator and nowhere else.
func privateInputs(proofType domain.ProofType, metrics domain.PerformanceMetrics) map[string]any {
	switch proofType {
	case domain.ProofWinRate:
		return map[string]any{
			"winning_trades": metrics.WinningTrades,
			"total_trades":   metrics.TotalTrades,
		}
	case domain.ProofPnLThreshold:
		return map[string]any{
			"total_pnl": metrics.TotalPnL,
		}
	case domain.ProofTradeCount:
		return map[string]any{
			"total_trades": metrics.TotalTrades,
		}
	default:
		return map[string]any{
			"winning_trades":   metrics.WinningTrades,
			"total_trades":     metrics.TotalTrades,
			"total_pnl":        metrics.TotalPnL,
			"sharpe_proxy":     metrics.SharpeProxy,
			"max_drawdown_bps": metrics.MaxDrawdownBps,
		}
	}
}

// localProofBlob digests the claim so locally synthesized proofs are
// deterministic and re-checkable offline. Map marshalling sorts keys, which
// keeps the digest canonical.
func localProofBlob(agentID string, proofType domain.ProofType, outputs map[string]any, createdAt time.Time) string {
	canonical, _ := json.Marshal(outputs)
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", agentID, proofType, canonical, createdAt.Unix())))
	return hex.EncodeToString(h[:])
}

func localVerificationKey(blob string) string {
	h := sha256.Sum256([]byte(blob + "|vk"))
	return hex.EncodeToString(h[:])
}

func localCircuitTag(proofType domain.ProofType) string {
	return "local/" + string(proofType) + "@v1"
}

func defaultCircuitTag(proofType domain.ProofType) string {
	return "zk/" + string(proofType) + "@v1"
}

func isLocalProof(circuitTag string) bool {
	return strings.HasPrefix(circuitTag, "local/")
}

// floatInput coerces a public-input value; request payloads arrive as JSON
// so numbers decode as float64, with numeric strings tolerated.
func floatInput(inputs map[string]any, key string) (float64, bool) {
	if inputs == nil {
		return 0, false
	}
	raw, ok := inputs[key]
	if !ok {
		return 0, false
	}

	switch val := raw.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
