package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reputation_server/internal/domain"
)

const maxAgentNameLen = 64

// MetricsService owns the agent registry and trade ingestion. Aggregate
// updates run under the repository's per-agent lock; collaborator calls for
// the encrypted handle happen outside it and every one of their failures is
// logged and absorbed.
type MetricsService struct {
	agents  domain.AgentRepository
	trades  domain.TradeRepository
	vault   *VaultService
	privacy domain.PrivacyProvider
	log     zerolog.Logger
	now     func() time.Time
}

func NewMetricsService(agents domain.AgentRepository, trades domain.TradeRepository, vault *VaultService, privacy domain.PrivacyProvider, log zerolog.Logger) (*MetricsService, error) {
	if agents == nil {
		return nil, errors.New("agent repository required")
	}
	if trades == nil {
		return nil, errors.New("trade repository required")
	}
	if vault == nil {
		return nil, errors.New("vault required")
	}
	if privacy == nil {
		return nil, errors.New("privacy provider required")
	}
	return &MetricsService{
		agents:  agents,
		trades:  trades,
		vault:   vault,
		privacy: privacy,
		log:     log,
		now:     time.Now,
	}, nil
}

// RegisterAgent creates the agent, issues its credential and returns the
// one-time secret alongside the record. Names are not unique; registering
// the same name twice yields two distinct agents with distinct credentials.
func (s *MetricsService) RegisterAgent(ctx context.Context, name, publicKey string) (domain.Agent, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Agent{}, "", fmt.Errorf("%w: agent name required", domain.ErrValidation)
	}
	if len(name) > maxAgentNameLen {
		return domain.Agent{}, "", fmt.Errorf("%w: agent name exceeds %d characters", domain.ErrValidation, maxAgentNameLen)
	}

	agentID := uuid.NewString()
	secret, hash, err := s.vault.Issue(agentID)
	if err != nil {
		return domain.Agent{}, "", fmt.Errorf("issue credential: %w", err)
	}

	createdAt := s.now().UTC()
	agent := domain.Agent{
		ID:             agentID,
		Name:           name,
		PublicKey:      publicKey,
		CredentialHash: hash,
		CreatedAt:      createdAt,
	}
	metrics := domain.PerformanceMetrics{
		AgentID:     agentID,
		LastUpdated: createdAt,
	}

	if err := s.agents.CreateAgent(ctx, agent, metrics); err != nil {
		return domain.Agent{}, "", fmt.Errorf("create agent: %w", err)
	}

	if payload, err := s.privacy.Encrypt(ctx, 0); err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("initial handle unavailable, agent continues without one")
	} else {
		s.storeHandle(ctx, agentID, payload, domain.HandleModeLive)
	}

	s.log.Info().Str("agent_id", agentID).Str("name", name).Msg("agent registered")
	return agent, secret, nil
}

// LogTrade folds one fill into the agent's aggregates and returns the
// updated copy. The fill row and the encrypted-handle refresh are both best
// effort; the aggregates are the record of truth either way.
func (s *MetricsService) LogTrade(ctx context.Context, agentID string, fill domain.TradeFill) (domain.PerformanceMetrics, error) {
	if agentID == "" {
		return domain.PerformanceMetrics{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}
	if fill.ExecutionMs <= 0 {
		return domain.PerformanceMetrics{}, fmt.Errorf("%w: execution time must be positive", domain.ErrValidation)
	}

	at := s.now().UTC()
	fill.AgentID = agentID
	fill.CreatedAt = at
	if fill.ID == "" {
		// The id doubles as the durable idempotency key.
		fill.ID = uuid.NewString()
	}

	updated, err := s.agents.UpdateMetrics(ctx, agentID, func(m *domain.PerformanceMetrics) {
		applyFill(m, fill.PnL, fill.ExecutionMs, at)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PerformanceMetrics{}, fmt.Errorf("agent %s: %w", agentID, domain.ErrNotFound)
		}
		return domain.PerformanceMetrics{}, fmt.Errorf("update metrics: %w", err)
	}

	if err := s.trades.AppendTrade(ctx, fill); err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("fill row not persisted")
	}

	s.refreshHandle(ctx, agentID, fill.PnL, updated.TotalPnL)

	return updated, nil
}

// refreshHandle folds the new P&L into the encrypted handle, or re-derives
// one from the aggregate when no handle exists yet. Failure leaves the
// handle stale until the next trade.
func (s *MetricsService) refreshHandle(ctx context.Context, agentID string, delta, totalPnL float64) {
	handle, err := s.agents.GetHandle(ctx, agentID)
	if err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("handle lookup failed")
		return
	}

	if handle.Empty() {
		payload, err := s.privacy.Encrypt(ctx, totalPnL)
		if err != nil {
			s.log.Warn().Err(err).Str("agent_id", agentID).Msg("handle re-derive failed, staying without one")
			return
		}
		s.storeHandle(ctx, agentID, payload, domain.HandleModeComputed)
		return
	}

	payload, err := s.privacy.Fold(ctx, handle.Ciphertext, delta)
	if err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("handle fold failed, ciphertext left stale")
		return
	}
	if payload.Mode == "" {
		payload.Mode = handle.Mode
	}
	s.storeHandle(ctx, agentID, payload, domain.HandleModeLive)
}

func (s *MetricsService) storeHandle(ctx context.Context, agentID string, payload domain.EncryptedPayload, fallbackMode domain.HandleMode) {
	mode := payload.Mode
	if mode == "" {
		mode = fallbackMode
	}

	handle := domain.EncryptedMetricsHandle{
		AgentID:     agentID,
		Ciphertext:  payload.Ciphertext,
		Proof:       payload.Proof,
		Mode:        mode,
		LastUpdated: s.now().UTC(),
	}

	if err := s.agents.PutHandle(ctx, handle); err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("handle store failed")
	}
}

func (s *MetricsService) GetAgent(ctx context.Context, agentID string) (domain.Agent, error) {
	if agentID == "" {
		return domain.Agent{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}
	return s.agents.GetAgent(ctx, agentID)
}

func (s *MetricsService) GetMetrics(ctx context.Context, agentID string) (domain.PerformanceMetrics, error) {
	if agentID == "" {
		return domain.PerformanceMetrics{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}
	return s.agents.GetMetrics(ctx, agentID)
}

func (s *MetricsService) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.agents.ListAgents(ctx)
}

func (s *MetricsService) Handle(ctx context.Context, agentID string) (domain.EncryptedMetricsHandle, error) {
	if agentID == "" {
		return domain.EncryptedMetricsHandle{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}
	return s.agents.GetHandle(ctx, agentID)
}

// ValidateCredential delegates to the vault and fails closed with it.
func (s *MetricsService) ValidateCredential(agentID, secret string) bool {
	return s.vault.Verify(agentID, secret)
}

// Warm re-seeds the vault from hydrated agent rows so credentials survive a
// restart when a durable backend is present.
func (s *MetricsService) Warm(ctx context.Context) error {
	agents, err := s.agents.ListAgents(ctx)
	if err != nil {
		return fmt.Errorf("warm vault: %w", err)
	}

	for _, agent := range agents {
		s.vault.Restore(agent.ID, agent.CredentialHash)
	}

	return nil
}
