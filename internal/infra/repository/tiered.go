package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"gorm.io/gorm"

	"reputation_server/internal/domain"
)

// Store composes the authoritative MemoryStore with an optional durable
// backend. Reads always come from memory. Writes land in memory first and are
// mirrored to the backend by fire-and-forget goroutines with their own
// bounded contexts; a mirror failure flips the health flag and is otherwise
// absorbed. With no database configured the store runs cache-only and every
// operation still works.
//
// Mirror writes are last-writer-wins: two overlapping metric updates may
// reach the backend out of order. The cache stays correct and the next
// update repairs the row, which is all the best-effort tier promises.
type Store struct {
	mem *MemoryStore

	agents *GormAgentRepository
	trades *GormTradeRepository
	proofs *GormProofRepository
	reps   *GormReputationRepository

	healthy atomic.Bool
	timeout time.Duration
	log     zerolog.Logger
}

func NewStore(mem *MemoryStore, db *gorm.DB, timeout time.Duration, log zerolog.Logger) (*Store, error) {
	if mem == nil {
		return nil, fmt.Errorf("memory store is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := &Store{mem: mem, timeout: timeout, log: log}

	if db != nil {
		var err error
		if s.agents, err = NewGormAgentRepository(db); err != nil {
			return nil, err
		}
		if s.trades, err = NewGormTradeRepository(db); err != nil {
			return nil, err
		}
		if s.proofs, err = NewGormProofRepository(db); err != nil {
			return nil, err
		}
		if s.reps, err = NewGormReputationRepository(db); err != nil {
			return nil, err
		}
		s.healthy.Store(true)
	}

	return s, nil
}

// DurableEnabled reports whether a backend was configured at all.
func (s *Store) DurableEnabled() bool {
	return s.agents != nil
}

// Healthy reports whether the last mirror write (or warm start) succeeded.
// Always false in cache-only mode. Observability only; reads never depend
// on it.
func (s *Store) Healthy() bool {
	return s.DurableEnabled() && s.healthy.Load()
}

// mirror runs fn against the durable backend on its own goroutine with a
// detached bounded context, recording the outcome in the health flag.
func (s *Store) mirror(op string, fn func(ctx context.Context) error) {
	if !s.DurableEnabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			s.healthy.Store(false)
			s.log.Warn().Err(err).Str("op", op).Msg("durable mirror write failed")
			return
		}
		s.healthy.Store(true)
	}()
}

// Warm hydrates the memory tier from the durable backend. Best effort: the
// caller logs a failure and proceeds with an empty cache.
func (s *Store) Warm(ctx context.Context) error {
	if !s.DurableEnabled() {
		return nil
	}

	agents, err := s.agents.ListAgents(ctx)
	if err != nil {
		s.healthy.Store(false)
		return fmt.Errorf("hydrate agents: %w", err)
	}

	metrics, err := s.agents.ListMetrics(ctx)
	if err != nil {
		s.healthy.Store(false)
		return fmt.Errorf("hydrate metrics: %w", err)
	}
	metricsByAgent := make(map[string]domain.PerformanceMetrics, len(metrics))
	for _, m := range metrics {
		metricsByAgent[m.AgentID] = m
	}

	for _, agent := range agents {
		s.mem.Restore(agent, metricsByAgent[agent.ID])
	}

	reps, err := s.reps.ListReputations(ctx)
	if err != nil {
		s.healthy.Store(false)
		return fmt.Errorf("hydrate reputations: %w", err)
	}
	for _, rep := range reps {
		s.mem.RestoreReputation(rep)
	}

	now := time.Now().UTC()
	proofs, err := s.proofs.ListProofs(ctx)
	if err != nil {
		s.healthy.Store(false)
		return fmt.Errorf("hydrate proofs: %w", err)
	}
	restored := 0
	for _, proof := range proofs {
		if proof.Expired(now) {
			continue
		}
		_ = s.mem.PutProof(ctx, proof)
		restored++
	}

	s.healthy.Store(true)
	s.log.Info().
		Int("agents", len(agents)).
		Int("reputations", len(reps)).
		Int("proofs", restored).
		Msg("cache hydrated from durable backend")

	return nil
}

func (s *Store) CreateAgent(ctx context.Context, agent domain.Agent, metrics domain.PerformanceMetrics) error {
	if err := s.mem.CreateAgent(ctx, agent, metrics); err != nil {
		return err
	}

	s.mirror("create agent", func(ctx context.Context) error {
		if err := s.agents.InsertAgent(ctx, agent); err != nil {
			return err
		}
		return s.agents.UpsertMetrics(ctx, metrics)
	})

	return nil
}

func (s *Store) GetAgent(ctx context.Context, agentID string) (domain.Agent, error) {
	return s.mem.GetAgent(ctx, agentID)
}

func (s *Store) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	return s.mem.ListAgents(ctx)
}

func (s *Store) GetMetrics(ctx context.Context, agentID string) (domain.PerformanceMetrics, error) {
	return s.mem.GetMetrics(ctx, agentID)
}

func (s *Store) UpdateMetrics(ctx context.Context, agentID string, fn func(*domain.PerformanceMetrics)) (domain.PerformanceMetrics, error) {
	updated, err := s.mem.UpdateMetrics(ctx, agentID, fn)
	if err != nil {
		return domain.PerformanceMetrics{}, err
	}

	s.mirror("upsert metrics", func(ctx context.Context) error {
		return s.agents.UpsertMetrics(ctx, updated)
	})

	return updated, nil
}

func (s *Store) GetHandle(ctx context.Context, agentID string) (domain.EncryptedMetricsHandle, error) {
	return s.mem.GetHandle(ctx, agentID)
}

// PutHandle stores ciphertext in memory only. Handles are shareable state,
// not durable state; a restart simply waits for the next collaborator call.
func (s *Store) PutHandle(ctx context.Context, handle domain.EncryptedMetricsHandle) error {
	return s.mem.PutHandle(ctx, handle)
}

// AppendTrade writes the fill row to the durable backend only. Aggregates
// already carry everything the core reads; in cache-only mode the row is
// dropped after a debug log.
func (s *Store) AppendTrade(ctx context.Context, trade domain.TradeFill) error {
	if !s.DurableEnabled() {
		s.log.Debug().Str("agent_id", trade.AgentID).Msg("cache-only mode, fill row dropped")
		return nil
	}

	s.mirror("append trade", func(ctx context.Context) error {
		return s.trades.AppendTrade(ctx, trade)
	})

	return nil
}

func (s *Store) PutProof(ctx context.Context, proof domain.ReputationProof) error {
	if err := s.mem.PutProof(ctx, proof); err != nil {
		return err
	}

	s.mirror("put proof", func(ctx context.Context) error {
		return s.proofs.PutProof(ctx, proof)
	})

	return nil
}

func (s *Store) GetProof(ctx context.Context, proofID string) (domain.ReputationProof, error) {
	return s.mem.GetProof(ctx, proofID)
}

func (s *Store) ProofsByAgent(ctx context.Context, agentID string) ([]domain.ReputationProof, error) {
	return s.mem.ProofsByAgent(ctx, agentID)
}

// DeleteExpired purges both tiers. The memory count is returned; the durable
// delete runs inline on the sweep's own context and its failure is absorbed.
func (s *Store) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	purged, err := s.mem.DeleteExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if s.DurableEnabled() {
		if _, err := s.proofs.DeleteExpired(ctx, cutoff); err != nil {
			s.healthy.Store(false)
			s.log.Warn().Err(err).Msg("durable proof sweep failed")
		}
	}

	return purged, nil
}

func (s *Store) UpsertReputation(ctx context.Context, rep domain.VerifiedReputation) error {
	if err := s.mem.UpsertReputation(ctx, rep); err != nil {
		return err
	}

	s.mirror("upsert reputation", func(ctx context.Context) error {
		return s.reps.UpsertReputation(ctx, rep)
	})

	return nil
}

func (s *Store) GetReputation(ctx context.Context, agentID string) (domain.VerifiedReputation, error) {
	return s.mem.GetReputation(ctx, agentID)
}

func (s *Store) ListReputations(ctx context.Context) ([]domain.VerifiedReputation, error) {
	return s.mem.ListReputations(ctx)
}
