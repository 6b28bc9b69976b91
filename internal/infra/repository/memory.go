package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"reputation_server/internal/domain"
)

// MemoryStore is the authoritative cache: every read the services perform is
// answered here regardless of durable-backend health. Agents, metrics and
// encrypted handles live in one entry guarded by a per-agent mutex so
// concurrent trade logging for one agent serializes without stalling others.
// Proofs and reputations have their own maps and locks.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*agentEntry

	proofMu sync.RWMutex
	proofs  map[string]domain.ReputationProof

	repMu sync.RWMutex
	reps  map[string]domain.VerifiedReputation
}

type agentEntry struct {
	mu      sync.Mutex
	agent   domain.Agent
	metrics domain.PerformanceMetrics
	handle  domain.EncryptedMetricsHandle
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*agentEntry),
		proofs:  make(map[string]domain.ReputationProof),
		reps:    make(map[string]domain.VerifiedReputation),
	}
}

func (s *MemoryStore) entry(agentID string) (*agentEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[agentID]
	return e, ok
}

func (s *MemoryStore) CreateAgent(_ context.Context, agent domain.Agent, metrics domain.PerformanceMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[agent.ID]; exists {
		return fmt.Errorf("agent %s already registered", agent.ID)
	}

	s.entries[agent.ID] = &agentEntry{agent: agent, metrics: metrics}
	return nil
}

func (s *MemoryStore) GetAgent(_ context.Context, agentID string) (domain.Agent, error) {
	e, ok := s.entry(agentID)
	if !ok {
		return domain.Agent{}, domain.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.agent, nil
}

func (s *MemoryStore) ListAgents(_ context.Context) ([]domain.Agent, error) {
	s.mu.RLock()
	entries := make([]*agentEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	agents := make([]domain.Agent, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		agents = append(agents, e.agent)
		e.mu.Unlock()
	}

	sort.Slice(agents, func(i, j int) bool {
		if agents[i].CreatedAt.Equal(agents[j].CreatedAt) {
			return agents[i].ID < agents[j].ID
		}
		return agents[i].CreatedAt.Before(agents[j].CreatedAt)
	})

	return agents, nil
}

func (s *MemoryStore) GetMetrics(_ context.Context, agentID string) (domain.PerformanceMetrics, error) {
	e, ok := s.entry(agentID)
	if !ok {
		return domain.PerformanceMetrics{}, domain.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.metrics, nil
}

// UpdateMetrics runs fn under the agent's entry lock. The read-modify-write
// is atomic with respect to every other UpdateMetrics call for that agent.
func (s *MemoryStore) UpdateMetrics(_ context.Context, agentID string, fn func(*domain.PerformanceMetrics)) (domain.PerformanceMetrics, error) {
	e, ok := s.entry(agentID)
	if !ok {
		return domain.PerformanceMetrics{}, domain.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.metrics)
	return e.metrics, nil
}

func (s *MemoryStore) GetHandle(_ context.Context, agentID string) (domain.EncryptedMetricsHandle, error) {
	e, ok := s.entry(agentID)
	if !ok {
		return domain.EncryptedMetricsHandle{}, domain.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	handle := e.handle
	if handle.AgentID == "" {
		handle.AgentID = agentID
	}
	return handle, nil
}

func (s *MemoryStore) PutHandle(_ context.Context, handle domain.EncryptedMetricsHandle) error {
	e, ok := s.entry(handle.AgentID)
	if !ok {
		return domain.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.handle = handle
	return nil
}

// Restore seeds one agent entry during warm start. Existing entries are left
// alone so hydration never clobbers live writes.
func (s *MemoryStore) Restore(agent domain.Agent, metrics domain.PerformanceMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[agent.ID]; exists {
		return
	}
	if metrics.AgentID == "" {
		metrics.AgentID = agent.ID
	}
	s.entries[agent.ID] = &agentEntry{agent: agent, metrics: metrics}
}

func (s *MemoryStore) PutProof(_ context.Context, proof domain.ReputationProof) error {
	s.proofMu.Lock()
	defer s.proofMu.Unlock()
	s.proofs[proof.ID] = proof
	return nil
}

func (s *MemoryStore) GetProof(_ context.Context, proofID string) (domain.ReputationProof, error) {
	s.proofMu.RLock()
	defer s.proofMu.RUnlock()

	proof, ok := s.proofs[proofID]
	if !ok {
		return domain.ReputationProof{}, domain.ErrNotFound
	}
	return proof, nil
}

func (s *MemoryStore) ProofsByAgent(_ context.Context, agentID string) ([]domain.ReputationProof, error) {
	s.proofMu.RLock()
	defer s.proofMu.RUnlock()

	var proofs []domain.ReputationProof
	for _, p := range s.proofs {
		if p.AgentID == agentID {
			proofs = append(proofs, p)
		}
	}

	sort.Slice(proofs, func(i, j int) bool {
		return proofs[i].CreatedAt.After(proofs[j].CreatedAt)
	})

	return proofs, nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, cutoff time.Time) (int, error) {
	s.proofMu.Lock()
	defer s.proofMu.Unlock()

	purged := 0
	for id, p := range s.proofs {
		if p.ExpiresAt.Before(cutoff) {
			delete(s.proofs, id)
			purged++
		}
	}

	return purged, nil
}

func (s *MemoryStore) UpsertReputation(_ context.Context, rep domain.VerifiedReputation) error {
	s.repMu.Lock()
	defer s.repMu.Unlock()
	s.reps[rep.AgentID] = rep
	return nil
}

func (s *MemoryStore) GetReputation(_ context.Context, agentID string) (domain.VerifiedReputation, error) {
	s.repMu.RLock()
	defer s.repMu.RUnlock()

	rep, ok := s.reps[agentID]
	if !ok {
		return domain.VerifiedReputation{}, domain.ErrNotFound
	}
	return rep, nil
}

func (s *MemoryStore) ListReputations(_ context.Context) ([]domain.VerifiedReputation, error) {
	s.repMu.RLock()
	defer s.repMu.RUnlock()

	reps := make([]domain.VerifiedReputation, 0, len(s.reps))
	for _, rep := range s.reps {
		reps = append(reps, rep)
	}

	return reps, nil
}

// RestoreReputation seeds a reputation row during warm start without
// overwriting anything computed since boot.
func (s *MemoryStore) RestoreReputation(rep domain.VerifiedReputation) {
	s.repMu.Lock()
	defer s.repMu.Unlock()

	if _, exists := s.reps[rep.AgentID]; exists {
		return
	}
	s.reps[rep.AgentID] = rep
}
