package usecase

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"reputation_server/internal/domain"
)

// VaultService issues and checks per-agent secrets. Only bcrypt hashes are
// retained; the raw secret crosses the vault boundary exactly once, as the
// return value of Issue. Verification fails closed: unknown agents, missing
// hashes and mismatches all come back false.
type VaultService struct {
	mu     sync.RWMutex
	hashes map[string]string
	cost   int
}

func NewVaultService(cost int) *VaultService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &VaultService{
		hashes: make(map[string]string),
		cost:   cost,
	}
}

// Issue generates a fresh secret for the agent and returns it together with
// its hash so the caller can persist the hash on the agent record. A second
// issuance for the same agent fails; credentials are not rotatable here.
func (s *VaultService) Issue(agentID string) (string, string, error) {
	if agentID == "" {
		return "", "", fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return "", "", fmt.Errorf("hash secret: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.hashes[agentID]; exists {
		return "", "", fmt.Errorf("%w: credential already issued for agent", domain.ErrValidation)
	}
	s.hashes[agentID] = string(hash)

	return secret, string(hash), nil
}

// Verify compares the candidate against the stored hash in constant time.
func (s *VaultService) Verify(agentID, candidate string) bool {
	if agentID == "" || candidate == "" {
		return false
	}

	s.mu.RLock()
	hash, ok := s.hashes[agentID]
	s.mu.RUnlock()

	if !ok || hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// Restore seeds a hash from a durable agent row during warm start. Existing
// entries win; hydration never replaces a live credential.
func (s *VaultService) Restore(agentID, hash string) {
	if agentID == "" || hash == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.hashes[agentID]; exists {
		return
	}
	s.hashes[agentID] = hash
}
