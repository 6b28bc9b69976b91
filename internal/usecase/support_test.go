package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"reputation_server/internal/domain"
	"reputation_server/internal/infra/repository"
)

// fakePrivacy stubs the collaborator per method. Unset methods fail with
// ErrCollaboratorUnavailable, which is the posture most tests want.
type fakePrivacy struct {
	encryptFn func(ctx context.Context, value float64) (domain.EncryptedPayload, error)
	foldFn    func(ctx context.Context, ciphertext string, delta float64) (domain.EncryptedPayload, error)
	proveFn   func(ctx context.Context, req domain.ProveRequest) (domain.ProveResult, error)
	verifyFn  func(ctx context.Context, req domain.VerifyRequest) (domain.VerifyResult, error)
	scoreFn   func(ctx context.Context, req domain.ScoreRequest) (domain.ScoreResult, error)
}

func (f *fakePrivacy) Encrypt(ctx context.Context, value float64) (domain.EncryptedPayload, error) {
	if f.encryptFn != nil {
		return f.encryptFn(ctx, value)
	}
	return domain.EncryptedPayload{}, domain.ErrCollaboratorUnavailable
}

func (f *fakePrivacy) Fold(ctx context.Context, ciphertext string, delta float64) (domain.EncryptedPayload, error) {
	if f.foldFn != nil {
		return f.foldFn(ctx, ciphertext, delta)
	}
	return domain.EncryptedPayload{}, domain.ErrCollaboratorUnavailable
}

func (f *fakePrivacy) Prove(ctx context.Context, req domain.ProveRequest) (domain.ProveResult, error) {
	if f.proveFn != nil {
		return f.proveFn(ctx, req)
	}
	return domain.ProveResult{}, domain.ErrCollaboratorUnavailable
}

func (f *fakePrivacy) Verify(ctx context.Context, req domain.VerifyRequest) (domain.VerifyResult, error) {
	if f.verifyFn != nil {
		return f.verifyFn(ctx, req)
	}
	return domain.VerifyResult{}, domain.ErrCollaboratorUnavailable
}

func (f *fakePrivacy) Score(ctx context.Context, req domain.ScoreRequest) (domain.ScoreResult, error) {
	if f.scoreFn != nil {
		return f.scoreFn(ctx, req)
	}
	return domain.ScoreResult{}, domain.ErrCollaboratorUnavailable
}

// newTestStore builds the cache-only store composition the server itself runs
// when no database is configured.
func newTestStore(t *testing.T) *repository.Store {
	t.Helper()

	store, err := repository.NewStore(repository.NewMemoryStore(), nil, 0, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func seedAgent(t *testing.T, store *repository.Store, agentID string, metrics domain.PerformanceMetrics) {
	t.Helper()

	metrics.AgentID = agentID
	agent := domain.Agent{
		ID:        agentID,
		Name:      "agent " + agentID,
		CreatedAt: time.Unix(1_700_000_000, 0).UTC(),
	}
	require.NoError(t, store.CreateAgent(context.Background(), agent, metrics))
}

// tenTradeMetrics matches folding the reference trade sequence: ten fills,
// seven of them wins, $1105 total P&L at a 94.5ms average execution.
func tenTradeMetrics() domain.PerformanceMetrics {
	return domain.PerformanceMetrics{
		TotalTrades:    10,
		WinningTrades:  7,
		TotalPnL:       1105,
		MaxDrawdownBps: 10000,
		SharpeProxy:    1.4,
		AvgExecutionMs: 94.5,
	}
}
