package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"reputation_server/internal/domain"
	"reputation_server/internal/infra/repository"
)

func newMetricsService(t *testing.T, store *repository.Store, privacy domain.PrivacyProvider) *MetricsService {
	t.Helper()

	svc, err := NewMetricsService(store, store, NewVaultService(bcrypt.MinCost), privacy, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestRegisterAgentIssuesWorkingCredential(t *testing.T) {
	svc := newMetricsService(t, newTestStore(t), &fakePrivacy{})
	ctx := context.Background()

	agent, secret, err := svc.RegisterAgent(ctx, "  alpha-bot  ", "pk-1")
	require.NoError(t, err)

	assert.Equal(t, "alpha-bot", agent.Name)
	assert.Equal(t, "pk-1", agent.PublicKey)
	assert.NotEmpty(t, agent.ID)
	assert.NotEmpty(t, agent.CredentialHash)
	assert.NotEmpty(t, secret)
	assert.False(t, agent.CreatedAt.IsZero())

	assert.True(t, svc.ValidateCredential(agent.ID, secret))
	assert.False(t, svc.ValidateCredential(agent.ID, "guess"))

	metrics, err := svc.GetMetrics(ctx, agent.ID)
	require.NoError(t, err)
	assert.Zero(t, metrics.TotalTrades)
	assert.Zero(t, metrics.TotalPnL)
	assert.Zero(t, metrics.UptimePct)
}

func TestRegisterAgentSameNameTwiceIsTwoAgents(t *testing.T) {
	svc := newMetricsService(t, newTestStore(t), &fakePrivacy{})
	ctx := context.Background()

	first, firstSecret, err := svc.RegisterAgent(ctx, "alpha", "pk")
	require.NoError(t, err)
	second, secondSecret, err := svc.RegisterAgent(ctx, "alpha", "pk")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, firstSecret, secondSecret)
	assert.True(t, svc.ValidateCredential(first.ID, firstSecret))
	assert.True(t, svc.ValidateCredential(second.ID, secondSecret))
	assert.False(t, svc.ValidateCredential(first.ID, secondSecret))
}

func TestRegisterAgentValidation(t *testing.T) {
	svc := newMetricsService(t, newTestStore(t), &fakePrivacy{})
	ctx := context.Background()

	_, _, err := svc.RegisterAgent(ctx, "   ", "pk")
	assert.True(t, domain.IsValidation(err))

	_, _, err = svc.RegisterAgent(ctx, strings.Repeat("x", maxAgentNameLen+1), "pk")
	assert.True(t, domain.IsValidation(err))
}

func TestGetAgentLookups(t *testing.T) {
	svc := newMetricsService(t, newTestStore(t), &fakePrivacy{})
	ctx := context.Background()

	agent, _, err := svc.RegisterAgent(ctx, "alpha", "pk-1")
	require.NoError(t, err)

	got, err := svc.GetAgent(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, got.ID)
	assert.Equal(t, "alpha", got.Name)

	_, err = svc.GetAgent(ctx, "")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.GetAgent(ctx, "ghost")
	assert.True(t, domain.IsNotFound(err))
}

func TestRegisterAgentSurvivesCollaboratorOutage(t *testing.T) {
	svc := newMetricsService(t, newTestStore(t), &fakePrivacy{})
	ctx := context.Background()

	agent, _, err := svc.RegisterAgent(ctx, "solo", "pk")
	require.NoError(t, err)

	handle, err := svc.Handle(ctx, agent.ID)
	require.NoError(t, err)
	assert.True(t, handle.Empty())
}

func TestRegisterAgentStoresInitialHandle(t *testing.T) {
	privacy := &fakePrivacy{
		encryptFn: func(_ context.Context, value float64) (domain.EncryptedPayload, error) {
			assert.Zero(t, value)
			return domain.EncryptedPayload{Ciphertext: "ct-0", Proof: "pf-0"}, nil
		},
	}
	svc := newMetricsService(t, newTestStore(t), privacy)
	ctx := context.Background()

	agent, _, err := svc.RegisterAgent(ctx, "alpha", "pk")
	require.NoError(t, err)

	handle, err := svc.Handle(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "ct-0", handle.Ciphertext)
	assert.Equal(t, domain.HandleModeLive, handle.Mode)
}

func TestLogTradeFoldsAggregatesAndHandle(t *testing.T) {
	privacy := &fakePrivacy{
		encryptFn: func(context.Context, float64) (domain.EncryptedPayload, error) {
			return domain.EncryptedPayload{Ciphertext: "ct-0"}, nil
		},
		foldFn: func(_ context.Context, ciphertext string, delta float64) (domain.EncryptedPayload, error) {
			assert.Equal(t, "ct-0", ciphertext)
			assert.Equal(t, 150.0, delta)
			return domain.EncryptedPayload{Ciphertext: "ct-1"}, nil
		},
	}
	svc := newMetricsService(t, newTestStore(t), privacy)
	ctx := context.Background()

	agent, _, err := svc.RegisterAgent(ctx, "alpha", "pk")
	require.NoError(t, err)

	metrics, err := svc.LogTrade(ctx, agent.ID, domain.TradeFill{
		TokenIn:     "USDC",
		TokenOut:    "WETH",
		AmountIn:    1000,
		AmountOut:   0.5,
		PnL:         150,
		ExecutionMs: 85,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 1, metrics.TotalTrades)
	assert.EqualValues(t, 1, metrics.WinningTrades)
	assert.Equal(t, 150.0, metrics.TotalPnL)
	assert.Equal(t, 85.0, metrics.AvgExecutionMs)

	handle, err := svc.Handle(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "ct-1", handle.Ciphertext)
	assert.Equal(t, domain.HandleModeLive, handle.Mode)
}

func TestLogTradeKeepsAggregatesWhenFoldFails(t *testing.T) {
	privacy := &fakePrivacy{
		encryptFn: func(context.Context, float64) (domain.EncryptedPayload, error) {
			return domain.EncryptedPayload{Ciphertext: "ct-0"}, nil
		},
	}
	svc := newMetricsService(t, newTestStore(t), privacy)
	ctx := context.Background()

	agent, _, err := svc.RegisterAgent(ctx, "alpha", "pk")
	require.NoError(t, err)

	metrics, err := svc.LogTrade(ctx, agent.ID, domain.TradeFill{PnL: -25, ExecutionMs: 90})
	require.NoError(t, err)
	assert.EqualValues(t, 1, metrics.TotalTrades)
	assert.EqualValues(t, 0, metrics.WinningTrades)

	// The fold failed, so the ciphertext is simply stale.
	handle, err := svc.Handle(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "ct-0", handle.Ciphertext)
}

func TestLogTradeRederivesMissingHandle(t *testing.T) {
	encrypts := 0
	privacy := &fakePrivacy{
		encryptFn: func(_ context.Context, value float64) (domain.EncryptedPayload, error) {
			encrypts++
			if encrypts == 1 {
				// Registration-time call fails; the agent starts without a handle.
				return domain.EncryptedPayload{}, domain.ErrCollaboratorUnavailable
			}
			assert.Equal(t, 300.0, value)
			return domain.EncryptedPayload{Ciphertext: "ct-derived"}, nil
		},
	}
	svc := newMetricsService(t, newTestStore(t), privacy)
	ctx := context.Background()

	agent, _, err := svc.RegisterAgent(ctx, "alpha", "pk")
	require.NoError(t, err)

	_, err = svc.LogTrade(ctx, agent.ID, domain.TradeFill{PnL: 300, ExecutionMs: 70})
	require.NoError(t, err)

	handle, err := svc.Handle(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "ct-derived", handle.Ciphertext)
	assert.Equal(t, domain.HandleModeComputed, handle.Mode)
}

func TestLogTradeValidation(t *testing.T) {
	svc := newMetricsService(t, newTestStore(t), &fakePrivacy{})
	ctx := context.Background()

	agent, _, err := svc.RegisterAgent(ctx, "alpha", "pk")
	require.NoError(t, err)

	_, err = svc.LogTrade(ctx, agent.ID, domain.TradeFill{PnL: 10, ExecutionMs: 0})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.LogTrade(ctx, "", domain.TradeFill{PnL: 10, ExecutionMs: 50})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.LogTrade(ctx, "missing", domain.TradeFill{PnL: 10, ExecutionMs: 50})
	assert.True(t, domain.IsNotFound(err))
}

func TestWarmRestoresCredentialsFromAgentRows(t *testing.T) {
	store := newTestStore(t)
	first := newMetricsService(t, store, &fakePrivacy{})
	ctx := context.Background()

	agent, secret, err := first.RegisterAgent(ctx, "alpha", "pk")
	require.NoError(t, err)

	// A fresh service over the same hydrated rows, as after a restart.
	second := newMetricsService(t, store, &fakePrivacy{})
	assert.False(t, second.ValidateCredential(agent.ID, secret))

	require.NoError(t, second.Warm(ctx))
	assert.True(t, second.ValidateCredential(agent.ID, secret))
}
