package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reputation_server/internal/domain"
	"reputation_server/internal/infra/repository"
)

func newReputationService(t *testing.T, store *repository.Store, privacy domain.PrivacyProvider) *ReputationService {
	t.Helper()

	svc, err := NewReputationService(store, store, store, privacy, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func badgeIDs(badges []domain.Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestComputeReputationLocalFormula(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", tenTradeMetrics())
	svc := newReputationService(t, store, &fakePrivacy{})
	ctx := context.Background()

	rep, err := svc.ComputeVerifiedReputation(ctx, "agent-1")
	require.NoError(t, err)

	// 1.5 trades + 28 win rate + 2.21 pnl + 10 execution = 41.71, rounded.
	assert.Equal(t, 42.0, rep.Score)
	assert.Equal(t, domain.TierBronze, rep.Tier)
	assert.Empty(t, rep.Attestation)
	assert.False(t, rep.VerifiedAt.IsZero())
	assert.ElementsMatch(t,
		[]string{"first_trade", "profitable", "sharpshooter", "fast_hands"},
		badgeIDs(rep.Badges))

	stored, err := svc.GetReputation(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, rep.Score, stored.Score)
}

func TestComputeReputationProofBonus(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", tenTradeMetrics())
	ctx := context.Background()

	for _, id := range []string{"p1", "p2"} {
		require.NoError(t, store.PutProof(ctx, domain.ReputationProof{
			ID:        id,
			AgentID:   "agent-1",
			ProofType: domain.ProofWinRate,
			ProofData: "blob-" + id,
			CreatedAt: time.Now().UTC(),
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}))
	}

	svc := newReputationService(t, store, &fakePrivacy{})
	rep, err := svc.ComputeVerifiedReputation(ctx, "agent-1")
	require.NoError(t, err)

	assert.Equal(t, 52.0, rep.Score)
}

func TestComputeReputationUsesCollaboratorVerdict(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", tenTradeMetrics())
	ctx := context.Background()

	require.NoError(t, store.PutHandle(ctx, domain.EncryptedMetricsHandle{AgentID: "agent-1", Ciphertext: "ct-9"}))
	require.NoError(t, store.PutProof(ctx, domain.ReputationProof{
		ID:        "p1",
		AgentID:   "agent-1",
		ProofData: "blob-1",
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}))

	var captured domain.ScoreRequest
	score := 77.0
	privacy := &fakePrivacy{
		scoreFn: func(_ context.Context, req domain.ScoreRequest) (domain.ScoreResult, error) {
			captured = req
			return domain.ScoreResult{Score: &score, Tier: "gold", Attestation: "att-1"}, nil
		},
	}

	svc := newReputationService(t, store, privacy)
	rep, err := svc.ComputeVerifiedReputation(ctx, "agent-1")
	require.NoError(t, err)

	assert.Equal(t, 77.0, rep.Score)
	assert.Equal(t, domain.TierGold, rep.Tier)
	assert.Equal(t, "att-1", rep.Attestation)

	assert.Equal(t, "ct-9", captured.Ciphertext)
	assert.Equal(t, []string{"blob-1"}, captured.Proofs)
}

func TestComputeReputationClampsCollaboratorScore(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", tenTradeMetrics())

	score := 140.0
	svc := newReputationService(t, store, &fakePrivacy{
		scoreFn: func(context.Context, domain.ScoreRequest) (domain.ScoreResult, error) {
			return domain.ScoreResult{Score: &score}, nil
		},
	})

	rep, err := svc.ComputeVerifiedReputation(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, rep.Score)
}

func TestComputeReputationOmittedScoreFallsBack(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", tenTradeMetrics())

	// A response without a score is treated like a failed call; the partial
	// tier is discarded with it.
	svc := newReputationService(t, store, &fakePrivacy{
		scoreFn: func(context.Context, domain.ScoreRequest) (domain.ScoreResult, error) {
			return domain.ScoreResult{Tier: "platinum"}, nil
		},
	})

	rep, err := svc.ComputeVerifiedReputation(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 42.0, rep.Score)
	assert.Equal(t, domain.TierBronze, rep.Tier)
}

func TestComputeReputationLookupFailures(t *testing.T) {
	svc := newReputationService(t, newTestStore(t), &fakePrivacy{})
	ctx := context.Background()

	_, err := svc.ComputeVerifiedReputation(ctx, "")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.ComputeVerifiedReputation(ctx, "ghost")
	assert.True(t, domain.IsNotFound(err))
}

func TestCalculateStarRatingUnverified(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", tenTradeMetrics())
	svc := newReputationService(t, store, &fakePrivacy{})

	rating, err := svc.CalculateStarRating(context.Background(), "agent-1")
	require.NoError(t, err)

	assert.Equal(t, 0, rating.Stars)
	assert.Equal(t, "unverified", rating.Label)
	assert.Equal(t, "☆☆☆", rating.Display)

	_, err = svc.CalculateStarRating(context.Background(), "ghost")
	assert.True(t, domain.IsNotFound(err))
}

func TestCalculateStarRatingAfterVerification(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", domain.PerformanceMetrics{
		TotalTrades:    200,
		WinningTrades:  120,
		TotalPnL:       50_000,
		AvgExecutionMs: 90,
	})

	score := 85.0
	svc := newReputationService(t, store, &fakePrivacy{
		scoreFn: func(context.Context, domain.ScoreRequest) (domain.ScoreResult, error) {
			return domain.ScoreResult{Score: &score}, nil
		},
	})
	ctx := context.Background()

	_, err := svc.ComputeVerifiedReputation(ctx, "agent-1")
	require.NoError(t, err)

	rating, err := svc.CalculateStarRating(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 3, rating.Stars)
	assert.Equal(t, "elite", rating.Label)
	assert.Equal(t, "★★★", rating.Display)
}

func TestStarLadderBands(t *testing.T) {
	cases := []struct {
		name  string
		score float64
		m     domain.PerformanceMetrics
		stars int
		label string
	}{
		{"elite at exact thresholds", 85, domain.PerformanceMetrics{TotalTrades: 200, WinningTrades: 120, TotalPnL: 50_000}, 3, "elite"},
		{"pnl short of elite", 85, domain.PerformanceMetrics{TotalTrades: 200, WinningTrades: 120, TotalPnL: 49_999}, 2, "proven"},
		{"rising floor", 50, domain.PerformanceMetrics{TotalTrades: 20, WinningTrades: 9, TotalPnL: 0}, 1, "rising"},
		{"score below rising", 49.9, domain.PerformanceMetrics{TotalTrades: 20, WinningTrades: 9, TotalPnL: 0}, 0, "novice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			band := starFor(tc.score, tc.m)
			assert.Equal(t, tc.stars, band.stars)
			assert.Equal(t, tc.label, band.label)
		})
	}
}

func TestTierLadderFirstMatchWins(t *testing.T) {
	cases := []struct {
		name  string
		score float64
		m     domain.PerformanceMetrics
		tier  domain.Tier
	}{
		{"diamond", 91, domain.PerformanceMetrics{TotalTrades: 600, WinningTrades: 420}, domain.TierDiamond},
		{"win rate drops to platinum", 91, domain.PerformanceMetrics{TotalTrades: 600, WinningTrades: 360}, domain.TierPlatinum},
		{"gold", 66, domain.PerformanceMetrics{TotalTrades: 150, WinningTrades: 90}, domain.TierGold},
		{"silver", 50, domain.PerformanceMetrics{TotalTrades: 30, WinningTrades: 15}, domain.TierSilver},
		{"high score few trades is bronze", 95, domain.PerformanceMetrics{TotalTrades: 10, WinningTrades: 9}, domain.TierBronze},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.tier, tierFor(tc.score, tc.m))
		})
	}
}

func TestTrustCertificateUnverified(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", tenTradeMetrics())
	svc := newReputationService(t, store, &fakePrivacy{})

	cert, err := svc.TrustCertificate(context.Background(), "agent-1")
	require.NoError(t, err)

	assert.False(t, cert.Verified)
	assert.Equal(t, "unverified", cert.StarLabel)
	assert.Zero(t, cert.StarRating)
	assert.Zero(t, cert.Score)
	assert.EqualValues(t, 10, cert.TotalTrades)
	assert.Equal(t, 70.0, cert.WinRatePct)
	assert.Equal(t, cert.IssuedAt.Add(24*time.Hour), cert.ValidUntil)
	assert.Equal(t,
		domain.CertificateDigest("agent-1", cert.Score, cert.StarRating, cert.IssuedAt),
		cert.CertificateHash)
}

func TestTrustCertificateAfterVerification(t *testing.T) {
	store := newTestStore(t)
	seedAgent(t, store, "agent-1", tenTradeMetrics())
	svc := newReputationService(t, store, &fakePrivacy{})
	ctx := context.Background()

	_, err := svc.ComputeVerifiedReputation(ctx, "agent-1")
	require.NoError(t, err)

	cert, err := svc.TrustCertificate(ctx, "agent-1")
	require.NoError(t, err)

	assert.True(t, cert.Verified)
	assert.Equal(t, 42.0, cert.Score)
	assert.Equal(t, domain.TierBronze, cert.Tier)
	assert.Equal(t, "novice", cert.StarLabel)
	assert.Zero(t, cert.StarRating)
}

func TestLeaderboardRanksAndExcludes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedAgent(t, store, "high-star", domain.PerformanceMetrics{TotalTrades: 200, WinningTrades: 120, TotalPnL: 50_000})
	seedAgent(t, store, "high-score", domain.PerformanceMetrics{TotalTrades: 80, WinningTrades: 45, TotalPnL: 15_000})
	seedAgent(t, store, "zero-score", tenTradeMetrics())
	seedAgent(t, store, "unverified", tenTradeMetrics())

	require.NoError(t, store.UpsertReputation(ctx, domain.VerifiedReputation{AgentID: "high-star", Score: 85}))
	require.NoError(t, store.UpsertReputation(ctx, domain.VerifiedReputation{AgentID: "high-score", Score: 95}))
	require.NoError(t, store.UpsertReputation(ctx, domain.VerifiedReputation{AgentID: "zero-score", Score: 0}))

	svc := newReputationService(t, store, &fakePrivacy{})
	entries, err := svc.Leaderboard(ctx)
	require.NoError(t, err)

	require.Len(t, entries, 2)

	// Three stars outrank two regardless of the raw score.
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "high-star", entries[0].AgentID)
	assert.Equal(t, 3, entries[0].Stars)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "high-score", entries[1].AgentID)
	assert.Equal(t, 2, entries[1].Stars)
	assert.Equal(t, "agent high-star", entries[0].Name)
}

func TestLocalScoreCapsAt100(t *testing.T) {
	m := domain.PerformanceMetrics{
		TotalTrades:    1000,
		WinningTrades:  1000,
		TotalPnL:       1_000_000,
		AvgExecutionMs: 50,
	}

	assert.Equal(t, 100.0, localScore(m, 0))
	assert.Equal(t, 100.0, localScore(m, 4))
}

func TestLocalScoreProofBonusCaps(t *testing.T) {
	m := tenTradeMetrics()

	assert.Equal(t, 42.0, localScore(m, 0))
	assert.Equal(t, 47.0, localScore(m, 1))
	assert.Equal(t, 57.0, localScore(m, 3))
	// Four or more proofs hit the 15-point bonus ceiling.
	assert.Equal(t, 57.0, localScore(m, 4))
}

func TestExecutionComponentBands(t *testing.T) {
	cases := []struct {
		execMs float64
		want   float64
	}{
		{94.5, 10},
		{100, 10},
		{100.1, 7},
		{200, 7},
		{350, 4},
		{500, 4},
		{500.1, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, executionComponent(tc.execMs), "exec %v ms", tc.execMs)
	}
}
