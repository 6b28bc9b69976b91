package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"reputation_server/internal/domain"
)

// tierBand and starBand ladders are evaluated top-down; the first band whose
// criteria ALL hold wins, so qualifying for band k precludes every weaker
// band in the same computation.
type tierBand struct {
	tier       domain.Tier
	minScore   float64
	minTrades  int64
	minWinRate float64
}

var tierLadder = []tierBand{
	{domain.TierDiamond, 90, 500, 65},
	{domain.TierPlatinum, 80, 250, 60},
	{domain.TierGold, 65, 100, 55},
	{domain.TierSilver, 45, 25, 45},
	{domain.TierBronze, 0, 0, 0},
}

type starBand struct {
	stars      int
	label      string
	minScore   float64
	minTrades  int64
	minWinRate float64
	minPnL     float64
}

var starLadder = []starBand{
	{3, "elite", 85, 200, 60, 50_000},
	{2, "proven", 70, 75, 55, 10_000},
	{1, "rising", 50, 20, 45, 0},
	{0, "novice", 0, 0, 0, 0},
}

// LeaderboardEntry is one ranked row of the public leaderboard.
type LeaderboardEntry struct {
	Rank        int
	AgentID     string
	Name        string
	Score       float64
	Tier        domain.Tier
	Stars       int
	StarLabel   string
	TotalTrades int64
	WinRatePct  float64
}

// ReputationService derives scores, tiers, stars, badges and certificates.
// The collaborator's score is trusted verbatim when it answers; otherwise the
// deterministic local formula over plaintext aggregates takes over. Stars and
// certificates always derive from the stored score plus local aggregates.
type ReputationService struct {
	agents  domain.AgentRepository
	proofs  domain.ProofRepository
	reps    domain.ReputationRepository
	privacy domain.PrivacyProvider
	log     zerolog.Logger
	now     func() time.Time
	group   singleflight.Group
}

func NewReputationService(agents domain.AgentRepository, proofs domain.ProofRepository, reps domain.ReputationRepository, privacy domain.PrivacyProvider, log zerolog.Logger) (*ReputationService, error) {
	if agents == nil {
		return nil, errors.New("agent repository required")
	}
	if proofs == nil {
		return nil, errors.New("proof repository required")
	}
	if reps == nil {
		return nil, errors.New("reputation repository required")
	}
	if privacy == nil {
		return nil, errors.New("privacy provider required")
	}
	return &ReputationService{
		agents:  agents,
		proofs:  proofs,
		reps:    reps,
		privacy: privacy,
		log:     log,
		now:     time.Now,
	}, nil
}

// ComputeVerifiedReputation scores the agent and overwrites its stored
// reputation. Concurrent calls for one agent coalesce into a single
// computation.
func (s *ReputationService) ComputeVerifiedReputation(ctx context.Context, agentID string) (domain.VerifiedReputation, error) {
	if agentID == "" {
		return domain.VerifiedReputation{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}

	v, err, _ := s.group.Do(agentID, func() (any, error) {
		return s.compute(ctx, agentID)
	})
	if err != nil {
		return domain.VerifiedReputation{}, err
	}

	return v.(domain.VerifiedReputation), nil
}

func (s *ReputationService) compute(ctx context.Context, agentID string) (domain.VerifiedReputation, error) {
	metrics, err := s.agents.GetMetrics(ctx, agentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.VerifiedReputation{}, fmt.Errorf("agent %s: %w", agentID, domain.ErrNotFound)
		}
		return domain.VerifiedReputation{}, fmt.Errorf("load metrics: %w", err)
	}

	unexpired := s.unexpiredProofs(ctx, agentID)

	handle, err := s.agents.GetHandle(ctx, agentID)
	if err != nil {
		handle = domain.EncryptedMetricsHandle{AgentID: agentID}
	}

	blobs := make([]string, len(unexpired))
	for i, p := range unexpired {
		blobs[i] = p.ProofData
	}

	var (
		score       float64
		tier        domain.Tier
		attestation string
	)

	result, scoreErr := s.privacy.Score(ctx, domain.ScoreRequest{
		AgentID:    agentID,
		Ciphertext: handle.Ciphertext,
		Proofs:     blobs,
	})
	switch {
	case scoreErr == nil && result.Score != nil:
		score = clamp(*result.Score, 0, 100)
		tier = domain.Tier(result.Tier)
		if tier == "" {
			tier = tierFor(score, metrics)
		}
		attestation = result.Attestation
	default:
		if scoreErr != nil {
			s.log.Warn().Err(scoreErr).Str("agent_id", agentID).Msg("collaborator score failed, using local formula")
		} else {
			s.log.Warn().Str("agent_id", agentID).Msg("collaborator omitted score, using local formula")
		}
		score = localScore(metrics, len(unexpired))
		tier = tierFor(score, metrics)
	}

	rep := domain.VerifiedReputation{
		AgentID:     agentID,
		Score:       score,
		Tier:        tier,
		Badges:      evaluateBadges(metrics),
		Attestation: attestation,
		VerifiedAt:  s.now().UTC(),
	}

	if err := s.reps.UpsertReputation(ctx, rep); err != nil {
		return domain.VerifiedReputation{}, fmt.Errorf("store reputation: %w", err)
	}

	return rep, nil
}

func (s *ReputationService) unexpiredProofs(ctx context.Context, agentID string) []domain.ReputationProof {
	all, err := s.proofs.ProofsByAgent(ctx, agentID)
	if err != nil {
		s.log.Warn().Err(err).Str("agent_id", agentID).Msg("proof lookup failed, scoring without proofs")
		return nil
	}

	now := s.now().UTC()
	unexpired := make([]domain.ReputationProof, 0, len(all))
	for _, p := range all {
		if !p.Expired(now) {
			unexpired = append(unexpired, p)
		}
	}
	return unexpired
}

// GetReputation returns the stored verification outcome, if any.
func (s *ReputationService) GetReputation(ctx context.Context, agentID string) (domain.VerifiedReputation, error) {
	if agentID == "" {
		return domain.VerifiedReputation{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}
	return s.reps.GetReputation(ctx, agentID)
}

// CalculateStarRating applies the star ladder. Agents never verified rate
// as unverified rather than zero-star novices.
func (s *ReputationService) CalculateStarRating(ctx context.Context, agentID string) (domain.StarRating, error) {
	if agentID == "" {
		return domain.StarRating{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}

	if _, err := s.agents.GetAgent(ctx, agentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StarRating{}, fmt.Errorf("agent %s: %w", agentID, domain.ErrNotFound)
		}
		return domain.StarRating{}, err
	}

	rep, err := s.reps.GetReputation(ctx, agentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.StarRating{
				Stars:   0,
				Label:   "unverified",
				Display: domain.StarDisplay(0),
			}, nil
		}
		return domain.StarRating{}, err
	}

	metrics, err := s.agents.GetMetrics(ctx, agentID)
	if err != nil {
		return domain.StarRating{}, err
	}

	band := starFor(rep.Score, metrics)
	return domain.StarRating{
		Stars:   band.stars,
		Label:   band.label,
		Display: domain.StarDisplay(band.stars),
	}, nil
}

// TrustCertificate composes the public snapshot: rounded win rate only, a
// display-only fingerprint, 24h validity, recomputed per request.
func (s *ReputationService) TrustCertificate(ctx context.Context, agentID string) (domain.TrustCertificate, error) {
	if agentID == "" {
		return domain.TrustCertificate{}, fmt.Errorf("%w: agent id required", domain.ErrValidation)
	}

	if _, err := s.agents.GetAgent(ctx, agentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TrustCertificate{}, fmt.Errorf("agent %s: %w", agentID, domain.ErrNotFound)
		}
		return domain.TrustCertificate{}, err
	}

	metrics, err := s.agents.GetMetrics(ctx, agentID)
	if err != nil {
		return domain.TrustCertificate{}, err
	}

	issuedAt := s.now().UTC()
	cert := domain.TrustCertificate{
		AgentID:     agentID,
		TotalTrades: metrics.TotalTrades,
		WinRatePct:  math.Round(metrics.WinRatePct()),
		StarLabel:   "unverified",
		IssuedAt:    issuedAt,
		ValidUntil:  issuedAt.Add(24 * time.Hour),
	}

	rep, err := s.reps.GetReputation(ctx, agentID)
	if err == nil {
		band := starFor(rep.Score, metrics)
		cert.Verified = true
		cert.Score = rep.Score
		cert.Tier = rep.Tier
		cert.StarRating = band.stars
		cert.StarLabel = band.label
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.TrustCertificate{}, err
	}

	cert.CertificateHash = domain.CertificateDigest(agentID, cert.Score, cert.StarRating, issuedAt)
	return cert, nil
}

// Leaderboard ranks every verified agent with a positive score by stars,
// then score. Unverified and zero-score agents are excluded outright.
func (s *ReputationService) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	reps, err := s.reps.ListReputations(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(reps))
	for _, rep := range reps {
		if rep.Score <= 0 {
			continue
		}

		metrics, err := s.agents.GetMetrics(ctx, rep.AgentID)
		if err != nil {
			s.log.Warn().Err(err).Str("agent_id", rep.AgentID).Msg("skipping leaderboard row without metrics")
			continue
		}

		name := rep.AgentID
		if agent, err := s.agents.GetAgent(ctx, rep.AgentID); err == nil {
			name = agent.Name
		}

		band := starFor(rep.Score, metrics)
		entries = append(entries, LeaderboardEntry{
			AgentID:     rep.AgentID,
			Name:        name,
			Score:       rep.Score,
			Tier:        rep.Tier,
			Stars:       band.stars,
			StarLabel:   band.label,
			TotalTrades: metrics.TotalTrades,
			WinRatePct:  math.Round(metrics.WinRatePct()),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stars != entries[j].Stars {
			return entries[i].Stars > entries[j].Stars
		}
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].AgentID < entries[j].AgentID
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

// localScore is the deterministic fallback over plaintext aggregates. Each
// component clamps at its cap, the metric sum rounds once, and the proof
// bonus tops out at 15 before the final cap at 100.
func localScore(m domain.PerformanceMetrics, unexpiredProofs int) float64 {
	tradesComponent := math.Min(float64(m.TotalTrades)/200*30, 30)
	winRateComponent := math.Min(m.WinRateFraction()*40, 40)
	pnlComponent := math.Min(math.Max(m.TotalPnL, 0)/10_000*20, 20)
	execComponent := executionComponent(m.AvgExecutionMs)

	metricsScore := math.Round(tradesComponent + winRateComponent + pnlComponent + execComponent)
	proofBonus := math.Min(float64(5*unexpiredProofs), 15)

	return math.Min(metricsScore+proofBonus, 100)
}

func executionComponent(avgExecMs float64) float64 {
	switch {
	case avgExecMs <= 100:
		return 10
	case avgExecMs <= 200:
		return 7
	case avgExecMs <= 500:
		return 4
	default:
		return 0
	}
}

func tierFor(score float64, m domain.PerformanceMetrics) domain.Tier {
	winRate := m.WinRatePct()
	for _, band := range tierLadder {
		if score >= band.minScore && m.TotalTrades >= band.minTrades && winRate >= band.minWinRate {
			return band.tier
		}
	}
	return domain.TierBronze
}

func starFor(score float64, m domain.PerformanceMetrics) starBand {
	winRate := m.WinRatePct()
	for _, band := range starLadder {
		if score >= band.minScore && m.TotalTrades >= band.minTrades && winRate >= band.minWinRate && m.TotalPnL >= band.minPnL {
			return band
		}
	}
	return starLadder[len(starLadder)-1]
}
