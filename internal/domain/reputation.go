package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Tier is a reputation band name.
type Tier string

const (
	TierDiamond  Tier = "diamond"
	TierPlatinum Tier = "platinum"
	TierGold     Tier = "gold"
	TierSilver   Tier = "silver"
	TierBronze   Tier = "bronze"
)

// Badge is a catalog entry an agent currently qualifies for. Badge sets are
// recomputed on every verification, never accumulated.
type Badge struct {
	ID          string
	Name        string
	Description string
}

// VerifiedReputation is the stored outcome of the latest reputation
// verification for an agent. Each verification overwrites the previous one.
type VerifiedReputation struct {
	AgentID     string
	Score       float64
	Tier        Tier
	Badges      []Badge
	Attestation string
	VerifiedAt  time.Time
}

// StarRating is the stricter public-facing ladder over score and aggregates.
type StarRating struct {
	Stars   int
	Label   string
	Display string
}

// StarDisplay renders the filled/empty glyph run for a star count in [0,3].
func StarDisplay(stars int) string {
	if stars < 0 {
		stars = 0
	}
	if stars > 3 {
		stars = 3
	}
	return strings.Repeat("★", stars) + strings.Repeat("☆", 3-stars)
}

// TrustCertificate is a public-safe reputation snapshot. It is derived on
// demand and never persisted; WinRatePct is rounded so raw series cannot be
// reconstructed from certificates.
type TrustCertificate struct {
	AgentID         string
	Verified        bool
	StarRating      int
	StarLabel       string
	Tier            Tier
	Score           float64
	TotalTrades     int64
	WinRatePct      float64
	CertificateHash string
	IssuedAt        time.Time
	ValidUntil      time.Time
}

// CertificateDigest builds the display fingerprint embedded in certificates.
// It is not a signature and offers no tamper protection; consumers wanting a
// verifiable claim should use the proof ledger instead.
func CertificateDigest(agentID string, score float64, stars int, issuedAt time.Time) string {
	parts := []string{
		agentID,
		fmt.Sprintf("%.2f", score),
		fmt.Sprintf("%d", stars),
		fmt.Sprintf("%d", issuedAt.Unix()),
	}

	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h[:])
}
