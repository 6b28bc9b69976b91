package http

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"reputation_server/internal/domain"
	"reputation_server/internal/ratelimit"
	"reputation_server/internal/usecase"
)

const headerAgentSecret = "X-Agent-Secret"

type AgentService interface {
	RegisterAgent(ctx context.Context, name, publicKey string) (domain.Agent, string, error)
	ListAgents(ctx context.Context) ([]domain.Agent, error)
	GetMetrics(ctx context.Context, agentID string) (domain.PerformanceMetrics, error)
	LogTrade(ctx context.Context, agentID string, fill domain.TradeFill) (domain.PerformanceMetrics, error)
	ValidateCredential(agentID, secret string) bool
}

type ProofService interface {
	GenerateProof(ctx context.Context, agentID string, proofType domain.ProofType, publicInputs map[string]any) (domain.ReputationProof, error)
	VerifyProof(ctx context.Context, proofID string) (domain.ProofVerification, error)
	ProofsFor(ctx context.Context, agentID string) ([]domain.ReputationProof, error)
}

type ReputationService interface {
	ComputeVerifiedReputation(ctx context.Context, agentID string) (domain.VerifiedReputation, error)
	GetReputation(ctx context.Context, agentID string) (domain.VerifiedReputation, error)
	CalculateStarRating(ctx context.Context, agentID string) (domain.StarRating, error)
	TrustCertificate(ctx context.Context, agentID string) (domain.TrustCertificate, error)
	Leaderboard(ctx context.Context) ([]usecase.LeaderboardEntry, error)
}

// HealthReporter exposes the durable tier's state for the health endpoint.
type HealthReporter interface {
	DurableEnabled() bool
	Healthy() bool
}

type Router struct {
	app        *fiber.App
	agents     AgentService
	proofs     ProofService
	reputation ReputationService
	health     HealthReporter
	limiter    *ratelimit.Limiter
}

func New(agents AgentService, proofs ProofService, reputation ReputationService, health HealthReporter, limiter *ratelimit.Limiter) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: jsonErrorHandler,
	})

	r := &Router{
		app:        app,
		agents:     agents,
		proofs:     proofs,
		reputation: reputation,
		health:     health,
		limiter:    limiter,
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Post("/agents", r.rateLimit, r.registerAgent)
	v1.Get("/agents", r.listAgents)
	v1.Get("/agents/:agent_id/metrics", r.getMetrics)
	v1.Post("/agents/:agent_id/trades", r.rateLimit, r.logTrade)

	v1.Post("/agents/:agent_id/proofs", r.rateLimit, r.generateProof)
	v1.Get("/agents/:agent_id/proofs", r.listProofs)
	v1.Post("/proofs/:proof_id/verify", r.rateLimit, r.verifyProof)

	v1.Post("/agents/:agent_id/reputation", r.rateLimit, r.computeReputation)
	v1.Get("/agents/:agent_id/reputation", r.getReputation)
	v1.Get("/agents/:agent_id/stars", r.getStarRating)
	v1.Get("/agents/:agent_id/certificate", r.getCertificate)
	v1.Get("/leaderboard", r.leaderboard)

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", r.healthCheck)

	return r
}

func (r *Router) App() *fiber.App {
	return r.app
}

// jsonErrorHandler renders every error as {"error": "<msg>"} with the
// fiber.Error status when present.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// mapError translates domain sentinels into transport statuses. Anything
// unrecognized is a 500.
func mapError(err error) error {
	switch {
	case domain.IsValidation(err):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case domain.IsAuthFailure(err):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case domain.IsNotFound(err):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case domain.IsProofExpired(err):
		return fiber.NewError(fiber.StatusGone, err.Error())
	case domain.IsRateLimited(err):
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// rateLimit keys on the agent id path param when present so one agent cannot
// starve the others, and falls back to the client IP for registration.
func (r *Router) rateLimit(c *fiber.Ctx) error {
	if r.limiter == nil {
		return c.Next()
	}

	id := c.Params("agent_id")
	if id == "" {
		id = clientIP(c)
	}

	decision := r.limiter.Allow(id)
	if !decision.OK {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(decision.RetryAfter)))
		return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
	}

	return c.Next()
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.IP()
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}

type RegisterAgentRequest struct {
	Name      string `json:"name"`
	PublicKey string `json:"public_key"`
}

type RegisterAgentResponse struct {
	Agent  AgentResponse `json:"agent"`
	Secret string        `json:"secret"`
}

// AgentResponse deliberately omits the credential hash; it never leaves the
// vault.
type AgentResponse struct {
	AgentID   string    `json:"agent_id"`
	Name      string    `json:"name"`
	PublicKey string    `json:"public_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type LogTradeRequest struct {
	TradeID     string  `json:"trade_id,omitempty"`
	TokenIn     string  `json:"token_in"`
	TokenOut    string  `json:"token_out"`
	AmountIn    float64 `json:"amount_in"`
	AmountOut   float64 `json:"amount_out"`
	PnL         float64 `json:"pnl"`
	ExecutionMs float64 `json:"execution_time_ms"`
}

type MetricsResponse struct {
	AgentID        string    `json:"agent_id"`
	TotalTrades    int64     `json:"total_trades"`
	WinningTrades  int64     `json:"winning_trades"`
	WinRatePct     float64   `json:"win_rate"`
	TotalPnL       float64   `json:"total_pnl"`
	MaxDrawdownBps int64     `json:"max_drawdown_bps"`
	SharpeProxy    float64   `json:"sharpe_proxy"`
	AvgExecutionMs float64   `json:"avg_execution_time_ms"`
	UptimePct      float64   `json:"uptime_pct"`
	LastUpdated    time.Time `json:"last_updated"`
}

type GenerateProofRequest struct {
	ProofType    string         `json:"proof_type"`
	PublicInputs map[string]any `json:"public_inputs"`
}

type ProofResponse struct {
	ProofID         string         `json:"proof_id"`
	AgentID         string         `json:"agent_id"`
	ProofType       string         `json:"proof_type"`
	ProofData       string         `json:"proof_data"`
	VerificationKey string         `json:"verification_key"`
	PublicInputs    map[string]any `json:"public_inputs,omitempty"`
	PublicOutputs   map[string]any `json:"public_outputs"`
	CircuitTag      string         `json:"circuit_tag"`
	CreatedAt       time.Time      `json:"created_at"`
	ExpiresAt       time.Time      `json:"expires_at"`
}

type VerificationResponse struct {
	ProofID    string    `json:"proof_id"`
	AgentID    string    `json:"agent_id"`
	ProofType  string    `json:"proof_type"`
	Valid      bool      `json:"valid"`
	Evidence   string    `json:"verification_evidence"`
	VerifiedAt time.Time `json:"verified_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type BadgeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ReputationResponse struct {
	AgentID     string          `json:"agent_id"`
	Score       float64         `json:"score"`
	Tier        string          `json:"tier"`
	Badges      []BadgeResponse `json:"badges"`
	Attestation string          `json:"attestation,omitempty"`
	VerifiedAt  time.Time       `json:"verified_at"`
}

type StarRatingResponse struct {
	AgentID string `json:"agent_id"`
	Stars   int    `json:"stars"`
	Label   string `json:"label"`
	Display string `json:"display"`
}

type CertificateResponse struct {
	AgentID         string    `json:"agent_id"`
	Verified        bool      `json:"verified"`
	StarRating      int       `json:"star_rating"`
	StarLabel       string    `json:"star_label"`
	Tier            string    `json:"tier,omitempty"`
	Score           float64   `json:"score"`
	TotalTrades     int64     `json:"total_trades"`
	WinRatePct      float64   `json:"win_rate"`
	CertificateHash string    `json:"certificate_hash"`
	IssuedAt        time.Time `json:"issued_at"`
	ValidUntil      time.Time `json:"valid_until"`
}

type LeaderboardEntryResponse struct {
	Rank        int     `json:"rank"`
	AgentID     string  `json:"agent_id"`
	Name        string  `json:"name"`
	Score       float64 `json:"score"`
	Tier        string  `json:"tier"`
	Stars       int     `json:"stars"`
	StarLabel   string  `json:"star_label"`
	TotalTrades int64   `json:"total_trades"`
	WinRatePct  float64 `json:"win_rate"`
}

// registerAgent godoc
// @Summary Register a trading agent
// @Tags agents
// @Accept json
// @Produce json
// @Param request body RegisterAgentRequest true "Agent payload"
// @Success 201 {object} RegisterAgentResponse
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /agents [post]
func (r *Router) registerAgent(c *fiber.Ctx) error {
	if r.agents == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "agent service unavailable")
	}

	var req RegisterAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	agent, secret, err := r.agents.RegisterAgent(ctx, req.Name, req.PublicKey)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(RegisterAgentResponse{
		Agent:  agentResponse(agent),
		Secret: secret,
	})
}

// listAgents godoc
// @Summary List registered agents
// @Tags agents
// @Produce json
// @Success 200 {array} AgentResponse
// @Failure 500 {object} map[string]string
// @Router /agents [get]
func (r *Router) listAgents(c *fiber.Ctx) error {
	if r.agents == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "agent service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	agents, err := r.agents.ListAgents(ctx)
	if err != nil {
		return mapError(err)
	}

	out := make([]AgentResponse, 0, len(agents))
	for _, agent := range agents {
		out = append(out, agentResponse(agent))
	}

	return c.JSON(out)
}

// getMetrics godoc
// @Summary Read an agent's performance aggregates
// @Tags agents
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Success 200 {object} MetricsResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /agents/{agent_id}/metrics [get]
func (r *Router) getMetrics(c *fiber.Ctx) error {
	if r.agents == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "agent service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	metrics, err := r.agents.GetMetrics(ctx, c.Params("agent_id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(metricsResponse(metrics))
}

// logTrade godoc
// @Summary Log one executed trade for an agent
// @Tags trades
// @Accept json
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Param X-Agent-Secret header string true "Agent credential issued at registration"
// @Param request body LogTradeRequest true "Trade fill payload"
// @Success 201 {object} MetricsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /agents/{agent_id}/trades [post]
func (r *Router) logTrade(c *fiber.Ctx) error {
	if r.agents == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "agent service unavailable")
	}

	agentID := c.Params("agent_id")
	if !r.agents.ValidateCredential(agentID, c.Get(headerAgentSecret)) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid agent credential")
	}

	var req LogTradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	fill := domain.TradeFill{
		ID:          req.TradeID,
		TokenIn:     req.TokenIn,
		TokenOut:    req.TokenOut,
		AmountIn:    req.AmountIn,
		AmountOut:   req.AmountOut,
		PnL:         req.PnL,
		ExecutionMs: req.ExecutionMs,
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	metrics, err := r.agents.LogTrade(ctx, agentID, fill)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(metricsResponse(metrics))
}

// generateProof godoc
// @Summary Generate a reputation proof over current aggregates
// @Tags proofs
// @Accept json
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Param request body GenerateProofRequest true "Proof request"
// @Success 201 {object} ProofResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /agents/{agent_id}/proofs [post]
func (r *Router) generateProof(c *fiber.Ctx) error {
	if r.proofs == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "proof service unavailable")
	}

	var req GenerateProofRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	proof, err := r.proofs.GenerateProof(ctx, c.Params("agent_id"), domain.ProofType(req.ProofType), req.PublicInputs)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(proofResponse(proof))
}

// listProofs godoc
// @Summary List an agent's unexpired proofs
// @Tags proofs
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Success 200 {array} ProofResponse
// @Failure 500 {object} map[string]string
// @Router /agents/{agent_id}/proofs [get]
func (r *Router) listProofs(c *fiber.Ctx) error {
	if r.proofs == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "proof service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	proofs, err := r.proofs.ProofsFor(ctx, c.Params("agent_id"))
	if err != nil {
		return mapError(err)
	}

	out := make([]ProofResponse, 0, len(proofs))
	for _, p := range proofs {
		out = append(out, proofResponse(p))
	}

	return c.JSON(out)
}

// verifyProof godoc
// @Summary Verify a stored proof
// @Tags proofs
// @Produce json
// @Param proof_id path string true "Proof ID"
// @Success 200 {object} VerificationResponse
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /proofs/{proof_id}/verify [post]
func (r *Router) verifyProof(c *fiber.Ctx) error {
	if r.proofs == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "proof service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	verification, err := r.proofs.VerifyProof(ctx, c.Params("proof_id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(VerificationResponse{
		ProofID:    verification.ProofID,
		AgentID:    verification.AgentID,
		ProofType:  string(verification.ProofType),
		Valid:      verification.Valid,
		Evidence:   verification.Evidence,
		VerifiedAt: verification.VerifiedAt,
		ExpiresAt:  verification.ExpiresAt,
	})
}

// computeReputation godoc
// @Summary Compute and store an agent's verified reputation
// @Tags reputation
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Success 200 {object} ReputationResponse
// @Failure 404 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /agents/{agent_id}/reputation [post]
func (r *Router) computeReputation(c *fiber.Ctx) error {
	if r.reputation == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "reputation service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 30*time.Second)
	defer cancel()

	rep, err := r.reputation.ComputeVerifiedReputation(ctx, c.Params("agent_id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(reputationResponse(rep))
}

// getReputation godoc
// @Summary Read an agent's stored reputation
// @Tags reputation
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Success 200 {object} ReputationResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /agents/{agent_id}/reputation [get]
func (r *Router) getReputation(c *fiber.Ctx) error {
	if r.reputation == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "reputation service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	rep, err := r.reputation.GetReputation(ctx, c.Params("agent_id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(reputationResponse(rep))
}

// getStarRating godoc
// @Summary Read an agent's star rating
// @Tags reputation
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Success 200 {object} StarRatingResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /agents/{agent_id}/stars [get]
func (r *Router) getStarRating(c *fiber.Ctx) error {
	if r.reputation == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "reputation service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	agentID := c.Params("agent_id")
	rating, err := r.reputation.CalculateStarRating(ctx, agentID)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(StarRatingResponse{
		AgentID: agentID,
		Stars:   rating.Stars,
		Label:   rating.Label,
		Display: rating.Display,
	})
}

// getCertificate godoc
// @Summary Issue a public trust certificate for an agent
// @Tags reputation
// @Produce json
// @Param agent_id path string true "Agent ID"
// @Success 200 {object} CertificateResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /agents/{agent_id}/certificate [get]
func (r *Router) getCertificate(c *fiber.Ctx) error {
	if r.reputation == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "reputation service unavailable")
	}

	ctx, cancel := context.WithTimeout(userContext(c), 5*time.Second)
	defer cancel()

	cert, err := r.reputation.TrustCertificate(ctx, c.Params("agent_id"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(CertificateResponse{
		AgentID:         cert.AgentID,
		Verified:        cert.Verified,
		StarRating:      cert.StarRating,
		StarLabel:       cert.StarLabel,
		Tier:            string(cert.Tier),
		Score:           cert.Score,
		TotalTrades:     cert.TotalTrades,
		WinRatePct:      cert.WinRatePct,
		CertificateHash: cert.CertificateHash,
		IssuedAt:        cert.IssuedAt,
		ValidUntil:      cert.ValidUntil,
	})
}

// leaderboard godoc
// @Summary Rank verified agents by stars, then score
// @Tags reputation
// @Produce json
// @Param limit query int false "Maximum number of rows"
// @Success 200 {array} LeaderboardEntryResponse
// @Failure 500 {object} map[string]string
// @Router /leaderboard [get]
func (r *Router) leaderboard(c *fiber.Ctx) error {
	if r.reputation == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "reputation service unavailable")
	}

	limit := 100
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(userContext(c), 10*time.Second)
	defer cancel()

	entries, err := r.reputation.Leaderboard(ctx)
	if err != nil {
		return mapError(err)
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LeaderboardEntryResponse{
			Rank:        e.Rank,
			AgentID:     e.AgentID,
			Name:        e.Name,
			Score:       e.Score,
			Tier:        string(e.Tier),
			Stars:       e.Stars,
			StarLabel:   e.StarLabel,
			TotalTrades: e.TotalTrades,
			WinRatePct:  e.WinRatePct,
		})
	}

	return c.JSON(out)
}

func (r *Router) healthCheck(c *fiber.Ctx) error {
	payload := fiber.Map{"status": "ok"}
	if r.health != nil {
		payload["durable"] = r.health.DurableEnabled()
		payload["durable_healthy"] = r.health.Healthy()
	}
	return c.JSON(payload)
}

func agentResponse(a domain.Agent) AgentResponse {
	return AgentResponse{
		AgentID:   a.ID,
		Name:      a.Name,
		PublicKey: a.PublicKey,
		CreatedAt: a.CreatedAt,
	}
}

func metricsResponse(m domain.PerformanceMetrics) MetricsResponse {
	return MetricsResponse{
		AgentID:        m.AgentID,
		TotalTrades:    m.TotalTrades,
		WinningTrades:  m.WinningTrades,
		WinRatePct:     m.WinRatePct(),
		TotalPnL:       m.TotalPnL,
		MaxDrawdownBps: m.MaxDrawdownBps,
		SharpeProxy:    m.SharpeProxy,
		AvgExecutionMs: m.AvgExecutionMs,
		UptimePct:      m.UptimePct,
		LastUpdated:    m.LastUpdated,
	}
}

func proofResponse(p domain.ReputationProof) ProofResponse {
	return ProofResponse{
		ProofID:         p.ID,
		AgentID:         p.AgentID,
		ProofType:       string(p.ProofType),
		ProofData:       p.ProofData,
		VerificationKey: p.VerificationKey,
		PublicInputs:    p.PublicInputs,
		PublicOutputs:   p.PublicOutputs,
		CircuitTag:      p.CircuitTag,
		CreatedAt:       p.CreatedAt,
		ExpiresAt:       p.ExpiresAt,
	}
}

func reputationResponse(rep domain.VerifiedReputation) ReputationResponse {
	badges := make([]BadgeResponse, 0, len(rep.Badges))
	for _, b := range rep.Badges {
		badges = append(badges, BadgeResponse{
			ID:          b.ID,
			Name:        b.Name,
			Description: b.Description,
		})
	}

	return ReputationResponse{
		AgentID:     rep.AgentID,
		Score:       rep.Score,
		Tier:        string(rep.Tier),
		Badges:      badges,
		Attestation: rep.Attestation,
		VerifiedAt:  rep.VerifiedAt,
	}
}
