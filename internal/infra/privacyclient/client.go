package privacyclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"reputation_server/internal/domain"
)

// Client talks to the privacy capability provider. Every method normalises
// transport errors, non-2xx statuses and malformed payloads to
// domain.ErrCollaboratorUnavailable so callers branch on one condition and
// run their local fallback.
type Client struct {
	client  *resty.Client
	baseURL string
}

type encryptRequest struct {
	Value float64 `json:"value"`
}

type foldRequest struct {
	Ciphertext string  `json:"ciphertext"`
	Delta      float64 `json:"delta"`
}

type encryptedPayload struct {
	Ciphertext string `json:"ciphertext"`
	Proof      string `json:"proof"`
	Mode       string `json:"mode"`
}

type proveRequest struct {
	AgentID       string         `json:"agent_id"`
	ProofType     string         `json:"proof_type"`
	PublicInputs  map[string]any `json:"public_inputs"`
	PrivateInputs map[string]any `json:"private_inputs"`
}

type proveResponse struct {
	Proof           string         `json:"proof"`
	VerificationKey string         `json:"verification_key"`
	PublicOutputs   map[string]any `json:"public_outputs"`
	CircuitTag      string         `json:"circuit_tag"`
}

type verifyRequest struct {
	Proof           string         `json:"proof"`
	VerificationKey string         `json:"verification_key"`
	PublicInputs    map[string]any `json:"public_inputs"`
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Evidence string `json:"evidence"`
}

type scoreRequest struct {
	AgentID    string   `json:"agent_id"`
	Ciphertext string   `json:"ciphertext"`
	Proofs     []string `json:"proofs"`
}

type scoreResponse struct {
	Score       *float64 `json:"score"`
	Tier        string   `json:"tier"`
	Attestation string   `json:"attestation"`
}

func New(baseURL string, timeout time.Duration, opts ...func(*resty.Client)) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	for _, opt := range opts {
		opt(client)
	}

	return &Client{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrCollaboratorUnavailable, path, err)
	}

	if resp.StatusCode() >= 300 {
		return fmt.Errorf("%w: %s responded with status %d", domain.ErrCollaboratorUnavailable, path, resp.StatusCode())
	}

	return nil
}

func (c *Client) Encrypt(ctx context.Context, value float64) (domain.EncryptedPayload, error) {
	var payload encryptedPayload
	if err := c.post(ctx, "/encrypt", encryptRequest{Value: value}, &payload); err != nil {
		return domain.EncryptedPayload{}, err
	}

	if payload.Ciphertext == "" {
		return domain.EncryptedPayload{}, fmt.Errorf("%w: /encrypt returned empty ciphertext", domain.ErrCollaboratorUnavailable)
	}

	return domain.EncryptedPayload{
		Ciphertext: payload.Ciphertext,
		Proof:      payload.Proof,
		Mode:       domain.HandleMode(payload.Mode),
	}, nil
}

func (c *Client) Fold(ctx context.Context, ciphertext string, delta float64) (domain.EncryptedPayload, error) {
	var payload encryptedPayload
	if err := c.post(ctx, "/fold", foldRequest{Ciphertext: ciphertext, Delta: delta}, &payload); err != nil {
		return domain.EncryptedPayload{}, err
	}

	if payload.Ciphertext == "" {
		return domain.EncryptedPayload{}, fmt.Errorf("%w: /fold returned empty ciphertext", domain.ErrCollaboratorUnavailable)
	}

	return domain.EncryptedPayload{
		Ciphertext: payload.Ciphertext,
		Proof:      payload.Proof,
		Mode:       domain.HandleMode(payload.Mode),
	}, nil
}

func (c *Client) Prove(ctx context.Context, req domain.ProveRequest) (domain.ProveResult, error) {
	body := proveRequest{
		AgentID:       req.AgentID,
		ProofType:     string(req.ProofType),
		PublicInputs:  req.PublicInputs,
		PrivateInputs: req.PrivateInputs,
	}

	var payload proveResponse
	if err := c.post(ctx, "/prove", body, &payload); err != nil {
		return domain.ProveResult{}, err
	}

	if payload.Proof == "" {
		return domain.ProveResult{}, fmt.Errorf("%w: /prove returned empty proof", domain.ErrCollaboratorUnavailable)
	}

	return domain.ProveResult{
		Proof:           payload.Proof,
		VerificationKey: payload.VerificationKey,
		PublicOutputs:   payload.PublicOutputs,
		CircuitTag:      payload.CircuitTag,
	}, nil
}

func (c *Client) Verify(ctx context.Context, req domain.VerifyRequest) (domain.VerifyResult, error) {
	body := verifyRequest{
		Proof:           req.Proof,
		VerificationKey: req.VerificationKey,
		PublicInputs:    req.PublicInputs,
	}

	var payload verifyResponse
	if err := c.post(ctx, "/verify", body, &payload); err != nil {
		return domain.VerifyResult{}, err
	}

	return domain.VerifyResult{
		Valid:    payload.Valid,
		Evidence: payload.Evidence,
	}, nil
}

func (c *Client) Score(ctx context.Context, req domain.ScoreRequest) (domain.ScoreResult, error) {
	body := scoreRequest{
		AgentID:    req.AgentID,
		Ciphertext: req.Ciphertext,
		Proofs:     req.Proofs,
	}

	var payload scoreResponse
	if err := c.post(ctx, "/score", body, &payload); err != nil {
		return domain.ScoreResult{}, err
	}

	return domain.ScoreResult{
		Score:       payload.Score,
		Tier:        payload.Tier,
		Attestation: payload.Attestation,
	}, nil
}
