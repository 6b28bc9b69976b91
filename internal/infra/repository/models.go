package repository

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"reputation_server/internal/domain"
)

type AgentModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name;not null"`
	CredentialHash string    `gorm:"column:credential_hash;not null"`
	PublicKey      *string   `gorm:"column:public_key"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AgentModel) TableName() string {
	return "agents"
}

func toAgentModel(agent domain.Agent) AgentModel {
	return AgentModel{
		ID:             agent.ID,
		Name:           agent.Name,
		CredentialHash: agent.CredentialHash,
		PublicKey:      stringPointerOrNil(agent.PublicKey),
		CreatedAt:      agent.CreatedAt,
	}
}

func (m AgentModel) toDomain() domain.Agent {
	return domain.Agent{
		ID:             m.ID,
		Name:           m.Name,
		CredentialHash: m.CredentialHash,
		PublicKey:      stringValueOrEmpty(m.PublicKey),
		CreatedAt:      m.CreatedAt,
	}
}

type MetricsModel struct {
	AgentID        string    `gorm:"column:agent_id;primaryKey"`
	TotalTrades    int64     `gorm:"column:total_trades;not null"`
	WinningTrades  int64     `gorm:"column:winning_trades;not null"`
	TotalPnL       float64   `gorm:"column:total_pnl"`
	MaxDrawdownBps int64     `gorm:"column:max_drawdown_bps"`
	SharpeProxy    float64   `gorm:"column:sharpe_proxy"`
	AvgExecutionMs float64   `gorm:"column:avg_exec_ms"`
	UptimePct      float64   `gorm:"column:uptime_pct"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (MetricsModel) TableName() string {
	return "metrics"
}

func toMetricsModel(metrics domain.PerformanceMetrics) MetricsModel {
	return MetricsModel{
		AgentID:        metrics.AgentID,
		TotalTrades:    metrics.TotalTrades,
		WinningTrades:  metrics.WinningTrades,
		TotalPnL:       metrics.TotalPnL,
		MaxDrawdownBps: metrics.MaxDrawdownBps,
		SharpeProxy:    metrics.SharpeProxy,
		AvgExecutionMs: metrics.AvgExecutionMs,
		UptimePct:      metrics.UptimePct,
		UpdatedAt:      metrics.LastUpdated,
	}
}

func (m MetricsModel) toDomain() domain.PerformanceMetrics {
	return domain.PerformanceMetrics{
		AgentID:        m.AgentID,
		TotalTrades:    m.TotalTrades,
		WinningTrades:  m.WinningTrades,
		TotalPnL:       m.TotalPnL,
		MaxDrawdownBps: m.MaxDrawdownBps,
		SharpeProxy:    m.SharpeProxy,
		AvgExecutionMs: m.AvgExecutionMs,
		UptimePct:      m.UptimePct,
		LastUpdated:    m.UpdatedAt,
	}
}

type TradeModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	AgentID     string    `gorm:"column:agent_id;index;not null"`
	TokenIn     *string   `gorm:"column:token_in"`
	TokenOut    *string   `gorm:"column:token_out"`
	AmountIn    float64   `gorm:"column:amount_in"`
	AmountOut   float64   `gorm:"column:amount_out"`
	PnL         float64   `gorm:"column:pnl"`
	ExecutionMs float64   `gorm:"column:exec_ms"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TradeModel) TableName() string {
	return "trades"
}

func toTradeModel(trade domain.TradeFill) TradeModel {
	return TradeModel{
		ID:          trade.ID,
		AgentID:     trade.AgentID,
		TokenIn:     stringPointerOrNil(trade.TokenIn),
		TokenOut:    stringPointerOrNil(trade.TokenOut),
		AmountIn:    trade.AmountIn,
		AmountOut:   trade.AmountOut,
		PnL:         trade.PnL,
		ExecutionMs: trade.ExecutionMs,
		CreatedAt:   trade.CreatedAt,
	}
}

type ProofModel struct {
	ID              string         `gorm:"column:id;primaryKey"`
	AgentID         string         `gorm:"column:agent_id;index;not null"`
	ProofType       string         `gorm:"column:type;not null"`
	ProofData       string         `gorm:"column:proof"`
	VerificationKey string         `gorm:"column:verification_key"`
	PublicInputs    datatypes.JSON `gorm:"column:public_inputs;type:jsonb"`
	PublicOutputs   datatypes.JSON `gorm:"column:public_outputs;type:jsonb"`
	CircuitTag      string         `gorm:"column:circuit_tag"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	ExpiresAt       time.Time      `gorm:"column:expires_at;index"`
}

func (ProofModel) TableName() string {
	return "proofs"
}

func toProofModel(proof domain.ReputationProof) ProofModel {
	return ProofModel{
		ID:              proof.ID,
		AgentID:         proof.AgentID,
		ProofType:       string(proof.ProofType),
		ProofData:       proof.ProofData,
		VerificationKey: proof.VerificationKey,
		PublicInputs:    mapToJSON(proof.PublicInputs),
		PublicOutputs:   mapToJSON(proof.PublicOutputs),
		CircuitTag:      proof.CircuitTag,
		CreatedAt:       proof.CreatedAt,
		ExpiresAt:       proof.ExpiresAt,
	}
}

func (m ProofModel) toDomain() domain.ReputationProof {
	return domain.ReputationProof{
		ID:              m.ID,
		AgentID:         m.AgentID,
		ProofType:       domain.ProofType(m.ProofType),
		ProofData:       m.ProofData,
		VerificationKey: m.VerificationKey,
		PublicInputs:    jsonToMap(m.PublicInputs),
		PublicOutputs:   jsonToMap(m.PublicOutputs),
		CircuitTag:      m.CircuitTag,
		CreatedAt:       m.CreatedAt,
		ExpiresAt:       m.ExpiresAt,
	}
}

type ReputationModel struct {
	ID          int64          `gorm:"column:id"`
	AgentID     string         `gorm:"column:agent_id;uniqueIndex;not null"`
	Score       float64        `gorm:"column:score"`
	Tier        string         `gorm:"column:tier"`
	Badges      datatypes.JSON `gorm:"column:badges;type:jsonb"`
	Attestation *string        `gorm:"column:attestation"`
	VerifiedAt  time.Time      `gorm:"column:verified_at"`
}

func (ReputationModel) TableName() string {
	return "reputations"
}

func toReputationModel(rep domain.VerifiedReputation) ReputationModel {
	return ReputationModel{
		AgentID:     rep.AgentID,
		Score:       rep.Score,
		Tier:        string(rep.Tier),
		Badges:      badgesToJSON(rep.Badges),
		Attestation: stringPointerOrNil(rep.Attestation),
		VerifiedAt:  rep.VerifiedAt,
	}
}

func (m ReputationModel) toDomain() domain.VerifiedReputation {
	return domain.VerifiedReputation{
		AgentID:     m.AgentID,
		Score:       m.Score,
		Tier:        domain.Tier(m.Tier),
		Badges:      badgesFromJSON(m.Badges),
		Attestation: stringValueOrEmpty(m.Attestation),
		VerifiedAt:  m.VerifiedAt,
	}
}

type badgeDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func badgesToJSON(badges []domain.Badge) datatypes.JSON {
	if len(badges) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	docs := make([]badgeDoc, len(badges))
	for i, b := range badges {
		docs[i] = badgeDoc{ID: b.ID, Name: b.Name, Description: b.Description}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}

func badgesFromJSON(data datatypes.JSON) []domain.Badge {
	if len(data) == 0 {
		return nil
	}
	var docs []badgeDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil
	}
	badges := make([]domain.Badge, len(docs))
	for i, d := range docs {
		badges[i] = domain.Badge{ID: d.ID, Name: d.Name, Description: d.Description}
	}
	return badges
}

func mapToJSON(values map[string]any) datatypes.JSON {
	if len(values) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(data)
}

func jsonToMap(data datatypes.JSON) map[string]any {
	if len(data) == 0 {
		return nil
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil
	}
	return values
}

func stringPointerOrNil(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
