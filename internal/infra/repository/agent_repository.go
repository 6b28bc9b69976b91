package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reputation_server/internal/domain"
)

// GormAgentRepository mirrors agents and their aggregates into the durable
// backend. It is the write-behind side of the store; the in-memory tier stays
// authoritative for reads.
type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) (*GormAgentRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormAgentRepository{db: db}, nil
}

func (r *GormAgentRepository) InsertAgent(ctx context.Context, agent domain.Agent) error {
	model := toAgentModel(agent)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&model).Error
}

func (r *GormAgentRepository) UpsertMetrics(ctx context.Context, metrics domain.PerformanceMetrics) error {
	model := toMetricsModel(metrics)

	assignments := clause.Assignments(map[string]interface{}{
		"total_trades":     gorm.Expr("EXCLUDED.total_trades"),
		"winning_trades":   gorm.Expr("EXCLUDED.winning_trades"),
		"total_pnl":        gorm.Expr("EXCLUDED.total_pnl"),
		"max_drawdown_bps": gorm.Expr("EXCLUDED.max_drawdown_bps"),
		"sharpe_proxy":     gorm.Expr("EXCLUDED.sharpe_proxy"),
		"avg_exec_ms":      gorm.Expr("EXCLUDED.avg_exec_ms"),
		"uptime_pct":       gorm.Expr("EXCLUDED.uptime_pct"),
		"updated_at":       gorm.Expr("EXCLUDED.updated_at"),
	})

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "agent_id"}},
			DoUpdates: assignments,
		}).
		Create(&model).Error
}

func (r *GormAgentRepository) GetAgent(ctx context.Context, agentID string) (domain.Agent, error) {
	var model AgentModel
	err := r.db.WithContext(ctx).
		Where("id = ?", agentID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Agent{}, domain.ErrNotFound
		}
		return domain.Agent{}, err
	}

	return model.toDomain(), nil
}

func (r *GormAgentRepository) ListAgents(ctx context.Context) ([]domain.Agent, error) {
	var models []AgentModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	agents := make([]domain.Agent, len(models))
	for i, model := range models {
		agents[i] = model.toDomain()
	}

	return agents, nil
}

func (r *GormAgentRepository) ListMetrics(ctx context.Context) ([]domain.PerformanceMetrics, error) {
	var models []MetricsModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}

	metrics := make([]domain.PerformanceMetrics, len(models))
	for i, model := range models {
		metrics[i] = model.toDomain()
	}

	return metrics, nil
}
