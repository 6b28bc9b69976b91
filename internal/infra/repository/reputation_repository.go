package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reputation_server/internal/domain"
)

type GormReputationRepository struct {
	db *gorm.DB
}

func NewGormReputationRepository(db *gorm.DB) (*GormReputationRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormReputationRepository{db: db}, nil
}

func (r *GormReputationRepository) UpsertReputation(ctx context.Context, rep domain.VerifiedReputation) error {
	model := toReputationModel(rep)

	assignments := clause.Assignments(map[string]interface{}{
		"score":       gorm.Expr("EXCLUDED.score"),
		"tier":        gorm.Expr("EXCLUDED.tier"),
		"badges":      gorm.Expr("EXCLUDED.badges"),
		"attestation": gorm.Expr("EXCLUDED.attestation"),
		"verified_at": gorm.Expr("EXCLUDED.verified_at"),
	})

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "agent_id"}},
			DoUpdates: assignments,
		}).
		Create(&model).Error
}

func (r *GormReputationRepository) GetReputation(ctx context.Context, agentID string) (domain.VerifiedReputation, error) {
	var model ReputationModel
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VerifiedReputation{}, domain.ErrNotFound
		}
		return domain.VerifiedReputation{}, err
	}

	return model.toDomain(), nil
}

func (r *GormReputationRepository) ListReputations(ctx context.Context) ([]domain.VerifiedReputation, error) {
	var models []ReputationModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}

	reps := make([]domain.VerifiedReputation, len(models))
	for i, model := range models {
		reps[i] = model.toDomain()
	}

	return reps, nil
}
