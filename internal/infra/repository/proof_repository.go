package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reputation_server/internal/domain"
)

type GormProofRepository struct {
	db *gorm.DB
}

func NewGormProofRepository(db *gorm.DB) (*GormProofRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormProofRepository{db: db}, nil
}

func (r *GormProofRepository) PutProof(ctx context.Context, proof domain.ReputationProof) error {
	model := toProofModel(proof)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&model).Error
}

func (r *GormProofRepository) GetProof(ctx context.Context, proofID string) (domain.ReputationProof, error) {
	var model ProofModel
	err := r.db.WithContext(ctx).
		Where("id = ?", proofID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReputationProof{}, domain.ErrNotFound
		}
		return domain.ReputationProof{}, err
	}

	return model.toDomain(), nil
}

func (r *GormProofRepository) ProofsByAgent(ctx context.Context, agentID string) ([]domain.ReputationProof, error) {
	var models []ProofModel
	if err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	proofs := make([]domain.ReputationProof, len(models))
	for i, model := range models {
		proofs[i] = model.toDomain()
	}

	return proofs, nil
}

func (r *GormProofRepository) ListProofs(ctx context.Context) ([]domain.ReputationProof, error) {
	var models []ProofModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}

	proofs := make([]domain.ReputationProof, len(models))
	for i, model := range models {
		proofs[i] = model.toDomain()
	}

	return proofs, nil
}

func (r *GormProofRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", cutoff).
		Delete(&ProofModel{})
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}
