package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"reputation_server/internal/infra/repository"
)

func ApplyMigrations(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&repository.AgentModel{},
		&repository.MetricsModel{},
		&repository.TradeModel{},
		&repository.ProofModel{},
		&repository.ReputationModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
