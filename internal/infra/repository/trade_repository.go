package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reputation_server/internal/domain"
)

// GormTradeRepository appends immutable fill rows. The trade id doubles as
// the idempotency key: replaying a fill after an ambiguous failure is a
// no-op instead of a duplicate row.
type GormTradeRepository struct {
	db *gorm.DB
}

func NewGormTradeRepository(db *gorm.DB) (*GormTradeRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTradeRepository{db: db}, nil
}

func (r *GormTradeRepository) AppendTrade(ctx context.Context, trade domain.TradeFill) error {
	model := toTradeModel(trade)

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&model).Error
}
