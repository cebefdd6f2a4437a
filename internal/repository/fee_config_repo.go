package repository

import (
	"context"

	"cricketleague/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeeConfigRepository struct {
	db *gorm.DB
}

func NewFeeConfigRepository(db *gorm.DB) *FeeConfigRepository {
	return &FeeConfigRepository{db: db}
}

func (r *FeeConfigRepository) GetByKey(ctx context.Context, key string) (*domain.FeeConfiguration, error) {
	var cfg domain.FeeConfiguration
	if err := r.db.WithContext(ctx).Where("config_key = ?", key).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *FeeConfigRepository) Upsert(ctx context.Context, cfg *domain.FeeConfiguration) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"registration_fee", "gst_percentage", "updated_at"}),
	}).Create(cfg).Error
}
