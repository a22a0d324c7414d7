package repository

import (
	"context"

	"hotstock/internal/model"

	"gorm.io/gorm"
)

type PredictionRepository interface {
	Create(ctx context.Context, prediction *model.Prediction) error
	Tally(ctx context.Context, symbol string) (model.PredictionStats, error)
	CountSince(ctx context.Context, symbol string, since int64) (int64, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *model.Prediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

// Tally sums the ledger by direction. A stock with no rows yields zeros.
func (r *predictionRepository) Tally(ctx context.Context, symbol string) (model.PredictionStats, error) {
	var rows []struct {
		Direction int16
		Count     int64
	}

	err := r.db.WithContext(ctx).Model(&model.Prediction{}).
		Select("direction, count(*) as count").
		Where("stock_symbol = ?", symbol).
		Group("direction").
		Scan(&rows).Error
	if err != nil {
		return model.PredictionStats{}, err
	}

	var stats model.PredictionStats
	for _, row := range rows {
		switch row.Direction {
		case model.DirectionBull:
			stats.Bull = row.Count
		case model.DirectionBear:
			stats.Bear = row.Count
		}
	}
	return stats, nil
}

func (r *predictionRepository) CountSince(ctx context.Context, symbol string, since int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Prediction{}).
		Where("stock_symbol = ? AND created_at >= ?", symbol, since).
		Count(&count).Error
	return count, err
}
