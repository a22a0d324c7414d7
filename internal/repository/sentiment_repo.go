package repository

import (
	"context"

	"hotstock/internal/model"

	"gorm.io/gorm"
)

type SentimentRepository interface {
	Create(ctx context.Context, analysis *model.SentimentAnalysis) error
	LatestBySymbol(ctx context.Context, symbol string) (*model.SentimentAnalysis, error)
}

type sentimentRepository struct {
	db *gorm.DB
}

func NewSentimentRepository(db *gorm.DB) SentimentRepository {
	return &sentimentRepository{db: db}
}

func (r *sentimentRepository) Create(ctx context.Context, analysis *model.SentimentAnalysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *sentimentRepository) LatestBySymbol(ctx context.Context, symbol string) (*model.SentimentAnalysis, error) {
	var analysis model.SentimentAnalysis
	err := r.db.WithContext(ctx).
		Where("stock_symbol = ?", symbol).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}
