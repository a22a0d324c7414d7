package repository

import (
	"hotstock/config"
	"hotstock/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	StockRepo      StockRepository
	TagRepo        TagRepository
	DanmakuRepo    DanmakuRepository
	PredictionRepo PredictionRepository
	WatchlistRepo  WatchlistRepository
	UserRepo       UserRepository
	SentimentRepo  SentimentRepository
	ClassifierRepo ClassifierRepository
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	classifierRepo, err := NewGeminiClassifierRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Repository{
		StockRepo:      NewStockRepository(db),
		TagRepo:        NewTagRepository(db),
		DanmakuRepo:    NewDanmakuRepository(db),
		PredictionRepo: NewPredictionRepository(db),
		WatchlistRepo:  NewWatchlistRepository(db),
		UserRepo:       NewUserRepository(db),
		SentimentRepo:  NewSentimentRepository(db),
		ClassifierRepo: classifierRepo,
	}, nil
}
