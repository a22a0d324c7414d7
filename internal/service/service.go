package service

import (
	"hotstock/config"
	"hotstock/internal/hub"
	"hotstock/internal/repository"
	"hotstock/pkg/cache"
	"hotstock/pkg/logger"
)

type Service struct {
	StockService      StockService
	TagService        TagService
	PredictionService PredictionService
	DanmakuService    DanmakuService
	SentimentService  SentimentService
	Simulator         *PriceSimulator
	Maintenance       *MaintenanceRunner
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	broadcaster hub.Broadcaster,
) *Service {
	tagService := NewTagService(log, inmemoryCache, repo.StockRepo, repo.TagRepo, repo.ClassifierRepo)
	return &Service{
		StockService:      NewStockService(log, repo.StockRepo, repo.TagRepo, repo.PredictionRepo, repo.WatchlistRepo, repo.UserRepo),
		TagService:        tagService,
		PredictionService: NewPredictionService(log, repo.PredictionRepo),
		DanmakuService:    NewDanmakuService(log, repo.DanmakuRepo, repo.UserRepo, broadcaster),
		SentimentService:  NewSentimentService(log, inmemoryCache, repo.StockRepo, repo.SentimentRepo, repo.ClassifierRepo),
		Simulator:         NewPriceSimulator(cfg.Simulation, log, repo.StockRepo, broadcaster),
		Maintenance:       NewMaintenanceRunner(cfg.Maintenance, log, repo.StockRepo, repo.DanmakuRepo, repo.PredictionRepo),
	}
}
