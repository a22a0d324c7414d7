package service

import (
	"context"
	"fmt"
	"time"

	"hotstock/config"
	"hotstock/internal/repository"
	"hotstock/pkg/logger"

	"github.com/robfig/cron/v3"
)

const (
	heatDecayFactor    = 0.9
	heatActivityWindow = time.Hour
)

// MaintenanceRunner owns the periodic housekeeping jobs: refreshing heat
// scores from recent crowd activity and trimming old danmaku.
type MaintenanceRunner struct {
	cfg            config.MaintenanceConfig
	log            *logger.Logger
	cron           *cron.Cron
	stockRepo      repository.StockRepository
	danmakuRepo    repository.DanmakuRepository
	predictionRepo repository.PredictionRepository
}

func NewMaintenanceRunner(
	cfg config.MaintenanceConfig,
	log *logger.Logger,
	stockRepo repository.StockRepository,
	danmakuRepo repository.DanmakuRepository,
	predictionRepo repository.PredictionRepository,
) *MaintenanceRunner {
	return &MaintenanceRunner{
		cfg:            cfg,
		log:            log,
		cron:           cron.New(),
		stockRepo:      stockRepo,
		danmakuRepo:    danmakuRepo,
		predictionRepo: predictionRepo,
	}
}

func (m *MaintenanceRunner) Start(ctx context.Context) error {
	if _, err := m.cron.AddFunc(m.cfg.HeatRefreshSchedule, func() {
		if err := m.RefreshHeatScores(ctx); err != nil {
			m.log.Error("heat refresh failed", logger.ErrorField(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid heat refresh schedule: %w", err)
	}

	if _, err := m.cron.AddFunc(m.cfg.DanmakuCleanupSchedule, func() {
		if err := m.CleanupDanmaku(ctx); err != nil {
			m.log.Error("danmaku cleanup failed", logger.ErrorField(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid danmaku cleanup schedule: %w", err)
	}

	m.cron.Start()
	m.log.Info("maintenance jobs scheduled",
		logger.StringField("heat_refresh", m.cfg.HeatRefreshSchedule),
		logger.StringField("danmaku_cleanup", m.cfg.DanmakuCleanupSchedule),
	)
	return nil
}

func (m *MaintenanceRunner) Stop() {
	m.cron.Stop()
}

// RefreshHeatScores decays each stock's heat and folds in the last hour of
// danmaku and prediction activity.
func (m *MaintenanceRunner) RefreshHeatScores(ctx context.Context) error {
	stocks, err := m.stockRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stocks: %w", err)
	}

	since := time.Now().Add(-heatActivityWindow).UnixMilli()
	for _, stock := range stocks {
		danmakuCount, err := m.danmakuRepo.CountSince(ctx, stock.Symbol, since)
		if err != nil {
			m.log.Error("failed to count danmaku", logger.StringField("symbol", stock.Symbol), logger.ErrorField(err))
			continue
		}
		predictionCount, err := m.predictionRepo.CountSince(ctx, stock.Symbol, since)
		if err != nil {
			m.log.Error("failed to count predictions", logger.StringField("symbol", stock.Symbol), logger.ErrorField(err))
			continue
		}

		score := stock.HeatScore*heatDecayFactor + float64(danmakuCount+predictionCount)
		if err := m.stockRepo.UpdateHeatScore(ctx, stock.Symbol, score); err != nil {
			m.log.Error("failed to update heat score", logger.StringField("symbol", stock.Symbol), logger.ErrorField(err))
		}
	}

	return nil
}

// CleanupDanmaku trims comments past the retention window.
func (m *MaintenanceRunner) CleanupDanmaku(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -m.cfg.DanmakuRetentionDays)
	deleted, err := m.danmakuRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old danmaku: %w", err)
	}
	if deleted > 0 {
		m.log.Info("danmaku cleanup done", logger.IntField("deleted", int(deleted)))
	}
	return nil
}
