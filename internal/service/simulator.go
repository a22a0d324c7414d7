package service

import (
	"context"
	"math/rand"
	"time"

	"hotstock/config"
	"hotstock/internal/dto"
	"hotstock/internal/hub"
	"hotstock/internal/repository"
	"hotstock/pkg/logger"
)

// PriceSimulator perturbs every stock's price on a fixed-period tick and
// broadcasts the resulting full snapshot. Each tick is scheduled relative to
// the previous one; there is no drift correction and no catch-up for a
// missed tick.
type PriceSimulator struct {
	cfg         config.Simulation
	log         *logger.Logger
	stockRepo   repository.StockRepository
	broadcaster hub.Broadcaster
	randFn      func() float64 // uniform in [0,1)
}

func NewPriceSimulator(
	cfg config.Simulation,
	log *logger.Logger,
	stockRepo repository.StockRepository,
	broadcaster hub.Broadcaster,
) *PriceSimulator {
	return &PriceSimulator{
		cfg:         cfg,
		log:         log,
		stockRepo:   stockRepo,
		broadcaster: broadcaster,
		randFn:      rand.Float64,
	}
}

// Run ticks until the context is canceled.
func (s *PriceSimulator) Run(ctx context.Context) {
	s.log.Info("price simulator started",
		logger.Field("tick_interval", s.cfg.TickInterval),
		logger.Float64Field("max_delta", s.cfg.MaxDelta),
	)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("price simulator stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick applies one simulation round. A persistence failure for one stock is
// logged and skipped so the others still update; a snapshot re-read failure
// drops the broadcast for this tick only.
func (s *PriceSimulator) Tick(ctx context.Context) {
	stocks, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "tick skipped, failed to read stocks", logger.ErrorField(err))
		return
	}

	for _, stock := range stocks {
		if stock.Price <= 0 {
			s.log.WarnContext(ctx, "tick skipped non-positive price", logger.StringField("symbol", stock.Symbol))
			continue
		}

		delta := (s.randFn() - 0.5) * 2 * s.cfg.MaxDelta
		newPrice := stock.Price + delta
		// Cumulative running change, intentionally not recomputed from a
		// fixed baseline.
		changeDelta := delta / stock.Price * 100

		if err := s.stockRepo.ApplyPriceDelta(ctx, stock.Symbol, newPrice, changeDelta); err != nil {
			s.log.ErrorContext(ctx, "failed to persist price tick",
				logger.StringField("symbol", stock.Symbol),
				logger.ErrorField(err),
			)
		}
	}

	snapshot, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "broadcast skipped, failed to re-read snapshot", logger.ErrorField(err))
		return
	}

	s.broadcaster.Broadcast(dto.NewPriceUpdateEvent(snapshot))
}
