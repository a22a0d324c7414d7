package service

import (
	"context"
	"fmt"
	"time"

	"hotstock/internal/model"
	"hotstock/internal/repository"
	"hotstock/pkg/common"
	"hotstock/pkg/logger"
)

const (
	DirectionBullish = "bullish"
	DirectionBearish = "bearish"
)

type PredictionService interface {
	Record(ctx context.Context, userID uint, symbol, direction string) (*model.Prediction, error)
	Stats(ctx context.Context, symbol string) (model.PredictionStats, error)
}

type predictionService struct {
	log            *logger.Logger
	predictionRepo repository.PredictionRepository
}

func NewPredictionService(log *logger.Logger, predictionRepo repository.PredictionRepository) PredictionService {
	return &predictionService{
		log:            log,
		predictionRepo: predictionRepo,
	}
}

// Record appends one vote to the ledger. There is no uniqueness constraint; a
// user may vote any number of times and the tally counts every row.
func (s *predictionService) Record(ctx context.Context, userID uint, symbol, direction string) (*model.Prediction, error) {
	var dir int16
	switch direction {
	case DirectionBullish:
		dir = model.DirectionBull
	case DirectionBearish:
		dir = model.DirectionBear
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", common.ErrInvalidInput, direction)
	}

	prediction := &model.Prediction{
		UserID:      userID,
		StockSymbol: symbol,
		Direction:   dir,
		Status:      model.PredictionStatusPending,
		CreatedAt:   time.Now().UnixMilli(),
	}
	if err := s.predictionRepo.Create(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to record prediction: %w", err)
	}

	return prediction, nil
}

// Stats returns the tally for one stock; zero rows yields zeros, never an error.
func (s *predictionService) Stats(ctx context.Context, symbol string) (model.PredictionStats, error) {
	return s.predictionRepo.Tally(ctx, symbol)
}
