package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotstock/internal/dto"
	"hotstock/internal/model"
	"hotstock/internal/repository"
	"hotstock/pkg/cache"
	"hotstock/pkg/common"
	"hotstock/pkg/logger"

	"gorm.io/datatypes"
)

const attributionCacheDuration = 5 * time.Minute

type SentimentService interface {
	Attribution(ctx context.Context, symbol string) (*dto.SentimentResult, error)
}

type sentimentService struct {
	log           *logger.Logger
	cache         cache.Cache
	stockRepo     repository.StockRepository
	sentimentRepo repository.SentimentRepository
	classifier    repository.ClassifierRepository
}

func NewSentimentService(
	log *logger.Logger,
	inmemoryCache cache.Cache,
	stockRepo repository.StockRepository,
	sentimentRepo repository.SentimentRepository,
	classifier repository.ClassifierRepository,
) SentimentService {
	return &sentimentService{
		log:           log,
		cache:         inmemoryCache,
		stockRepo:     stockRepo,
		sentimentRepo: sentimentRepo,
		classifier:    classifier,
	}
}

// Attribution runs the classifier over a synthesized set of recent headlines
// for the stock and persists the run. Results are cached briefly so repeated
// detail-page loads do not hammer the classifier.
func (s *sentimentService) Attribution(ctx context.Context, symbol string) (*dto.SentimentResult, error) {
	cacheKey := fmt.Sprintf(common.KEY_ATTRIBUTION, symbol)
	if cached, found := s.cache.Get(cacheKey); found {
		if result, ok := cached.(*dto.SentimentResult); ok {
			return result, nil
		}
	}

	stock, err := s.stockRepo.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// No news feed is wired in; stand-in headlines keep the classifier
	// contract exercised.
	headlines := []string{
		fmt.Sprintf("%s trading volume expanded sharply today", stock.Name),
		fmt.Sprintf("Industry analysts raised their rating on %s", stock.Name),
		fmt.Sprintf("Social media discussion around %s is heating up", stock.Name),
	}

	result, raw, err := s.classifier.AnalyzeSentiment(ctx, stock.Symbol, headlines)
	if err != nil {
		s.log.ErrorContext(ctx, "sentiment analysis failed",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		return nil, fmt.Errorf("%w: sentiment analysis: %v", common.ErrUpstreamUnavailable, err)
	}

	headlinesJSON, _ := json.Marshal(headlines)
	reasonTagsJSON, _ := json.Marshal(result.ReasonTags)
	analysis := &model.SentimentAnalysis{
		StockSymbol:    stock.Symbol,
		Headlines:      datatypes.JSON(headlinesJSON),
		SentimentScore: result.SentimentScore,
		ReasonTags:     datatypes.JSON(reasonTagsJSON),
		Summary:        result.Summary,
		RawResponse:    datatypes.JSON(raw),
	}
	if err := s.sentimentRepo.Create(ctx, analysis); err != nil {
		// The run itself succeeded; losing the bookkeeping row is not worth
		// failing the request over.
		s.log.WarnContext(ctx, "failed to persist sentiment analysis",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
	}

	s.cache.Set(cacheKey, result, attributionCacheDuration)
	return result, nil
}
