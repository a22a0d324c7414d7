package service

import (
	"context"
	"fmt"

	"hotstock/internal/dto"
	"hotstock/internal/model"
	"hotstock/internal/repository"
	"hotstock/pkg/logger"
)

const topTagsPerStock = 5

type StockService interface {
	List(ctx context.Context, param dto.ListStocksParam) (*dto.StockListResponse, error)
	Get(ctx context.Context, symbol string) (*model.Stock, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	Watchlist(ctx context.Context, userID uint) ([]dto.WatchlistStock, error)
	AddToWatchlist(ctx context.Context, userID uint, symbol string) error
	RemoveFromWatchlist(ctx context.Context, userID uint, symbol string) error
	InWatchlist(ctx context.Context, userID uint, symbol string) (bool, error)
}

type stockService struct {
	log            *logger.Logger
	stockRepo      repository.StockRepository
	tagRepo        repository.TagRepository
	predictionRepo repository.PredictionRepository
	watchlistRepo  repository.WatchlistRepository
	userRepo       repository.UserRepository
}

func NewStockService(
	log *logger.Logger,
	stockRepo repository.StockRepository,
	tagRepo repository.TagRepository,
	predictionRepo repository.PredictionRepository,
	watchlistRepo repository.WatchlistRepository,
	userRepo repository.UserRepository,
) StockService {
	return &stockService{
		log:            log,
		stockRepo:      stockRepo,
		tagRepo:        tagRepo,
		predictionRepo: predictionRepo,
		watchlistRepo:  watchlistRepo,
		userRepo:       userRepo,
	}
}

// List returns the heat-ranked listing. Total always reflects the full
// filtered set; the limit only trims what is returned, so the calling layer
// can apply its own visibility policy.
func (s *stockService) List(ctx context.Context, param dto.ListStocksParam) (*dto.StockListResponse, error) {
	stocks, err := s.stockRepo.List(ctx, param)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	total := len(stocks)
	if param.Limit > 0 && param.Limit < len(stocks) {
		stocks = stocks[:param.Limit]
	}

	result := make([]dto.StockWithTags, 0, len(stocks))
	for _, stock := range stocks {
		tags, err := s.tagRepo.GetTopVisibleContents(ctx, stock.Symbol, topTagsPerStock)
		if err != nil {
			return nil, fmt.Errorf("failed to load tags for %s: %w", stock.Symbol, err)
		}
		result = append(result, dto.StockWithTags{Stock: stock, Tags: tags})
	}

	return &dto.StockListResponse{Total: total, Stocks: result}, nil
}

func (s *stockService) Get(ctx context.Context, symbol string) (*model.Stock, error) {
	return s.stockRepo.GetBySymbol(ctx, symbol)
}

func (s *stockService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Watchlist annotates each followed stock with its competition rank over the
// whole stock set: 1 + number of stocks with strictly greater heat score, so
// equal heat shares a rank.
func (s *stockService) Watchlist(ctx context.Context, userID uint) ([]dto.WatchlistStock, error) {
	followed, err := s.watchlistRepo.GetStocksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	all, err := s.stockRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stocks for ranking: %w", err)
	}

	result := make([]dto.WatchlistStock, 0, len(followed))
	for _, stock := range followed {
		rank := 1
		for _, other := range all {
			if other.HeatScore > stock.HeatScore {
				rank++
			}
		}

		stats, err := s.predictionRepo.Tally(ctx, stock.Symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to tally predictions for %s: %w", stock.Symbol, err)
		}

		result = append(result, dto.WatchlistStock{
			Stock:     stock,
			Rank:      rank,
			BullCount: stats.Bull,
			BearCount: stats.Bear,
		})
	}

	return result, nil
}

func (s *stockService) AddToWatchlist(ctx context.Context, userID uint, symbol string) error {
	if _, err := s.stockRepo.GetBySymbol(ctx, symbol); err != nil {
		return err
	}
	return s.watchlistRepo.Add(ctx, &model.WatchlistEntry{UserID: userID, StockSymbol: symbol})
}

func (s *stockService) RemoveFromWatchlist(ctx context.Context, userID uint, symbol string) error {
	return s.watchlistRepo.Remove(ctx, userID, symbol)
}

func (s *stockService) InWatchlist(ctx context.Context, userID uint, symbol string) (bool, error) {
	return s.watchlistRepo.Exists(ctx, userID, symbol)
}
