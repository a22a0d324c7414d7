package service

import (
	"context"
	"fmt"
	"testing"

	"hotstock/internal/dto"
	"hotstock/internal/model"
	"hotstock/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockServiceForTest(
	stockRepo *stubStockRepo,
	tagRepo *stubTagRepo,
	predictionRepo *stubPredictionRepo,
	watchlistRepo *stubWatchlistRepo,
) StockService {
	if tagRepo == nil {
		tagRepo = &stubTagRepo{}
	}
	if predictionRepo == nil {
		predictionRepo = &stubPredictionRepo{}
	}
	if watchlistRepo == nil {
		watchlistRepo = newStubWatchlistRepo()
	}
	return NewStockService(testLogger(), stockRepo, tagRepo, predictionRepo, watchlistRepo, &stubUserRepo{})
}

func TestStockService_List(t *testing.T) {
	stockRepo := &stubStockRepo{stocks: []model.Stock{
		{Symbol: "600519.SH", Name: "贵州茅台", Price: 1700, HeatScore: 95, Market: "A", Industry: "白酒"},
		{Symbol: "700.HK", Name: "腾讯控股", Price: 320, HeatScore: 92, Market: "HK", Industry: "互联网"},
		{Symbol: "002594.SZ", Name: "比亚迪", Price: 240, HeatScore: 88, Market: "A", Industry: "新能源车"},
	}}

	t.Run("ordered by heat with total before the limit", func(t *testing.T) {
		svc := newStockServiceForTest(stockRepo, nil, nil, nil)

		resp, err := svc.List(context.Background(), dto.ListStocksParam{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Total)
		require.Len(t, resp.Stocks, 2)
		assert.Equal(t, "600519.SH", resp.Stocks[0].Symbol)
		assert.Equal(t, "700.HK", resp.Stocks[1].Symbol)
	})

	t.Run("market filter", func(t *testing.T) {
		svc := newStockServiceForTest(stockRepo, nil, nil, nil)

		resp, err := svc.List(context.Background(), dto.ListStocksParam{Market: "A"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		for _, stock := range resp.Stocks {
			assert.Equal(t, "A", stock.Market)
		}
	})

	t.Run("All passes every market through", func(t *testing.T) {
		svc := newStockServiceForTest(stockRepo, nil, nil, nil)

		resp, err := svc.List(context.Background(), dto.ListStocksParam{Market: "All", Industry: "All"})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Total)
	})

	t.Run("at most five visible tags per stock, likes first", func(t *testing.T) {
		tagRepo := &stubTagRepo{}
		for i := 0; i < 7; i++ {
			tagRepo.tags = append(tagRepo.tags, model.Tag{
				ID:          uint(i + 1),
				StockSymbol: "600519.SH",
				Content:     fmt.Sprintf("tag-%d", i),
				Likes:       i,
			})
		}
		// Hidden tags never surface, regardless of likes.
		tagRepo.tags = append(tagRepo.tags, model.Tag{
			ID: 8, StockSymbol: "600519.SH", Content: "hidden", Likes: 100, IsHidden: true,
		})
		svc := newStockServiceForTest(stockRepo, tagRepo, nil, nil)

		resp, err := svc.List(context.Background(), dto.ListStocksParam{})
		require.NoError(t, err)
		require.Len(t, resp.Stocks[0].Tags, 5)
		assert.Equal(t, "tag-6", resp.Stocks[0].Tags[0])
		assert.NotContains(t, resp.Stocks[0].Tags, "hidden")
	})
}

func TestStockService_Get(t *testing.T) {
	stockRepo := &stubStockRepo{stocks: []model.Stock{
		{Symbol: "600519.SH", Name: "贵州茅台", Price: 1700},
	}}
	svc := newStockServiceForTest(stockRepo, nil, nil, nil)

	stock, err := svc.Get(context.Background(), "600519.SH")
	require.NoError(t, err)
	assert.Equal(t, "贵州茅台", stock.Name)

	_, err = svc.Get(context.Background(), "000000.SZ")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestStockService_Watchlist_CompetitionRank(t *testing.T) {
	all := []model.Stock{
		{Symbol: "AAA", HeatScore: 95},
		{Symbol: "BBB", HeatScore: 88},
		{Symbol: "CCC", HeatScore: 88},
		{Symbol: "DDD", HeatScore: 60},
	}
	stockRepo := &stubStockRepo{stocks: all}
	watchlistRepo := newStubWatchlistRepo()
	watchlistRepo.stocksByUser[1] = all

	predictionRepo := &stubPredictionRepo{rows: []model.Prediction{
		{StockSymbol: "AAA", Direction: model.DirectionBull},
		{StockSymbol: "AAA", Direction: model.DirectionBull},
		{StockSymbol: "AAA", Direction: model.DirectionBear},
	}}

	svc := newStockServiceForTest(stockRepo, nil, predictionRepo, watchlistRepo)

	entries, err := svc.Watchlist(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	ranks := make(map[string]int, len(entries))
	for _, entry := range entries {
		ranks[entry.Symbol] = entry.Rank
	}
	// Equal heat shares a rank and the next rank is skipped.
	assert.Equal(t, 1, ranks["AAA"])
	assert.Equal(t, 2, ranks["BBB"])
	assert.Equal(t, 2, ranks["CCC"])
	assert.Equal(t, 4, ranks["DDD"])

	for _, entry := range entries {
		if entry.Symbol == "AAA" {
			assert.Equal(t, int64(2), entry.BullCount)
			assert.Equal(t, int64(1), entry.BearCount)
		}
	}
}

func TestStockService_WatchlistMembership(t *testing.T) {
	stockRepo := &stubStockRepo{stocks: []model.Stock{{Symbol: "700.HK", Price: 320}}}
	watchlistRepo := newStubWatchlistRepo()
	svc := newStockServiceForTest(stockRepo, nil, nil, watchlistRepo)
	ctx := context.Background()

	t.Run("add then check", func(t *testing.T) {
		require.NoError(t, svc.AddToWatchlist(ctx, 1, "700.HK"))
		exists, err := svc.InWatchlist(ctx, 1, "700.HK")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("second add is a duplicate", func(t *testing.T) {
		err := svc.AddToWatchlist(ctx, 1, "700.HK")
		require.ErrorIs(t, err, common.ErrDuplicate)
	})

	t.Run("unknown symbol is rejected before the insert", func(t *testing.T) {
		err := svc.AddToWatchlist(ctx, 1, "000000.SZ")
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, svc.RemoveFromWatchlist(ctx, 1, "700.HK"))
		require.NoError(t, svc.RemoveFromWatchlist(ctx, 1, "700.HK"))

		exists, err := svc.InWatchlist(ctx, 1, "700.HK")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
