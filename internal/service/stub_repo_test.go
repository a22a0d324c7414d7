package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"hotstock/internal/dto"
	"hotstock/internal/model"
	"hotstock/pkg/common"
	"hotstock/pkg/logger"
	"hotstock/pkg/utils"

	"go.uber.org/zap"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

type stubCache struct {
	values map[string]interface{}
}

func newStubCache() *stubCache {
	return &stubCache{values: make(map[string]interface{})}
}

func (c *stubCache) Set(key string, value interface{}, _ time.Duration) { c.values[key] = value }
func (c *stubCache) Get(key string) (interface{}, bool) {
	v, ok := c.values[key]
	return v, ok
}
func (c *stubCache) Delete(key string) { delete(c.values, key) }
func (c *stubCache) Flush()            { c.values = make(map[string]interface{}) }

type fakeBroadcaster struct {
	events []dto.Event
}

func (b *fakeBroadcaster) Broadcast(event dto.Event) {
	b.events = append(b.events, event)
}

type stubStockRepo struct {
	stocks           []model.Stock
	applyErrBySymbol map[string]error
	getAllCalls      int
	failGetAllOnCall int // 1-based call number that fails, 0 disables
}

func (r *stubStockRepo) sorted() []model.Stock {
	out := make([]model.Stock, len(r.stocks))
	copy(out, r.stocks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].HeatScore > out[j].HeatScore })
	return out
}

func (r *stubStockRepo) List(_ context.Context, param dto.ListStocksParam, _ ...utils.DBOption) ([]model.Stock, error) {
	var out []model.Stock
	for _, s := range r.sorted() {
		if param.Market != "" && param.Market != "All" && s.Market != param.Market {
			continue
		}
		if param.Industry != "" && param.Industry != "All" && s.Industry != param.Industry {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *stubStockRepo) GetBySymbol(_ context.Context, symbol string, _ ...utils.DBOption) (*model.Stock, error) {
	for i := range r.stocks {
		if r.stocks[i].Symbol == symbol {
			stock := r.stocks[i]
			return &stock, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *stubStockRepo) GetAll(_ context.Context) ([]model.Stock, error) {
	r.getAllCalls++
	if r.failGetAllOnCall > 0 && r.getAllCalls == r.failGetAllOnCall {
		return nil, fmt.Errorf("store unavailable")
	}
	return r.sorted(), nil
}

func (r *stubStockRepo) ApplyPriceDelta(_ context.Context, symbol string, newPrice, changeDelta float64) error {
	if err := r.applyErrBySymbol[symbol]; err != nil {
		return err
	}
	for i := range r.stocks {
		if r.stocks[i].Symbol == symbol {
			r.stocks[i].Price = newPrice
			r.stocks[i].ChangePercent += changeDelta
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *stubStockRepo) UpdateHeatScore(_ context.Context, symbol string, score float64) error {
	for i := range r.stocks {
		if r.stocks[i].Symbol == symbol {
			r.stocks[i].HeatScore = score
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *stubStockRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.stocks)), nil
}

func (r *stubStockRepo) CreateBatch(_ context.Context, stocks []model.Stock) error {
	r.stocks = append(r.stocks, stocks...)
	return nil
}

type stubTagRepo struct {
	tags   []model.Tag
	nextID uint
}

func (r *stubTagRepo) Create(_ context.Context, tag *model.Tag, _ ...utils.DBOption) error {
	r.nextID++
	tag.ID = r.nextID
	r.tags = append(r.tags, *tag)
	return nil
}

func (r *stubTagRepo) GetByID(_ context.Context, id uint) (*model.Tag, error) {
	for i := range r.tags {
		if r.tags[i].ID == id {
			tag := r.tags[i]
			return &tag, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *stubTagRepo) GetVisibleBySymbol(_ context.Context, symbol string) ([]model.Tag, error) {
	var out []model.Tag
	for _, t := range r.tags {
		if t.StockSymbol == symbol && !t.IsHidden {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Likes > out[j].Likes })
	return out, nil
}

func (r *stubTagRepo) GetTopVisibleContents(ctx context.Context, symbol string, limit int) ([]string, error) {
	tags, err := r.GetVisibleBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, t := range tags {
		if len(out) == limit {
			break
		}
		out = append(out, t.Content)
	}
	return out, nil
}

func (r *stubTagRepo) AddLike(_ context.Context, id uint) error {
	for i := range r.tags {
		if r.tags[i].ID == id {
			r.tags[i].Likes++
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *stubTagRepo) AddDislike(_ context.Context, id uint, hideThreshold int) error {
	for i := range r.tags {
		if r.tags[i].ID == id {
			r.tags[i].Dislikes++
			r.tags[i].IsHidden = r.tags[i].IsHidden || r.tags[i].Dislikes >= hideThreshold
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *stubTagRepo) CreateBatch(_ context.Context, tags []model.Tag) error {
	for i := range tags {
		r.nextID++
		tags[i].ID = r.nextID
		r.tags = append(r.tags, tags[i])
	}
	return nil
}

type stubPredictionRepo struct {
	rows   []model.Prediction
	nextID uint
}

func (r *stubPredictionRepo) Create(_ context.Context, prediction *model.Prediction) error {
	r.nextID++
	prediction.ID = r.nextID
	r.rows = append(r.rows, *prediction)
	return nil
}

func (r *stubPredictionRepo) Tally(_ context.Context, symbol string) (model.PredictionStats, error) {
	var stats model.PredictionStats
	for _, row := range r.rows {
		if row.StockSymbol != symbol {
			continue
		}
		switch row.Direction {
		case model.DirectionBull:
			stats.Bull++
		case model.DirectionBear:
			stats.Bear++
		}
	}
	return stats, nil
}

func (r *stubPredictionRepo) CountSince(_ context.Context, symbol string, since int64) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.StockSymbol == symbol && row.CreatedAt >= since {
			count++
		}
	}
	return count, nil
}

type stubWatchlistRepo struct {
	entries      map[string]struct{}
	stocksByUser map[uint][]model.Stock
}

func newStubWatchlistRepo() *stubWatchlistRepo {
	return &stubWatchlistRepo{
		entries:      make(map[string]struct{}),
		stocksByUser: make(map[uint][]model.Stock),
	}
}

func watchlistKey(userID uint, symbol string) string {
	return fmt.Sprintf("%d:%s", userID, symbol)
}

func (r *stubWatchlistRepo) Add(_ context.Context, entry *model.WatchlistEntry) error {
	key := watchlistKey(entry.UserID, entry.StockSymbol)
	if _, ok := r.entries[key]; ok {
		return common.ErrDuplicate
	}
	r.entries[key] = struct{}{}
	return nil
}

func (r *stubWatchlistRepo) Remove(_ context.Context, userID uint, symbol string) error {
	delete(r.entries, watchlistKey(userID, symbol))
	return nil
}

func (r *stubWatchlistRepo) Exists(_ context.Context, userID uint, symbol string) (bool, error) {
	_, ok := r.entries[watchlistKey(userID, symbol)]
	return ok, nil
}

func (r *stubWatchlistRepo) GetStocksByUser(_ context.Context, userID uint) ([]model.Stock, error) {
	return r.stocksByUser[userID], nil
}

type stubUserRepo struct {
	users map[uint]model.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if user, ok := r.users[id]; ok {
		return &user, nil
	}
	return nil, common.ErrNotFound
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *model.User) error {
	if r.users == nil {
		r.users = make(map[uint]model.User)
	}
	r.users[user.ID] = *user
	return nil
}

type stubDanmakuRepo struct {
	rows   []model.Danmaku
	nextID uint
}

func (r *stubDanmakuRepo) Create(_ context.Context, danmaku *model.Danmaku) error {
	r.nextID++
	danmaku.ID = r.nextID
	r.rows = append(r.rows, *danmaku)
	return nil
}

func (r *stubDanmakuRepo) HistoryBySymbol(_ context.Context, symbol string, limit int) ([]model.DanmakuWithUser, error) {
	var out []model.DanmakuWithUser
	for _, row := range r.rows {
		if row.StockSymbol != symbol {
			continue
		}
		out = append(out, model.DanmakuWithUser{Danmaku: row})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubDanmakuRepo) CountSince(_ context.Context, symbol string, since int64) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.StockSymbol == symbol && row.Timestamp >= since {
			count++
		}
	}
	return count, nil
}

func (r *stubDanmakuRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []model.Danmaku
	var deleted int64
	for _, row := range r.rows {
		if row.Timestamp < cutoff.UnixMilli() {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return deleted, nil
}

type stubSentimentRepo struct {
	analyses  []model.SentimentAnalysis
	createErr error
}

func (r *stubSentimentRepo) Create(_ context.Context, analysis *model.SentimentAnalysis) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.analyses = append(r.analyses, *analysis)
	return nil
}

func (r *stubSentimentRepo) LatestBySymbol(_ context.Context, symbol string) (*model.SentimentAnalysis, error) {
	for i := len(r.analyses) - 1; i >= 0; i-- {
		if r.analyses[i].StockSymbol == symbol {
			analysis := r.analyses[i]
			return &analysis, nil
		}
	}
	return nil, nil
}

type stubClassifier struct {
	validateCalls  int
	suggestCalls   int
	sentimentCalls int

	validateFn  func(content string) (*dto.TagValidationResult, error)
	suggestFn   func(symbol, name string) (*dto.TagSuggestionResult, error)
	sentimentFn func(symbol string, headlines []string) (*dto.SentimentResult, json.RawMessage, error)
}

func (c *stubClassifier) ValidateTag(_ context.Context, content string) (*dto.TagValidationResult, error) {
	c.validateCalls++
	if c.validateFn != nil {
		return c.validateFn(content)
	}
	return &dto.TagValidationResult{IsValid: true}, nil
}

func (c *stubClassifier) SuggestTags(_ context.Context, symbol, name string) (*dto.TagSuggestionResult, error) {
	c.suggestCalls++
	if c.suggestFn != nil {
		return c.suggestFn(symbol, name)
	}
	return &dto.TagSuggestionResult{}, nil
}

func (c *stubClassifier) AnalyzeSentiment(_ context.Context, symbol string, headlines []string) (*dto.SentimentResult, json.RawMessage, error) {
	c.sentimentCalls++
	if c.sentimentFn != nil {
		return c.sentimentFn(symbol, headlines)
	}
	return &dto.SentimentResult{}, json.RawMessage(`{}`), nil
}
