package dto

import "hotstock/internal/model"

type ListStocksParam struct {
	Market   string `query:"market"`
	Industry string `query:"industry"`
	Limit    int    `query:"limit" validate:"omitempty,min=1"`
}

// StockWithTags annotates a stock with its top visible tag contents.
type StockWithTags struct {
	model.Stock
	Tags []string `json:"tags"`
}

// StockListResponse carries the ranked listing plus the total count before
// any caller-supplied limit, so the calling layer can apply its own cap.
type StockListResponse struct {
	Total  int             `json:"total"`
	Stocks []StockWithTags `json:"stocks"`
}

// WatchlistStock annotates a followed stock with its competition rank and
// prediction tallies.
type WatchlistStock struct {
	model.Stock
	Rank      int   `json:"rank"`
	BullCount int64 `json:"bull_count"`
	BearCount int64 `json:"bear_count"`
}

type CreateTagRequest struct {
	Content string `json:"content" validate:"required,max=32"`
}

type VoteTagRequest struct {
	Type string `json:"type" validate:"required,oneof=like dislike"`
}

type RecordPredictionRequest struct {
	UserID      uint   `json:"user_id" validate:"required"`
	StockSymbol string `json:"stock_symbol" validate:"required"`
	Direction   string `json:"direction" validate:"required,oneof=bullish bearish"`
}

type WatchlistRequest struct {
	UserID      uint   `json:"user_id" validate:"required"`
	StockSymbol string `json:"stock_symbol" validate:"required"`
}

type WatchlistCheckResponse struct {
	Exists bool `json:"exists"`
}
