package dto

import "hotstock/internal/model"

const (
	EventTypeDanmaku     = "danmaku"
	EventTypePriceUpdate = "price_update"
)

// Event is the envelope pushed to every connected viewer.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// InboundMessage is what a viewer may send over its connection. Only danmaku
// submissions are accepted; anything else is ignored.
type InboundMessage struct {
	Type        string `json:"type"`
	StockSymbol string `json:"stock_symbol"`
	UserID      uint   `json:"user_id"`
	Content     string `json:"content"`
}

// DanmakuPayload echoes the submitted comment together with its persisted id
// and assigned timestamp.
type DanmakuPayload struct {
	ID          uint   `json:"id"`
	StockSymbol string `json:"stock_symbol"`
	UserID      uint   `json:"user_id"`
	Content     string `json:"content"`
	Timestamp   int64  `json:"timestamp"`
	Username    string `json:"username"`
}

func NewDanmakuEvent(payload DanmakuPayload) Event {
	return Event{Type: EventTypeDanmaku, Payload: payload}
}

func NewPriceUpdateEvent(stocks []model.Stock) Event {
	return Event{Type: EventTypePriceUpdate, Payload: stocks}
}
