package model

import (
	"time"

	"gorm.io/datatypes"
)

// SentimentAnalysis is one persisted classifier attribution run for a stock.
type SentimentAnalysis struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	StockSymbol    string         `gorm:"not null;index" json:"stock_symbol"`
	Headlines      datatypes.JSON `gorm:"type:jsonb" json:"headlines"`
	SentimentScore float64        `gorm:"not null" json:"sentiment_score"`
	ReasonTags     datatypes.JSON `gorm:"type:jsonb" json:"reason_tags"`
	Summary        string         `json:"summary"`
	RawResponse    datatypes.JSON `gorm:"type:jsonb" json:"raw_response"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (SentimentAnalysis) TableName() string {
	return "sentiment_analyses"
}
