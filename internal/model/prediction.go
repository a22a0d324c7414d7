package model

const (
	DirectionBull int16 = 1
	DirectionBear int16 = -1
)

const (
	PredictionStatusPending = "pending"
	PredictionStatusWin     = "win"
	PredictionStatusLoss    = "loss"
)

// Prediction is one directional vote. Append-only, no uniqueness constraint:
// a user may vote any number of times and the tally counts every row.
type Prediction struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null" json:"user_id"`
	StockSymbol string `gorm:"not null;index" json:"stock_symbol"`
	Direction   int16  `gorm:"not null" json:"direction"` // 1 bull, -1 bear
	Status      string `gorm:"not null;default:pending" json:"status"`
	CreatedAt   int64  `gorm:"not null" json:"created_at"` // unix ms
}

func (Prediction) TableName() string {
	return "predictions"
}

// PredictionStats is the aggregate tally for one stock.
type PredictionStats struct {
	Bull int64 `json:"bull"`
	Bear int64 `json:"bear"`
}
