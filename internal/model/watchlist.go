package model

// WatchlistEntry links a user to a stock they follow. The composite primary
// key rejects duplicate membership at the store level.
type WatchlistEntry struct {
	UserID      uint   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	StockSymbol string `gorm:"primaryKey" json:"stock_symbol"`
}

func (WatchlistEntry) TableName() string {
	return "watchlist"
}
