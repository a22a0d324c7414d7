package model

// Danmaku is an append-only live comment. Timestamp is unix milliseconds,
// assigned at ingestion.
type Danmaku struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	StockSymbol string `gorm:"not null;index" json:"stock_symbol"`
	UserID      uint   `gorm:"not null" json:"user_id"`
	Content     string `gorm:"not null" json:"content"`
	Timestamp   int64  `gorm:"not null" json:"timestamp"`
	Likes       int    `gorm:"not null;default:0" json:"likes"`
}

func (Danmaku) TableName() string {
	return "danmaku"
}

// DanmakuWithUser is the read shape for comment history, joined with the
// author's username.
type DanmakuWithUser struct {
	Danmaku
	Username string `json:"username"`
}
