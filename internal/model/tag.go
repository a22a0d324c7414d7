package model

// Tag is a community-submitted label on a stock. IsHidden is one-way: the
// vote path flips it to true when dislikes reach the hide threshold and
// nothing ever sets it back.
type Tag struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	StockSymbol string `gorm:"not null;index" json:"stock_symbol"`
	Content     string `gorm:"not null" json:"content"`
	Likes       int    `gorm:"not null;default:0" json:"likes"`
	Dislikes    int    `gorm:"not null;default:0" json:"dislikes"`
	IsHidden    bool   `gorm:"not null;default:false" json:"is_hidden"`
}

func (Tag) TableName() string {
	return "tags"
}
