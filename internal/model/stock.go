package model

// Stock is one tracked instrument. The symbol set is fixed at seed time; only
// price and change percent are mutated at runtime (by the price simulator),
// plus heat score by the maintenance refresh.
type Stock struct {
	Symbol        string  `gorm:"primaryKey" json:"symbol"`
	Name          string  `gorm:"not null" json:"name"`
	Price         float64 `gorm:"not null" json:"price"`
	ChangePercent float64 `gorm:"not null;default:0" json:"change_percent"`
	Volume        float64 `gorm:"not null;default:0" json:"volume"`
	HeatScore     float64 `gorm:"not null;default:0" json:"heat_score"`
	Market        string  `gorm:"not null" json:"market"` // 'A' or 'HK'
	Industry      string  `json:"industry"`
}

func (Stock) TableName() string {
	return "stocks"
}
