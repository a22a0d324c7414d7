package model

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	Mobile     string `gorm:"uniqueIndex" json:"mobile"`
	Reputation int    `gorm:"not null;default:0" json:"reputation"`
	IsPro      bool   `gorm:"not null;default:false" json:"is_pro"`
	Avatar     string `json:"avatar"`
}

func (User) TableName() string {
	return "users"
}
