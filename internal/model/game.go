package model

import "time"

const (
	ReviewPositive = "positive"
	ReviewNegative = "negative"
)

type Game struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Studio    string    `gorm:"size:255;not null" json:"studio"`
	Genre     string    `gorm:"size:255;not null" json:"genre"`
	Review    string    `gorm:"size:16;not null" json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
