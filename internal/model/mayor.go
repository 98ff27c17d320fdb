package model

import "time"

type Mayor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Age       int       `gorm:"not null" json:"age"`
	Address   string    `gorm:"size:255;not null" json:"address"`
	City      string    `gorm:"size:255;not null" json:"city"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
