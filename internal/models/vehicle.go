package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	LicensePlate string `gorm:"size:20;uniqueIndex;not null" json:"license_plate"`
	Make         string `gorm:"size:50" json:"make"`
	Model        string `gorm:"size:50" json:"model"`
	Year         int    `json:"year"`
	PhotoURL     string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
