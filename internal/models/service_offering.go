package models

import "time"

const (
	OfferingTypeService      = "service"
	OfferingTypeModification = "modification"
)

// ServiceOffering is a service or modification the platform sells
// (oil change, brake job, body kit install, ...).
type ServiceOffering struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Type        string  `gorm:"size:20;default:'service'" json:"type"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`

	// Nil means the workshop has not estimated this job yet.
	EstimatedDurationMinutes *int `json:"estimated_duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
