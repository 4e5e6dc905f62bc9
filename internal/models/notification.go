package models

import "time"

const (
	NotificationBookingCreated   = "booking_created"
	NotificationBookingCancelled = "booking_cancelled"
	NotificationStatusChanged    = "status_changed"
	NotificationAssigned         = "assigned"
	NotificationReminder         = "reminder"
)

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint   `gorm:"index" json:"user_id"`
	Type   string `gorm:"size:50;not null" json:"type"`

	Message string `gorm:"size:255" json:"message"`
	Data    string `gorm:"type:text" json:"data"`

	IsRead bool `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}
