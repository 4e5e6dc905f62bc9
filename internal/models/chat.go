package models

import "time"

type ChatRoom struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:36;uniqueIndex" json:"code"`

	AppointmentID uint `gorm:"uniqueIndex" json:"appointment_id"`
	CustomerID    uint `json:"customer_id"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID   uint `gorm:"index" json:"room_id"`
	SenderID uint `json:"sender_id"`

	Content string `gorm:"size:1000;not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}
