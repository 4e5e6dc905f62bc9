package models

import "time"

type ServiceCenter struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	Timezone string `gorm:"size:50" json:"timezone"`

	// CenterSlot is the number of physical lanes, i.e. the maximum
	// number of appointments the center can take in the same hour.
	CenterSlot int  `gorm:"default:1" json:"center_slot"`
	IsActive   bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
