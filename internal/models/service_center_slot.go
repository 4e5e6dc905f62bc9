package models

import "time"

// ServiceCenterSlot is one ledger row: a physical lane of a center
// booked for one hour bucket. The composite unique index is what makes
// concurrent reservations collide instead of overbooking.
type ServiceCenterSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceCenterID uint      `gorm:"uniqueIndex:idx_center_time_slot" json:"service_center_id"`
	SlotTime        time.Time `gorm:"uniqueIndex:idx_center_time_slot" json:"slot_time"`
	SlotNumber      int       `gorm:"uniqueIndex:idx_center_time_slot" json:"slot_number"`

	IsBooked      bool  `json:"is_booked"`
	AppointmentID *uint `gorm:"uniqueIndex" json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
