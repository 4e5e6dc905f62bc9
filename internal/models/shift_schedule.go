package models

import "time"

type ShiftSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint `gorm:"index" json:"employee_id"`
	Employee   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	AssignedBy uint `json:"assigned_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
