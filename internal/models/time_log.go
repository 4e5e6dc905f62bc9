package models

import "time"

// TimeLog is an append-only record of work an employee performed on an
// appointment. Rows are never updated after EndTime is set.
type TimeLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`
	EmployeeID    uint `gorm:"index" json:"employee_id"`

	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	HoursLogged float64    `json:"hours_logged"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
