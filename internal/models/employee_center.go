package models

import "time"

// EmployeeCenter pins an employee to their base service center. An
// employee belongs to at most one center.
type EmployeeCenter struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EmployeeID uint `gorm:"uniqueIndex" json:"employee_id"`
	Employee   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"employee"`

	ServiceCenterID uint          `json:"service_center_id"`
	ServiceCenter   ServiceCenter `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service_center"`

	CreatedAt time.Time `json:"created_at"`
}
