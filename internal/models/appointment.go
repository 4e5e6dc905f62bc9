package models

import "time"

type Appointment struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"size:36;uniqueIndex" json:"code"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle"`

	ServiceOfferingID uint            `json:"service_offering_id"`
	ServiceOffering   ServiceOffering `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_offering"`

	ServiceCenterID uint          `json:"service_center_id"`
	ServiceCenter   ServiceCenter `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_center"`

	AppointmentDate time.Time `json:"appointment_date"`

	Status string `gorm:"size:20;default:'PENDING'" json:"status"`

	Description string `gorm:"size:255" json:"description"`

	Employees []User `gorm:"many2many:appointment_employees;" json:"employees"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
