package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Code         string    `json:"code"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	LicensePlate string    `json:"license_plate"`
	OfferingName string    `json:"offering_name"`
	CenterName   string    `json:"center_name"`
	Description  string    `json:"description"`
	CanStartWork bool      `json:"can_start_work"`
}
