package scheduling

import (
	"context"
	"time"

	"github.com/motorvia/autocare-scheduler/internal/models"
)

type Repository interface {
	// -------- Service center / offering --------
	GetServiceCenter(
		ctx context.Context,
		id uint,
	) (*models.ServiceCenter, error)

	GetOffering(
		ctx context.Context,
		id uint,
	) (*models.ServiceOffering, error)

	// -------- Vehicle --------
	GetVehicleForCustomer(
		ctx context.Context,
		vehicleID uint,
		customerID uint,
	) (*models.Vehicle, error)

	ListVehicleAppointmentsAt(
		ctx context.Context,
		vehicleID uint,
		at time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointmentsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForCenter(
		ctx context.Context,
		centerID uint,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListAppointmentsBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Employees / shifts --------
	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetEmployeeCenter(
		ctx context.Context,
		employeeID uint,
	) (*models.EmployeeCenter, error)

	ListCenterEmployeeIDs(
		ctx context.Context,
		centerID uint,
	) ([]uint, error)

	ListShiftsInWindow(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]models.ShiftSchedule, error)

	// AssignEmployees writes the shift rows and the join rows in one
	// transaction: either the whole batch lands or none of it does.
	AssignEmployees(
		ctx context.Context,
		ap *models.Appointment,
		employees []models.User,
		shifts []models.ShiftSchedule,
	) error

	DeleteShiftsForAppointment(
		ctx context.Context,
		appointmentID uint,
	) error

	// -------- Time logs --------
	IsEmployeeAssigned(
		ctx context.Context,
		appointmentID uint,
		employeeID uint,
	) (bool, error)

	GetOpenTimeLog(
		ctx context.Context,
		appointmentID uint,
		employeeID uint,
	) (*models.TimeLog, error)

	CreateTimeLog(
		ctx context.Context,
		tl *models.TimeLog,
	) error

	UpdateTimeLog(
		ctx context.Context,
		tl *models.TimeLog,
	) error
}
