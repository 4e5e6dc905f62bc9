package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Service center / offering
// --------------------------------------------------

func (r *SchedulingGormRepository) GetServiceCenter(
	ctx context.Context,
	id uint,
) (*models.ServiceCenter, error) {

	var center models.ServiceCenter
	if err := r.db.WithContext(ctx).First(&center, id).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

func (r *SchedulingGormRepository) GetOffering(
	ctx context.Context,
	id uint,
) (*models.ServiceOffering, error) {

	var offering models.ServiceOffering
	if err := r.db.WithContext(ctx).First(&offering, id).Error; err != nil {
		return nil, err
	}
	return &offering, nil
}

// --------------------------------------------------
// Vehicle
// --------------------------------------------------

func (r *SchedulingGormRepository) GetVehicleForCustomer(
	ctx context.Context,
	vehicleID uint,
	customerID uint,
) (*models.Vehicle, error) {

	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", vehicleID, customerID).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *SchedulingGormRepository) ListVehicleAppointmentsAt(
	ctx context.Context,
	vehicleID uint,
	at time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"vehicle_id = ? AND appointment_date = ? AND status <> ?",
			vehicleID, at, string(domain.StatusCancelled),
		).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Employees").
		Preload("ServiceOffering").
		Preload("ServiceCenter").
		Preload("Vehicle").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *SchedulingGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

func (r *SchedulingGormRepository) ListAppointmentsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("ServiceOffering").
		Preload("ServiceCenter").
		Preload("Employees").
		Where("customer_id = ?", customerID).
		Order("appointment_date ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForCenter(
	ctx context.Context,
	centerID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("ServiceOffering").
		Preload("ServiceCenter").
		Preload("Customer").
		Preload("Employees").
		Where("service_center_id = ?", centerID).
		Order("appointment_date ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("ServiceOffering").
		Preload("ServiceCenter").
		Preload("Customer").
		Preload("Employees").
		Order("appointment_date ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *SchedulingGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("ServiceCenter").
		Where(
			"appointment_date >= ? AND appointment_date < ? AND status IN ?",
			start, end,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
		).
		Order("appointment_date ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Employees / shifts
// --------------------------------------------------

func (r *SchedulingGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleEmployee).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *SchedulingGormRepository) GetEmployeeCenter(
	ctx context.Context,
	employeeID uint,
) (*models.EmployeeCenter, error) {

	var ec models.EmployeeCenter
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&ec).Error; err != nil {
		return nil, err
	}
	return &ec, nil
}

func (r *SchedulingGormRepository) ListCenterEmployeeIDs(
	ctx context.Context,
	centerID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeCenter{}).
		Where("service_center_id = ?", centerID).
		Pluck("employee_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *SchedulingGormRepository) ListShiftsInWindow(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.ShiftSchedule, error) {

	var shifts []models.ShiftSchedule
	if err := r.db.WithContext(ctx).
		Where(
			"employee_id = ? AND start_time < ? AND end_time > ?",
			employeeID, end, start,
		).
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *SchedulingGormRepository) AssignEmployees(
	ctx context.Context,
	ap *models.Appointment,
	employees []models.User,
	shifts []models.ShiftSchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&shifts).Error; err != nil {
			return err
		}
		return tx.Model(ap).Association("Employees").Append(&employees)
	})
}

func (r *SchedulingGormRepository) DeleteShiftsForAppointment(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.ShiftSchedule{}).Error
}

// --------------------------------------------------
// Time logs
// --------------------------------------------------

func (r *SchedulingGormRepository) IsEmployeeAssigned(
	ctx context.Context,
	appointmentID uint,
	employeeID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Table("appointment_employees").
		Where("appointment_id = ? AND user_id = ?", appointmentID, employeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *SchedulingGormRepository) GetOpenTimeLog(
	ctx context.Context,
	appointmentID uint,
	employeeID uint,
) (*models.TimeLog, error) {

	var tl models.TimeLog
	err := r.db.WithContext(ctx).
		Where(
			"appointment_id = ? AND employee_id = ? AND end_time IS NULL",
			appointmentID, employeeID,
		).
		First(&tl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tl, nil
}

func (r *SchedulingGormRepository) CreateTimeLog(
	ctx context.Context,
	tl *models.TimeLog,
) error {
	return r.db.WithContext(ctx).Create(tl).Error
}

func (r *SchedulingGormRepository) UpdateTimeLog(
	ctx context.Context,
	tl *models.TimeLog,
) error {
	return r.db.WithContext(ctx).Save(tl).Error
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
