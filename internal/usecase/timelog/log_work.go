package timelog

import (
	"context"
	"time"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

// ======================================================
// START
// ======================================================

type StartTimeLog struct {
	repo domain.Repository
}

func NewStartTimeLog(repo domain.Repository) *StartTimeLog {
	return &StartTimeLog{repo: repo}
}

func (uc *StartTimeLog) Execute(
	ctx context.Context,
	employeeID uint,
	appointmentID uint,
) (*models.TimeLog, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if domain.Status(ap.Status) != domain.StatusInProgress {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	ok, err := uc.repo.IsEmployeeAssigned(ctx, appointmentID, employeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("not_assigned")
	}

	open, err := uc.repo.GetOpenTimeLog(ctx, appointmentID, employeeID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, httperr.ErrBusiness("timelog_already_open")
	}

	tl := &models.TimeLog{
		AppointmentID: appointmentID,
		EmployeeID:    employeeID,
		StartTime:     time.Now(),
	}
	if err := uc.repo.CreateTimeLog(ctx, tl); err != nil {
		return nil, err
	}

	return tl, nil
}

// ======================================================
// STOP
// ======================================================

type StopTimeLog struct {
	repo domain.Repository
}

func NewStopTimeLog(repo domain.Repository) *StopTimeLog {
	return &StopTimeLog{repo: repo}
}

func (uc *StopTimeLog) Execute(
	ctx context.Context,
	employeeID uint,
	appointmentID uint,
	notes string,
) (*models.TimeLog, error) {

	open, err := uc.repo.GetOpenTimeLog(ctx, appointmentID, employeeID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, httperr.ErrBusiness("timelog_not_open")
	}

	now := time.Now()
	open.EndTime = &now
	open.HoursLogged = now.Sub(open.StartTime).Hours()
	open.Notes = notes

	if err := uc.repo.UpdateTimeLog(ctx, open); err != nil {
		return nil, err
	}

	return open, nil
}
