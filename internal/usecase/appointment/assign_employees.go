package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
	"github.com/motorvia/autocare-scheduler/internal/notify"
)

type AssignEmployees struct {
	repo     domain.Repository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewAssignEmployees(
	repo domain.Repository,
	notifier notify.Notifier,
	log *zap.Logger,
) *AssignEmployees {
	return &AssignEmployees{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Execute assigns the whole batch or nothing. A single employee with
// an overlapping shift rejects every candidate.
func (uc *AssignEmployees) Execute(
	ctx context.Context,
	caller domain.Caller,
	appointmentID uint,
	employeeIDs []uint,
) (*models.Appointment, error) {

	if !caller.IsAdmin() {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	if len(employeeIDs) == 0 {
		return nil, httperr.ErrBusiness("no_employees")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanAssignEmployees(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	start, end := domain.WorkWindow(
		ap.AppointmentDate,
		ap.ServiceOffering.EstimatedDurationMinutes,
	)

	assigned := make(map[uint]bool, len(ap.Employees))
	for _, emp := range ap.Employees {
		assigned[emp.ID] = true
	}

	// validate the whole batch before writing anything
	seen := make(map[uint]bool, len(employeeIDs))
	employees := make([]models.User, 0, len(employeeIDs))
	shifts := make([]models.ShiftSchedule, 0, len(employeeIDs))

	for _, id := range employeeIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if assigned[id] {
			return nil, httperr.ErrBusinessf("already_assigned", "employee %d is already assigned", id)
		}

		emp, err := uc.repo.GetEmployee(ctx, id)
		if err != nil {
			return nil, httperr.ErrBusinessf("employee_not_found", "employee %d not found", id)
		}

		// candidates must work at the appointment's center
		ec, err := uc.repo.GetEmployeeCenter(ctx, emp.ID)
		if err != nil || ec.ServiceCenterID != ap.ServiceCenterID {
			return nil, httperr.ErrBusinessf("wrong_center", "employee %d is not based at this center", id)
		}

		existing, err := uc.repo.ListShiftsInWindow(ctx, emp.ID, start, end)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			return nil, httperr.ErrBusinessf("shift_conflict",
				"employee %d already has a shift between %s and %s",
				id, start.Format("15:04"), end.Format("15:04"))
		}

		employees = append(employees, *emp)
		shifts = append(shifts, models.ShiftSchedule{
			EmployeeID:    emp.ID,
			AppointmentID: ap.ID,
			StartTime:     start,
			EndTime:       end,
			AssignedBy:    caller.ID,
		})
	}

	if err := uc.repo.AssignEmployees(ctx, ap, employees, shifts); err != nil {
		return nil, err
	}

	ap.Employees = append(ap.Employees, employees...)

	uc.log.Info("employees assigned",
		zap.Uint("appointment_id", ap.ID),
		zap.Int("count", len(employees)),
	)

	for _, emp := range employees {
		uc.notifier.Notify(notify.Event{
			UserID:  emp.ID,
			Type:    models.NotificationAssigned,
			Message: fmt.Sprintf("You were assigned to appointment #%d (%s).", ap.ID, start.Format("Jan 2 15:04")),
			Data:    map[string]any{"appointment_id": ap.ID},
		})
	}

	return ap, nil
}
