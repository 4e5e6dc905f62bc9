package timelog

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

// stubRepo implements just the slice of the repository the time-log
// use cases touch. Everything else panics via the embedded nil.
type stubRepo struct {
	domain.Repository

	appointment *models.Appointment
	logs        map[uint]*models.TimeLog
	nextID      uint
}

func newStubRepo(status domain.Status, employeeIDs ...uint) *stubRepo {
	ap := &models.Appointment{ID: 1, Status: string(status)}
	for _, id := range employeeIDs {
		ap.Employees = append(ap.Employees, models.User{ID: id})
	}
	return &stubRepo{appointment: ap, logs: make(map[uint]*models.TimeLog)}
}

func (r *stubRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	if r.appointment == nil || r.appointment.ID != id {
		return nil, errors.New("not found")
	}
	cp := *r.appointment
	return &cp, nil
}

func (r *stubRepo) IsEmployeeAssigned(_ context.Context, _, employeeID uint) (bool, error) {
	for _, emp := range r.appointment.Employees {
		if emp.ID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) GetOpenTimeLog(_ context.Context, appointmentID, employeeID uint) (*models.TimeLog, error) {
	for _, tl := range r.logs {
		if tl.AppointmentID == appointmentID && tl.EmployeeID == employeeID && tl.EndTime == nil {
			cp := *tl
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) CreateTimeLog(_ context.Context, tl *models.TimeLog) error {
	r.nextID++
	tl.ID = r.nextID
	cp := *tl
	r.logs[tl.ID] = &cp
	return nil
}

func (r *stubRepo) UpdateTimeLog(_ context.Context, tl *models.TimeLog) error {
	if _, ok := r.logs[tl.ID]; !ok {
		return errors.New("not found")
	}
	cp := *tl
	r.logs[tl.ID] = &cp
	return nil
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	be, ok := httperr.AsBusiness(err)
	if !ok || be.Code != code {
		t.Fatalf("error = %v, want business code %q", err, code)
	}
}

func TestStartTimeLog(t *testing.T) {
	repo := newStubRepo(domain.StatusInProgress, 5)
	uc := NewStartTimeLog(repo)

	tl, err := uc.Execute(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if tl.ID == 0 || tl.StartTime.IsZero() {
		t.Errorf("time log not initialized: %+v", tl)
	}
	if tl.EndTime != nil {
		t.Error("new time log already closed")
	}
}

func TestStartTimeLogRequiresInProgress(t *testing.T) {
	repo := newStubRepo(domain.StatusConfirmed, 5)
	uc := NewStartTimeLog(repo)

	_, err := uc.Execute(context.Background(), 5, 1)
	wantCode(t, err, "invalid_state")
}

func TestStartTimeLogRequiresAssignment(t *testing.T) {
	repo := newStubRepo(domain.StatusInProgress, 5)
	uc := NewStartTimeLog(repo)

	_, err := uc.Execute(context.Background(), 7, 1)
	wantCode(t, err, "not_assigned")
}

func TestStartTimeLogRejectsSecondOpenLog(t *testing.T) {
	repo := newStubRepo(domain.StatusInProgress, 5)
	uc := NewStartTimeLog(repo)

	if _, err := uc.Execute(context.Background(), 5, 1); err != nil {
		t.Fatalf("first start: %v", err)
	}

	_, err := uc.Execute(context.Background(), 5, 1)
	wantCode(t, err, "timelog_already_open")
}

func TestStopTimeLog(t *testing.T) {
	repo := newStubRepo(domain.StatusInProgress, 5)

	start := time.Now().Add(-90 * time.Minute)
	repo.logs[1] = &models.TimeLog{
		ID: 1, AppointmentID: 1, EmployeeID: 5, StartTime: start,
	}
	repo.nextID = 1

	uc := NewStopTimeLog(repo)
	tl, err := uc.Execute(context.Background(), 5, 1, "replaced brake pads")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if tl.EndTime == nil {
		t.Fatal("EndTime not set")
	}
	if tl.HoursLogged < 1.4 || tl.HoursLogged > 1.6 {
		t.Errorf("HoursLogged = %f, want ~1.5", tl.HoursLogged)
	}
	if tl.Notes != "replaced brake pads" {
		t.Errorf("Notes = %q", tl.Notes)
	}
}

func TestStopTimeLogWithoutOpenLog(t *testing.T) {
	repo := newStubRepo(domain.StatusInProgress, 5)
	uc := NewStopTimeLog(repo)

	_, err := uc.Execute(context.Background(), 5, 1, "")
	wantCode(t, err, "timelog_not_open")
}
