package appointment

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

func newCancelUC(f *fixture) *CancelAppointment {
	return NewCancelAppointment(
		f.repo,
		f.ledger,
		f.notifier,
		f.chat,
		nil,
		zap.NewNop(),
	)
}

func TestCancelAppointmentByOwner(t *testing.T) {
	f := newFixture(2)
	bookUC := newBookUC(f)
	cancelUC := newCancelUC(f)

	ap, err := bookUC.Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	owner := domain.Caller{ID: 10, Role: models.RoleCustomer}
	cancelled, err := cancelUC.Execute(context.Background(), owner, ap.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if cancelled.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Error("CancelledAt not set")
	}
	if len(f.chat.closed) != 1 || f.chat.closed[0] != ap.ID {
		t.Errorf("chat rooms closed = %v, want [%d]", f.chat.closed, ap.ID)
	}
	if evs := f.notifier.byType(models.NotificationBookingCancelled); len(evs) == 0 {
		t.Error("no booking_cancelled notification")
	}
}

// Cancelling must free the lane: a full hour becomes bookable again.
func TestCancelAppointmentFreesTheSlot(t *testing.T) {
	f := newFixture(1)
	bookUC := newBookUC(f)
	cancelUC := newCancelUC(f)

	f.addVehicle(2, 20)

	ap, err := bookUC.Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	in := baseInput()
	in.CustomerID = 20
	in.VehicleID = 2
	if _, err := bookUC.Execute(context.Background(), in); err == nil {
		t.Fatal("second booking landed in a full hour")
	}

	owner := domain.Caller{ID: 10, Role: models.RoleCustomer}
	if _, err := cancelUC.Execute(context.Background(), owner, ap.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := bookUC.Execute(context.Background(), in); err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
}

func TestCancelAppointmentDropsShifts(t *testing.T) {
	f := newFixture(2)
	bookUC := newBookUC(f)
	cancelUC := newCancelUC(f)

	ap, err := bookUC.Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	f.repo.mu.Lock()
	f.repo.shifts = append(f.repo.shifts, models.ShiftSchedule{
		EmployeeID:    5,
		AppointmentID: ap.ID,
		StartTime:     ap.AppointmentDate,
		EndTime:       ap.AppointmentDate.Add(time.Hour),
	})
	f.repo.mu.Unlock()

	admin := domain.Caller{ID: 1, Role: models.RoleAdmin}
	if _, err := cancelUC.Execute(context.Background(), admin, ap.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	shifts, _ := f.repo.ListShiftsInWindow(context.Background(), 5,
		ap.AppointmentDate.Add(-time.Hour), ap.AppointmentDate.Add(2*time.Hour))
	if len(shifts) != 0 {
		t.Fatalf("shifts after cancel = %d, want 0", len(shifts))
	}
}

func TestCancelAppointmentRejectsStranger(t *testing.T) {
	f := newFixture(2)
	bookUC := newBookUC(f)
	cancelUC := newCancelUC(f)

	ap, err := bookUC.Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	stranger := domain.Caller{ID: 77, Role: models.RoleCustomer}
	_, err = cancelUC.Execute(context.Background(), stranger, ap.ID)
	assertBusinessCode(t, err, "not_allowed")
}

func TestCancelAppointmentRejectsTerminalState(t *testing.T) {
	f := newFixture(2)
	bookUC := newBookUC(f)
	cancelUC := newCancelUC(f)

	ap, err := bookUC.Execute(context.Background(), baseInput())
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	f.repo.mu.Lock()
	f.repo.appointments[ap.ID].Status = string(domain.StatusCompleted)
	f.repo.mu.Unlock()

	owner := domain.Caller{ID: 10, Role: models.RoleCustomer}
	_, err = cancelUC.Execute(context.Background(), owner, ap.ID)
	assertBusinessCode(t, err, "invalid_transition")
}

func TestCancelAppointmentUnknownID(t *testing.T) {
	f := newFixture(2)
	cancelUC := newCancelUC(f)

	owner := domain.Caller{ID: 10, Role: models.RoleCustomer}
	_, err := cancelUC.Execute(context.Background(), owner, 404)
	assertBusinessCode(t, err, "appointment_not_found")
}
