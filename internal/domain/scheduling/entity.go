package scheduling

import (
	"time"

	"github.com/motorvia/autocare-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies a status change to the appointment after
// validating the edge. Terminal timestamps are set here; releasing the
// slot and the shift rows on cancellation is the caller's job.
func Transition(ap *models.Appointment, target Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), target); err != nil {
		return err
	}

	ap.Status = string(target)
	switch target {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

// CanStartWork is the customer-facing "work can begin" predicate:
// confirmed and staffed, nothing else counts.
func CanStartWork(ap *models.Appointment) bool {
	return Status(ap.Status) == StatusConfirmed && len(ap.Employees) > 0
}
