package scheduling

import (
	"time"

	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

// DefaultWorkWindow is used when the offering has no duration
// estimate. Unknown is not zero: an unestimated job still blocks the
// employee for a reasonable window.
const DefaultWorkWindow = 60 * time.Minute

// ===============================
// Pre-reservation checks
// ===============================

// CheckDateInFuture rejects requests that are not strictly after now.
func CheckDateInFuture(requested, now time.Time) error {
	if !requested.After(now) {
		return httperr.ErrBusiness("past_date")
	}
	return nil
}

func CheckCenterActive(center *models.ServiceCenter) error {
	if !center.IsActive {
		return httperr.ErrBusiness("center_inactive")
	}
	return nil
}

// CheckVehicleFree rejects when the vehicle already holds a
// non-cancelled appointment at the exact requested time. The caller
// supplies the vehicle's appointments at that instant.
func CheckVehicleFree(existing []models.Appointment, requested time.Time) error {
	for _, ap := range existing {
		if Status(ap.Status) == StatusCancelled {
			continue
		}
		if ap.AppointmentDate.Equal(requested) {
			return httperr.ErrBusinessf("vehicle_already_booked",
				"vehicle already has an appointment at %s", requested.Format(time.RFC3339))
		}
	}
	return nil
}

// ===============================
// Time helpers
// ===============================

// WorkWindow computes the estimated [start, end) an appointment
// occupies an employee for.
func WorkWindow(start time.Time, estimatedMinutes *int) (time.Time, time.Time) {
	if estimatedMinutes == nil || *estimatedMinutes <= 0 {
		return start, start.Add(DefaultWorkWindow)
	}
	return start, start.Add(time.Duration(*estimatedMinutes) * time.Minute)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HourBucket truncates t to the hour the ledger accounts capacity in.
func HourBucket(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
