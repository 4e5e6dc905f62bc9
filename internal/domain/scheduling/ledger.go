package scheduling

import (
	"context"
	"time"
)

// SlotLedger is the atomic reservation primitive for service-center
// lanes. Capacity is accounted per hour bucket (see HourBucket); two
// concurrent Reserve calls for the last lane of a bucket must never
// both succeed.
type SlotLedger interface {
	// Reserve binds a free lane of the center's hour bucket to the
	// appointment and returns its slot number. Fails with the
	// capacity_exceeded business code when the bucket is full.
	Reserve(ctx context.Context, centerID uint, at time.Time, appointmentID uint) (int, error)

	// Release frees the lane bound to the appointment. Releasing an
	// unbound appointment is a no-op.
	Release(ctx context.Context, appointmentID uint) error

	// AvailableByHour projects hour→remaining capacity for one day.
	// Only committed reservations are visible.
	AvailableByHour(ctx context.Context, centerID uint, day time.Time, capacity int) (map[int]int, error)
}
