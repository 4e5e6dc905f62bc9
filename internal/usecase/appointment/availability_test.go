package appointment

import (
	"context"
	"testing"
	"time"
)

func TestGetAvailabilityReflectsBookings(t *testing.T) {
	f := newFixture(3)
	f.addVehicle(2, 20)
	uc := NewGetAvailability(f.repo, f.ledger, nil)

	bookFor(t, f, "10:00")

	in := baseInput()
	in.CustomerID = 20
	in.VehicleID = 2
	in.Time = "10:30"
	if _, err := newBookUC(f).Execute(context.Background(), in); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	day := time.Date(2031, 5, 20, 0, 0, 0, 0, time.UTC)
	slots, err := uc.Execute(context.Background(), 1, day)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if slots[10] != 1 {
		t.Errorf("hour 10 remaining = %d, want 1", slots[10])
	}
	if slots[9] != 3 {
		t.Errorf("hour 9 remaining = %d, want 3", slots[9])
	}
}

// Slot buckets are stored in center-local time; the projection must
// answer in local hours even when the query date arrives as UTC.
func TestGetAvailabilityNonUTCCenter(t *testing.T) {
	f := newFixture(3)
	f.repo.centers[1].Timezone = "America/Sao_Paulo" // UTC-3
	f.addVehicle(2, 20)
	uc := NewGetAvailability(f.repo, f.ledger, nil)

	bookFor(t, f, "10:00")

	// 22:00 local is 01:00Z on the next calendar day
	in := baseInput()
	in.CustomerID = 20
	in.VehicleID = 2
	in.Time = "22:00"
	if _, err := newBookUC(f).Execute(context.Background(), in); err != nil {
		t.Fatalf("late booking: %v", err)
	}

	day := time.Date(2031, 5, 20, 0, 0, 0, 0, time.UTC)
	slots, err := uc.Execute(context.Background(), 1, day)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if slots[10] != 2 {
		t.Errorf("hour 10 remaining = %d, want 2", slots[10])
	}
	if slots[22] != 2 {
		t.Errorf("hour 22 remaining = %d, want 2", slots[22])
	}
	if slots[13] != 3 {
		t.Errorf("hour 13 (UTC shadow of 10:00 local) remaining = %d, want 3", slots[13])
	}
	if slots[1] != 3 {
		t.Errorf("hour 1 (UTC shadow of 22:00 local) remaining = %d, want 3", slots[1])
	}
}

func TestGetAvailabilityUnknownCenter(t *testing.T) {
	f := newFixture(3)
	uc := NewGetAvailability(f.repo, f.ledger, nil)

	_, err := uc.Execute(context.Background(), 404, time.Now())
	assertBusinessCode(t, err, "center_not_found")
}
