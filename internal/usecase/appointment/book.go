package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/motorvia/autocare-scheduler/internal/cache"
	"github.com/motorvia/autocare-scheduler/internal/chat"
	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/lock"
	"github.com/motorvia/autocare-scheduler/internal/models"
	"github.com/motorvia/autocare-scheduler/internal/notify"
	"github.com/motorvia/autocare-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	CustomerID uint

	VehicleID         uint
	ServiceOfferingID uint
	ServiceCenterID   uint

	Date        string
	Time        string
	Description string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	ledger   domain.SlotLedger
	locks    *lock.Keyed
	notifier notify.Notifier
	chat     chat.Bootstrapper
	avail    *cache.AvailabilityCache
	log      *zap.Logger
}

func NewBookAppointment(
	repo domain.Repository,
	ledger domain.SlotLedger,
	locks *lock.Keyed,
	notifier notify.Notifier,
	chatSvc chat.Bootstrapper,
	avail *cache.AvailabilityCache,
	log *zap.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		ledger:   ledger,
		locks:    locks,
		notifier: notifier,
		chat:     chatSvc,
		avail:    avail,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Service center
	// --------------------------------------------------
	center, err := uc.repo.GetServiceCenter(ctx, in.ServiceCenterID)
	if err != nil {
		return nil, httperr.ErrBusiness("center_not_found")
	}

	if err := domain.CheckCenterActive(center); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Date / time in the center's timezone
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(center.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(center.Timezone)
	if err := domain.CheckDateInFuture(start, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Offering
	// --------------------------------------------------
	offering, err := uc.repo.GetOffering(ctx, in.ServiceOfferingID)
	if err != nil {
		return nil, httperr.ErrBusiness("offering_not_found")
	}

	// --------------------------------------------------
	// 4. Vehicle must belong to the caller
	// --------------------------------------------------
	vehicle, err := uc.repo.GetVehicleForCustomer(ctx, in.VehicleID, in.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("vehicle_not_found")
	}

	// --------------------------------------------------
	// 5. Serialize: per vehicle-instant, then per (center, hour).
	//    Fixed lock order keeps the pair deadlock-free.
	// --------------------------------------------------
	vehicleKey := fmt.Sprintf("vehicle:%d:%s", vehicle.ID, start.Format(time.RFC3339))
	uc.locks.Lock(vehicleKey)
	defer uc.locks.Unlock(vehicleKey)

	bucket := domain.HourBucket(start)
	slotKey := fmt.Sprintf("slot:%d:%s", center.ID, bucket.Format(time.RFC3339))
	uc.locks.Lock(slotKey)
	defer uc.locks.Unlock(slotKey)

	// --------------------------------------------------
	// 6. Vehicle double-booking at the exact time
	// --------------------------------------------------
	existing, err := uc.repo.ListVehicleAppointmentsAt(ctx, vehicle.ID, start)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckVehicleFree(existing, start); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Reserve a lane
	// --------------------------------------------------
	ap := &models.Appointment{
		Code:              uuid.NewString(),
		CustomerID:        in.CustomerID,
		VehicleID:         vehicle.ID,
		ServiceOfferingID: offering.ID,
		ServiceCenterID:   center.ID,
		AppointmentDate:   start,
		Status:            string(domain.InitialStatus()),
		Description:       in.Description,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	slot, err := uc.ledger.Reserve(ctx, center.ID, start, ap.ID)
	if err != nil {
		// no partial state: the appointment row goes away with the
		// failed reservation
		if delErr := uc.repo.DeleteAppointment(ctx, ap.ID); delErr != nil {
			uc.log.Error("failed to roll back appointment after reserve failure",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	uc.avail.Invalidate(ctx, center.ID, start.Format("2006-01-02"))

	uc.log.Info("appointment booked",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("center_id", center.ID),
		zap.Int("slot", slot),
		zap.Time("date", start),
	)

	// --------------------------------------------------
	// 8. Side effects: chat room + notifications
	// --------------------------------------------------
	if err := uc.chat.CreateRoomForAppointment(ctx, ap.ID, ap.CustomerID); err != nil {
		uc.log.Warn("chat bootstrap failed",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
	}

	uc.notifier.Notify(notify.Event{
		UserID:  ap.CustomerID,
		Type:    models.NotificationBookingCreated,
		Message: fmt.Sprintf("Your appointment at %s is booked for %s.", center.Name, start.Format("Jan 2 15:04")),
		Data:    map[string]any{"appointment_id": ap.ID, "slot": slot},
	})

	if ids, err := uc.repo.ListCenterEmployeeIDs(ctx, center.ID); err == nil {
		for _, id := range ids {
			uc.notifier.Notify(notify.Event{
				UserID:  id,
				Type:    models.NotificationBookingCreated,
				Message: fmt.Sprintf("New booking at %s for %s.", center.Name, start.Format("Jan 2 15:04")),
				Data:    map[string]any{"appointment_id": ap.ID},
			})
		}
	}

	return ap, nil
}
