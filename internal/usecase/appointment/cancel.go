package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/motorvia/autocare-scheduler/internal/cache"
	"github.com/motorvia/autocare-scheduler/internal/chat"
	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
	"github.com/motorvia/autocare-scheduler/internal/notify"
	"github.com/motorvia/autocare-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo     domain.Repository
	ledger   domain.SlotLedger
	notifier notify.Notifier
	chat     chat.Bootstrapper
	avail    *cache.AvailabilityCache
	log      *zap.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	ledger domain.SlotLedger,
	notifier notify.Notifier,
	chatSvc chat.Bootstrapper,
	avail *cache.AvailabilityCache,
	log *zap.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		ledger:   ledger,
		notifier: notifier,
		chat:     chatSvc,
		avail:    avail,
		log:      log,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	caller domain.Caller,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// only the owning customer or staff may cancel
	if !caller.IsStaff() && ap.CustomerID != caller.ID {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	center, err := uc.repo.GetServiceCenter(ctx, ap.ServiceCenterID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(center.Timezone)
	if err := domain.Transition(ap, domain.StatusCancelled, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// lifecycle hooks: free the lane, drop the shifts, close the room
	if err := uc.ledger.Release(ctx, ap.ID); err != nil {
		return nil, err
	}
	if err := uc.repo.DeleteShiftsForAppointment(ctx, ap.ID); err != nil {
		return nil, err
	}
	if err := uc.chat.CloseRoomForAppointment(ctx, ap.ID); err != nil {
		uc.log.Warn("chat room close failed",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
	}

	uc.avail.Invalidate(ctx, ap.ServiceCenterID, ap.AppointmentDate.Format("2006-01-02"))

	uc.notifier.Notify(notify.Event{
		UserID:  ap.CustomerID,
		Type:    models.NotificationBookingCancelled,
		Message: fmt.Sprintf("Your appointment for %s was cancelled.", ap.AppointmentDate.Format("Jan 2 15:04")),
		Data:    map[string]any{"appointment_id": ap.ID},
	})
	for _, emp := range ap.Employees {
		uc.notifier.Notify(notify.Event{
			UserID:  emp.ID,
			Type:    models.NotificationBookingCancelled,
			Message: fmt.Sprintf("Appointment #%d was cancelled.", ap.ID),
			Data:    map[string]any{"appointment_id": ap.ID},
		})
	}

	return ap, nil
}
