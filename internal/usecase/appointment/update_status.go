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
	"github.com/motorvia/autocare-scheduler/internal/payments"
	"github.com/motorvia/autocare-scheduler/internal/timezone"
)

type UpdateAppointmentStatus struct {
	repo     domain.Repository
	ledger   domain.SlotLedger
	notifier notify.Notifier
	chat     chat.Bootstrapper
	avail    *cache.AvailabilityCache
	payments *payments.Client
	log      *zap.Logger
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	ledger domain.SlotLedger,
	notifier notify.Notifier,
	chatSvc chat.Bootstrapper,
	avail *cache.AvailabilityCache,
	paymentsClient *payments.Client,
	log *zap.Logger,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:     repo,
		ledger:   ledger,
		notifier: notifier,
		chat:     chatSvc,
		avail:    avail,
		payments: paymentsClient,
		log:      log,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	caller domain.Caller,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	if !caller.IsStaff() {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// employees only touch appointments at their own center
	if !caller.IsAdmin() {
		ec, err := uc.repo.GetEmployeeCenter(ctx, caller.ID)
		if err != nil || ec.ServiceCenterID != ap.ServiceCenterID {
			return nil, httperr.ErrBusiness("not_allowed")
		}
	}

	center, err := uc.repo.GetServiceCenter(ctx, ap.ServiceCenterID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(center.Timezone)
	if err := domain.Transition(ap, target, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// cancellation through the status endpoint carries the same
	// release hooks as the customer cancel path
	if target == domain.StatusCancelled {
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
	}

	// completion opens the invoice; a payment failure is a warning,
	// never a rollback
	if target == domain.StatusCompleted {
		payURL, payErr := uc.payments.CreateInvoicePreference(ctx, ap)
		if payErr != nil {
			uc.log.Warn("invoice preference failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(payErr),
			)
		} else if payURL != "" {
			uc.notifier.Notify(notify.Event{
				UserID:  ap.CustomerID,
				Type:    models.NotificationStatusChanged,
				Message: "Your service is complete. Pay your invoice online.",
				Data:    map[string]any{"appointment_id": ap.ID, "payment_url": payURL},
			})
		}
	}

	uc.notifier.Notify(notify.Event{
		UserID:  ap.CustomerID,
		Type:    models.NotificationStatusChanged,
		Message: fmt.Sprintf("Your appointment is now %s.", ap.Status),
		Data:    map[string]any{"appointment_id": ap.ID, "status": ap.Status},
	})

	return ap, nil
}
