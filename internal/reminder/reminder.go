package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/models"
	"github.com/motorvia/autocare-scheduler/internal/notify"
)

// Scheduler reminds customers of next-day appointments once a day.
type Scheduler struct {
	repo     domain.Repository
	notifier notify.Notifier
	log      *zap.Logger
	cron     *cron.Cron
}

func NewScheduler(
	repo domain.Repository,
	notifier notify.Notifier,
	log *zap.Logger,
) *Scheduler {
	return &Scheduler{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

func (s *Scheduler) Start() {
	s.cron = cron.New()

	// every day at 9 AM
	if _, err := s.cron.AddFunc("0 9 * * *", s.SendUpcomingReminders); err != nil {
		s.log.Error("failed to register reminder job", zap.Error(err))
		return
	}

	s.cron.Start()
	s.log.Info("reminder scheduler started")
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) SendUpcomingReminders() {
	ctx := context.Background()

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 1)

	aps, err := s.repo.ListAppointmentsBetween(ctx, start, end)
	if err != nil {
		s.log.Error("reminder sweep failed", zap.Error(err))
		return
	}

	for i := range aps {
		ap := &aps[i]
		s.notifier.Notify(notify.Event{
			UserID:  ap.CustomerID,
			Type:    models.NotificationReminder,
			Message: fmt.Sprintf("Reminder: your appointment at %s is tomorrow at %s.", ap.ServiceCenter.Name, ap.AppointmentDate.Format("15:04")),
			Data:    map[string]any{"appointment_id": ap.ID},
		})
	}

	s.log.Info("reminder sweep completed", zap.Int("count", len(aps)))
}
