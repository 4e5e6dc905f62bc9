package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

// SlotLedgerGorm implements the slot ledger on Postgres. The capacity
// check-and-increment runs inside one transaction holding row locks on
// the bucket; the composite unique index on (center, time, slot) is
// the backstop if two transactions still race on an empty bucket.
type SlotLedgerGorm struct {
	db *gorm.DB
}

func NewSlotLedgerGorm(db *gorm.DB) *SlotLedgerGorm {
	return &SlotLedgerGorm{db: db}
}

func (r *SlotLedgerGorm) Reserve(
	ctx context.Context,
	centerID uint,
	at time.Time,
	appointmentID uint,
) (int, error) {

	bucket := domain.HourBucket(at)
	var slotNumber int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var center models.ServiceCenter
		if err := tx.First(&center, centerID).Error; err != nil {
			return httperr.ErrBusiness("center_not_found")
		}

		var rows []models.ServiceCenterSlot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("service_center_id = ? AND slot_time = ?", centerID, bucket).
			Order("slot_number ASC").
			Find(&rows).Error; err != nil {
			return err
		}

		booked := 0
		taken := make(map[int]bool, len(rows))
		var reusable *models.ServiceCenterSlot
		for i := range rows {
			if rows[i].IsBooked {
				booked++
				taken[rows[i].SlotNumber] = true
			} else if reusable == nil {
				reusable = &rows[i]
			}
		}

		if booked >= center.CenterSlot {
			return httperr.ErrBusiness("capacity_exceeded")
		}

		if reusable != nil {
			reusable.IsBooked = true
			reusable.AppointmentID = &appointmentID
			if err := tx.Save(reusable).Error; err != nil {
				return err
			}
			slotNumber = reusable.SlotNumber
			return nil
		}

		next := 1
		for taken[next] {
			next++
		}

		row := models.ServiceCenterSlot{
			ServiceCenterID: centerID,
			SlotTime:        bucket,
			SlotNumber:      next,
			IsBooked:        true,
			AppointmentID:   &appointmentID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		slotNumber = next
		return nil
	})

	if err != nil {
		if httperr.IsUniqueViolation(err) {
			// lost the race for the lane
			return 0, httperr.ErrBusiness("slot_taken")
		}
		return 0, err
	}

	return slotNumber, nil
}

func (r *SlotLedgerGorm) Release(
	ctx context.Context,
	appointmentID uint,
) error {

	var row models.ServiceCenterSlot
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	row.IsBooked = false
	row.AppointmentID = nil
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *SlotLedgerGorm) AvailableByHour(
	ctx context.Context,
	centerID uint,
	day time.Time,
	capacity int,
) (map[int]int, error) {

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var rows []models.ServiceCenterSlot
	if err := r.db.WithContext(ctx).
		Select("slot_time").
		Where(
			"service_center_id = ? AND is_booked = ? AND slot_time >= ? AND slot_time < ?",
			centerID, true, dayStart, dayEnd,
		).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[int]int, 24)
	for h := 0; h < 24; h++ {
		out[h] = capacity
	}
	for _, row := range rows {
		h := row.SlotTime.In(day.Location()).Hour()
		if out[h] > 0 {
			out[h]--
		}
	}

	return out, nil
}

// Compile-time check
var _ domain.SlotLedger = (*SlotLedgerGorm)(nil)
