package appointment

import (
	"context"
	"time"

	"github.com/motorvia/autocare-scheduler/internal/cache"
	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo   domain.Repository
	ledger domain.SlotLedger
	avail  *cache.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	ledger domain.SlotLedger,
	avail *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{
		repo:   repo,
		ledger: ledger,
		avail:  avail,
	}
}

// Execute returns hour→remaining capacity for the center on the given
// day. Cached briefly; writers invalidate on reserve and release.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	centerID uint,
	date time.Time,
) (map[int]int, error) {

	center, err := uc.repo.GetServiceCenter(ctx, centerID)
	if err != nil {
		return nil, httperr.ErrBusiness("center_not_found")
	}

	// the day is the center's wall-clock day: slot buckets are stored
	// in center-local time, so the window and the hour keys must be too
	loc := timezone.Location(center.Timezone)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	dateKey := day.Format("2006-01-02")
	if cached, ok := uc.avail.Get(ctx, centerID, dateKey); ok {
		return cached, nil
	}

	slots, err := uc.ledger.AvailableByHour(ctx, centerID, day, center.CenterSlot)
	if err != nil {
		return nil, err
	}

	uc.avail.Set(ctx, centerID, dateKey, slots)
	return slots, nil
}
