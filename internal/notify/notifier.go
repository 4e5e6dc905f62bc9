package notify

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/motorvia/autocare-scheduler/internal/models"
)

type Event struct {
	UserID  uint
	Type    string
	Message string
	Data    any
}

// Notifier is the fire-and-forget sink the scheduling use cases talk
// to. A failed notification never fails the operation that emitted it.
type Notifier interface {
	Notify(ev Event)
}

// --------------------------------------------------
// Store
// --------------------------------------------------

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ev Event) error {
	var dataJSON string
	if ev.Data != nil {
		if b, err := json.Marshal(ev.Data); err == nil {
			dataJSON = string(b)
		}
	}

	n := models.Notification{
		UserID:  ev.UserID,
		Type:    ev.Type,
		Message: ev.Message,
		Data:    dataJSON,
	}

	return s.db.Create(&n).Error
}

// --------------------------------------------------
// Dispatcher
// --------------------------------------------------

type Dispatcher struct {
	store *Store
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(store *Store, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.store.Save(ev); err != nil {
			d.log.Warn("notification write failed",
				zap.Uint("user_id", ev.UserID),
				zap.String("type", ev.Type),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Notify(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// queue full, drop rather than block the request
		d.log.Warn("notification queue full, dropping event",
			zap.String("type", ev.Type),
		)
	}
}

var _ Notifier = (*Dispatcher)(nil)
