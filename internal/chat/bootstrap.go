package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

// Bootstrapper is what the scheduling use cases need from chat: a room
// when the booking lands, and an explicit close on cancellation.
// Message delivery mechanics live elsewhere.
type Bootstrapper interface {
	CreateRoomForAppointment(ctx context.Context, appointmentID, customerID uint) error
	CloseRoomForAppointment(ctx context.Context, appointmentID uint) error
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

func (s *Service) CreateRoomForAppointment(
	ctx context.Context,
	appointmentID uint,
	customerID uint,
) error {

	room := models.ChatRoom{
		Code:          uuid.NewString(),
		AppointmentID: appointmentID,
		CustomerID:    customerID,
		IsActive:      true,
	}
	return s.db.WithContext(ctx).Create(&room).Error
}

// CloseRoomForAppointment deactivates the room. Messages stay; this is
// a lifecycle hook, not a cascade delete.
func (s *Service) CloseRoomForAppointment(
	ctx context.Context,
	appointmentID uint,
) error {

	var room models.ChatRoom
	err := s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	room.IsActive = false
	return s.db.WithContext(ctx).Save(&room).Error
}

// --------------------------------------------------
// Messages (minimal REST surface)
// --------------------------------------------------

func (s *Service) ListMessages(
	ctx context.Context,
	appointmentID uint,
) ([]models.ChatMessage, error) {

	var room models.ChatRoom
	if err := s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&room).Error; err != nil {
		return nil, httperr.ErrBusiness("room_not_found")
	}

	var msgs []models.ChatMessage
	if err := s.db.WithContext(ctx).
		Where("room_id = ?", room.ID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *Service) PostMessage(
	ctx context.Context,
	appointmentID uint,
	senderID uint,
	content string,
) (*models.ChatMessage, error) {

	var room models.ChatRoom
	if err := s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&room).Error; err != nil {
		return nil, httperr.ErrBusiness("room_not_found")
	}

	if !room.IsActive {
		return nil, httperr.ErrBusiness("room_closed")
	}

	msg := models.ChatMessage{
		RoomID:   room.ID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

var _ Bootstrapper = (*Service)(nil)
