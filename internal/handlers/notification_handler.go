package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/httpresp"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) ListMine(c *gin.Context) {
	caller := callerFrom(c)

	var items []models.Notification
	if err := h.db.
		Where("user_id = ?", caller.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&items).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", "Could not list notifications.")
		return
	}

	httpresp.List(c, items)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Notification id must be numeric.")
		return
	}

	caller := callerFrom(c)

	res := h.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, caller.ID).
		Update("is_read", true)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_notification", "Could not update notification.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}

	httpresp.OK(c, gin.H{"id": id, "is_read": true})
}
