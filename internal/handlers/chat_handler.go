package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/motorvia/autocare-scheduler/internal/chat"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/httpresp"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

type ChatHandler struct {
	db   *gorm.DB
	chat *chat.Service
}

func NewChatHandler(db *gorm.DB, svc *chat.Service) *ChatHandler {
	return &ChatHandler{db: db, chat: svc}
}

// canAccess limits a room to the appointment's customer and staff.
func (h *ChatHandler) canAccess(c *gin.Context, appointmentID uint) bool {
	caller := callerFrom(c)
	if caller.IsStaff() {
		return true
	}

	var ap models.Appointment
	if err := h.db.First(&ap, appointmentID).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return false
	}
	if ap.CustomerID != caller.ID {
		httperr.Forbidden(c, "not_allowed", "You are not part of this conversation.")
		return false
	}
	return true
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	if !h.canAccess(c, uint(id)) {
		return
	}

	msgs, err := h.chat.ListMessages(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, msgs)
}

type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !h.canAccess(c, uint(id)) {
		return
	}

	caller := callerFrom(c)

	msg, err := h.chat.PostMessage(c.Request.Context(), uint(id), caller.ID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, msg)
}
