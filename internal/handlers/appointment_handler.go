package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/httpresp"
	"github.com/motorvia/autocare-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	book   *appointment.BookAppointment
	cancel *appointment.CancelAppointment
	list   *appointment.ListAppointments
	avail  *appointment.GetAvailability
	log    *zap.Logger
}

func NewAppointmentHandler(
	book *appointment.BookAppointment,
	cancel *appointment.CancelAppointment,
	list *appointment.ListAppointments,
	avail *appointment.GetAvailability,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:   book,
		cancel: cancel,
		list:   list,
		avail:  avail,
		log:    log,
	}
}

// --------- Requests ---------

type BookAppointmentRequest struct {
	VehicleID         uint   `json:"vehicle_id" binding:"required"`
	ServiceOfferingID uint   `json:"service_offering_id" binding:"required"`
	ServiceCenterID   uint   `json:"service_center_id" binding:"required"`
	Date              string `json:"date" binding:"required"`
	Time              string `json:"time" binding:"required"`
	Description       string `json:"description"`
}

// --------- Handlers ---------

// Book creates an appointment for the authenticated customer.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	caller := callerFrom(c)

	ap, err := h.book.Execute(c.Request.Context(), appointment.BookAppointmentInput{
		CustomerID:        caller.ID,
		VehicleID:         req.VehicleID,
		ServiceOfferingID: req.ServiceOfferingID,
		ServiceCenterID:   req.ServiceCenterID,
		Date:              req.Date,
		Time:              req.Time,
		Description:       req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// List returns the appointments the caller is allowed to see.
func (h *AppointmentHandler) List(c *gin.Context) {
	caller := callerFrom(c)

	items, err := h.list.Execute(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	caller := callerFrom(c)

	ap, err := h.cancel.Execute(c.Request.Context(), caller, uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// AvailableSlots returns hour -> remaining capacity for a center on a
// given day (?date=2006-01-02, defaults to today).
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	centerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Center id must be numeric.")
		return
	}

	dateStr := c.Query("date")
	day := time.Now()
	if dateStr != "" {
		day, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
	}

	slots, err := h.avail.Execute(c.Request.Context(), uint(centerID), day)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"service_center_id": centerID,
		"date":              day.Format("2006-01-02"),
		"slots":             slots,
	})
}
