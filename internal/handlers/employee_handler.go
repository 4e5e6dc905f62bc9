package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/motorvia/autocare-scheduler/internal/domain/scheduling"
	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/httpresp"
	"github.com/motorvia/autocare-scheduler/internal/usecase/appointment"
	"github.com/motorvia/autocare-scheduler/internal/usecase/timelog"
)

type EmployeeHandler struct {
	updateStatus *appointment.UpdateAppointmentStatus
	startLog     *timelog.StartTimeLog
	stopLog      *timelog.StopTimeLog
}

func NewEmployeeHandler(
	updateStatus *appointment.UpdateAppointmentStatus,
	startLog *timelog.StartTimeLog,
	stopLog *timelog.StopTimeLog,
) *EmployeeHandler {
	return &EmployeeHandler{
		updateStatus: updateStatus,
		startLog:     startLog,
		stopLog:      stopLog,
	}
}

// UpdateStatus moves an appointment along its lifecycle
// (?status=CONFIRMED|IN_PROGRESS|COMPLETED|CANCELLED).
func (h *EmployeeHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	target, err := domain.ParseStatus(c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	caller := callerFrom(c)

	ap, err := h.updateStatus.Execute(c.Request.Context(), caller, uint(id), target)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *EmployeeHandler) StartTimeLog(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	caller := callerFrom(c)

	tl, err := h.startLog.Execute(c.Request.Context(), caller.ID, uint(id))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, tl)
}

type StopTimeLogRequest struct {
	Notes string `json:"notes"`
}

func (h *EmployeeHandler) StopTimeLog(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	var req StopTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	caller := callerFrom(c)

	tl, err := h.stopLog.Execute(c.Request.Context(), caller.ID, uint(id), req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, tl)
}
