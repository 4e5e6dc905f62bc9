package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/httpresp"
	"github.com/motorvia/autocare-scheduler/internal/models"
	"github.com/motorvia/autocare-scheduler/internal/timezone"
	"github.com/motorvia/autocare-scheduler/internal/usecase/appointment"
)

type AdminHandler struct {
	db     *gorm.DB
	assign *appointment.AssignEmployees
}

func NewAdminHandler(db *gorm.DB, assign *appointment.AssignEmployees) *AdminHandler {
	return &AdminHandler{db: db, assign: assign}
}

// ======================================================
// EMPLOYEE ASSIGNMENT
// ======================================================

type AssignEmployeesRequest struct {
	EmployeeIDs []uint `json:"employee_ids" binding:"required"`
}

func (h *AdminHandler) AssignEmployees(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	var req AssignEmployeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	caller := callerFrom(c)

	ap, err := h.assign.Execute(c.Request.Context(), caller, uint(id), req.EmployeeIDs)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// SERVICE CENTERS
// ======================================================

type ServiceCenterRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Timezone   string `json:"timezone"`
	CenterSlot int    `json:"center_slot"`
	IsActive   *bool  `json:"is_active"`
}

func (h *AdminHandler) CreateCenter(c *gin.Context) {
	var req ServiceCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown IANA timezone.")
		return
	}
	if req.CenterSlot <= 0 {
		req.CenterSlot = 1
	}

	center := models.ServiceCenter{
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		Timezone:   req.Timezone,
		CenterSlot: req.CenterSlot,
		IsActive:   true,
	}
	if req.IsActive != nil {
		center.IsActive = *req.IsActive
	}

	if err := h.db.Create(&center).Error; err != nil {
		httperr.Internal(c, "failed_to_create_center", "Could not create service center.")
		return
	}

	httpresp.Created(c, center)
}

func (h *AdminHandler) UpdateCenter(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Center id must be numeric.")
		return
	}

	var center models.ServiceCenter
	if err := h.db.First(&center, id).Error; err != nil {
		httperr.NotFound(c, "center_not_found", "Service center not found.")
		return
	}

	var req ServiceCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown IANA timezone.")
		return
	}

	center.Name = req.Name
	center.Address = req.Address
	center.Phone = req.Phone
	if req.Timezone != "" {
		center.Timezone = req.Timezone
	}
	if req.CenterSlot > 0 {
		center.CenterSlot = req.CenterSlot
	}
	if req.IsActive != nil {
		center.IsActive = *req.IsActive
	}

	if err := h.db.Save(&center).Error; err != nil {
		httperr.Internal(c, "failed_to_update_center", "Could not update service center.")
		return
	}

	httpresp.OK(c, center)
}

// ======================================================
// SERVICE OFFERINGS
// ======================================================

type ServiceOfferingRequest struct {
	Name                     string  `json:"name" binding:"required"`
	Type                     string  `json:"type"`
	Description              string  `json:"description"`
	Price                    float64 `json:"price"`
	EstimatedDurationMinutes *int    `json:"estimated_duration_minutes"`
}

func (h *AdminHandler) CreateOffering(c *gin.Context) {
	var req ServiceOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	offType := req.Type
	if offType == "" {
		offType = models.OfferingTypeService
	}
	if offType != models.OfferingTypeService && offType != models.OfferingTypeModification {
		httperr.BadRequest(c, "invalid_offering_type", "Type must be service or modification.")
		return
	}
	if req.EstimatedDurationMinutes != nil && *req.EstimatedDurationMinutes <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Estimated duration must be positive.")
		return
	}

	off := models.ServiceOffering{
		Name:                     req.Name,
		Type:                     offType,
		Description:              req.Description,
		Price:                    req.Price,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
	}

	if err := h.db.Create(&off).Error; err != nil {
		httperr.Internal(c, "failed_to_create_offering", "Could not create offering.")
		return
	}

	httpresp.Created(c, off)
}

func (h *AdminHandler) UpdateOffering(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Offering id must be numeric.")
		return
	}

	var off models.ServiceOffering
	if err := h.db.First(&off, id).Error; err != nil {
		httperr.NotFound(c, "offering_not_found", "Offering not found.")
		return
	}

	var req ServiceOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.EstimatedDurationMinutes != nil && *req.EstimatedDurationMinutes <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Estimated duration must be positive.")
		return
	}

	off.Name = req.Name
	off.Description = req.Description
	off.Price = req.Price
	if req.Type != "" {
		off.Type = req.Type
	}
	if req.EstimatedDurationMinutes != nil {
		off.EstimatedDurationMinutes = req.EstimatedDurationMinutes
	}

	if err := h.db.Save(&off).Error; err != nil {
		httperr.Internal(c, "failed_to_update_offering", "Could not update offering.")
		return
	}

	httpresp.OK(c, off)
}

// ======================================================
// EMPLOYEES
// ======================================================

type CreateEmployeeRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	Phone           string `json:"phone"`
	ServiceCenterID uint   `json:"service_center_id" binding:"required"`
}

func (h *AdminHandler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "A user with this email already exists.")
		return
	}

	var center models.ServiceCenter
	if err := h.db.First(&center, req.ServiceCenterID).Error; err != nil {
		httperr.NotFound(c, "center_not_found", "Service center not found.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not hash password.")
		return
	}

	employee := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         models.RoleEmployee,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&employee).Error; err != nil {
			return err
		}
		return tx.Create(&models.EmployeeCenter{
			EmployeeID:      employee.ID,
			ServiceCenterID: center.ID,
		}).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Could not create employee.")
		return
	}

	httpresp.Created(c, gin.H{
		"id":                employee.ID,
		"name":              employee.Name,
		"email":             employee.Email,
		"role":              employee.Role,
		"service_center_id": center.ID,
	})
}

type SetEmployeeCenterRequest struct {
	ServiceCenterID uint `json:"service_center_id" binding:"required"`
}

// SetEmployeeCenter moves an employee to another center. Upserts the
// single home-center row.
func (h *AdminHandler) SetEmployeeCenter(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Employee id must be numeric.")
		return
	}

	var req SetEmployeeCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var employee models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleEmployee).
		First(&employee).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Employee not found.")
		return
	}

	var center models.ServiceCenter
	if err := h.db.First(&center, req.ServiceCenterID).Error; err != nil {
		httperr.NotFound(c, "center_not_found", "Service center not found.")
		return
	}

	link := models.EmployeeCenter{
		EmployeeID:      employee.ID,
		ServiceCenterID: center.ID,
	}
	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"service_center_id"}),
	}).Create(&link).Error; err != nil {
		httperr.Internal(c, "failed_to_set_center", "Could not set employee center.")
		return
	}

	httpresp.OK(c, link)
}

func (h *AdminHandler) ListEmployees(c *gin.Context) {
	var employees []models.User
	if err := h.db.
		Where("role = ?", models.RoleEmployee).
		Order("name ASC").
		Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Could not list employees.")
		return
	}

	httpresp.List(c, employees)
}
