package handlers

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/httpresp"
	"github.com/motorvia/autocare-scheduler/internal/media"
	"github.com/motorvia/autocare-scheduler/internal/models"
	"github.com/motorvia/autocare-scheduler/internal/storage"
)

const maxPhotoBytes = 10 << 20 // 10 MB

type VehicleHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	log      *zap.Logger
}

func NewVehicleHandler(db *gorm.DB, uploader *storage.Uploader, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{db: db, uploader: uploader, log: log}
}

type CreateVehicleRequest struct {
	LicensePlate string `json:"license_plate" binding:"required"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
}

func (h *VehicleHandler) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	caller := callerFrom(c)
	plate := strings.ToUpper(strings.TrimSpace(req.LicensePlate))

	var count int64
	h.db.Model(&models.Vehicle{}).Where("license_plate = ?", plate).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "plate_already_registered", "This license plate is already registered.")
		return
	}

	vehicle := models.Vehicle{
		CustomerID:   caller.ID,
		LicensePlate: plate,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_create_vehicle", "Could not register vehicle.")
		return
	}

	httpresp.Created(c, vehicle)
}

func (h *VehicleHandler) ListMine(c *gin.Context) {
	caller := callerFrom(c)

	var vehicles []models.Vehicle
	if err := h.db.
		Where("customer_id = ?", caller.ID).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_vehicles", "Could not list vehicles.")
		return
	}

	httpresp.List(c, vehicles)
}

// UploadPhoto accepts a multipart "photo" file, converts it to webp
// and stores it on S3. The stored URL replaces any previous photo.
func (h *VehicleHandler) UploadPhoto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Vehicle id must be numeric.")
		return
	}

	caller := callerFrom(c)

	var vehicle models.Vehicle
	if err := h.db.
		Where("id = ? AND customer_id = ?", id, caller.ID).
		First(&vehicle).Error; err != nil {
		httperr.NotFound(c, "vehicle_not_found", "Vehicle not found.")
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Send the image in the 'photo' field.")
		return
	}
	if file.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "Photo must be at most 10 MB.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Could not read uploaded file.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", "Could not read uploaded file.")
		return
	}

	converted, err := media.ToWebP(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Photo must be a valid JPEG or PNG.")
		return
	}

	url, err := h.uploader.UploadVehiclePhoto(c.Request.Context(), vehicle.ID, converted)
	if err != nil {
		h.log.Error("vehicle photo upload failed",
			zap.Uint("vehicle_id", vehicle.ID),
			zap.Error(err),
		)
		httperr.Internal(c, "failed_to_upload_photo", "Could not store the photo.")
		return
	}

	vehicle.PhotoURL = url
	if err := h.db.Save(&vehicle).Error; err != nil {
		httperr.Internal(c, "failed_to_update_vehicle", "Could not save the photo URL.")
		return
	}

	httpresp.OK(c, vehicle)
}
