package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/motorvia/autocare-scheduler/internal/httperr"
	"github.com/motorvia/autocare-scheduler/internal/httpresp"
	"github.com/motorvia/autocare-scheduler/internal/models"
)

// CenterHandler serves the public catalog: active centers and the
// offerings customers can book.
type CenterHandler struct {
	db *gorm.DB
}

func NewCenterHandler(db *gorm.DB) *CenterHandler {
	return &CenterHandler{db: db}
}

func (h *CenterHandler) ListCenters(c *gin.Context) {
	var centers []models.ServiceCenter
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&centers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_centers", "Could not list service centers.")
		return
	}

	httpresp.List(c, centers)
}

func (h *CenterHandler) ListOfferings(c *gin.Context) {
	var offerings []models.ServiceOffering
	if err := h.db.
		Order("name ASC").
		Find(&offerings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_offerings", "Could not list offerings.")
		return
	}

	httpresp.List(c, offerings)
}
