package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
	"github.com/agrisewa/farm-marketplace/internal/pagination"
	"github.com/agrisewa/farm-marketplace/internal/repository"
	"github.com/agrisewa/farm-marketplace/internal/service"
)

// CatalogHandler — справочные CRUD-маршруты: услуги, культуры, техника.
// Тонкие операции без межсущностных инвариантов ходят в репозитории напрямую.
type CatalogHandler struct {
	services   repository.ServiceRepository
	crops      repository.CropRepository
	equipments repository.EquipmentRepository
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{
		services:   repository.NewGormServiceRepository(db),
		crops:      repository.NewGormCropRepository(db),
		equipments: repository.NewGormEquipmentRepository(db),
	}
}

func (h *CatalogHandler) Register(rg *gin.RouterGroup) {
	sg := rg.Group("/services")
	sg.GET("", h.listServices)
	sg.POST("", h.createService)
	sg.GET("/:serviceID", h.getService)
	sg.PUT("/:serviceID", h.updateService)
	sg.DELETE("/:serviceID", h.deleteService)

	cg := rg.Group("/crops")
	cg.GET("", h.listCrops)
	cg.POST("/bulk-upload", h.bulkUploadCrops)
	cg.GET("/:cropID", h.getCrop)

	eg := rg.Group("/equipment")
	eg.GET("", h.listEquipment)
	eg.GET("/:equipmentID", h.getEquipment)
}

func (h *CatalogHandler) listServices(c *gin.Context) {
	page, size := pageParams(c)

	services, total, err := h.services.List(c.Request.Context(), size, pagination.Offset(page, size))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Wrap(services, page, size, total))
}

func (h *CatalogHandler) getService(c *gin.Context) {
	svc, err := h.services.GetByID(c.Request.Context(), c.Param("serviceID"))
	if err != nil {
		writeError(c, mapNotFound(err, service.ErrServiceNotFound))
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) createService(c *gin.Context) {
	var in model.Service
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}
	if in.ServiceID == "" || in.ServiceName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceID and serviceName are required"})
		return
	}

	if err := h.services.Create(c.Request.Context(), &in); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

func (h *CatalogHandler) updateService(c *gin.Context) {
	id := c.Param("serviceID")

	var in struct {
		ServiceName *string `json:"serviceName"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}

	if _, err := h.services.GetByID(c.Request.Context(), id); err != nil {
		writeError(c, mapNotFound(err, service.ErrServiceNotFound))
		return
	}

	fields := map[string]any{}
	if in.ServiceName != nil {
		fields["service_name"] = *in.ServiceName
	}
	if in.Category != nil {
		fields["category"] = *in.Category
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if err := h.services.UpdateFields(c.Request.Context(), id, fields); err != nil {
		writeError(c, err)
		return
	}

	svc, err := h.services.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) deleteService(c *gin.Context) {
	id := c.Param("serviceID")

	if _, err := h.services.GetByID(c.Request.Context(), id); err != nil {
		writeError(c, mapNotFound(err, service.ErrServiceNotFound))
		return
	}
	if err := h.services.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

func (h *CatalogHandler) listCrops(c *gin.Context) {
	page, size := pageParams(c)

	crops, total, err := h.crops.List(c.Request.Context(), size, pagination.Offset(page, size))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Wrap(crops, page, size, total))
}

func (h *CatalogHandler) getCrop(c *gin.Context) {
	crop, err := h.crops.GetByIDFull(c.Request.Context(), c.Param("cropID"))
	if err != nil {
		writeError(c, mapNotFound(err, service.ErrCropNotFound))
		return
	}
	c.JSON(http.StatusOK, crop)
}

func (h *CatalogHandler) bulkUploadCrops(c *gin.Context) {
	var crops []model.Crop
	if err := c.ShouldBindJSON(&crops); err != nil {
		writeBindError(c, err)
		return
	}
	for _, crop := range crops {
		if crop.CropID == "" || crop.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "each crop requires cropID and name"})
			return
		}
	}

	if err := h.crops.BulkCreate(c.Request.Context(), crops); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Crops uploaded successfully",
		"data":    crops,
	})
}

func (h *CatalogHandler) listEquipment(c *gin.Context) {
	page, size := pageParams(c)

	list, total, err := h.equipments.List(c.Request.Context(), size, pagination.Offset(page, size))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Wrap(list, page, size, total))
}

func (h *CatalogHandler) getEquipment(c *gin.Context) {
	e, err := h.equipments.GetByIDFull(c.Request.Context(), c.Param("equipmentID"))
	if err != nil {
		writeError(c, mapNotFound(err, service.ErrEquipmentNotFound))
		return
	}
	c.JSON(http.StatusOK, e)
}

func mapNotFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}
