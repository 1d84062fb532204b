package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agrisewa/farm-marketplace/internal/pagination"
	"github.com/agrisewa/farm-marketplace/internal/service"
)

// ProviderHandler — REST-обвязка над ProviderService.
type ProviderHandler struct {
	svc *service.ProviderService
}

func NewProviderHandler(svc *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{svc: svc}
}

func (h *ProviderHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/serviceProviders")
	g.GET("", h.list)
	g.POST("/create", h.create)
	g.PUT("/update/:providerID", h.update)
	g.GET("/:providerID", h.get)
	g.DELETE("/:providerID", h.delete)
	g.PUT("/:providerID/equipments", h.updateEquipments)
	g.PUT("/:providerID/services", h.updateServices)
}

func (h *ProviderHandler) list(c *gin.Context) {
	page, size := pageParams(c)

	providers, total, err := h.svc.ListProviders(c.Request.Context(), size, pagination.Offset(page, size))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Wrap(providers, page, size, total))
}

func (h *ProviderHandler) get(c *gin.Context) {
	p, err := h.svc.GetProvider(c.Request.Context(), c.Param("providerID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProviderHandler) create(c *gin.Context) {
	var in service.CreateProviderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}

	p, err := h.svc.CreateProvider(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "ServiceProvider created successfully",
		"data":    p,
	})
}

func (h *ProviderHandler) update(c *gin.Context) {
	var in service.UpdateProviderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}

	p, err := h.svc.UpdateProvider(c.Request.Context(), c.Param("providerID"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "ServiceProvider updated successfully",
		"data":    p,
	})
}

func (h *ProviderHandler) delete(c *gin.Context) {
	if err := h.svc.DeleteProvider(c.Request.Context(), c.Param("providerID")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ServiceProvider deleted successfully"})
}

func (h *ProviderHandler) updateEquipments(c *gin.Context) {
	var body struct {
		Equipments []service.EquipmentInput `json:"equipments"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	err := h.svc.UpdateProviderEquipments(c.Request.Context(), c.Param("providerID"), body.Equipments)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Equipments updated successfully"})
}

func (h *ProviderHandler) updateServices(c *gin.Context) {
	var body struct {
		AddServiceIDs    []string `json:"addServiceIDs"`
		RemoveServiceIDs []string `json:"removeServiceIDs"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	err := h.svc.UpdateProviderServices(c.Request.Context(), c.Param("providerID"), body.AddServiceIDs, body.RemoveServiceIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Services updated successfully"})
}

// pageParams разбирает page/pageSize из query.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return pagination.Normalize(page, size)
}
