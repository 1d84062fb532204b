package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisewa/farm-marketplace/internal/pagination"
	"github.com/agrisewa/farm-marketplace/internal/service"
)

// RequestHandler — REST-обвязка над RequestService.
type RequestHandler struct {
	svc *service.RequestService
}

func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/service-requests")
	g.POST("/create-request", h.create)
	g.GET("/provider", h.forProvider)
	g.GET("/farmer", h.forFarmer)
	g.GET("/all", h.listAll)
	g.GET("/:requestID", h.get)
	g.PUT("/:requestID", h.update)
}

func (h *RequestHandler) create(c *gin.Context) {
	var in service.AddRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}

	req, err := h.svc.AddServiceRequest(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Service Request created successfully",
		"serviceRequest": req,
	})
}

func (h *RequestHandler) update(c *gin.Context) {
	var in service.UpdateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindError(c, err)
		return
	}

	req, err := h.svc.UpdateServiceRequest(c.Request.Context(), c.Param("requestID"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Service Request updated successfully",
		"serviceRequest": req,
	})
}

func (h *RequestHandler) forProvider(c *gin.Context) {
	providerID := c.Query("providerId")
	status := c.Query("status")
	if providerID == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both providerId and status query parameters are required"})
		return
	}

	requests, err := h.svc.GetRequestsForProvider(c.Request.Context(), providerID, status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceRequests": requests})
}

func (h *RequestHandler) forFarmer(c *gin.Context) {
	farmerID := c.Query("farmerId")
	status := c.Query("status")
	if farmerID == "" || status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "both farmerId and status query parameters are required"})
		return
	}

	summaries, err := h.svc.GetRequestsForFarmer(c.Request.Context(), farmerID, status)
	if err != nil {
		writeError(c, err)
		return
	}

	// Проекции фильтруются в памяти, поэтому страница нарезается тут же.
	page, size := pageParams(c)
	c.JSON(http.StatusOK, gin.H{"serviceRequests": pagination.Paginate(summaries, page, size)})
}

func (h *RequestHandler) listAll(c *gin.Context) {
	page, size := pageParams(c)

	requests, total, err := h.svc.ListRequests(c.Request.Context(), size, pagination.Offset(page, size))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagination.Wrap(requests, page, size, total))
}

func (h *RequestHandler) get(c *gin.Context) {
	req, err := h.svc.GetRequest(c.Request.Context(), c.Param("requestID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceRequest": req})
}
