package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/service"
)

// NewRouter собирает все REST-маршруты под /api.
func NewRouter(db *gorm.DB, providerSvc *service.ProviderService, requestSvc *service.RequestService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")
	NewProviderHandler(providerSvc).Register(api)
	NewRequestHandler(requestSvc).Register(api)
	NewCatalogHandler(db).Register(api)

	return r
}
