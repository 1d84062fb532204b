package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisewa/farm-marketplace/internal/repository"
	"github.com/agrisewa/farm-marketplace/internal/service"
)

// writeError сопоставляет доменные ошибки с HTTP-статусами.
// Неожиданные ошибки логируются и наружу уходят обезличенными.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFarmerNotFound),
		errors.Is(err, service.ErrProviderNotFound),
		errors.Is(err, service.ErrServiceNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrCropNotFound),
		errors.Is(err, service.ErrEquipmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrDuplicateEquipmentID),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidStatusFilter),
		errors.Is(err, service.ErrTerminalStatus),
		errors.Is(err, repository.ErrRequestNotInCurrentList):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrProviderExists),
		errors.Is(err, service.ErrFarmerAlreadyLinked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}
