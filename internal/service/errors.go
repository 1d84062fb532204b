package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Ошибки уровня сервисов. Хендлеры сопоставляют их с HTTP-статусами.
var (
	// Отсутствующие сущности.
	ErrFarmerNotFound    = errors.New("farmer not found")
	ErrProviderNotFound  = errors.New("service provider not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrRequestNotFound   = errors.New("service request not found")
	ErrCropNotFound      = errors.New("crop not found")
	ErrEquipmentNotFound = errors.New("equipment not found")

	// Ошибки валидации входа.
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrDuplicateEquipmentID = errors.New("duplicate equipment id in request")
	ErrInvalidStatus        = errors.New("invalid service request status")
	ErrInvalidStatusFilter  = errors.New("status must be 'active' or 'completed'")
	ErrTerminalStatus       = errors.New("service request is already in a terminal status")

	// Конфликты уникальности.
	ErrProviderExists      = errors.New("service provider already exists")
	ErrFarmerAlreadyLinked = errors.New("farmer is already linked to a provider")
)

// notFound подменяет gorm.ErrRecordNotFound доменной ошибкой,
// остальное отдаёт как есть.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
