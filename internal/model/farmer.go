package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// RequestSummary — денормализованная запись о заявке в проекционных списках фермера.
type RequestSummary struct {
	RequestID         string        `json:"requestID"`
	ServiceID         string        `json:"serviceID"`
	ServiceProviderID string        `json:"serviceProviderID"`
	Status            RequestStatus `json:"status"`
	ScheduledDate     time.Time     `json:"scheduledDate"`
}

// Farmer — агрегат фермера. Принадлежит соседнему контексту,
// здесь хранится его локальная копия с проекциями заявок.
type Farmer struct {
	FarmerID string `gorm:"type:varchar(64);primaryKey"`

	Name        string `gorm:"type:varchar(255);not null"`
	ContactInfo string `gorm:"type:varchar(255)"`
	Address     string `gorm:"type:varchar(512)"`

	// Ссылка на провайдера, если фермер сам оказывает услуги.
	ProviderID *string `gorm:"type:varchar(64);index"`

	// Проекции заявок в виде JSON-массивов RequestSummary
	// (можно хранить как JSONB в Postgres).
	CurrentServiceRequests   datatypes.JSON `gorm:"type:jsonb"`
	CompletedServiceRequests datatypes.JSON `gorm:"type:jsonb"`
	ReturnedServiceRequests  datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// DecodeSummaries разбирает JSON-колонку проекции. Пустая колонка — пустой список.
func DecodeSummaries(col datatypes.JSON) ([]RequestSummary, error) {
	if len(col) == 0 {
		return []RequestSummary{}, nil
	}
	var out []RequestSummary
	if err := json.Unmarshal(col, &out); err != nil {
		return nil, fmt.Errorf("decode request summaries: %w", err)
	}
	return out, nil
}

// EncodeSummaries сериализует список проекции обратно в колонку.
func EncodeSummaries(list []RequestSummary) (datatypes.JSON, error) {
	if list == nil {
		list = []RequestSummary{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode request summaries: %w", err)
	}
	return datatypes.JSON(raw), nil
}
