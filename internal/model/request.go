package model

import "time"

// Статус заявки на услугу.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "Pending"
	RequestStatusAssigned   RequestStatus = "Assigned"
	RequestStatusInProgress RequestStatus = "InProgress"
	RequestStatusCompleted  RequestStatus = "Completed"
	RequestStatusCancelled  RequestStatus = "Cancelled"
)

// ValidRequestStatus проверяет, что значение входит в объявленный enum.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusPending, RequestStatusAssigned, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// ActiveStatuses — заявка ещё в работе; остаётся в currentServiceRequests фермера.
var ActiveStatuses = []RequestStatus{
	RequestStatusPending,
	RequestStatusAssigned,
	RequestStatusInProgress,
}

// TerminalStatuses — заявка закрыта; переносится в completed/returned список.
var TerminalStatuses = []RequestStatus{
	RequestStatusCompleted,
	RequestStatusCancelled,
}

// service_requests
type ServiceRequest struct {
	RequestID string `gorm:"type:varchar(64);primaryKey"`

	// Снимок данных фермера на момент создания заявки.
	FarmerID          string `gorm:"type:varchar(64);not null;index"`
	FarmerName        string `gorm:"type:varchar(255);not null"`
	FarmerContactInfo string `gorm:"type:varchar(255)"`
	FarmerAddress     string `gorm:"type:varchar(512)"`

	ScheduledDate time.Time `gorm:"type:timestamp with time zone;not null;index"`

	ServiceProviderID string `gorm:"type:varchar(64);not null;index"`
	ServiceID         string `gorm:"type:varchar(64);not null;index"`

	Status RequestStatus `gorm:"type:varchar(32);not null;default:'Pending';index"`
	Notes  string        `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально, но удобно для Preload).
	Provider *ServiceProvider `gorm:"foreignKey:ServiceProviderID;references:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Service  *Service         `gorm:"foreignKey:ServiceID;references:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
