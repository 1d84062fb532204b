package model

import "time"

// services
type Service struct {
	ServiceID string `gorm:"type:varchar(64);primaryKey"`

	ServiceName string `gorm:"type:varchar(255);not null"`
	Category    string `gorm:"type:varchar(128)"`
	Description string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигация many2many
	Providers []ServiceProvider `gorm:"many2many:provider_services;foreignKey:ServiceID;joinForeignKey:ServiceID;references:ProviderID;joinReferences:ProviderID"`
}

// provider_services — кастомная join-таблица многие-ко-многим.
type ProviderService struct {
	ProviderID string `gorm:"type:varchar(64);primaryKey"`
	ServiceID  string `gorm:"type:varchar(64);primaryKey"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (ProviderService) TableName() string { return "provider_services" }
