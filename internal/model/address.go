package model

import "time"

// addresses
type Address struct {
	AddressID string `gorm:"type:varchar(64);primaryKey"`

	ProviderID string `gorm:"type:varchar(64);not null;index"`

	Street  string `gorm:"type:varchar(255);not null"`
	City    string `gorm:"type:varchar(128);not null"`
	State   string `gorm:"type:varchar(128);not null"`
	ZipCode string `gorm:"type:varchar(32)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Provider *ServiceProvider `gorm:"foreignKey:ProviderID;references:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
