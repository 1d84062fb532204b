package model

import "time"

// ServiceProvider — поставщик услуг (владелец техники, подрядчик и т.п.).
// ProviderID задаётся извне и служит первичным ключом.
type ServiceProvider struct {
	ProviderID string `gorm:"type:varchar(64);primaryKey"`

	Name        string `gorm:"type:varchar(255);not null"`
	ContactInfo string `gorm:"type:varchar(255)"`

	// Свободный текст: график доступности, стаж, сертификаты.
	Availability   string `gorm:"type:varchar(255)"`
	Experience     string `gorm:"type:text"`
	Certifications string `gorm:"type:text"`

	// Рейтинг 0..5.
	Rating float64 `gorm:"not null;default:0"`

	// Внешний ключ на фермера: не больше одного провайдера на фермера.
	FarmerID string `gorm:"type:varchar(64);not null;uniqueIndex"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля для GORM (опционально, но удобно для Preload).
	Services   []Service   `gorm:"many2many:provider_services;foreignKey:ProviderID;joinForeignKey:ProviderID;references:ServiceID;joinReferences:ServiceID"`
	Equipments []Equipment `gorm:"foreignKey:OwnedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Addresses  []Address   `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
