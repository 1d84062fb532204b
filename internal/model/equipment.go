package model

import "time"

// equipment
type Equipment struct {
	// EquipmentID может прийти от клиента; если пуст — генерируется uuid.
	EquipmentID string `gorm:"type:varchar(64);primaryKey"`

	Name        string `gorm:"type:varchar(255);not null"`
	Type        string `gorm:"type:varchar(128)"`
	Description string `gorm:"type:text"`
	Capacity    string `gorm:"type:varchar(128)"`

	// Владелец: ровно один провайдер.
	OwnedBy string `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Owner *ServiceProvider `gorm:"foreignKey:OwnedBy;references:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Crops []Crop `gorm:"many2many:equipment_crops;foreignKey:EquipmentID;joinForeignKey:EquipmentID;references:CropID;joinReferences:CropID"`
}
