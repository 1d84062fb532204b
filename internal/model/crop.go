package model

import "time"

// crops — справочник культур.
type Crop struct {
	CropID string `gorm:"type:varchar(64);primaryKey"`

	Name           string `gorm:"type:varchar(255);not null"`
	ScientificName string `gorm:"type:varchar(255)"`
	Description    string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Техника, применимая к культуре.
	Equipments []Equipment `gorm:"many2many:equipment_crops;foreignKey:CropID;joinForeignKey:CropID;references:EquipmentID;joinReferences:EquipmentID"`
}

// equipment_crops — join-таблица техника <-> культуры.
type EquipmentCrop struct {
	EquipmentID string `gorm:"type:varchar(64);primaryKey"`
	CropID      string `gorm:"type:varchar(64);primaryKey"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (EquipmentCrop) TableName() string { return "equipment_crops" }
