package model

import "gorm.io/gorm"

// SetupJoinTables регистрирует кастомные join-модели для many2many связей.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&ServiceProvider{}, "Services", &ProviderService{}); err != nil {
		return err
	}
	return db.SetupJoinTable(&Equipment{}, "Crops", &EquipmentCrop{})
}

// AutoMigrate выполняет миграцию всех сущностей маркетплейса.
func AutoMigrate(db *gorm.DB) error {
	if err := SetupJoinTables(db); err != nil {
		return err
	}
	return db.AutoMigrate(
		&Farmer{},
		&ServiceProvider{},
		&Service{},
		&ProviderService{},
		&Address{},
		&Equipment{},
		&Crop{},
		&EquipmentCrop{},
		&ServiceRequest{},
	)
}
