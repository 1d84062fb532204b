package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
)

type CropRepository interface {
	// Культура вместе с применимой техникой и её владельцами.
	GetByIDFull(ctx context.Context, id string) (*model.Crop, error)
	List(ctx context.Context, limit, offset int) ([]model.Crop, int64, error)
	// Массовая загрузка справочника.
	BulkCreate(ctx context.Context, crops []model.Crop) error
}

type GormCropRepository struct {
	db *gorm.DB
}

func NewGormCropRepository(db *gorm.DB) *GormCropRepository {
	return &GormCropRepository{db: db}
}

func (r *GormCropRepository) GetByIDFull(ctx context.Context, id string) (*model.Crop, error) {
	var c model.Crop
	err := r.db.WithContext(ctx).
		Preload("Equipments").
		Preload("Equipments.Owner").
		First(&c, "crop_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCropRepository) List(ctx context.Context, limit, offset int) ([]model.Crop, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Crop{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Preload("Equipments").Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var crops []model.Crop
	if err := q.Find(&crops).Error; err != nil {
		return nil, 0, err
	}
	return crops, total, nil
}

func (r *GormCropRepository) BulkCreate(ctx context.Context, crops []model.Crop) error {
	if len(crops) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Equipments").Create(&crops).Error
}
