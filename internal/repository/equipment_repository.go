package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
)

type EquipmentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Equipment, error)
	// Техника с владельцем (его услугами и адресами) и культурами.
	GetByIDFull(ctx context.Context, id string) (*model.Equipment, error)
	List(ctx context.Context, limit, offset int) ([]model.Equipment, int64, error)
	ListByOwner(ctx context.Context, providerID string) ([]model.Equipment, error)
	Create(ctx context.Context, e *model.Equipment) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, providerID string) error
}

type GormEquipmentRepository struct {
	db *gorm.DB
}

func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

func (r *GormEquipmentRepository) GetByID(ctx context.Context, id string) (*model.Equipment, error) {
	var e model.Equipment
	if err := r.db.WithContext(ctx).First(&e, "equipment_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormEquipmentRepository) GetByIDFull(ctx context.Context, id string) (*model.Equipment, error) {
	var e model.Equipment
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Owner.Services").
		Preload("Owner.Addresses").
		Preload("Crops").
		First(&e, "equipment_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormEquipmentRepository) List(ctx context.Context, limit, offset int) ([]model.Equipment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Equipment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Owner.Services").
		Preload("Owner.Addresses").
		Preload("Crops").
		Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var list []model.Equipment
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *GormEquipmentRepository) ListByOwner(ctx context.Context, providerID string) ([]model.Equipment, error) {
	var list []model.Equipment
	err := r.db.WithContext(ctx).
		Where("owned_by = ?", providerID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormEquipmentRepository) Create(ctx context.Context, e *model.Equipment) error {
	return r.db.WithContext(ctx).Omit("Crops", "Owner").Create(e).Error
}

func (r *GormEquipmentRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Equipment{}).
		Where("equipment_id = ?", id).
		Updates(fields).
		Error
}

func (r *GormEquipmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Equipment{}, "equipment_id = ?", id).Error
}

func (r *GormEquipmentRepository) DeleteByOwner(ctx context.Context, providerID string) error {
	return r.db.WithContext(ctx).Delete(&model.Equipment{}, "owned_by = ?", providerID).Error
}
