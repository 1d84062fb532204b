package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
)

type AddressRepository interface {
	ListByProvider(ctx context.Context, providerID string) ([]model.Address, error)
	Create(ctx context.Context, a *model.Address) error
	DeleteByProvider(ctx context.Context, providerID string) error
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) ListByProvider(ctx context.Context, providerID string) ([]model.Address, error) {
	var list []model.Address
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormAddressRepository) Create(ctx context.Context, a *model.Address) error {
	return r.db.WithContext(ctx).Omit("Provider").Create(a).Error
}

func (r *GormAddressRepository) DeleteByProvider(ctx context.Context, providerID string) error {
	return r.db.WithContext(ctx).Delete(&model.Address{}, "provider_id = ?", providerID).Error
}
