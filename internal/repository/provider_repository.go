package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
)

type ProviderRepository interface {
	// Найти провайдера по ProviderID.
	GetByID(ctx context.Context, id string) (*model.ServiceProvider, error)
	// Провайдер вместе с услугами, техникой и адресами.
	GetByIDFull(ctx context.Context, id string) (*model.ServiceProvider, error)
	// Все провайдеры с ассоциациями, по имени.
	List(ctx context.Context, limit, offset int) ([]model.ServiceProvider, int64, error)
	Create(ctx context.Context, p *model.ServiceProvider) error
	// Обновление скалярных полей.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// Текущий набор ServiceID провайдера из join-таблицы.
	ListServiceIDs(ctx context.Context, providerID string) ([]string, error)
	// Операции над many2many связью с услугами.
	AddServices(ctx context.Context, p *model.ServiceProvider, services []model.Service) error
	RemoveServices(ctx context.Context, p *model.ServiceProvider, services []model.Service) error
	ClearServices(ctx context.Context, p *model.ServiceProvider) error
}

// Реализация на GORM.
type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

func (r *GormProviderRepository) GetByID(ctx context.Context, id string) (*model.ServiceProvider, error) {
	var p model.ServiceProvider
	if err := r.db.WithContext(ctx).First(&p, "provider_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) GetByIDFull(ctx context.Context, id string) (*model.ServiceProvider, error) {
	var p model.ServiceProvider
	err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Equipments").
		Preload("Addresses").
		First(&p, "provider_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) List(ctx context.Context, limit, offset int) ([]model.ServiceProvider, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ServiceProvider{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Equipments").
		Preload("Addresses").
		Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var providers []model.ServiceProvider
	if err := q.Find(&providers).Error; err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

func (r *GormProviderRepository) Create(ctx context.Context, p *model.ServiceProvider) error {
	// Ассоциации сохраняются отдельными шагами в сервисе.
	return r.db.WithContext(ctx).Omit("Services", "Equipments", "Addresses").Create(p).Error
}

func (r *GormProviderRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.ServiceProvider{}).
		Where("provider_id = ?", id).
		Updates(fields).
		Error
}

func (r *GormProviderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.ServiceProvider{}, "provider_id = ?", id).Error
}

func (r *GormProviderRepository) ListServiceIDs(ctx context.Context, providerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.ProviderService{}).
		Where("provider_id = ?", providerID).
		Pluck("service_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormProviderRepository) AddServices(ctx context.Context, p *model.ServiceProvider, services []model.Service) error {
	if len(services) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(p).Association("Services").Append(toServicePtrs(services)...)
}

func (r *GormProviderRepository) RemoveServices(ctx context.Context, p *model.ServiceProvider, services []model.Service) error {
	if len(services) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(p).Association("Services").Delete(toServicePtrs(services)...)
}

func (r *GormProviderRepository) ClearServices(ctx context.Context, p *model.ServiceProvider) error {
	return r.db.WithContext(ctx).Model(p).Association("Services").Clear()
}

func toServicePtrs(services []model.Service) []any {
	out := make([]any, 0, len(services))
	for i := range services {
		out = append(out, &services[i])
	}
	return out
}
