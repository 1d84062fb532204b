package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
)

type RequestRepository interface {
	Create(ctx context.Context, req *model.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*model.ServiceRequest, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	// Все заявки с провайдером и услугой, свежие первыми.
	ListAll(ctx context.Context, limit, offset int) ([]model.ServiceRequest, int64, error)
	// Заявки провайдера, опционально суженные по статусам.
	ListByProvider(ctx context.Context, providerID string, statuses []model.RequestStatus) ([]model.ServiceRequest, error)
}

type GormRequestRepository struct {
	db *gorm.DB
}

func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

func (r *GormRequestRepository) Create(ctx context.Context, req *model.ServiceRequest) error {
	return r.db.WithContext(ctx).Omit("Provider", "Service").Create(req).Error
}

func (r *GormRequestRepository) GetByID(ctx context.Context, id string) (*model.ServiceRequest, error) {
	var req model.ServiceRequest
	if err := r.db.WithContext(ctx).First(&req, "request_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *GormRequestRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.ServiceRequest{}).
		Where("request_id = ?", id).
		Updates(fields).
		Error
}

func (r *GormRequestRepository) ListAll(ctx context.Context, limit, offset int) ([]model.ServiceRequest, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.ServiceRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Preload("Provider").
		Preload("Service").
		Order("scheduled_date DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var requests []model.ServiceRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *GormRequestRepository) ListByProvider(
	ctx context.Context,
	providerID string,
	statuses []model.RequestStatus,
) ([]model.ServiceRequest, error) {
	q := r.db.WithContext(ctx).
		Preload("Service").
		Where("service_provider_id = ?", providerID)

	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var requests []model.ServiceRequest
	if err := q.Order("scheduled_date DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
