package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
)

// ErrRequestNotInCurrentList — в currentServiceRequests фермера нет записи с таким requestID.
var ErrRequestNotInCurrentList = errors.New("service request not found in farmer's current list")

// FarmerRepository — узкий интерфейс к агрегату фермера.
// Сервисы не знают о внутреннем устройстве его проекций.
type FarmerRepository interface {
	GetByID(ctx context.Context, farmerID string) (*model.Farmer, error)
	// Установить или снять ссылку фермера на провайдера.
	SetProviderLink(ctx context.Context, farmerID string, providerID *string) error
	// Обнулить ссылку у всех фермеров, указывающих на провайдера.
	ClearProviderLinkByProvider(ctx context.Context, providerID string) error
	// Дописать запись в currentServiceRequests.
	AppendCurrentRequest(ctx context.Context, farmerID string, summary model.RequestSummary) error
	// Перенести запись между проекциями согласно новому статусу.
	MoveRequest(ctx context.Context, farmerID, requestID string, newStatus model.RequestStatus) error
	Create(ctx context.Context, f *model.Farmer) error
}

type GormFarmerRepository struct {
	db *gorm.DB
}

func NewGormFarmerRepository(db *gorm.DB) *GormFarmerRepository {
	return &GormFarmerRepository{db: db}
}

func (r *GormFarmerRepository) GetByID(ctx context.Context, farmerID string) (*model.Farmer, error) {
	var f model.Farmer
	if err := r.db.WithContext(ctx).First(&f, "farmer_id = ?", farmerID).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *GormFarmerRepository) Create(ctx context.Context, f *model.Farmer) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *GormFarmerRepository) SetProviderLink(ctx context.Context, farmerID string, providerID *string) error {
	return r.db.WithContext(ctx).
		Model(&model.Farmer{}).
		Where("farmer_id = ?", farmerID).
		Update("provider_id", providerID).
		Error
}

func (r *GormFarmerRepository) ClearProviderLinkByProvider(ctx context.Context, providerID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Farmer{}).
		Where("provider_id = ?", providerID).
		Update("provider_id", nil).
		Error
}

func (r *GormFarmerRepository) AppendCurrentRequest(ctx context.Context, farmerID string, summary model.RequestSummary) error {
	f, err := r.GetByID(ctx, farmerID)
	if err != nil {
		return err
	}

	current, err := model.DecodeSummaries(f.CurrentServiceRequests)
	if err != nil {
		return err
	}
	current = append(current, summary)

	col, err := model.EncodeSummaries(current)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Farmer{}).
		Where("farmer_id = ?", farmerID).
		Update("current_service_requests", col).
		Error
}

// MoveRequest реализует переход записи между списками:
//   - Completed  -> completedServiceRequests;
//   - Cancelled  -> returnedServiceRequests;
//   - остальные статусы обновляются на месте в currentServiceRequests.
func (r *GormFarmerRepository) MoveRequest(
	ctx context.Context,
	farmerID, requestID string,
	newStatus model.RequestStatus,
) error {
	f, err := r.GetByID(ctx, farmerID)
	if err != nil {
		return err
	}

	current, err := model.DecodeSummaries(f.CurrentServiceRequests)
	if err != nil {
		return err
	}

	idx := -1
	for i, s := range current {
		if s.RequestID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrRequestNotInCurrentList
	}

	entry := current[idx]
	entry.Status = newStatus

	updates := map[string]any{}

	switch newStatus {
	case model.RequestStatusCompleted:
		current = append(current[:idx], current[idx+1:]...)
		completed, err := model.DecodeSummaries(f.CompletedServiceRequests)
		if err != nil {
			return err
		}
		completed = append(completed, entry)
		col, err := model.EncodeSummaries(completed)
		if err != nil {
			return err
		}
		updates["completed_service_requests"] = col
	case model.RequestStatusCancelled:
		current = append(current[:idx], current[idx+1:]...)
		returned, err := model.DecodeSummaries(f.ReturnedServiceRequests)
		if err != nil {
			return err
		}
		returned = append(returned, entry)
		col, err := model.EncodeSummaries(returned)
		if err != nil {
			return err
		}
		updates["returned_service_requests"] = col
	default:
		current[idx] = entry
	}

	col, err := model.EncodeSummaries(current)
	if err != nil {
		return err
	}
	updates["current_service_requests"] = col

	return r.db.WithContext(ctx).
		Model(&model.Farmer{}).
		Where("farmer_id = ?", farmerID).
		Updates(updates).
		Error
}
