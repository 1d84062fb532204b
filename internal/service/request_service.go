package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
	"github.com/agrisewa/farm-marketplace/internal/repository"
)

type AddRequestInput struct {
	FarmerID          string    `json:"farmerId"`
	FarmerName        string    `json:"farmerName"`
	FarmerContactInfo string    `json:"farmerContactInfo"`
	FarmerAddress     string    `json:"farmerAddress"`
	ScheduledDate     time.Time `json:"scheduledDate"`
	ServiceProviderID string    `json:"serviceProviderID"`
	ServiceID         string    `json:"serviceId"`
	Notes             string    `json:"notes"`
}

// UpdateRequestInput — частичный патч заявки; nil-поля не трогаются.
type UpdateRequestInput struct {
	ScheduledDate *time.Time           `json:"scheduledDate"`
	Notes         *string              `json:"notes"`
	Status        *model.RequestStatus `json:"status"`
}

// RequestService — жизненный цикл заявок и синхронизация проекций фермера.
type RequestService struct {
	db *gorm.DB
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// AddServiceRequest атомарно создаёт заявку со статусом Pending и дописывает
// её сводку в currentServiceRequests фермера.
func (s *RequestService) AddServiceRequest(ctx context.Context, in AddRequestInput) (*model.ServiceRequest, error) {
	if in.FarmerID == "" {
		return nil, invalidArgf("farmerId is required")
	}
	if in.ServiceProviderID == "" {
		return nil, invalidArgf("serviceProviderID is required")
	}
	if in.ServiceID == "" {
		return nil, invalidArgf("serviceId is required")
	}
	if in.ScheduledDate.IsZero() {
		return nil, invalidArgf("scheduledDate is required")
	}

	var created *model.ServiceRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := repository.NewGormProviderRepository(tx)
		services := repository.NewGormServiceRepository(tx)
		requests := repository.NewGormRequestRepository(tx)
		farmers := repository.NewGormFarmerRepository(tx)

		provider, err := providers.GetByID(ctx, in.ServiceProviderID)
		if err != nil {
			return notFound(err, ErrProviderNotFound)
		}
		svc, err := services.GetByID(ctx, in.ServiceID)
		if err != nil {
			return notFound(err, ErrServiceNotFound)
		}
		if _, err := farmers.GetByID(ctx, in.FarmerID); err != nil {
			return notFound(err, ErrFarmerNotFound)
		}

		req := &model.ServiceRequest{
			RequestID:         uuid.NewString(),
			FarmerID:          in.FarmerID,
			FarmerName:        in.FarmerName,
			FarmerContactInfo: in.FarmerContactInfo,
			FarmerAddress:     in.FarmerAddress,
			ScheduledDate:     in.ScheduledDate,
			ServiceProviderID: provider.ProviderID,
			ServiceID:         svc.ServiceID,
			Status:            model.RequestStatusPending,
			Notes:             in.Notes,
		}
		if err := requests.Create(ctx, req); err != nil {
			return err
		}

		summary := model.RequestSummary{
			RequestID:         req.RequestID,
			ServiceID:         req.ServiceID,
			ServiceProviderID: req.ServiceProviderID,
			Status:            req.Status,
			ScheduledDate:     req.ScheduledDate,
		}
		if err := farmers.AppendCurrentRequest(ctx, in.FarmerID, summary); err != nil {
			return err
		}

		created = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateServiceRequest применяет патч к заявке. Смена статуса синхронно
// переносит запись между проекциями фермера; обе записи обновляются в одной
// транзакции.
func (s *RequestService) UpdateServiceRequest(ctx context.Context, requestID string, in UpdateRequestInput) (*model.ServiceRequest, error) {
	if in.Status != nil && !model.ValidRequestStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	var updated *model.ServiceRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests := repository.NewGormRequestRepository(tx)
		farmers := repository.NewGormFarmerRepository(tx)

		req, err := requests.GetByID(ctx, requestID)
		if err != nil {
			return notFound(err, ErrRequestNotFound)
		}

		statusChanges := in.Status != nil && *in.Status != req.Status
		if statusChanges {
			// Из терминального статуса переходов нет.
			switch req.Status {
			case model.RequestStatusCompleted, model.RequestStatusCancelled:
				return ErrTerminalStatus
			}
		}

		fields := map[string]any{}
		if in.ScheduledDate != nil {
			fields["scheduled_date"] = *in.ScheduledDate
		}
		if in.Notes != nil {
			fields["notes"] = *in.Notes
		}
		if in.Status != nil {
			fields["status"] = *in.Status
		}
		if err := requests.UpdateFields(ctx, requestID, fields); err != nil {
			return err
		}

		if statusChanges {
			if err := farmers.MoveRequest(ctx, req.FarmerID, requestID, *in.Status); err != nil {
				return notFound(err, ErrFarmerNotFound)
			}
		}

		updated, err = requests.GetByID(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetRequestsForProvider возвращает заявки провайдера по фильтру
// active|completed, свежие первыми.
func (s *RequestService) GetRequestsForProvider(ctx context.Context, providerID, statusFilter string) ([]model.ServiceRequest, error) {
	statuses, err := statusesForFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	providers := repository.NewGormProviderRepository(s.db)
	requests := repository.NewGormRequestRepository(s.db)

	if _, err := providers.GetByID(ctx, providerID); err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}
	return requests.ListByProvider(ctx, providerID, statuses)
}

// GetRequestsForFarmer читает проекционные списки фермера и фильтрует их по
// статусам; для completed объединяются завершённые и отменённые заявки.
func (s *RequestService) GetRequestsForFarmer(ctx context.Context, farmerID, statusFilter string) ([]model.RequestSummary, error) {
	statuses, err := statusesForFilter(statusFilter)
	if err != nil {
		return nil, err
	}

	farmers := repository.NewGormFarmerRepository(s.db)
	farmer, err := farmers.GetByID(ctx, farmerID)
	if err != nil {
		return nil, notFound(err, ErrFarmerNotFound)
	}

	var pool []model.RequestSummary
	if statusFilter == "active" {
		pool, err = model.DecodeSummaries(farmer.CurrentServiceRequests)
		if err != nil {
			return nil, err
		}
	} else {
		completed, err := model.DecodeSummaries(farmer.CompletedServiceRequests)
		if err != nil {
			return nil, err
		}
		returned, err := model.DecodeSummaries(farmer.ReturnedServiceRequests)
		if err != nil {
			return nil, err
		}
		pool = append(completed, returned...)
	}

	allowed := make(map[model.RequestStatus]struct{}, len(statuses))
	for _, st := range statuses {
		allowed[st] = struct{}{}
	}

	out := make([]model.RequestSummary, 0, len(pool))
	for _, s := range pool {
		if _, ok := allowed[s.Status]; ok {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledDate.After(out[j].ScheduledDate)
	})
	return out, nil
}

func (s *RequestService) GetRequest(ctx context.Context, requestID string) (*model.ServiceRequest, error) {
	requests := repository.NewGormRequestRepository(s.db)
	req, err := requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, notFound(err, ErrRequestNotFound)
	}
	return req, nil
}

func (s *RequestService) ListRequests(ctx context.Context, limit, offset int) ([]model.ServiceRequest, int64, error) {
	requests := repository.NewGormRequestRepository(s.db)
	return requests.ListAll(ctx, limit, offset)
}

func statusesForFilter(filter string) ([]model.RequestStatus, error) {
	switch filter {
	case "active":
		return model.ActiveStatuses, nil
	case "completed":
		return model.TerminalStatuses, nil
	default:
		return nil, ErrInvalidStatusFilter
	}
}
