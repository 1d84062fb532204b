package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
	"github.com/agrisewa/farm-marketplace/internal/repository"
)

// AddressInput — адрес в составе запроса на создание/обновление провайдера.
type AddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// EquipmentInput — техника в составе запроса; EquipmentID может быть пустым.
type EquipmentInput struct {
	EquipmentID string `json:"equipmentID"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Capacity    string `json:"capacity"`
}

type CreateProviderInput struct {
	ProviderID     string  `json:"providerID"`
	Name           string  `json:"name"`
	ContactInfo    string  `json:"contactInfo"`
	Availability   string  `json:"availability"`
	Experience     string  `json:"experience"`
	Certifications string  `json:"certifications"`
	Rating         float64 `json:"rating"`
	FarmerID       string  `json:"farmerId"`

	Addresses  []AddressInput   `json:"addresses"`
	Equipments []EquipmentInput `json:"equipments"`
	ServiceIDs []string         `json:"serviceIDs"`
}

// UpdateProviderInput — частичное обновление; nil-поля не трогаются.
// Массивы заменяют наборы целиком (техника — со сверкой по id).
type UpdateProviderInput struct {
	Name           *string  `json:"name"`
	ContactInfo    *string  `json:"contactInfo"`
	Availability   *string  `json:"availability"`
	Experience     *string  `json:"experience"`
	Certifications *string  `json:"certifications"`
	Rating         *float64 `json:"rating"`

	Addresses  *[]AddressInput   `json:"addresses"`
	Equipments *[]EquipmentInput `json:"equipments"`
	ServiceIDs *[]string         `json:"serviceIDs"`
}

// ProviderService — оркестрация многосущностных операций над провайдером.
// Границы транзакций лежат здесь, а не в репозиториях.
type ProviderService struct {
	db *gorm.DB
}

func NewProviderService(db *gorm.DB) *ProviderService {
	return &ProviderService{db: db}
}

// CreateProvider атомарно создаёт провайдера с адресами, техникой,
// привязкой услуг и обновляет ссылку у фермера.
func (s *ProviderService) CreateProvider(ctx context.Context, in CreateProviderInput) (*model.ServiceProvider, error) {
	if in.ProviderID == "" {
		return nil, invalidArgf("providerID is required")
	}
	if in.Name == "" {
		return nil, invalidArgf("name is required")
	}
	if in.FarmerID == "" {
		return nil, invalidArgf("farmerId is required")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, invalidArgf("rating must be between 0 and 5")
	}
	if err := checkEquipmentIDs(in.Equipments); err != nil {
		return nil, err
	}

	var created *model.ServiceProvider

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := repository.NewGormProviderRepository(tx)
		addresses := repository.NewGormAddressRepository(tx)
		equipments := repository.NewGormEquipmentRepository(tx)
		services := repository.NewGormServiceRepository(tx)
		farmers := repository.NewGormFarmerRepository(tx)

		farmer, err := farmers.GetByID(ctx, in.FarmerID)
		if err != nil {
			return notFound(err, ErrFarmerNotFound)
		}
		if farmer.ProviderID != nil && *farmer.ProviderID != "" {
			return ErrFarmerAlreadyLinked
		}

		if _, err := providers.GetByID(ctx, in.ProviderID); err == nil {
			return ErrProviderExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		provider := &model.ServiceProvider{
			ProviderID:     in.ProviderID,
			Name:           in.Name,
			ContactInfo:    in.ContactInfo,
			Availability:   in.Availability,
			Experience:     in.Experience,
			Certifications: in.Certifications,
			Rating:         in.Rating,
			FarmerID:       in.FarmerID,
		}
		if err := providers.Create(ctx, provider); err != nil {
			return err
		}

		for _, a := range in.Addresses {
			addr := &model.Address{
				AddressID:  uuid.NewString(),
				ProviderID: in.ProviderID,
				Street:     a.Street,
				City:       a.City,
				State:      a.State,
				ZipCode:    a.ZipCode,
			}
			if err := addresses.Create(ctx, addr); err != nil {
				return err
			}
		}

		for _, e := range in.Equipments {
			if err := equipments.Create(ctx, newEquipment(e, in.ProviderID)); err != nil {
				return err
			}
		}

		if len(in.ServiceIDs) > 0 {
			resolved, err := resolveServices(ctx, services, in.ServiceIDs)
			if err != nil {
				return err
			}
			if err := providers.AddServices(ctx, provider, resolved); err != nil {
				return err
			}
		}

		if err := farmers.SetProviderLink(ctx, in.FarmerID, &in.ProviderID); err != nil {
			return err
		}

		created, err = providers.GetByIDFull(ctx, in.ProviderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProvider атомарно обновляет скалярные поля и, если массивы переданы,
// заменяет адреса, сверяет технику по id и приводит набор услуг
// к переданному списку; отсутствующий список услуг очищает связи.
func (s *ProviderService) UpdateProvider(ctx context.Context, providerID string, in UpdateProviderInput) (*model.ServiceProvider, error) {
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5) {
		return nil, invalidArgf("rating must be between 0 and 5")
	}
	if in.Equipments != nil {
		if err := checkEquipmentIDs(*in.Equipments); err != nil {
			return nil, err
		}
	}

	var updated *model.ServiceProvider

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := repository.NewGormProviderRepository(tx)
		addresses := repository.NewGormAddressRepository(tx)
		equipments := repository.NewGormEquipmentRepository(tx)
		services := repository.NewGormServiceRepository(tx)

		provider, err := providers.GetByID(ctx, providerID)
		if err != nil {
			return notFound(err, ErrProviderNotFound)
		}

		fields := map[string]any{}
		if in.Name != nil {
			fields["name"] = *in.Name
		}
		if in.ContactInfo != nil {
			fields["contact_info"] = *in.ContactInfo
		}
		if in.Availability != nil {
			fields["availability"] = *in.Availability
		}
		if in.Experience != nil {
			fields["experience"] = *in.Experience
		}
		if in.Certifications != nil {
			fields["certifications"] = *in.Certifications
		}
		if in.Rating != nil {
			fields["rating"] = *in.Rating
		}
		if err := providers.UpdateFields(ctx, providerID, fields); err != nil {
			return err
		}

		if in.Addresses != nil {
			if err := addresses.DeleteByProvider(ctx, providerID); err != nil {
				return err
			}
			for _, a := range *in.Addresses {
				addr := &model.Address{
					AddressID:  uuid.NewString(),
					ProviderID: providerID,
					Street:     a.Street,
					City:       a.City,
					State:      a.State,
					ZipCode:    a.ZipCode,
				}
				if err := addresses.Create(ctx, addr); err != nil {
					return err
				}
			}
		}

		if in.Equipments != nil {
			if err := reconcileEquipments(ctx, equipments, providerID, *in.Equipments); err != nil {
				return err
			}
		}

		if in.ServiceIDs != nil {
			if err := syncServices(ctx, providers, services, provider, *in.ServiceIDs); err != nil {
				return err
			}
		} else {
			if err := providers.ClearServices(ctx, provider); err != nil {
				return err
			}
		}

		updated, err = providers.GetByIDFull(ctx, providerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProvider атомарно удаляет провайдера вместе с адресами и техникой,
// снимает связи с услугами и обнуляет ссылки фермеров.
func (s *ProviderService) DeleteProvider(ctx context.Context, providerID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := repository.NewGormProviderRepository(tx)
		addresses := repository.NewGormAddressRepository(tx)
		equipments := repository.NewGormEquipmentRepository(tx)
		farmers := repository.NewGormFarmerRepository(tx)

		provider, err := providers.GetByID(ctx, providerID)
		if err != nil {
			return notFound(err, ErrProviderNotFound)
		}

		if err := addresses.DeleteByProvider(ctx, providerID); err != nil {
			return err
		}
		if err := equipments.DeleteByOwner(ctx, providerID); err != nil {
			return err
		}
		if err := providers.ClearServices(ctx, provider); err != nil {
			return err
		}
		if err := farmers.ClearProviderLinkByProvider(ctx, providerID); err != nil {
			return err
		}
		return providers.Delete(ctx, providerID)
	})
}

// UpdateProviderEquipments безусловно заменяет весь парк техники провайдера.
func (s *ProviderService) UpdateProviderEquipments(ctx context.Context, providerID string, list []EquipmentInput) error {
	if err := checkEquipmentIDs(list); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := repository.NewGormProviderRepository(tx)
		equipments := repository.NewGormEquipmentRepository(tx)

		if _, err := providers.GetByID(ctx, providerID); err != nil {
			return notFound(err, ErrProviderNotFound)
		}

		if err := equipments.DeleteByOwner(ctx, providerID); err != nil {
			return err
		}
		for _, e := range list {
			if err := equipments.Create(ctx, newEquipment(e, providerID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateProviderServices добавляет и/или снимает отдельные связи с услугами,
// не трогая остальные.
func (s *ProviderService) UpdateProviderServices(ctx context.Context, providerID string, addIDs, removeIDs []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := repository.NewGormProviderRepository(tx)
		services := repository.NewGormServiceRepository(tx)

		provider, err := providers.GetByID(ctx, providerID)
		if err != nil {
			return notFound(err, ErrProviderNotFound)
		}

		if len(addIDs) > 0 {
			resolved, err := resolveServices(ctx, services, addIDs)
			if err != nil {
				return err
			}
			if err := providers.AddServices(ctx, provider, resolved); err != nil {
				return err
			}
		}

		if len(removeIDs) > 0 {
			// Снятие несуществующих связей — no-op, как и у Association.Delete.
			found, err := services.ListByIDs(ctx, removeIDs)
			if err != nil {
				return err
			}
			if err := providers.RemoveServices(ctx, provider, found); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *ProviderService) GetProvider(ctx context.Context, providerID string) (*model.ServiceProvider, error) {
	providers := repository.NewGormProviderRepository(s.db)
	p, err := providers.GetByIDFull(ctx, providerID)
	if err != nil {
		return nil, notFound(err, ErrProviderNotFound)
	}
	return p, nil
}

func (s *ProviderService) ListProviders(ctx context.Context, limit, offset int) ([]model.ServiceProvider, int64, error) {
	providers := repository.NewGormProviderRepository(s.db)
	return providers.List(ctx, limit, offset)
}

// checkEquipmentIDs требует попарной уникальности непустых id внутри запроса.
func checkEquipmentIDs(list []EquipmentInput) error {
	seen := make(map[string]struct{}, len(list))
	for _, e := range list {
		if e.EquipmentID == "" {
			continue
		}
		if _, ok := seen[e.EquipmentID]; ok {
			return ErrDuplicateEquipmentID
		}
		seen[e.EquipmentID] = struct{}{}
	}
	return nil
}

func newEquipment(in EquipmentInput, providerID string) *model.Equipment {
	id := in.EquipmentID
	if id == "" {
		id = uuid.NewString()
	}
	return &model.Equipment{
		EquipmentID: id,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Capacity:    in.Capacity,
		OwnedBy:     providerID,
	}
}

// resolveServices проверяет, что каждый id указывает на существующую услугу.
func resolveServices(ctx context.Context, services repository.ServiceRepository, ids []string) ([]model.Service, error) {
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	found, err := services.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, ErrServiceNotFound
	}
	return found, nil
}

// reconcileEquipments сверяет технику по id: пересечение обновляется на месте,
// лишнее удаляется, новое (или без id) создаётся.
func reconcileEquipments(ctx context.Context, equipments repository.EquipmentRepository, providerID string, list []EquipmentInput) error {
	existing, err := equipments.ListByOwner(ctx, providerID)
	if err != nil {
		return err
	}
	existingIDs := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		existingIDs[e.EquipmentID] = struct{}{}
	}

	keep := make(map[string]struct{}, len(list))
	for _, in := range list {
		if in.EquipmentID != "" {
			if _, ok := existingIDs[in.EquipmentID]; ok {
				keep[in.EquipmentID] = struct{}{}
				err := equipments.UpdateFields(ctx, in.EquipmentID, map[string]any{
					"name":        in.Name,
					"type":        in.Type,
					"description": in.Description,
					"capacity":    in.Capacity,
				})
				if err != nil {
					return err
				}
				continue
			}
		}
		if err := equipments.Create(ctx, newEquipment(in, providerID)); err != nil {
			return err
		}
	}

	for _, e := range existing {
		if _, ok := keep[e.EquipmentID]; !ok {
			if err := equipments.Delete(ctx, e.EquipmentID); err != nil {
				return err
			}
		}
	}
	return nil
}

// syncServices приводит many2many связь к ровно заданному набору id.
func syncServices(
	ctx context.Context,
	providers repository.ProviderRepository,
	services repository.ServiceRepository,
	provider *model.ServiceProvider,
	ids []string,
) error {
	desired, err := resolveServices(ctx, services, ids)
	if err != nil {
		return err
	}

	currentIDs, err := providers.ListServiceIDs(ctx, provider.ProviderID)
	if err != nil {
		return err
	}
	current := make(map[string]struct{}, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = struct{}{}
	}
	want := make(map[string]struct{}, len(desired))
	for _, svc := range desired {
		want[svc.ServiceID] = struct{}{}
	}

	var toAdd []model.Service
	for _, svc := range desired {
		if _, ok := current[svc.ServiceID]; !ok {
			toAdd = append(toAdd, svc)
		}
	}

	var removeIDs []string
	for _, id := range currentIDs {
		if _, ok := want[id]; !ok {
			removeIDs = append(removeIDs, id)
		}
	}
	toRemove, err := services.ListByIDs(ctx, removeIDs)
	if err != nil {
		return err
	}

	if err := providers.AddServices(ctx, provider, toAdd); err != nil {
		return err
	}
	return providers.RemoveServices(ctx, provider, toRemove)
}
