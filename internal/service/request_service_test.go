package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agrisewa/farm-marketplace/internal/model"
	"github.com/agrisewa/farm-marketplace/internal/repository"
)

func statusPtr(s model.RequestStatus) *model.RequestStatus { return &s }

func TestAddServiceRequest_AppendsToFarmerCurrent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := NewRequestService(db)

	scheduled := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	req, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		FarmerName:        "Raju",
		FarmerContactInfo: "+91777",
		FarmerAddress:     "village road 1",
		ScheduledDate:     scheduled,
		ServiceProviderID: "prov-1",
		ServiceID:         "svc-1",
		Notes:             "field near canal",
	})
	if err != nil {
		t.Fatalf("AddServiceRequest: %v", err)
	}
	if req.RequestID == "" {
		t.Fatalf("request id must be generated")
	}
	if req.Status != model.RequestStatusPending {
		t.Fatalf("status = %s, want Pending", req.Status)
	}

	var farmer model.Farmer
	if err := db.First(&farmer, "farmer_id = ?", "farmer-1").Error; err != nil {
		t.Fatalf("load farmer: %v", err)
	}
	current, err := model.DecodeSummaries(farmer.CurrentServiceRequests)
	if err != nil {
		t.Fatalf("decode current: %v", err)
	}
	if len(current) != 1 {
		t.Fatalf("current entries = %d, want 1", len(current))
	}
	entry := current[0]
	if entry.RequestID != req.RequestID {
		t.Fatalf("entry request id = %s, want %s", entry.RequestID, req.RequestID)
	}
	if entry.Status != model.RequestStatusPending {
		t.Fatalf("entry status = %s, want Pending", entry.Status)
	}
	if entry.ServiceID != "svc-1" || entry.ServiceProviderID != "prov-1" {
		t.Fatalf("entry references wrong: %+v", entry)
	}
}

func TestAddServiceRequest_ProviderMissingRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	svc := NewRequestService(db)

	_, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		FarmerName:        "Raju",
		ScheduledDate:     time.Now().UTC(),
		ServiceProviderID: "no-such",
		ServiceID:         "svc-1",
	})
	if !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("err = %v, want ErrProviderNotFound", err)
	}

	if n := countRows(t, db, &model.ServiceRequest{}, ""); n != 0 {
		t.Fatalf("requests persisted = %d, want 0", n)
	}

	var farmer model.Farmer
	if err := db.First(&farmer, "farmer_id = ?", "farmer-1").Error; err != nil {
		t.Fatalf("load farmer: %v", err)
	}
	current, err := model.DecodeSummaries(farmer.CurrentServiceRequests)
	if err != nil {
		t.Fatalf("decode current: %v", err)
	}
	if len(current) != 0 {
		t.Fatalf("current entries = %d, want 0", len(current))
	}
}

func TestAddServiceRequest_ServiceMissing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := NewRequestService(db)

	_, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		ScheduledDate:     time.Now().UTC(),
		ServiceProviderID: "prov-1",
		ServiceID:         "no-such",
	})
	if !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("err = %v, want ErrServiceNotFound", err)
	}
	if n := countRows(t, db, &model.ServiceRequest{}, ""); n != 0 {
		t.Fatalf("requests persisted = %d, want 0", n)
	}
}

func TestUpdateServiceRequest_CompletedMovesProjection(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := NewRequestService(db)

	req, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		FarmerName:        "Raju",
		ScheduledDate:     time.Now().UTC(),
		ServiceProviderID: "prov-1",
		ServiceID:         "svc-1",
	})
	if err != nil {
		t.Fatalf("AddServiceRequest: %v", err)
	}

	updated, err := svc.UpdateServiceRequest(ctx, req.RequestID, UpdateRequestInput{
		Status: statusPtr(model.RequestStatusCompleted),
	})
	if err != nil {
		t.Fatalf("UpdateServiceRequest: %v", err)
	}
	if updated.Status != model.RequestStatusCompleted {
		t.Fatalf("status = %s, want Completed", updated.Status)
	}

	var farmer model.Farmer
	if err := db.First(&farmer, "farmer_id = ?", "farmer-1").Error; err != nil {
		t.Fatalf("load farmer: %v", err)
	}
	current, _ := model.DecodeSummaries(farmer.CurrentServiceRequests)
	completed, _ := model.DecodeSummaries(farmer.CompletedServiceRequests)

	if len(current) != 0 {
		t.Fatalf("current entries = %d, want 0", len(current))
	}
	if len(completed) != 1 {
		t.Fatalf("completed entries = %d, want 1", len(completed))
	}
	if completed[0].RequestID != req.RequestID {
		t.Fatalf("completed entry id = %s, want %s", completed[0].RequestID, req.RequestID)
	}
	if completed[0].Status != model.RequestStatusCompleted {
		t.Fatalf("completed entry status = %s, want Completed", completed[0].Status)
	}
	// Суммарное число записей по всем спискам не меняется.
	if len(current)+len(completed) != 1 {
		t.Fatalf("total projection entries = %d, want 1", len(current)+len(completed))
	}
}

func TestUpdateServiceRequest_CancelledMovesToReturned(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := NewRequestService(db)

	req, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		ScheduledDate:     time.Now().UTC(),
		ServiceProviderID: "prov-1",
		ServiceID:         "svc-1",
	})
	if err != nil {
		t.Fatalf("AddServiceRequest: %v", err)
	}

	if _, err := svc.UpdateServiceRequest(ctx, req.RequestID, UpdateRequestInput{
		Status: statusPtr(model.RequestStatusCancelled),
	}); err != nil {
		t.Fatalf("UpdateServiceRequest: %v", err)
	}

	var farmer model.Farmer
	if err := db.First(&farmer, "farmer_id = ?", "farmer-1").Error; err != nil {
		t.Fatalf("load farmer: %v", err)
	}
	current, _ := model.DecodeSummaries(farmer.CurrentServiceRequests)
	returned, _ := model.DecodeSummaries(farmer.ReturnedServiceRequests)

	if len(current) != 0 {
		t.Fatalf("current entries = %d, want 0", len(current))
	}
	if len(returned) != 1 || returned[0].Status != model.RequestStatusCancelled {
		t.Fatalf("returned entries = %+v, want one Cancelled", returned)
	}
}

func TestUpdateServiceRequest_InProgressStaysCurrent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := NewRequestService(db)

	req, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		ScheduledDate:     time.Now().UTC(),
		ServiceProviderID: "prov-1",
		ServiceID:         "svc-1",
	})
	if err != nil {
		t.Fatalf("AddServiceRequest: %v", err)
	}

	if _, err := svc.UpdateServiceRequest(ctx, req.RequestID, UpdateRequestInput{
		Status: statusPtr(model.RequestStatusInProgress),
	}); err != nil {
		t.Fatalf("UpdateServiceRequest: %v", err)
	}

	var farmer model.Farmer
	if err := db.First(&farmer, "farmer_id = ?", "farmer-1").Error; err != nil {
		t.Fatalf("load farmer: %v", err)
	}
	current, _ := model.DecodeSummaries(farmer.CurrentServiceRequests)
	completed, _ := model.DecodeSummaries(farmer.CompletedServiceRequests)

	if len(current) != 1 || current[0].Status != model.RequestStatusInProgress {
		t.Fatalf("current entries = %+v, want one InProgress", current)
	}
	if len(completed) != 0 {
		t.Fatalf("completed entries = %d, want 0", len(completed))
	}
}

func TestUpdateServiceRequest_TerminalStatusFrozen(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := NewRequestService(db)

	req, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		ScheduledDate:     time.Now().UTC(),
		ServiceProviderID: "prov-1",
		ServiceID:         "svc-1",
	})
	if err != nil {
		t.Fatalf("AddServiceRequest: %v", err)
	}

	if _, err := svc.UpdateServiceRequest(ctx, req.RequestID, UpdateRequestInput{
		Status: statusPtr(model.RequestStatusCompleted),
	}); err != nil {
		t.Fatalf("complete request: %v", err)
	}

	_, err = svc.UpdateServiceRequest(ctx, req.RequestID, UpdateRequestInput{
		Status: statusPtr(model.RequestStatusInProgress),
	})
	if !errors.Is(err, ErrTerminalStatus) {
		t.Fatalf("err = %v, want ErrTerminalStatus", err)
	}
}

func TestUpdateServiceRequest_InvalidStatus(t *testing.T) {
	db := openTestDB(t)

	svc := NewRequestService(db)

	bad := model.RequestStatus("Done")
	_, err := svc.UpdateServiceRequest(context.Background(), "whatever", UpdateRequestInput{
		Status: &bad,
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateServiceRequest_MissingProjectionEntryFails(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	// Заявка создана в обход сервиса, проекция фермера пуста.
	req := &model.ServiceRequest{
		RequestID:         "req-orphan",
		FarmerID:          "farmer-1",
		FarmerName:        "Raju",
		ScheduledDate:     time.Now().UTC(),
		ServiceProviderID: "prov-1",
		ServiceID:         "svc-1",
		Status:            model.RequestStatusPending,
	}
	if err := db.Omit("Provider", "Service").Create(req).Error; err != nil {
		t.Fatalf("seed orphan request: %v", err)
	}

	svc := NewRequestService(db)

	_, err := svc.UpdateServiceRequest(ctx, "req-orphan", UpdateRequestInput{
		Status: statusPtr(model.RequestStatusCompleted),
	})
	if !errors.Is(err, repository.ErrRequestNotInCurrentList) {
		t.Fatalf("err = %v, want ErrRequestNotInCurrentList", err)
	}

	// Откат: статус заявки не изменился.
	var got model.ServiceRequest
	if err := db.First(&got, "request_id = ?", "req-orphan").Error; err != nil {
		t.Fatalf("load request: %v", err)
	}
	if got.Status != model.RequestStatusPending {
		t.Fatalf("status = %s, want Pending after rollback", got.Status)
	}
}

func TestGetRequestsForFarmer_FiltersAndSortsDesc(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := NewRequestService(db)

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		req, err := svc.AddServiceRequest(ctx, AddRequestInput{
			FarmerID:          "farmer-1",
			ScheduledDate:     base.AddDate(0, 0, i),
			ServiceProviderID: "prov-1",
			ServiceID:         "svc-1",
		})
		if err != nil {
			t.Fatalf("add request %d: %v", i, err)
		}
		ids = append(ids, req.RequestID)
	}

	// Последнюю заявку завершаем.
	if _, err := svc.UpdateServiceRequest(ctx, ids[2], UpdateRequestInput{
		Status: statusPtr(model.RequestStatusCompleted),
	}); err != nil {
		t.Fatalf("complete request: %v", err)
	}

	active, err := svc.GetRequestsForFarmer(ctx, "farmer-1", "active")
	if err != nil {
		t.Fatalf("GetRequestsForFarmer(active): %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active = %d, want 2", len(active))
	}
	// Свежие первыми.
	if !active[0].ScheduledDate.After(active[1].ScheduledDate) {
		t.Fatalf("active not sorted by scheduledDate desc: %v, %v", active[0].ScheduledDate, active[1].ScheduledDate)
	}
	for _, s := range active {
		if s.Status != model.RequestStatusPending {
			t.Fatalf("active entry status = %s, want Pending", s.Status)
		}
	}

	completed, err := svc.GetRequestsForFarmer(ctx, "farmer-1", "completed")
	if err != nil {
		t.Fatalf("GetRequestsForFarmer(completed): %v", err)
	}
	if len(completed) != 1 || completed[0].RequestID != ids[2] {
		t.Fatalf("completed = %+v, want entry %s", completed, ids[2])
	}

	if _, err := svc.GetRequestsForFarmer(ctx, "farmer-1", "bogus"); !errors.Is(err, ErrInvalidStatusFilter) {
		t.Fatalf("err = %v, want ErrInvalidStatusFilter", err)
	}
	if _, err := svc.GetRequestsForFarmer(ctx, "no-such", "active"); !errors.Is(err, ErrFarmerNotFound) {
		t.Fatalf("err = %v, want ErrFarmerNotFound", err)
	}
}

func TestGetRequestsForProvider_FiltersByStatusSet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "farmer-1")
	seedService(t, db, "svc-1", "Ploughing")

	providerSvc := NewProviderService(db)
	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "prov-1",
		Name:       "Ram Tractors",
		FarmerID:   "farmer-1",
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	svc := NewRequestService(db)

	base := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	first, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		ScheduledDate:     base,
		ServiceProviderID: "prov-1",
		ServiceID:         "svc-1",
	})
	if err != nil {
		t.Fatalf("add request: %v", err)
	}
	second, err := svc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "farmer-1",
		ScheduledDate:     base.AddDate(0, 0, 1),
		ServiceProviderID: "prov-1",
		ServiceID:         "svc-1",
	})
	if err != nil {
		t.Fatalf("add request: %v", err)
	}

	if _, err := svc.UpdateServiceRequest(ctx, first.RequestID, UpdateRequestInput{
		Status: statusPtr(model.RequestStatusCancelled),
	}); err != nil {
		t.Fatalf("cancel request: %v", err)
	}

	active, err := svc.GetRequestsForProvider(ctx, "prov-1", "active")
	if err != nil {
		t.Fatalf("GetRequestsForProvider(active): %v", err)
	}
	if len(active) != 1 || active[0].RequestID != second.RequestID {
		t.Fatalf("active = %d entries, want only %s", len(active), second.RequestID)
	}

	completed, err := svc.GetRequestsForProvider(ctx, "prov-1", "completed")
	if err != nil {
		t.Fatalf("GetRequestsForProvider(completed): %v", err)
	}
	if len(completed) != 1 || completed[0].RequestID != first.RequestID {
		t.Fatalf("completed = %d entries, want only %s", len(completed), first.RequestID)
	}

	if _, err := svc.GetRequestsForProvider(ctx, "no-such", "active"); !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("err = %v, want ErrProviderNotFound", err)
	}
}

// Сквозной сценарий: услуга -> провайдер с техникой -> заявка -> завершение.
func TestRequestLifecycle_EndToEnd(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seedFarmer(t, db, "F1")
	seedService(t, db, "S1", "Ploughing")

	providerSvc := NewProviderService(db)
	requestSvc := NewRequestService(db)

	if _, err := providerSvc.CreateProvider(ctx, CreateProviderInput{
		ProviderID: "P1",
		Name:       "Provider One",
		FarmerID:   "F1",
		Equipments: []EquipmentInput{{EquipmentID: "E1", Name: "Tractor"}},
		ServiceIDs: []string{"S1"},
	}); err != nil {
		t.Fatalf("create provider: %v", err)
	}

	req, err := requestSvc.AddServiceRequest(ctx, AddRequestInput{
		FarmerID:          "F1",
		FarmerName:        "Farmer One",
		ScheduledDate:     time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC),
		ServiceProviderID: "P1",
		ServiceID:         "S1",
	})
	if err != nil {
		t.Fatalf("add request: %v", err)
	}

	var farmer model.Farmer
	if err := db.First(&farmer, "farmer_id = ?", "F1").Error; err != nil {
		t.Fatalf("load farmer: %v", err)
	}
	current, _ := model.DecodeSummaries(farmer.CurrentServiceRequests)
	if len(current) != 1 || current[0].RequestID != req.RequestID || current[0].Status != model.RequestStatusPending {
		t.Fatalf("current = %+v, want one Pending entry for %s", current, req.RequestID)
	}

	if _, err := requestSvc.UpdateServiceRequest(ctx, req.RequestID, UpdateRequestInput{
		Status: statusPtr(model.RequestStatusCompleted),
	}); err != nil {
		t.Fatalf("complete request: %v", err)
	}

	if err := db.First(&farmer, "farmer_id = ?", "F1").Error; err != nil {
		t.Fatalf("reload farmer: %v", err)
	}
	current, _ = model.DecodeSummaries(farmer.CurrentServiceRequests)
	completed, _ := model.DecodeSummaries(farmer.CompletedServiceRequests)
	if len(current) != 0 {
		t.Fatalf("current = %d entries, want 0", len(current))
	}
	if len(completed) != 1 || completed[0].Status != model.RequestStatusCompleted {
		t.Fatalf("completed = %+v, want one Completed entry", completed)
	}
}
