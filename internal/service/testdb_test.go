package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrisewa/farm-marketplace/internal/model"
)

// Minimal schema for the workflow logic (sqlite-friendly).
var testSchema = []string{
	`CREATE TABLE farmers (
		farmer_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		contact_info TEXT,
		address TEXT,
		provider_id TEXT,
		current_service_requests TEXT,
		completed_service_requests TEXT,
		returned_service_requests TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE service_providers (
		provider_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		contact_info TEXT,
		availability TEXT,
		experience TEXT,
		certifications TEXT,
		rating REAL NOT NULL DEFAULT 0,
		farmer_id TEXT NOT NULL UNIQUE,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE services (
		service_id TEXT PRIMARY KEY,
		service_name TEXT NOT NULL,
		category TEXT,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE provider_services (
		provider_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (provider_id, service_id)
	);`,
	`CREATE TABLE addresses (
		address_id TEXT PRIMARY KEY,
		provider_id TEXT NOT NULL,
		street TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		zip_code TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE equipment (
		equipment_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT,
		description TEXT,
		capacity TEXT,
		owned_by TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE crops (
		crop_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		scientific_name TEXT,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE equipment_crops (
		equipment_id TEXT NOT NULL,
		crop_id TEXT NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (equipment_id, crop_id)
	);`,
	`CREATE TABLE service_requests (
		request_id TEXT PRIMARY KEY,
		farmer_id TEXT NOT NULL,
		farmer_name TEXT NOT NULL,
		farmer_contact_info TEXT,
		farmer_address TEXT,
		scheduled_date DATETIME NOT NULL,
		service_provider_id TEXT NOT NULL,
		service_id TEXT NOT NULL,
		status TEXT NOT NULL,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	if err := model.SetupJoinTables(db); err != nil {
		t.Fatalf("setup join tables: %v", err)
	}
	return db
}

func seedFarmer(t *testing.T, db *gorm.DB, farmerID string) {
	t.Helper()
	f := &model.Farmer{
		FarmerID:    farmerID,
		Name:        "farmer " + farmerID,
		ContactInfo: "+1000000",
		Address:     "village road 1",
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed farmer: %v", err)
	}
}

func seedService(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	s := &model.Service{ServiceID: id, ServiceName: name, Category: "field work"}
	if err := db.Omit("Providers").Create(s).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, m any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}
