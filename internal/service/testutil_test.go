package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agencyhub_backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.Tenant{},
		&model.User{},
		&model.Lead{},
		&model.Activity{},
		&model.Deal{},
		&model.Client{},
		&model.Project{},
		&model.AdCampaign{},
		&model.AdCreative{},
		&model.SplitTest{},
		&model.SalesFunnel{},
		&model.Asset{},
		&model.GeneratedContent{},
		&model.ScraperJob{},
		&model.Plan{},
		&model.TenantSubscription{},
		&model.Subscriber{},
	)
	if err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}

	return db
}

func seedTenant(t *testing.T, db *gorm.DB, name, slug string) *model.Tenant {
	t.Helper()

	tenant := model.Tenant{Name: name, Slug: slug, Status: model.TenantStatusActive}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("could not seed tenant: %v", err)
	}
	return &tenant
}

func seedLead(t *testing.T, db *gorm.DB, tenantID uint, name string, status model.LeadStatus) *model.Lead {
	t.Helper()

	lead := model.Lead{
		TenantID: tenantID,
		Name:     name,
		Status:   status,
		Source:   model.LeadSourceOther,
	}
	if err := db.Create(&lead).Error; err != nil {
		t.Fatalf("could not seed lead: %v", err)
	}
	return &lead
}
