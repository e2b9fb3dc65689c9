package services

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// setupTestDB opens an in-memory SQLite database with a clean schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// Drop tables to ensure clean state and schema update
	db.Migrator().DropTable(
		&models.Account{},
		&models.Tenant{},
		&models.TenantStats{},
		&models.Ticket{},
		&models.AccessCode{},
		&models.Terminal{},
		&models.Winner{},
	)

	err = db.AutoMigrate(
		&models.Account{},
		&models.Tenant{},
		&models.TenantStats{},
		&models.Ticket{},
		&models.AccessCode{},
		&models.Terminal{},
		&models.Winner{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestTenant(t *testing.T, db *gorm.DB, subdomain string, active bool) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		Name:      subdomain,
		Subdomain: subdomain,
		MaxUsers:  10,
		IsActive:  active,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}
	// GORM skips zero-valued fields carrying a default tag on insert, so an
	// inactive tenant must be persisted with an explicit update.
	if !active {
		if err := db.Model(tenant).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate tenant: %v", err)
		}
	}
	return tenant
}

func createTestAccount(t *testing.T, db *gorm.DB, username, password string, role models.Role, tenantID *uint, active bool) *models.Account {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &models.Account{
		Username: username,
		Password: string(hashed),
		Role:     role,
		TenantID: tenantID,
		IsActive: active,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	// GORM skips zero-valued fields carrying a default tag on insert, so an
	// inactive account must be persisted with an explicit update.
	if !active {
		if err := db.Model(account).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate account: %v", err)
		}
	}
	return account
}

func createTestSupervisor(t *testing.T, db *gorm.DB, username string, tenantID uint, level int) *models.Account {
	t.Helper()

	account := createTestAccount(t, db, username, "secret123", models.RoleSupervisor, &tenantID, true)
	if err := db.Model(account).Update("supervisor_level", level).Error; err != nil {
		t.Fatalf("failed to set supervisor level: %v", err)
	}
	account.SupervisorLevel = level
	return account
}
