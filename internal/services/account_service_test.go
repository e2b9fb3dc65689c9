package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

func TestCreateAgent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewStatsService(db))
	tenant := createTestTenant(t, db, "acme", true)

	account, err := svc.Create(tenant.ID, models.RoleAgent, CreateAccountInput{
		Username: "agent1",
		Password: "secret123",
		FullName: "Agent One",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAgent, account.Role)
	assert.Equal(t, tenant.ID, *account.TenantID)
	assert.True(t, account.IsActive)
	assert.Empty(t, account.Password)

	stats, err := NewStatsService(db).GetForTenant(tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.ActiveUsers)
}

func TestCreateSupervisorLevelDefault(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewStatsService(db))
	tenant := createTestTenant(t, db, "acme", true)

	account, err := svc.Create(tenant.ID, models.RoleSupervisor, CreateAccountInput{
		Username:        "sup1",
		Password:        "secret123",
		SupervisorLevel: 9,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, account.SupervisorLevel)

	account, err = svc.Create(tenant.ID, models.RoleSupervisor, CreateAccountInput{
		Username:        "sup2",
		Password:        "secret123",
		SupervisorLevel: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, account.SupervisorLevel)
}

func TestCreateAccountMaxUsers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewStatsService(db))

	tenant := &models.Tenant{Name: "Tiny", Subdomain: "tiny", MaxUsers: 1, IsActive: true}
	assert.NoError(t, db.Create(tenant).Error)

	_, err := svc.Create(tenant.ID, models.RoleAgent, CreateAccountInput{Username: "a1", Password: "secret123"})
	assert.NoError(t, err)

	_, err = svc.Create(tenant.ID, models.RoleAgent, CreateAccountInput{Username: "a2", Password: "secret123"})
	assert.ErrorIs(t, err, ErrMaxUsersReached)
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewStatsService(db))
	tenant := createTestTenant(t, db, "acme", true)

	_, err := svc.Create(tenant.ID, models.RoleAgent, CreateAccountInput{Username: "agent1", Password: "secret123"})
	assert.NoError(t, err)

	_, err = svc.Create(tenant.ID, models.RoleAgent, CreateAccountInput{Username: "agent1", Password: "secret123"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCreateAccountRejectsPrivilegedRoles(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewStatsService(db))
	tenant := createTestTenant(t, db, "acme", true)

	for _, role := range []models.Role{models.RoleSubsystemAdmin, models.RoleMaster} {
		_, err := svc.Create(tenant.ID, role, CreateAccountInput{Username: "x", Password: "secret123"})
		assert.ErrorIs(t, err, ErrForbidden, "role %s", role)
	}
}

func TestSetActiveAccount(t *testing.T) {
	db := setupTestDB(t)
	stats := NewStatsService(db)
	svc := NewAccountService(db, stats)
	tenant := createTestTenant(t, db, "acme", true)

	account, err := svc.Create(tenant.ID, models.RoleAgent, CreateAccountInput{Username: "agent1", Password: "secret123"})
	assert.NoError(t, err)

	updated, err := svc.SetActive(tenant.ID, account.ID, false)
	assert.NoError(t, err)
	assert.False(t, updated.IsActive)

	var reloaded models.Account
	assert.NoError(t, db.First(&reloaded, account.ID).Error)
	assert.False(t, reloaded.IsActive)
	assert.NotNil(t, reloaded.DeactivatedAt)

	current, err := stats.GetForTenant(tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, current.ActiveUsers)

	// Reactivation clears the stamp and restores the counter.
	_, err = svc.SetActive(tenant.ID, account.ID, true)
	assert.NoError(t, err)
	// GORM does not reset fields of a reused destination struct, so scan
	// into a pristine one.
	reloaded = models.Account{}
	assert.NoError(t, db.First(&reloaded, account.ID).Error)
	assert.True(t, reloaded.IsActive)
	assert.Nil(t, reloaded.DeactivatedAt)

	current, err = stats.GetForTenant(tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, current.ActiveUsers)
}

func TestSetActiveAccountIdempotent(t *testing.T) {
	db := setupTestDB(t)
	stats := NewStatsService(db)
	svc := NewAccountService(db, stats)
	tenant := createTestTenant(t, db, "acme", true)

	account, err := svc.Create(tenant.ID, models.RoleAgent, CreateAccountInput{Username: "agent1", Password: "secret123"})
	assert.NoError(t, err)

	// Re-activating an already-active account must not bump the counter.
	_, err = svc.SetActive(tenant.ID, account.ID, true)
	assert.NoError(t, err)

	current, err := stats.GetForTenant(tenant.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, current.ActiveUsers)
}

func TestSetActiveAccountTenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewStatsService(db))
	tenantA := createTestTenant(t, db, "tenant-a", true)
	tenantB := createTestTenant(t, db, "tenant-b", true)

	account, err := svc.Create(tenantA.ID, models.RoleAgent, CreateAccountInput{Username: "agent-a", Password: "secret123"})
	assert.NoError(t, err)

	_, err = svc.SetActive(tenantB.ID, account.ID, false)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListByRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAccountService(db, NewStatsService(db))
	tenant := createTestTenant(t, db, "acme", true)
	other := createTestTenant(t, db, "other", true)

	createTestAccount(t, db, "agent1", "secret123", models.RoleAgent, &tenant.ID, true)
	createTestAccount(t, db, "agent2", "secret123", models.RoleAgent, &tenant.ID, false)
	createTestSupervisor(t, db, "sup1", tenant.ID, 1)
	createTestAccount(t, db, "foreign", "secret123", models.RoleAgent, &other.ID, true)

	agents, err := svc.ListByRole(tenant.ID, models.RoleAgent)
	assert.NoError(t, err)
	assert.Len(t, agents, 2)
	for _, a := range agents {
		assert.Empty(t, a.Password)
	}

	supervisors, err := svc.ListByRole(tenant.ID, models.RoleSupervisor)
	assert.NoError(t, err)
	assert.Len(t, supervisors, 1)
}
