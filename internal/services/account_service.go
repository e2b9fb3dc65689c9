package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// AccountService owns subsystem-admin user management: creating agents and
// supervisors inside the admin's tenant and toggling activation.
type AccountService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewAccountService(db *gorm.DB, stats *StatsService) *AccountService {
	return &AccountService{db: db, stats: stats}
}

// CreateAccountInput carries the admin-submitted fields for a new agent or
// supervisor.
type CreateAccountInput struct {
	Username        string
	Password        string
	FullName        string
	Email           string
	Phone           string
	SupervisorLevel int
	CommissionRate  float64
	MaxDailyTickets int
	MaxDailyAmount  float64
}

// Create adds an agent or supervisor to the tenant, enforcing the tenant's
// max_users against the current active-user counter.
func (s *AccountService) Create(tenantID uint, role models.Role, input CreateAccountInput) (*models.Account, error) {
	if role != models.RoleAgent && role != models.RoleSupervisor {
		return nil, ErrForbidden
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	stats, err := s.stats.GetForTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.MaxUsers > 0 && stats.ActiveUsers >= tenant.MaxUsers {
		return nil, ErrMaxUsersReached
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	level := 0
	if role == models.RoleSupervisor {
		level = input.SupervisorLevel
		if level != 1 && level != 2 {
			level = 1
		}
	}

	account := &models.Account{
		Username:        input.Username,
		Password:        string(hashed),
		FullName:        input.FullName,
		Email:           input.Email,
		Phone:           input.Phone,
		Role:            role,
		TenantID:        &tenantID,
		IsActive:        true,
		SupervisorLevel: level,
		CommissionRate:  input.CommissionRate,
		MaxDailyTickets: input.MaxDailyTickets,
		MaxDailyAmount:  input.MaxDailyAmount,
	}
	if err := s.db.Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	if err := s.stats.OnUserActivationChanged(tenantID, +1); err != nil {
		return nil, err
	}

	sanitized := account.Sanitized()
	return &sanitized, nil
}

// ListByRole returns the tenant's accounts of one role.
func (s *AccountService) ListByRole(tenantID uint, role models.Role) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.Where("tenant_id = ? AND role = ?", tenantID, role).
		Order("created_at DESC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i] = accounts[i].Sanitized()
	}
	return accounts, nil
}

// SetActive toggles an account inside the caller's tenant. Deactivation is
// terminal for observed flows; accounts are never hard-deleted. The
// active-user counter follows the toggle.
func (s *AccountService) SetActive(callerTenantID uint, accountID uint, active bool) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if account.TenantID == nil || *account.TenantID != callerTenantID {
		return nil, ErrForbidden
	}

	if account.IsActive == active {
		sanitized := account.Sanitized()
		return &sanitized, nil
	}

	updates := map[string]interface{}{"is_active": active}
	if active {
		updates["deactivated_at"] = nil
	} else {
		updates["deactivated_at"] = time.Now()
	}
	if err := s.db.Model(&account).Updates(updates).Error; err != nil {
		return nil, err
	}

	delta := -1
	if active {
		delta = +1
	}
	if err := s.stats.OnUserActivationChanged(callerTenantID, delta); err != nil {
		return nil, err
	}

	sanitized := account.Sanitized()
	return &sanitized, nil
}
