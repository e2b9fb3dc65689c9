package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

// AuthService owns the four role login flows, master bootstrap and the
// role-agnostic profile operations.
type AuthService struct {
	db     *gorm.DB
	tokens *utils.TokenManager
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// LoginResult is what every login flow returns: the signed token, the
// sanitized account and, for tenant-scoped roles, a tenant snapshot.
type LoginResult struct {
	Token   string
	Account models.Account
	Tenant  *models.Tenant
}

// Login authenticates an account of the given role. level restricts
// supervisor logins when positive. The tenant active check runs before the
// password comparison so a disabled subsystem is reported even on a wrong
// password.
func (s *AuthService) Login(role models.Role, username, password string, level int) (*LoginResult, error) {
	var repo AccountRepository
	if role == models.RoleSupervisor && level > 0 {
		repo = SupervisorRepository(s.db, level)
	} else {
		repo = RepositoryFor(s.db, role)
	}

	account, err := repo.FindActiveByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	var tenant *models.Tenant
	if role != models.RoleMaster {
		if account.TenantID == nil {
			return nil, ErrInvalidCredentials
		}
		tenant = &models.Tenant{}
		if err := s.db.First(tenant, *account.TenantID).Error; err != nil {
			return nil, err
		}
		if !tenant.IsActive {
			return nil, ErrTenantDisabled
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tenantName := ""
	if tenant != nil {
		tenantName = tenant.Name
	}
	token, err := s.tokens.Generate(account, tenantName)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:   token,
		Account: account.Sanitized(),
		Tenant:  tenant,
	}, nil
}

// InitMaster creates the first master account. Permitted only while no
// master exists.
func (s *AuthService) InitMaster(username, password, email, company string) (*LoginResult, error) {
	count, err := RepositoryFor(s.db, models.RoleMaster).Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyInitialized
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username: username,
		Password: string(hashed),
		Email:    email,
		FullName: company,
		Role:     models.RoleMaster,
		IsActive: true,
	}
	if err := s.db.Create(account).Error; err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(account, "")
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Account: account.Sanitized()}, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(accountID uint, current, next string) error {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(&account).Update("password", string(hashed)).Error
}

// GetProfile returns the sanitized account for any role.
func (s *AuthService) GetProfile(accountID uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sanitized := account.Sanitized()
	return &sanitized, nil
}

// ProfileUpdate holds the owner-mutable profile fields.
type ProfileUpdate struct {
	FullName string
	Email    string
	Phone    string
}

// UpdateProfile mutates only the owner-editable fields.
func (s *AuthService) UpdateProfile(accountID uint, update ProfileUpdate) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.FullName != "" {
		updates["full_name"] = update.FullName
	}
	if update.Email != "" {
		updates["email"] = update.Email
	}
	if update.Phone != "" {
		updates["phone"] = update.Phone
	}
	if len(updates) > 0 {
		if err := s.db.Model(&account).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	sanitized := account.Sanitized()
	return &sanitized, nil
}
