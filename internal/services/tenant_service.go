package services

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// TenantService owns master-level subsystem management: creation with the
// cascading admin account, the subscription lifecycle and the consolidated
// reporting.
type TenantService struct {
	db        *gorm.DB
	terminals *TerminalService
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db, terminals: NewTerminalService(db)}
}

// CreateTenantInput carries the master-submitted subsystem fields.
type CreateTenantInput struct {
	Name               string
	Subdomain          string
	Email              string
	Phone              string
	MaxUsers           int
	SubscriptionType   models.SubscriptionType
	SubscriptionMonths int
}

// CreateTenantResult returns the new tenant plus the generated admin
// credentials. The plaintext password is shown exactly once.
type CreateTenantResult struct {
	Tenant        models.Tenant
	Admin         models.Account
	AdminPassword string
}

// Create inserts the tenant, its admin account and the zeroed stats row in
// one transaction, so a failed admin create leaves no orphan tenant behind.
func (s *TenantService) Create(input CreateTenantInput) (*CreateTenantResult, error) {
	if !subdomainPattern.MatchString(input.Subdomain) {
		return nil, ErrInvalidSubdomain
	}

	var count int64
	if err := s.db.Model(&models.Tenant{}).Where("subdomain = ?", input.Subdomain).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateSubdomain
	}

	if input.MaxUsers <= 0 {
		input.MaxUsers = 10
	}
	if input.SubscriptionType == "" {
		input.SubscriptionType = models.SubscriptionBasic
	}
	if input.SubscriptionMonths <= 0 {
		input.SubscriptionMonths = 1
	}

	expires := time.Now().AddDate(0, input.SubscriptionMonths, 0)
	tenant := models.Tenant{
		Name:                input.Name,
		Subdomain:           input.Subdomain,
		Email:               input.Email,
		Phone:               input.Phone,
		MaxUsers:            input.MaxUsers,
		SubscriptionType:    input.SubscriptionType,
		SubscriptionExpires: &expires,
		IsActive:            true,
	}

	adminPassword, err := utils.GeneratePassword(12)
	if err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	adminUsername := fmt.Sprintf("%s-admin-%s", input.Subdomain, uuid.New().String()[:8])

	var admin models.Account
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateSubdomain
			}
			return err
		}

		admin = models.Account{
			Username: adminUsername,
			Password: string(hashed),
			FullName: fmt.Sprintf("%s Administrator", input.Name),
			Email:    input.Email,
			Role:     models.RoleSubsystemAdmin,
			TenantID: &tenant.ID,
			IsActive: true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		usage := int(math.Round(1.0 / float64(tenant.MaxUsers) * 100))
		stats := models.TenantStats{
			TenantID:        tenant.ID,
			ActiveUsers:     1,
			UsagePercentage: usage,
		}
		return tx.Create(&stats).Error
	})
	if err != nil {
		return nil, err
	}

	return &CreateTenantResult{
		Tenant:        tenant,
		Admin:         admin.Sanitized(),
		AdminPassword: adminPassword,
	}, nil
}

func (s *TenantService) Get(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (s *TenantService) List() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

// UpdateTenantInput holds the master-mutable tenant fields.
type UpdateTenantInput struct {
	Name             string
	Email            string
	Phone            string
	MaxUsers         int
	SubscriptionType models.SubscriptionType
}

func (s *TenantService) Update(id uint, input UpdateTenantInput) (*models.Tenant, error) {
	tenant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.MaxUsers > 0 {
		updates["max_users"] = input.MaxUsers
	}
	if input.SubscriptionType != "" {
		updates["subscription_type"] = input.SubscriptionType
	}
	if len(updates) > 0 {
		if err := s.db.Model(tenant).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return tenant, nil
}

// SetActive flips the active flag. Deactivation stamps deactivated_at;
// reactivation clears it.
func (s *TenantService) SetActive(id uint, active bool) (*models.Tenant, error) {
	tenant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"is_active": active}
	if active {
		updates["deactivated_at"] = nil
	} else {
		now := time.Now()
		updates["deactivated_at"] = now
	}
	if err := s.db.Model(tenant).Updates(updates).Error; err != nil {
		return nil, err
	}
	return tenant, nil
}

// Renew extends the subscription by months from its current expiry, even
// when that expiry is already in the past, and reactivates the tenant.
func (s *TenantService) Renew(id uint, months int) (*models.Tenant, error) {
	tenant, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	base := time.Now()
	if tenant.SubscriptionExpires != nil {
		base = *tenant.SubscriptionExpires
	}
	expires := base.AddDate(0, months, 0)

	err = s.db.Model(tenant).Updates(map[string]interface{}{
		"subscription_expires": expires,
		"is_active":            true,
		"deactivated_at":       nil,
	}).Error
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// DeactivateExpired disables every active tenant whose subscription expiry
// has passed. Run by the nightly sweep; already-inactive tenants are never
// touched.
func (s *TenantService) DeactivateExpired(now time.Time) (int64, error) {
	result := s.db.Model(&models.Tenant{}).
		Where("is_active = ? AND subscription_expires IS NOT NULL AND subscription_expires < ?", true, now).
		Updates(map[string]interface{}{
			"is_active":      false,
			"deactivated_at": now,
		})
	return result.RowsAffected, result.Error
}

// DashboardStats is the master overview across all tenants.
type DashboardStats struct {
	Tenants         int64   `json:"tenants"`
	ActiveTenants   int64   `json:"active_tenants"`
	TicketsToday    int64   `json:"tickets_today"`
	SalesToday      float64 `json:"sales_today"`
	ActiveTerminals int64   `json:"active_terminals"`
	ActiveCodes     int64   `json:"active_codes"`
}

func (s *TenantService) Dashboard() (*DashboardStats, error) {
	var out DashboardStats

	if err := s.db.Model(&models.Tenant{}).Count(&out.Tenants).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Tenant{}).Where("is_active = ?", true).Count(&out.ActiveTenants).Error; err != nil {
		return nil, err
	}

	var today struct {
		Count int64
		Total float64
	}
	err := s.db.Model(&models.Ticket{}).
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Where("created_at >= ?", startOfDay(time.Now())).
		Scan(&today).Error
	if err != nil {
		return nil, err
	}
	out.TicketsToday = today.Count
	out.SalesToday = today.Total

	if out.ActiveTerminals, err = s.terminals.ActiveCount(); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.AccessCode{}).Where("is_active = ?", true).Count(&out.ActiveCodes).Error; err != nil {
		return nil, err
	}

	return &out, nil
}

// TenantReportRow sums one active tenant's tickets over the report range.
type TenantReportRow struct {
	TenantID uint    `json:"tenant_id"`
	Name     string  `json:"name"`
	Count    int64   `json:"count"`
	Amount   float64 `json:"amount"`
	Payout   float64 `json:"payout"`
}

// ConsolidatedReport aggregates ticket volume per active tenant over a date
// range, plus a global day-by-day breakdown. Both are single grouped
// queries; the range length does not change the query count.
func (s *TenantService) ConsolidatedReport(start, end time.Time) ([]TenantReportRow, []DayBreakdown, error) {
	var rows []TenantReportRow
	err := s.db.Model(&models.Ticket{}).
		Select("tickets.tenant_id as tenant_id, tenants.name as name, COUNT(*) as count, COALESCE(SUM(tickets.amount), 0) as amount, COALESCE(SUM(tickets.payout_amount), 0) as payout").
		Joins("JOIN tenants ON tenants.id = tickets.tenant_id").
		Where("tenants.is_active = ? AND tickets.created_at >= ? AND tickets.created_at <= ?", true, start, end).
		Group("tickets.tenant_id, tenants.name").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	var byDay []DayBreakdown
	err = s.db.Model(&models.Ticket{}).
		Select("DATE(created_at) as day, COUNT(*) as count, COALESCE(SUM(amount), 0) as amount, COALESCE(SUM(payout_amount), 0) as payout").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Group("DATE(created_at)").Order("day ASC").
		Scan(&byDay).Error
	if err != nil {
		return nil, nil, err
	}

	return rows, byDay, nil
}
