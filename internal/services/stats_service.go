package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// StatsService maintains the denormalized per-tenant counters. Increments
// run as store-level expressions inside a transaction so concurrent ticket
// creates never lose updates. Today counters reset lazily on the first write
// of a new calendar day; there is no scheduled reset job.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// OnTicketCreated records one sale. Runs inside the given transaction so the
// counter update commits or rolls back with the ticket insert.
func (s *StatsService) OnTicketCreated(tx *gorm.DB, tenantID uint, amount float64) error {
	var stats models.TenantStats
	if err := tx.Where(models.TenantStats{TenantID: tenantID}).FirstOrCreate(&stats).Error; err != nil {
		return err
	}

	now := time.Now()
	if sameCalendarDay(stats.UpdatedAt, now) {
		return tx.Model(&models.TenantStats{}).Where("tenant_id = ?", tenantID).
			Updates(map[string]interface{}{
				"tickets_today": gorm.Expr("tickets_today + ?", 1),
				"sales_today":   gorm.Expr("sales_today + ?", amount),
				"tickets_total": gorm.Expr("tickets_total + ?", 1),
				"sales_total":   gorm.Expr("sales_total + ?", amount),
				"updated_at":    now,
			}).Error
	}

	// Day rollover: today counters reflect only this event.
	return tx.Model(&models.TenantStats{}).Where("tenant_id = ?", tenantID).
		Updates(map[string]interface{}{
			"tickets_today": 1,
			"sales_today":   amount,
			"tickets_total": gorm.Expr("tickets_total + ?", 1),
			"sales_total":   gorm.Expr("sales_total + ?", amount),
			"updated_at":    now,
		}).Error
}

// OnUserActivationChanged adjusts the active user counter by delta, clamped
// to [0, max_users], and recomputes the usage percentage.
func (s *StatsService) OnUserActivationChanged(tenantID uint, delta int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.First(&tenant, tenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var stats models.TenantStats
		if err := tx.Where(models.TenantStats{TenantID: tenantID}).FirstOrCreate(&stats).Error; err != nil {
			return err
		}

		active := stats.ActiveUsers + delta
		if active < 0 {
			active = 0
		}
		if tenant.MaxUsers > 0 && active > tenant.MaxUsers {
			active = tenant.MaxUsers
		}

		usage := 0
		if tenant.MaxUsers > 0 {
			usage = int(math.Round(float64(active) / float64(tenant.MaxUsers) * 100))
		}

		return tx.Model(&models.TenantStats{}).Where("tenant_id = ?", tenantID).
			Updates(map[string]interface{}{
				"active_users":     active,
				"usage_percentage": usage,
			}).Error
	})
}

// GetForTenant returns the counter row, creating a zeroed one if absent.
func (s *StatsService) GetForTenant(tenantID uint) (*models.TenantStats, error) {
	var stats models.TenantStats
	if err := s.db.Where(models.TenantStats{TenantID: tenantID}).FirstOrCreate(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
