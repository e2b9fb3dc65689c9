package models

import "time"

// Tenant is a subsystem: an isolated point-of-sale network with its own
// agents, supervisors and admin. Subdomain is globally unique.
type Tenant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name      string `gorm:"not null" json:"name"`
	Subdomain string `gorm:"uniqueIndex;not null" json:"subdomain"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	MaxUsers            int              `gorm:"default:10" json:"max_users"`
	SubscriptionType    SubscriptionType `gorm:"default:'basic'" json:"subscription_type"`
	SubscriptionExpires *time.Time       `json:"subscription_expires"`

	IsActive      bool       `gorm:"default:true" json:"is_active"`
	DeactivatedAt *time.Time `json:"deactivated_at"`
}

// TenantStats is the denormalized per-tenant counter row. Today counters are
// lazily reset when the stored updated_at date differs from the current date
// at write time.
type TenantStats struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TenantID uint `gorm:"uniqueIndex;not null" json:"tenant_id"`

	ActiveUsers  int     `gorm:"default:0" json:"active_users"`
	TicketsToday int     `gorm:"default:0" json:"tickets_today"`
	SalesToday   float64 `gorm:"default:0" json:"sales_today"`
	TicketsTotal int     `gorm:"default:0" json:"tickets_total"`
	SalesTotal   float64 `gorm:"default:0" json:"sales_total"`

	UsagePercentage int `gorm:"default:0" json:"usage_percentage"`
}
