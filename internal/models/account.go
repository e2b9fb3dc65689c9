package models

import (
	"time"

	"gorm.io/datatypes"
)

// Account is a login-capable identity for any of the four roles. TenantID is
// nil only for masters. Accounts are never hard-deleted; deactivation is the
// terminal state.
type Account struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	Role     Role  `gorm:"not null;index" json:"role"`
	TenantID *uint `gorm:"index" json:"tenant_id"`
	IsActive bool  `gorm:"default:true" json:"is_active"`

	// Supervisors only: 1 validates tickets, 2 reads aggregate stats.
	SupervisorLevel int `gorm:"default:0" json:"supervisor_level"`

	CommissionRate float64 `gorm:"default:0" json:"commission_rate"`

	// Agents only. Zero means unlimited; positive values are enforced on
	// ticket creation.
	MaxDailyTickets int     `gorm:"default:0" json:"max_daily_tickets"`
	MaxDailyAmount  float64 `gorm:"default:0" json:"max_daily_amount"`

	Permissions datatypes.JSON `json:"permissions"`

	DeactivatedAt *time.Time `json:"deactivated_at"`
}

// Sanitized returns a copy safe to return to clients.
func (a Account) Sanitized() Account {
	a.Password = ""
	return a
}
