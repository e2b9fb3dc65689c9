package master

import (
	"gorm.io/datatypes"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// CreateSubsystemInput is the master-submitted payload for a new tenant.
type CreateSubsystemInput struct {
	Name               string                  `json:"name" binding:"required"`
	Subdomain          string                  `json:"subdomain" binding:"required"`
	Email              string                  `json:"email" binding:"omitempty,email"`
	Phone              string                  `json:"phone"`
	MaxUsers           int                     `json:"max_users" binding:"omitempty,gt=0"`
	SubscriptionType   models.SubscriptionType `json:"subscription_type" binding:"omitempty,oneof=basic standard premium enterprise"`
	SubscriptionMonths int                     `json:"subscription_months" binding:"omitempty,gt=0"`
}

// UpdateSubsystemInput holds the master-mutable tenant fields.
type UpdateSubsystemInput struct {
	Name             string                  `json:"name"`
	Email            string                  `json:"email" binding:"omitempty,email"`
	Phone            string                  `json:"phone"`
	MaxUsers         int                     `json:"max_users" binding:"omitempty,gt=0"`
	SubscriptionType models.SubscriptionType `json:"subscription_type" binding:"omitempty,oneof=basic standard premium enterprise"`
}

// RenewInput extends a subscription by whole months.
type RenewInput struct {
	Months int `json:"months" binding:"required,gt=0"`
}

// GenerateCodeInput creates a terminal access code, optionally scoped to a
// tenant.
type GenerateCodeInput struct {
	Type     string `json:"type"`
	TenantID *uint  `json:"tenant_id"`
}

// PostWinnerInput publishes a global draw result.
type PostWinnerInput struct {
	Draw    string         `json:"draw" binding:"required"`
	Numbers datatypes.JSON `json:"numbers" binding:"required"`
}
