package auth

import (
	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
)

// LoginInput is the credential payload shared by the four role logins.
// Level only applies to supervisor logins.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Level    int    `json:"level" binding:"omitempty,oneof=1 2"`
}

// InitMasterInput bootstraps the very first master account.
type InitMasterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
	Company  string `json:"company" binding:"required"`
}

// TerminalLoginInput redeems a point-of-sale access code.
type TerminalLoginInput struct {
	Code     string `json:"code" binding:"required"`
	DeviceID string `json:"device_id" binding:"required"`
}

// LoginResponse returns the signed token, the sanitized account and, for
// tenant-scoped roles, the tenant snapshot.
type LoginResponse struct {
	Token  string         `json:"token"`
	User   models.Account `json:"user"`
	Tenant *models.Tenant `json:"tenant,omitempty"`
}
