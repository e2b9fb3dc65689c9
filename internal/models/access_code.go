package models

import "time"

// AccessCode is a one-line login credential for point-of-sale terminals.
// Generated by master, bound to the first device that uses it.
type AccessCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Code     string `gorm:"uniqueIndex;not null" json:"code"`
	Type     string `gorm:"default:'terminal'" json:"type"`
	TenantID *uint  `gorm:"index" json:"tenant_id"`
	AgentID  *uint  `json:"agent_id"`

	DeviceID string     `json:"device_id"`
	LastUsed *time.Time `json:"last_used"`
	IsActive bool       `gorm:"default:true" json:"is_active"`
}
