package models

import "time"

// Terminal is a physical point-of-sale device. A terminal counts as active
// when it has been seen within the last five minutes.
type Terminal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	DeviceID string `gorm:"uniqueIndex;not null" json:"device_id"`
	AgentID  *uint  `gorm:"index" json:"agent_id"`
	TenantID *uint  `gorm:"index" json:"tenant_id"`

	Status   string    `gorm:"default:'connected'" json:"status"`
	LastSeen time.Time `json:"last_seen"`
}
