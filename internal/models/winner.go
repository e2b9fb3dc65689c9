package models

import (
	"time"

	"gorm.io/datatypes"
)

// Winner is a published draw result.
type Winner struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Draw     string         `gorm:"not null" json:"draw"`
	Numbers  datatypes.JSON `json:"numbers"`
	TenantID *uint          `gorm:"index" json:"tenant_id"`
	PostedBy uint           `json:"posted_by"`
}
