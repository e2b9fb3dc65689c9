package models

import (
	"time"

	"gorm.io/datatypes"
)

// Ticket is a recorded sale. TicketNumber is unique within a tenant; the
// composite unique index is the real guard against concurrent duplicate
// creates. Status transitions exactly once, pending -> validated|rejected.
type Ticket struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TicketNumber string `gorm:"not null;uniqueIndex:idx_ticket_tenant" json:"ticket_number"`
	TenantID     uint   `gorm:"not null;uniqueIndex:idx_ticket_tenant;index" json:"tenant_id"`
	AgentID      uint   `gorm:"not null;index" json:"agent_id"`

	GameType     string  `gorm:"not null" json:"game_type"`
	Amount       float64 `gorm:"not null" json:"amount"`
	PayoutAmount float64 `gorm:"not null" json:"payout_amount"`

	// Bet payload: the numbers played, free-form per game type.
	Numbers datatypes.JSON `json:"numbers"`

	ClientName  string     `json:"client_name"`
	ClientPhone string     `json:"client_phone"`
	DrawDate    *time.Time `json:"draw_date"`

	Status          TicketStatus `gorm:"not null;default:'pending_validation';index" json:"status"`
	ValidatedBy     *uint        `json:"validated_by"`
	ValidatedAt     *time.Time   `json:"validated_at"`
	RejectionReason string       `json:"rejection_reason"`
}
