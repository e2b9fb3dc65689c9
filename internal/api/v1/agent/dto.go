package agent

import (
	"time"

	"gorm.io/datatypes"
)

// CreateTicketInput is the agent-submitted sale payload.
type CreateTicketInput struct {
	TicketNumber string         `json:"ticket_number" binding:"required"`
	GameType     string         `json:"game_type" binding:"required"`
	Amount       float64        `json:"amount" binding:"required,gt=0"`
	Numbers      datatypes.JSON `json:"numbers" binding:"required"`
	ClientName   string         `json:"client_name"`
	ClientPhone  string         `json:"client_phone"`
	DrawDate     *time.Time     `json:"draw_date"`
	DeviceID     string         `json:"device_id"`
}
