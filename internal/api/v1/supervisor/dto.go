package supervisor

import "gorm.io/datatypes"

// ValidateTicketInput decides a pending ticket. RejectionReason is required
// only when validated is false.
type ValidateTicketInput struct {
	Validated       *bool  `json:"validated" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

// PostWinnerInput publishes a draw result.
type PostWinnerInput struct {
	Draw    string         `json:"draw" binding:"required"`
	Numbers datatypes.JSON `json:"numbers" binding:"required"`
}
