package admin

// CreateUserInput is the admin-submitted payload for a new agent or
// supervisor inside the admin's tenant.
type CreateUserInput struct {
	Username        string  `json:"username" binding:"required,min=3"`
	Password        string  `json:"password" binding:"required,min=8"`
	FullName        string  `json:"full_name" binding:"required"`
	Email           string  `json:"email" binding:"omitempty,email"`
	Phone           string  `json:"phone"`
	SupervisorLevel int     `json:"supervisor_level" binding:"omitempty,oneof=1 2"`
	CommissionRate  float64 `json:"commission_rate" binding:"omitempty,gte=0,lte=100"`
	MaxDailyTickets int     `json:"max_daily_tickets" binding:"omitempty,gte=0"`
	MaxDailyAmount  float64 `json:"max_daily_amount" binding:"omitempty,gte=0"`
}
