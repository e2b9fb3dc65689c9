package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

// TicketService owns the sale workflow: creation by agents, validation or
// rejection by level-1 supervisors of the same tenant, listings and the
// read-side aggregates.
type TicketService struct {
	db        *gorm.DB
	stats     *StatsService
	terminals *TerminalService
}

func NewTicketService(db *gorm.DB, stats *StatsService) *TicketService {
	return &TicketService{db: db, stats: stats, terminals: NewTerminalService(db)}
}

// CreateTicketInput carries the agent-submitted sale fields.
type CreateTicketInput struct {
	TicketNumber string
	GameType     string
	Amount       float64
	Numbers      datatypes.JSON
	ClientName   string
	ClientPhone  string
	DrawDate     *time.Time
	DeviceID     string
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Create records a sale for the agent's tenant. The payout is derived from
// the fixed multiplier table; unknown game types are rejected. Daily limits
// apply only when configured on the agent (zero means unlimited). The insert
// and the stats update share one transaction, and the composite unique index
// on (ticket_number, tenant_id) backs the duplicate pre-check under
// concurrency.
func (s *TicketService) Create(agent *models.Account, input CreateTicketInput) (*models.Ticket, error) {
	if agent.TenantID == nil {
		return nil, ErrForbidden
	}
	tenantID := *agent.TenantID

	multiplier, ok := models.MultiplierFor(input.GameType)
	if !ok {
		return nil, ErrUnknownGameType
	}

	if err := s.checkDailyLimits(agent, input.Amount); err != nil {
		return nil, err
	}

	var count int64
	err := s.db.Model(&models.Ticket{}).
		Where("ticket_number = ? AND tenant_id = ?", input.TicketNumber, tenantID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateTicket
	}

	ticket := &models.Ticket{
		TicketNumber: input.TicketNumber,
		TenantID:     tenantID,
		AgentID:      agent.ID,
		GameType:     input.GameType,
		Amount:       input.Amount,
		PayoutAmount: input.Amount * multiplier,
		Numbers:      input.Numbers,
		ClientName:   input.ClientName,
		ClientPhone:  input.ClientPhone,
		DrawDate:     input.DrawDate,
		Status:       models.TicketPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateTicket
			}
			return err
		}
		return s.stats.OnTicketCreated(tx, tenantID, input.Amount)
	})
	if err != nil {
		return nil, err
	}

	if input.DeviceID != "" {
		// Heartbeat only; an unknown terminal must not fail the sale.
		_ = s.terminals.Heartbeat(input.DeviceID)
	}

	return ticket, nil
}

func (s *TicketService) checkDailyLimits(agent *models.Account, amount float64) error {
	if agent.MaxDailyTickets <= 0 && agent.MaxDailyAmount <= 0 {
		return nil
	}

	since := startOfDay(time.Now())
	var row struct {
		Count int64
		Total float64
	}
	err := s.db.Model(&models.Ticket{}).
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Where("agent_id = ? AND created_at >= ?", agent.ID, since).
		Scan(&row).Error
	if err != nil {
		return err
	}

	if agent.MaxDailyTickets > 0 && row.Count >= int64(agent.MaxDailyTickets) {
		return ErrLimitExceeded
	}
	if agent.MaxDailyAmount > 0 && row.Total+amount > agent.MaxDailyAmount {
		return ErrLimitExceeded
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// ListFilter narrows agent ticket listings.
type ListFilter struct {
	Status    string
	GameType  string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// PageTotals are computed over the returned page only, not globally.
type PageTotals struct {
	Amount float64 `json:"amount"`
	Payout float64 `json:"payout"`
	Profit float64 `json:"profit"`
}

// List returns the agent's tickets, newest first, with pagination metadata
// and page-local totals.
func (s *TicketService) List(agentID uint, filter ListFilter) ([]models.Ticket, int64, PageTotals, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	q := s.db.Model(&models.Ticket{}).Where("agent_id = ?", agentID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.GameType != "" {
		q = q.Where("game_type = ?", filter.GameType)
	}
	if filter.StartDate != nil {
		q = q.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, PageTotals{}, err
	}

	var tickets []models.Ticket
	offset := (filter.Page - 1) * filter.Limit
	if err := q.Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&tickets).Error; err != nil {
		return nil, 0, PageTotals{}, err
	}

	var totals PageTotals
	for _, t := range tickets {
		totals.Amount += t.Amount
		totals.Payout += t.PayoutAmount
	}
	totals.Profit = totals.Amount - totals.Payout

	return tickets, total, totals, nil
}

// PendingForTenant lists tickets awaiting validation for one tenant, oldest
// first.
func (s *TicketService) PendingForTenant(tenantID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.Where("tenant_id = ? AND status = ?", tenantID, models.TicketPending).
		Order("created_at ASC").Find(&tickets).Error
	return tickets, err
}

// Process validates or rejects a pending ticket. The caller must be a
// level-1 supervisor of the ticket's tenant. The status guard in the UPDATE
// makes the transition one-way even under concurrent calls.
func (s *TicketService) Process(supervisor *utils.Claims, ticketID uint, validated bool, rejectionReason string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if supervisor.TenantID == nil || ticket.TenantID != *supervisor.TenantID {
		return nil, ErrForbidden
	}
	if ticket.Status != models.TicketPending {
		return nil, ErrAlreadyProcessed
	}

	now := time.Now()
	status := models.TicketValidated
	if !validated {
		status = models.TicketRejected
	}
	updates := map[string]interface{}{
		"status":       status,
		"validated_by": supervisor.UserID,
		"validated_at": now,
	}
	if !validated {
		updates["rejection_reason"] = rejectionReason
	}

	result := s.db.Model(&models.Ticket{}).
		Where("id = ? AND status = ?", ticketID, models.TicketPending).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyProcessed
	}

	if err := s.db.First(&ticket, ticketID).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// StatusBreakdown aggregates tickets of one status within a window.
type StatusBreakdown struct {
	Status string  `json:"status"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
	Payout float64 `json:"payout"`
}

// DayBreakdown aggregates one calendar day.
type DayBreakdown struct {
	Day    string  `json:"day"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
	Payout float64 `json:"payout"`
}

// AgentBreakdown aggregates one agent within a window.
type AgentBreakdown struct {
	AgentID uint    `json:"agent_id"`
	Count   int64   `json:"count"`
	Amount  float64 `json:"amount"`
}

// WindowStats is the read-only projection for one reporting window.
type WindowStats struct {
	Window   string            `json:"window"`
	ByStatus []StatusBreakdown `json:"by_status"`
	ByAgent  []AgentBreakdown  `json:"by_agent"`
}

// TenantStats aggregates the tenant's tickets over the standard reporting
// windows, each window one grouped query. The 30-day daily breakdown is a
// single GROUP BY, never a per-day query loop.
func (s *TicketService) TenantStats(tenantID uint) (map[string]WindowStats, []DayBreakdown, error) {
	now := time.Now()
	windows := map[string]time.Time{
		"today":         startOfDay(now),
		"7d":            startOfDay(now.AddDate(0, 0, -6)),
		"30d":           startOfDay(now.AddDate(0, 0, -29)),
		"month_to_date": time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}

	out := make(map[string]WindowStats, len(windows))
	for name, since := range windows {
		var byStatus []StatusBreakdown
		err := s.db.Model(&models.Ticket{}).
			Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as amount, COALESCE(SUM(payout_amount), 0) as payout").
			Where("tenant_id = ? AND created_at >= ?", tenantID, since).
			Group("status").Scan(&byStatus).Error
		if err != nil {
			return nil, nil, err
		}

		var byAgent []AgentBreakdown
		err = s.db.Model(&models.Ticket{}).
			Select("agent_id, COUNT(*) as count, COALESCE(SUM(amount), 0) as amount").
			Where("tenant_id = ? AND created_at >= ?", tenantID, since).
			Group("agent_id").Scan(&byAgent).Error
		if err != nil {
			return nil, nil, err
		}

		out[name] = WindowStats{Window: name, ByStatus: byStatus, ByAgent: byAgent}
	}

	var byDay []DayBreakdown
	err := s.db.Model(&models.Ticket{}).
		Select("DATE(created_at) as day, COUNT(*) as count, COALESCE(SUM(amount), 0) as amount, COALESCE(SUM(payout_amount), 0) as payout").
		Where("tenant_id = ? AND created_at >= ?", tenantID, windows["30d"]).
		Group("DATE(created_at)").Order("day ASC").Scan(&byDay).Error
	if err != nil {
		return nil, nil, err
	}

	return out, byDay, nil
}
