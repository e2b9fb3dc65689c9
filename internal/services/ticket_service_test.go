package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

func newTicketEnv(t *testing.T) (*gorm.DB, *TicketService, *models.Tenant, *models.Account) {
	t.Helper()
	db := setupTestDB(t)
	svc := NewTicketService(db, NewStatsService(db))
	tenant := createTestTenant(t, db, "acme", true)
	agent := createTestAccount(t, db, "agent1", "secret123", models.RoleAgent, &tenant.ID, true)
	return db, svc, tenant, agent
}

func ticketInput(number, gameType string, amount float64) CreateTicketInput {
	return CreateTicketInput{
		TicketNumber: number,
		GameType:     gameType,
		Amount:       amount,
		Numbers:      datatypes.JSON([]byte(`["12","34"]`)),
	}
}

func supervisorClaims(account *models.Account) *utils.Claims {
	return &utils.Claims{
		UserID:          account.ID,
		Role:            account.Role,
		TenantID:        account.TenantID,
		SupervisorLevel: account.SupervisorLevel,
	}
}

func TestCreateTicketPayouts(t *testing.T) {
	_, svc, _, agent := newTicketEnv(t)

	tests := []struct {
		gameType string
		amount   float64
		payout   float64
	}{
		{"borlette", 100, 7000},
		{"lotto-3", 10, 5000},
		{"lotto-4", 2, 10000},
		{"lotto-5", 1, 75000},
		{"grap", 50, 350},
		{"marriage", 20, 700},
	}

	for i, tt := range tests {
		t.Run(tt.gameType, func(t *testing.T) {
			ticket, err := svc.Create(agent, ticketInput(fmt.Sprintf("T%d", i), tt.gameType, tt.amount))
			assert.NoError(t, err)
			assert.Equal(t, tt.payout, ticket.PayoutAmount)
			assert.Equal(t, models.TicketPending, ticket.Status)
		})
	}
}

func TestCreateTicketUnknownGameType(t *testing.T) {
	_, svc, _, agent := newTicketEnv(t)

	_, err := svc.Create(agent, ticketInput("T1", "keno", 100))
	assert.ErrorIs(t, err, ErrUnknownGameType)
}

func TestCreateTicketDuplicateNumber(t *testing.T) {
	db, svc, _, agent := newTicketEnv(t)

	_, err := svc.Create(agent, ticketInput("T1", "borlette", 100))
	assert.NoError(t, err)

	_, err = svc.Create(agent, ticketInput("T1", "borlette", 100))
	assert.ErrorIs(t, err, ErrDuplicateTicket)

	// Same number under a different tenant is allowed.
	other := createTestTenant(t, db, "other", true)
	otherAgent := createTestAccount(t, db, "agent2", "secret123", models.RoleAgent, &other.ID, true)
	_, err = svc.Create(otherAgent, ticketInput("T1", "borlette", 100))
	assert.NoError(t, err)
}

func TestCreateTicketDailyLimits(t *testing.T) {
	db, svc, tenant, _ := newTicketEnv(t)

	limited := createTestAccount(t, db, "limited", "secret123", models.RoleAgent, &tenant.ID, true)
	err := db.Model(limited).Updates(map[string]interface{}{
		"max_daily_tickets": 2,
		"max_daily_amount":  500.0,
	}).Error
	assert.NoError(t, err)
	limited.MaxDailyTickets = 2
	limited.MaxDailyAmount = 500

	_, err = svc.Create(limited, ticketInput("L1", "borlette", 100))
	assert.NoError(t, err)
	_, err = svc.Create(limited, ticketInput("L2", "borlette", 100))
	assert.NoError(t, err)

	// Third ticket breaches the count limit.
	_, err = svc.Create(limited, ticketInput("L3", "borlette", 100))
	assert.ErrorIs(t, err, ErrLimitExceeded)

	// An unlimited agent is unaffected.
	free := createTestAccount(t, db, "free", "secret123", models.RoleAgent, &tenant.ID, true)
	for i := 0; i < 5; i++ {
		_, err = svc.Create(free, ticketInput(fmt.Sprintf("F%d", i), "borlette", 100))
		assert.NoError(t, err)
	}
}

func TestCreateTicketDailyAmountLimit(t *testing.T) {
	db, svc, tenant, _ := newTicketEnv(t)

	limited := createTestAccount(t, db, "limited", "secret123", models.RoleAgent, &tenant.ID, true)
	limited.MaxDailyAmount = 250
	_ = db.Model(limited).Update("max_daily_amount", 250.0).Error

	_, err := svc.Create(limited, ticketInput("A1", "borlette", 200))
	assert.NoError(t, err)

	// 200 + 100 > 250 breaches the amount limit.
	_, err = svc.Create(limited, ticketInput("A2", "borlette", 100))
	assert.ErrorIs(t, err, ErrLimitExceeded)

	// A smaller ticket still fits.
	_, err = svc.Create(limited, ticketInput("A3", "borlette", 50))
	assert.NoError(t, err)
}

func TestCreateTicketHeartbeat(t *testing.T) {
	db, svc, tenant, agent := newTicketEnv(t)

	stale := time.Now().Add(-10 * time.Minute)
	terminal := &models.Terminal{DeviceID: "device-1", TenantID: &tenant.ID, LastSeen: stale}
	assert.NoError(t, db.Create(terminal).Error)

	input := ticketInput("T1", "borlette", 100)
	input.DeviceID = "device-1"
	_, err := svc.Create(agent, input)
	assert.NoError(t, err)

	// The sale refreshes the terminal's last_seen.
	var reloaded models.Terminal
	assert.NoError(t, db.First(&reloaded, terminal.ID).Error)
	assert.True(t, reloaded.LastSeen.After(stale))

	count, err := NewTerminalService(db).ActiveCount()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// An unknown device never fails the sale.
	input = ticketInput("T2", "borlette", 100)
	input.DeviceID = "ghost-device"
	_, err = svc.Create(agent, input)
	assert.NoError(t, err)
}

func TestProcessTicketValidate(t *testing.T) {
	db, svc, tenant, agent := newTicketEnv(t)
	sup := createTestSupervisor(t, db, "sup1", tenant.ID, 1)

	ticket, err := svc.Create(agent, ticketInput("T1", "borlette", 100))
	assert.NoError(t, err)

	processed, err := svc.Process(supervisorClaims(sup), ticket.ID, true, "")
	assert.NoError(t, err)
	assert.Equal(t, models.TicketValidated, processed.Status)
	assert.Equal(t, sup.ID, *processed.ValidatedBy)
	assert.NotNil(t, processed.ValidatedAt)

	// The transition is one-way: any further call fails.
	_, err = svc.Process(supervisorClaims(sup), ticket.ID, true, "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	_, err = svc.Process(supervisorClaims(sup), ticket.ID, false, "late")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestProcessTicketReject(t *testing.T) {
	db, svc, tenant, agent := newTicketEnv(t)
	sup := createTestSupervisor(t, db, "sup1", tenant.ID, 1)

	ticket, err := svc.Create(agent, ticketInput("T1", "borlette", 100))
	assert.NoError(t, err)

	processed, err := svc.Process(supervisorClaims(sup), ticket.ID, false, "suspicious bet")
	assert.NoError(t, err)
	assert.Equal(t, models.TicketRejected, processed.Status)
	assert.Equal(t, "suspicious bet", processed.RejectionReason)
}

func TestProcessTicketTenantIsolation(t *testing.T) {
	db, svc, _, agent := newTicketEnv(t)

	other := createTestTenant(t, db, "other", true)
	foreignSup := createTestSupervisor(t, db, "sup-b", other.ID, 1)

	ticket, err := svc.Create(agent, ticketInput("T1", "borlette", 100))
	assert.NoError(t, err)

	// A supervisor from another tenant can never touch the ticket.
	_, err = svc.Process(supervisorClaims(foreignSup), ticket.ID, true, "")
	assert.ErrorIs(t, err, ErrForbidden)

	var reloaded models.Ticket
	assert.NoError(t, db.First(&reloaded, ticket.ID).Error)
	assert.Equal(t, models.TicketPending, reloaded.Status)
}

func TestProcessTicketNotFound(t *testing.T) {
	db, svc, tenant, _ := newTicketEnv(t)
	sup := createTestSupervisor(t, db, "sup1", tenant.ID, 1)

	_, err := svc.Process(supervisorClaims(sup), 9999, true, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPendingForTenant(t *testing.T) {
	db, svc, tenant, agent := newTicketEnv(t)
	sup := createTestSupervisor(t, db, "sup1", tenant.ID, 1)

	t1, _ := svc.Create(agent, ticketInput("T1", "borlette", 100))
	t2, _ := svc.Create(agent, ticketInput("T2", "borlette", 100))
	_, err := svc.Process(supervisorClaims(sup), t1.ID, true, "")
	assert.NoError(t, err)

	pending, err := svc.PendingForTenant(tenant.ID)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, t2.ID, pending[0].ID)
}

func TestListTicketsPageTotals(t *testing.T) {
	_, svc, _, agent := newTicketEnv(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(agent, ticketInput(fmt.Sprintf("T%d", i), "grap", 100))
		assert.NoError(t, err)
	}

	tickets, total, totals, err := svc.List(agent.ID, ListFilter{Page: 1, Limit: 2})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, tickets, 2)

	// Totals cover the returned page only, not the full result set.
	assert.Equal(t, 200.0, totals.Amount)
	assert.Equal(t, 1400.0, totals.Payout)
	assert.Equal(t, -1200.0, totals.Profit)
}

func TestListTicketsStatusFilter(t *testing.T) {
	db, svc, tenant, agent := newTicketEnv(t)
	sup := createTestSupervisor(t, db, "sup1", tenant.ID, 1)

	t1, _ := svc.Create(agent, ticketInput("T1", "borlette", 100))
	_, _ = svc.Create(agent, ticketInput("T2", "borlette", 100))
	_, err := svc.Process(supervisorClaims(sup), t1.ID, true, "")
	assert.NoError(t, err)

	tickets, total, _, err := svc.List(agent.ID, ListFilter{Status: string(models.TicketValidated)})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, t1.ID, tickets[0].ID)
}

func TestStatsMonotonicity(t *testing.T) {
	db, svc, tenant, agent := newTicketEnv(t)
	stats := NewStatsService(db)

	prevTickets, prevSales := 0, 0.0
	for i := 0; i < 4; i++ {
		_, err := svc.Create(agent, ticketInput(fmt.Sprintf("T%d", i), "borlette", 50))
		assert.NoError(t, err)

		row, err := stats.GetForTenant(tenant.ID)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, row.TicketsTotal, prevTickets)
		assert.GreaterOrEqual(t, row.SalesTotal, prevSales)
		prevTickets, prevSales = row.TicketsTotal, row.SalesTotal
	}
	assert.Equal(t, 4, prevTickets)
	assert.Equal(t, 200.0, prevSales)
}

func TestTenantStatsWindows(t *testing.T) {
	db, svc, tenant, agent := newTicketEnv(t)
	sup := createTestSupervisor(t, db, "sup1", tenant.ID, 1)

	t1, _ := svc.Create(agent, ticketInput("T1", "borlette", 100))
	_, _ = svc.Create(agent, ticketInput("T2", "borlette", 200))
	_, err := svc.Process(supervisorClaims(sup), t1.ID, true, "")
	assert.NoError(t, err)

	windows, byDay, err := svc.TenantStats(tenant.ID)
	assert.NoError(t, err)

	today := windows["today"]
	counts := map[string]int64{}
	for _, row := range today.ByStatus {
		counts[row.Status] = row.Count
	}
	assert.Equal(t, int64(1), counts[string(models.TicketValidated)])
	assert.Equal(t, int64(1), counts[string(models.TicketPending)])
	assert.Len(t, today.ByAgent, 1)
	assert.Equal(t, int64(2), today.ByAgent[0].Count)

	assert.Len(t, byDay, 1)
	assert.Equal(t, int64(2), byDay[0].Count)
	assert.Equal(t, 300.0, byDay[0].Amount)
}
