package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/api/apierror"
	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

type Handler struct {
	accounts *services.AccountService
	stats    *services.StatsService
	tickets  *services.TicketService
}

func NewHandler(accounts *services.AccountService, stats *services.StatsService, tickets *services.TicketService) *Handler {
	return &Handler{accounts: accounts, stats: stats, tickets: tickets}
}

func tenantID(c *gin.Context) (uint, bool) {
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.TenantID == nil {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden"))
		return 0, false
	}
	return *claims.TenantID, true
}

// Stats returns the tenant counters plus the ticket reporting windows.
func (h *Handler) Stats(c *gin.Context) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	counters, err := h.stats.GetForTenant(id)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	windows, byDay, err := h.tickets.TenantStats(id)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Stats retrieved", gin.H{
		"counters": counters,
		"windows":  windows,
		"by_day":   byDay,
	}))
}

func (h *Handler) createUser(c *gin.Context, role models.Role) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	var input CreateUserInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	account, err := h.accounts.Create(id, role, services.CreateAccountInput{
		Username:        input.Username,
		Password:        input.Password,
		FullName:        input.FullName,
		Email:           input.Email,
		Phone:           input.Phone,
		SupervisorLevel: input.SupervisorLevel,
		CommissionRate:  input.CommissionRate,
		MaxDailyTickets: input.MaxDailyTickets,
		MaxDailyAmount:  input.MaxDailyAmount,
	})
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("User created", account))
}

func (h *Handler) listUsers(c *gin.Context, role models.Role) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	accounts, err := h.accounts.ListByRole(id, role)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved", accounts))
}

func (h *Handler) CreateAgent(c *gin.Context)      { h.createUser(c, models.RoleAgent) }
func (h *Handler) ListAgents(c *gin.Context)       { h.listUsers(c, models.RoleAgent) }
func (h *Handler) CreateSupervisor(c *gin.Context) { h.createUser(c, models.RoleSupervisor) }
func (h *Handler) ListSupervisors(c *gin.Context)  { h.listUsers(c, models.RoleSupervisor) }

func (h *Handler) setActive(c *gin.Context, active bool) {
	id, ok := tenantID(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid user id"))
		return
	}

	account, err := h.accounts.SetActive(id, uint(userID), active)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	message := "User activated"
	if !active {
		message = "User deactivated"
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(message, account))
}

// ActivateUser re-enables a tenant account.
func (h *Handler) ActivateUser(c *gin.Context) { h.setActive(c, true) }

// DeactivateUser disables a tenant account; deactivation is the terminal
// state, accounts are never hard-deleted.
func (h *Handler) DeactivateUser(c *gin.Context) { h.setActive(c, false) }
