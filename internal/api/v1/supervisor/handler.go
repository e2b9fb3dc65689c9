package supervisor

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/api/apierror"
	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

type Handler struct {
	tickets *services.TicketService
	winners *services.WinnerService
}

func NewHandler(tickets *services.TicketService, winners *services.WinnerService) *Handler {
	return &Handler{tickets: tickets, winners: winners}
}

// PendingTickets lists the caller tenant's tickets awaiting validation.
func (h *Handler) PendingTickets(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.TenantID == nil {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden"))
		return
	}

	tickets, err := h.tickets.PendingForTenant(*claims.TenantID)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Pending tickets retrieved", tickets))
}

// ValidateTicket validates or rejects one pending ticket of the caller's
// tenant. The transition is one-way; a processed ticket is immutable.
func (h *Handler) ValidateTicket(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid ticket id"))
		return
	}

	var input ValidateTicketInput
	if !utils.BindAndValidate(c, &input) {
		return
	}
	if !*input.Validated && input.RejectionReason == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("A rejection reason is required"))
		return
	}

	ticket, err := h.tickets.Process(claims, uint(id), *input.Validated, input.RejectionReason)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Ticket processed", ticket))
}

// Stats returns the tenant's reporting windows. Available to both
// supervisor levels; the route group pins the level.
func (h *Handler) Stats(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.TenantID == nil {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden"))
		return
	}

	windows, byDay, err := h.tickets.TenantStats(*claims.TenantID)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Stats retrieved", gin.H{
		"windows": windows,
		"by_day":  byDay,
	}))
}

// PostWinner publishes a draw result for the caller's tenant.
func (h *Handler) PostWinner(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden"))
		return
	}

	var input PostWinnerInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	winner, err := h.winners.Post(input.Draw, input.Numbers, claims.UserID, claims.TenantID)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Winner recorded", winner))
}
