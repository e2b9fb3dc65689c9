package agent

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/api/apierror"
	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

type Handler struct {
	tickets *services.TicketService
}

func NewHandler(tickets *services.TicketService) *Handler {
	return &Handler{tickets: tickets}
}

// CreateTicket records a sale for the calling agent.
func (h *Handler) CreateTicket(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	var input CreateTicketInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	ticket, err := h.tickets.Create(&account, services.CreateTicketInput{
		TicketNumber: input.TicketNumber,
		GameType:     input.GameType,
		Amount:       input.Amount,
		Numbers:      input.Numbers,
		ClientName:   input.ClientName,
		ClientPhone:  input.ClientPhone,
		DrawDate:     input.DrawDate,
		DeviceID:     input.DeviceID,
	})
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Ticket created", ticket))
}

// ListTickets returns the caller's tickets with pagination and page-local
// totals. Filters: status, game_type, start_date, end_date (RFC 3339 or
// date-only).
func (h *Handler) ListTickets(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	filter := services.ListFilter{
		Status:   c.Query("status"),
		GameType: c.Query("game_type"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	if v := c.Query("start_date"); v != "" {
		if t, err := parseDate(v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := parseDate(v); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndDate = &end
		}
	}

	tickets, total, totals, err := h.tickets.List(account.ID, filter)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tickets retrieved", gin.H{
		"tickets": tickets,
		"total":   total,
		"page":    filter.Page,
		"limit":   filter.Limit,
		"totals":  totals,
	}))
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
