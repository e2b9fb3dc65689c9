package master

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
	tenants   *services.TenantService
	codes     *services.AccessCodeService
	terminals *services.TerminalService
	winners   *services.WinnerService
}

func NewHandler(tenants *services.TenantService, codes *services.AccessCodeService, terminals *services.TerminalService, winners *services.WinnerService) *Handler {
	return &Handler{tenants: tenants, codes: codes, terminals: terminals, winners: winners}
}

// CreateSubsystem creates a tenant with its cascading admin account. The
// generated admin password is returned exactly once.
func (h *Handler) CreateSubsystem(c *gin.Context) {
	var input CreateSubsystemInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	result, err := h.tenants.Create(services.CreateTenantInput{
		Name:               input.Name,
		Subdomain:          input.Subdomain,
		Email:              input.Email,
		Phone:              input.Phone,
		MaxUsers:           input.MaxUsers,
		SubscriptionType:   input.SubscriptionType,
		SubscriptionMonths: input.SubscriptionMonths,
	})
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Subsystem created", gin.H{
		"subsystem":      result.Tenant,
		"admin":          result.Admin,
		"admin_password": result.AdminPassword,
	}))
}

func (h *Handler) ListSubsystems(c *gin.Context) {
	tenants, err := h.tenants.List()
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Subsystems retrieved", tenants))
}

func subsystemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid subsystem id"))
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) GetSubsystem(c *gin.Context) {
	id, ok := subsystemID(c)
	if !ok {
		return
	}
	tenant, err := h.tenants.Get(id)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Subsystem retrieved", tenant))
}

func (h *Handler) UpdateSubsystem(c *gin.Context) {
	id, ok := subsystemID(c)
	if !ok {
		return
	}
	var input UpdateSubsystemInput
	if !utils.BindAndValidate(c, &input) {
		return
	}
	tenant, err := h.tenants.Update(id, services.UpdateTenantInput{
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		MaxUsers:         input.MaxUsers,
		SubscriptionType: input.SubscriptionType,
	})
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Subsystem updated", tenant))
}

func (h *Handler) ActivateSubsystem(c *gin.Context) {
	id, ok := subsystemID(c)
	if !ok {
		return
	}
	tenant, err := h.tenants.SetActive(id, true)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Subsystem activated", tenant))
}

func (h *Handler) DeactivateSubsystem(c *gin.Context) {
	id, ok := subsystemID(c)
	if !ok {
		return
	}
	tenant, err := h.tenants.SetActive(id, false)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Subsystem deactivated", tenant))
}

// RenewSubsystem extends the subscription from its current expiry, past or
// not, and reactivates the tenant.
func (h *Handler) RenewSubsystem(c *gin.Context) {
	id, ok := subsystemID(c)
	if !ok {
		return
	}
	var input RenewInput
	if !utils.BindAndValidate(c, &input) {
		return
	}
	tenant, err := h.tenants.Renew(id, input.Months)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Subscription renewed", tenant))
}

// DashboardStats is the cross-tenant overview.
func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.tenants.Dashboard()
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Dashboard retrieved", stats))
}

// ConsolidatedReport sums per-tenant ticket volume over a date range with a
// global day-by-day breakdown. Defaults to the last 30 days.
func (h *Handler) ConsolidatedReport(c *gin.Context) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			start = t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	rows, byDay, err := h.tenants.ConsolidatedReport(start, end)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Report generated", gin.H{
		"subsystems": rows,
		"by_day":     byDay,
	}))
}

// GenerateCode issues a terminal access code.
func (h *Handler) GenerateCode(c *gin.Context) {
	var input GenerateCodeInput
	if !utils.BindAndValidate(c, &input) {
		return
	}
	code, err := h.codes.Generate(input.Type, input.TenantID)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Access code generated", code))
}

func (h *Handler) ListCodes(c *gin.Context) {
	codes, err := h.codes.List()
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Access codes retrieved", codes))
}

func (h *Handler) DeactivateCode(c *gin.Context) {
	if err := h.codes.Deactivate(c.Param("code")); err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Access code deactivated", nil))
}

// ListTerminals returns all terminals, most recently seen first.
func (h *Handler) ListTerminals(c *gin.Context) {
	terminals, err := h.terminals.List()
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Terminals retrieved", terminals))
}

// PostWinner publishes a global draw result.
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

	winner, err := h.winners.Post(input.Draw, input.Numbers, claims.UserID, nil)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Winner recorded", winner))
}
