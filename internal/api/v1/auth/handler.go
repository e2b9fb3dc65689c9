package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/api/apierror"
	"github.com/lanovatechnologie-a11y/Lotato/internal/models"
	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

type Handler struct {
	auth     *services.AuthService
	codes    *services.AccessCodeService
	denylist *services.DenylistService
	tokens   *utils.TokenManager
}

func NewHandler(auth *services.AuthService, codes *services.AccessCodeService, denylist *services.DenylistService, tokens *utils.TokenManager) *Handler {
	return &Handler{auth: auth, codes: codes, denylist: denylist, tokens: tokens}
}

func (h *Handler) login(c *gin.Context, role models.Role) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	result, err := h.auth.Login(role, input.Username, input.Password, input.Level)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in successfully", LoginResponse{
		Token:  result.Token,
		User:   result.Account,
		Tenant: result.Tenant,
	}))
}

// AgentLogin authenticates an agent.
func (h *Handler) AgentLogin(c *gin.Context) { h.login(c, models.RoleAgent) }

// SupervisorLogin authenticates a supervisor, optionally pinned to a level.
func (h *Handler) SupervisorLogin(c *gin.Context) { h.login(c, models.RoleSupervisor) }

// SubsystemAdminLogin authenticates a subsystem admin; the response carries
// the tenant snapshot.
func (h *Handler) SubsystemAdminLogin(c *gin.Context) { h.login(c, models.RoleSubsystemAdmin) }

// MasterLogin authenticates a master account.
func (h *Handler) MasterLogin(c *gin.Context) { h.login(c, models.RoleMaster) }

// InitMaster creates the first master account. Rejected once any master
// exists.
func (h *Handler) InitMaster(c *gin.Context) {
	var input InitMasterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	result, err := h.auth.InitMaster(input.Username, input.Password, input.Email, input.Company)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Master account initialized", LoginResponse{
		Token: result.Token,
		User:  result.Account,
	}))
}

// TerminalLogin redeems an access code for a point-of-sale device.
func (h *Handler) TerminalLogin(c *gin.Context) {
	var input TerminalLoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	code, terminal, err := h.codes.TerminalLogin(input.Code, input.DeviceID)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Terminal connected", gin.H{
		"code":     code,
		"terminal": terminal,
	}))
}

// Logout denylists the caller's token for its remaining lifetime.
func (h *Handler) Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(err.Error()))
		return
	}

	// Fall back to the full configured lifetime when the expiry cannot be
	// read, so the denylist entry never undershoots the token.
	remaining := h.tokens.TTL()
	if claims, err := h.tokens.Validate(tokenString); err == nil && claims.ExpiresAt != nil {
		remaining = time.Until(claims.ExpiresAt.Time)
	}

	if err := h.denylist.Add(c.Request.Context(), tokenString, remaining); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to revoke token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
