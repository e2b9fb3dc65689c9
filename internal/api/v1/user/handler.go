package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/api/apierror"
	"github.com/lanovatechnologie-a11y/Lotato/internal/middleware"
	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

// Handler serves the role-agnostic profile endpoints; it dispatches on the
// caller identity resolved by the auth middleware, not on a role path.
type Handler struct {
	auth *services.AuthService
}

func NewHandler(auth *services.AuthService) *Handler {
	return &Handler{auth: auth}
}

// Profile returns the caller's sanitized account.
func (h *Handler) Profile(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	account, err := h.auth.GetProfile(claims.UserID)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile retrieved", account))
}

// UpdateProfile mutates the owner-editable fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	var input UpdateProfileInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	account, err := h.auth.UpdateProfile(claims.UserID, services.ProfileUpdate{
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
	})
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile updated", account))
}

// ChangePassword replaces the caller's password after verifying the current
// one.
func (h *Handler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	var input ChangePasswordInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	if err := h.auth.ChangePassword(claims.UserID, input.CurrentPassword, input.NewPassword); err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Password changed successfully", nil))
}
