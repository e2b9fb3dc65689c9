package apierror

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
	"github.com/lanovatechnologie-a11y/Lotato/pkg/logger"
)

// Respond maps a service failure to the HTTP taxonomy and writes the error
// envelope. Anything outside the known classes is an upstream store error:
// logged, returned as a generic 500, with the raw message exposed only
// outside release mode.
func Respond(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(err.Error()))
	case errors.Is(err, services.ErrTenantDisabled),
		errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, utils.NewErrorResponse(err.Error()))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(err.Error()))
	case errors.Is(err, services.ErrAlreadyInitialized),
		errors.Is(err, services.ErrAlreadyProcessed),
		errors.Is(err, services.ErrDuplicateTicket),
		errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateSubdomain),
		errors.Is(err, services.ErrUnknownGameType),
		errors.Is(err, services.ErrLimitExceeded),
		errors.Is(err, services.ErrMaxUsersReached),
		errors.Is(err, services.ErrInvalidSubdomain):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
	default:
		if logger.Log != nil {
			logger.Log.Error("store error: " + err.Error())
		}
		message := "Internal server error"
		if gin.Mode() != gin.ReleaseMode {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(message))
	}
}
