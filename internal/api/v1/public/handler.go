package public

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lanovatechnologie-a11y/Lotato/internal/api/apierror"
	"github.com/lanovatechnologie-a11y/Lotato/internal/services"
	"github.com/lanovatechnologie-a11y/Lotato/internal/utils"
)

// Handler serves the unauthenticated read-only endpoints.
type Handler struct {
	winners *services.WinnerService
}

func NewHandler(winners *services.WinnerService) *Handler {
	return &Handler{winners: winners}
}

// LatestWinners lists the most recent draw results.
func (h *Handler) LatestWinners(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	winners, err := h.winners.Latest(limit)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Winners retrieved", winners))
}
