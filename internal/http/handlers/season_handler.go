// Seasonal status HTTP handler.
//
// This file exposes the landing-page countdown endpoint:
//   - GET /season (current holiday phase, label, and countdown)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-gift-backend/internal/season"
)

// seasonNow is the clock used by the season endpoint; tests may override it.
var seasonNow = time.Now

// SeasonStatus godoc
// @ID          seasonStatus
// @Summary     Current holiday phase and countdown
// @Description Returns the current seasonal phase (pre-christmas, christmas,
// @Description pre-newyear) with a display label and countdown to the next target.
// @Tags        Season
// @Produce     json
//
// @Success     200  {object}  season.Status
// @Router      /season [get]
func (h *Handlers) SeasonStatus(c *gin.Context) {
	ok(c, http.StatusOK, season.Current(seasonNow()))
}
