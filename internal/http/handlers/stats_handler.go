// Analytics HTTP handlers.
//
// This file exposes the read-only aggregate engagement endpoint:
//   - GET /gifts/stats (totals across all gifts plus engagement rate)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GiftStats godoc
// @ID          giftStats
// @Summary     Aggregate engagement statistics
// @Description Returns totals across all gift pages and the likes-to-views engagement rate.
// @Tags        Analytics
// @Produce     json
//
// @Success     200  {object}  services.StatsOverview
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /gifts/stats [get]
func (h *Handlers) GiftStats(c *gin.Context) {
	overview, err := h.statsSvc.Overview(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, overview)
}
