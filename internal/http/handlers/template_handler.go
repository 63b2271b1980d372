// Template catalog HTTP handlers.
//
// This file exposes the pre-written message catalog consumed by the creation
// flow:
//   - GET /templates (optionally filtered by category)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

// ListTemplatesResponse wraps the template catalog.
type ListTemplatesResponse struct {
	Templates []domain.GiftTemplate `json:"templates"`
}

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List message templates
// @Description Returns the pre-written message catalog, optionally filtered by category.
// @Tags        Templates
// @Produce     json
//
// @Param       category  query  string  false  "Filter by category"  example(Heartfelt)
//
// @Success     200  {object}  handlers.ListTemplatesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	items, err := h.tmplSvc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items == nil {
		items = []domain.GiftTemplate{}
	}
	ok(c, http.StatusOK, ListTemplatesResponse{Templates: items})
}
