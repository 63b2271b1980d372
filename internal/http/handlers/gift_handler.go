// Gift HTTP handlers.
//
// This file exposes REST endpoints for gift page resources:
//   - POST   /gifts              (create, returns the share URL)
//   - GET    /gifts/{slug}       (fetch one page by slug)
//   - POST   /gifts/{slug}/view  (register a page view)
//   - POST   /gifts/{slug}/like  (register a like, optionally deduplicated)
//   - GET    /gifts              (list, paginated, newest first)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-gift-backend/internal/domain"
	"github.com/tbourn/go-gift-backend/internal/services"
	"github.com/tbourn/go-gift-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// GiftService defines gift lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type GiftService interface {
	// Create validates input, allocates a slug, and persists a new gift.
	Create(ctx context.Context, in services.CreateGiftInput) (*domain.Gift, error)
	// GetBySlug returns the gift published under slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Gift, error)
	// RegisterView records a page view and returns the new view count.
	RegisterView(ctx context.Context, slug string) (int64, error)
	// Like records a like (deduplicated by clientToken when non-empty)
	// and returns the new like count.
	Like(ctx context.Context, slug, clientToken string) (int64, error)
	// ListPage returns a page of gifts (newest first) and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Gift, int64, error)
	// GiftURL derives the shareable public URL for a slug.
	GiftURL(slug string) string
}

// AnalyticsService defines the aggregate engagement read path.
type AnalyticsService interface {
	// Overview returns totals across all gifts plus the engagement rate.
	Overview(ctx context.Context) (services.StatsOverview, error)
}

// TemplateService defines the message template catalog read path.
type TemplateService interface {
	// List returns the catalog, optionally filtered by category.
	List(ctx context.Context, category string) ([]domain.GiftTemplate, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for gifts, analytics, templates, uploads,
// and the seasonal status. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	giftSvc  GiftService
	statsSvc AnalyticsService
	tmplSvc  TemplateService

	storage        Uploader
	maxUploadBytes int64
}

// New constructs and returns a Handlers instance bound to the given services.
// storage may be nil, in which case the upload endpoint reports an internal
// error; maxUploadBytes <= 0 falls back to 5 MiB.
func New(giftSvc GiftService, statsSvc AnalyticsService, tmplSvc TemplateService, storage Uploader, maxUploadBytes int64) *Handlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 5 << 20
	}
	return &Handlers{
		giftSvc:        giftSvc,
		statsSvc:       statsSvc,
		tmplSvc:        tmplSvc,
		storage:        storage,
		maxUploadBytes: maxUploadBytes,
	}
}

//
// DTOs
//

// CreateGiftRequest is the JSON payload for creating a gift page.
type CreateGiftRequest struct {
	// RecipientName is who the page is addressed to (required).
	RecipientName string `json:"recipient_name" example:"Maria"`
	// SenderName is who created the page; defaults to "Someone special".
	SenderName string `json:"sender_name" example:"Alex"`
	// SenderEmail optionally enables like notifications for the sender.
	SenderEmail string `json:"sender_email" example:"alex@example.com"`
	// Relation describes the sender/recipient relationship; defaults to "Friend".
	Relation string `json:"relation" example:"sister"`
	// Message is the personalized text shown on the page (required).
	Message string `json:"message" example:"Merry Christmas!"`
	// ImageURL is an optional locator returned by the upload endpoint.
	ImageURL string `json:"image_url" example:"http://localhost:8080/uploads/ab12.jpg"`
}

// LikeGiftRequest optionally carries a client-generated token that makes the
// like safe to retry: a repeated token is counted once.
type LikeGiftRequest struct {
	ClientToken string `json:"client_token" example:"f3b9c2d1"`
}

// GiftResponse is a gift record enriched with its derived read-side fields.
type GiftResponse struct {
	domain.Gift
	// ShareURL is the public link for the gift page.
	ShareURL string `json:"share_url" example:"http://localhost:8080/gift/k7f2m9x1q8z3w6b4n0c5t"`
	// EngagementRate is likes as a percentage of views (0 when unviewed).
	EngagementRate float64 `json:"engagement_rate" example:"25"`
}

// ViewCountResponse reports the post-increment view counter.
type ViewCountResponse struct {
	ViewsCount int64 `json:"views_count" example:"42"`
}

// LikeCountResponse reports the post-increment like counter.
type LikeCountResponse struct {
	LikesCount int64 `json:"likes_count" example:"7"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListGiftsResponse wraps a page of gifts and pagination information.
type ListGiftsResponse struct {
	Gifts      []GiftResponse `json:"gifts"`
	Pagination Pagination     `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// toGiftResponse enriches a gift record with its share URL and engagement rate.
func (h *Handlers) toGiftResponse(g domain.Gift) GiftResponse {
	return GiftResponse{
		Gift:           g,
		ShareURL:       h.giftSvc.GiftURL(g.Slug),
		EngagementRate: services.EngagementRate(g.LikesCount, g.ViewsCount),
	}
}

//
// Handlers
//

// CreateGift godoc
// @ID          createGift
// @Summary     Create a gift page
// @Description Creates a personalized gift page and returns it with its shareable URL.
// @Tags        Gifts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateGiftRequest  true  "Create gift payload"
//
// @Success     201  {object}  handlers.GiftResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /gifts [post]
func (h *Handlers) CreateGift(c *gin.Context) {
	var req CreateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	var missing []string
	if strings.TrimSpace(req.RecipientName) == "" {
		missing = append(missing, "recipient_name")
	}
	if strings.TrimSpace(req.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		failFields(c, http.StatusBadRequest, ErrCodeValidationFailed,
			"required fields missing", missing)
		return
	}

	g, err := h.giftSvc.Create(c.Request.Context(), services.CreateGiftInput{
		RecipientName: req.RecipientName,
		SenderName:    req.SenderName,
		SenderEmail:   req.SenderEmail,
		Relation:      req.Relation,
		Message:       req.Message,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecipientRequired):
			failFields(c, http.StatusBadRequest, ErrCodeValidationFailed,
				"required fields missing", []string{"recipient_name"})
		case errors.Is(err, services.ErrMessageRequired):
			failFields(c, http.StatusBadRequest, ErrCodeValidationFailed,
				"required fields missing", []string{"message"})
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, h.toGiftResponse(*g))
}

// GetGift godoc
// @ID          getGift
// @Summary     Fetch a gift page by slug
// @Description Returns the gift published under the given slug.
// @Tags        Gifts
// @Produce     json
//
// @Param       slug  path  string  true  "Gift slug"  example(k7f2m9x1q8z3w6b4n0c5t)
//
// @Success     200  {object}  handlers.GiftResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Gift not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /gifts/{slug} [get]
func (h *Handlers) GetGift(c *gin.Context) {
	g, err := h.giftSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrGiftNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "gift not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, h.toGiftResponse(*g))
}

// RegisterView godoc
// @ID          registerGiftView
// @Summary     Register a page view
// @Description Atomically increments the view counter and returns the new value.
// @Tags        Gifts
// @Produce     json
//
// @Param       slug  path  string  true  "Gift slug"  example(k7f2m9x1q8z3w6b4n0c5t)
//
// @Success     200  {object}  handlers.ViewCountResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Gift not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /gifts/{slug}/view [post]
func (h *Handlers) RegisterView(c *gin.Context) {
	count, err := h.giftSvc.RegisterView(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrGiftNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "gift not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, ViewCountResponse{ViewsCount: count})
}

// LikeGift godoc
// @ID          likeGift
// @Summary     Like a gift page
// @Description Atomically increments the like counter and returns the new value.
// @Description When the optional client_token was already counted for this gift the
// @Description call is a no-op returning the current count. A sender with a stored
// @Description email is notified asynchronously.
// @Tags        Gifts
// @Accept      json
// @Produce     json
//
// @Param       slug  path  string                    true   "Gift slug"  example(k7f2m9x1q8z3w6b4n0c5t)
// @Param       body  body  handlers.LikeGiftRequest  false  "Optional dedup token"
//
// @Success     200  {object}  handlers.LikeCountResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Gift not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /gifts/{slug}/like [post]
func (h *Handlers) LikeGift(c *gin.Context) {
	// Body is optional; a missing or empty body means an untokenized like.
	var req LikeGiftRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
			return
		}
	}

	count, err := h.giftSvc.Like(c.Request.Context(), c.Param("slug"), req.ClientToken)
	if err != nil {
		if errors.Is(err, services.ErrGiftNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "gift not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, LikeCountResponse{LikesCount: count})
}

// ListGifts godoc
// @ID          listGifts
// @Summary     List gift pages (paginated)
// @Description Returns a page of gift pages, newest first, with derived engagement rates.
// @Tags        Gifts
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListGiftsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /gifts [get]
func (h *Handlers) ListGifts(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.giftSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	gifts := make([]GiftResponse, 0, len(items))
	for _, g := range items {
		gifts = append(gifts, h.toGiftResponse(g))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListGiftsResponse{
		Gifts: gifts,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
