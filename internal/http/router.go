// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/assets"
	"github.com/tbourn/go-gift-backend/internal/config"
	"github.com/tbourn/go-gift-backend/internal/domain"
	"github.com/tbourn/go-gift-backend/internal/http/handlers"
	"github.com/tbourn/go-gift-backend/internal/http/middleware"
	"github.com/tbourn/go-gift-backend/internal/notify"
	"github.com/tbourn/go-gift-backend/internal/repo"
	"github.com/tbourn/go-gift-backend/internal/services"
	"github.com/tbourn/go-gift-backend/internal/slug"
)

// giftRepoShim adapts the repository free functions to the services.GiftRepo
// interface expected by the GiftService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type giftRepoShim struct{}

// CreateGift proxies repo.CreateGift.
func (giftRepoShim) CreateGift(ctx context.Context, db *gorm.DB, g *domain.Gift) (*domain.Gift, error) {
	return repo.CreateGift(ctx, db, g)
}

// GetGiftBySlug proxies repo.GetGiftBySlug.
func (giftRepoShim) GetGiftBySlug(ctx context.Context, db *gorm.DB, s string) (*domain.Gift, error) {
	return repo.GetGiftBySlug(ctx, db, s)
}

// ListGifts proxies repo.ListGifts.
func (giftRepoShim) ListGifts(ctx context.Context, db *gorm.DB) ([]domain.Gift, error) {
	return repo.ListGifts(ctx, db)
}

// CountGifts proxies repo.CountGifts (pagination support).
func (giftRepoShim) CountGifts(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountGifts(ctx, db)
}

// ListGiftsPage proxies repo.ListGiftsPage (pagination support).
func (giftRepoShim) ListGiftsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Gift, error) {
	return repo.ListGiftsPage(ctx, db, offset, limit)
}

// IncrementViews proxies repo.IncrementViews.
func (giftRepoShim) IncrementViews(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return repo.IncrementViews(ctx, db, id)
}

// IncrementLikes proxies repo.IncrementLikes.
func (giftRepoShim) IncrementLikes(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return repo.IncrementLikes(ctx, db, id)
}

// CreateLikeToken proxies repo.CreateLikeToken.
func (giftRepoShim) CreateLikeToken(ctx context.Context, db *gorm.DB, giftID, token string) error {
	return repo.CreateLikeToken(ctx, db, giftID, token)
}

// statsRepoShim adapts the aggregate query to services.StatsRepo.
type statsRepoShim struct{}

// GiftStats proxies repo.GiftStats.
func (statsRepoShim) GiftStats(ctx context.Context, db *gorm.DB) (repo.GiftTotals, error) {
	return repo.GiftStats(ctx, db)
}

// templateRepoShim adapts the catalog query to services.TemplateRepo.
type templateRepoShim struct{}

// ListTemplates proxies repo.ListTemplates.
func (templateRepoShim) ListTemplates(ctx context.Context, db *gorm.DB, category string) ([]domain.GiftTemplate, error) {
	return repo.ListTemplates(ctx, db, category)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), compression, rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured request logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store assets.Storage, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit, sized to admit the largest allowed upload
	//    plus multipart overhead. The upload handler enforces the exact cap.
	limit := cfg.MaxUploadBytes + 64<<10
	if limit < 1<<20 {
		limit = 1 << 20
	}
	r.Use(limitBody(limit))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Uploaded gift images are served straight from the upload directory.
	r.Static("/uploads", cfg.UploadDir)

	// Dependency injection: services ← repo/db/transport
	var notifier services.Notifier
	if cfg.Email.Enabled {
		notifier = &notify.LikeNotifier{Mailer: &notify.HTTPMailer{
			BaseURL: cfg.Email.Endpoint,
			APIKey:  cfg.Email.APIKey,
			From:    cfg.Email.From,
		}}
	}

	giftSvc := services.NewGiftService(db, giftRepoShim{}, slug.New(cfg.SlugLength), notifier, cfg.PublicBaseURL)
	if cfg.SlugMaxAttempts > 0 {
		giftSvc.MaxSlugAttempts = cfg.SlugMaxAttempts
	}
	statsSvc := &services.AnalyticsService{DB: db, Repo: statsRepoShim{}}
	tmplSvc := &services.TemplateService{DB: db, Repo: templateRepoShim{}}
	h := handlers.New(giftSvc, statsSvc, tmplSvc, store, cfg.MaxUploadBytes)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Gifts
		api.POST("/gifts", h.CreateGift)
		api.GET("/gifts", h.ListGifts)
		api.GET("/gifts/stats", h.GiftStats)
		api.GET("/gifts/:slug", h.GetGift)
		api.POST("/gifts/:slug/view", h.RegisterView)
		api.POST("/gifts/:slug/like", h.LikeGift)

		// Templates
		api.GET("/templates", h.ListTemplates)

		// Uploads
		api.POST("/uploads", h.UploadImage)

		// Season
		api.GET("/season", h.SeasonStatus)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
