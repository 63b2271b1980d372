package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/assets"
	"github.com/tbourn/go-gift-backend/internal/config"
	"github.com/tbourn/go-gift-backend/internal/repo"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := repo.OpenSQLite(filepath.Join(dir, "gifts.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := repo.SeedTemplates(context.Background(), db); err != nil {
		t.Fatalf("seed templates: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.UploadDir = filepath.Join(dir, "uploads")
	// Generous limits so sequential test requests never trip the limiter.
	cfg.RateRPS = 1000
	cfg.RateBurst = 1000

	store, err := assets.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")
	if err != nil {
		t.Fatalf("storage: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, db, store, cfg)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRouter_UnknownRouteReturnsEnvelope(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"not_found"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodDelete, "/health", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"code":"method_not_allowed"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRouter_GiftLifecycle(t *testing.T) {
	r, _ := newTestServer(t)

	// Create.
	w := doJSON(t, r, http.MethodPost, "/api/v1/gifts",
		`{"recipient_name":"Maria","sender_name":"Alex","relation":"sister","message":"Merry Christmas!"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		Slug     string `json:"slug"`
		Relation string `json:"relation"`
		ShareURL string `json:"share_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if len(created.Slug) != 21 {
		t.Fatalf("slug = %q", created.Slug)
	}
	if created.Relation != "Sister" {
		t.Fatalf("relation = %q, want title-cased", created.Relation)
	}
	if !strings.HasSuffix(created.ShareURL, "/gift/"+created.Slug) {
		t.Fatalf("share_url = %q", created.ShareURL)
	}

	// Fetch.
	w = doJSON(t, r, http.MethodGet, "/api/v1/gifts/"+created.Slug, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// View twice.
	for want := int64(1); want <= 2; want++ {
		w = doJSON(t, r, http.MethodPost, "/api/v1/gifts/"+created.Slug+"/view", "")
		if w.Code != http.StatusOK {
			t.Fatalf("view status = %d", w.Code)
		}
		var vc struct {
			ViewsCount int64 `json:"views_count"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &vc); err != nil {
			t.Fatalf("decode view: %v", err)
		}
		if vc.ViewsCount != want {
			t.Fatalf("views_count = %d, want %d", vc.ViewsCount, want)
		}
	}

	// Like with a token, then replay the same token.
	for i := 0; i < 2; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/v1/gifts/"+created.Slug+"/like",
			`{"client_token":"tok-1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("like status = %d", w.Code)
		}
		var lc struct {
			LikesCount int64 `json:"likes_count"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &lc); err != nil {
			t.Fatalf("decode like: %v", err)
		}
		if lc.LikesCount != 1 {
			t.Fatalf("likes_count = %d, want 1 (replay must not double count)", lc.LikesCount)
		}
	}

	// Aggregate stats reflect the traffic.
	w = doJSON(t, r, http.MethodGet, "/api/v1/gifts/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats struct {
		TotalGifts     int64   `json:"total_gifts"`
		TotalViews     int64   `json:"total_views"`
		TotalLikes     int64   `json:"total_likes"`
		EngagementRate float64 `json:"engagement_rate"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalGifts != 1 || stats.TotalViews != 2 || stats.TotalLikes != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.EngagementRate != 50 {
		t.Fatalf("engagement_rate = %v", stats.EngagementRate)
	}

	// List.
	w = doJSON(t, r, http.MethodGet, "/api/v1/gifts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), created.Slug) {
		t.Fatalf("list body missing slug: %s", w.Body.String())
	}
}

func TestRouter_GiftNotFound(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/gifts/doesnotexist12345678x", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestRouter_TemplatesSeeded(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/templates", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Templates []struct {
			Category        string `json:"category"`
			MessageTemplate string `json:"message_template"`
		} `json:"templates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Templates) == 0 {
		t.Fatal("expected seeded templates")
	}
	if !strings.Contains(resp.Templates[0].MessageTemplate, "{name}") {
		t.Fatalf("template = %+v", resp.Templates[0])
	}
}

func TestRouter_SeasonEndpoint(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/season", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"phase"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestRouter_ValidationErrorShape(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/gifts", `{"sender_name":"Alex"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"validation_failed"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"missing_fields"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}
