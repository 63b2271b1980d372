package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/domain"
	"github.com/tbourn/go-gift-backend/internal/repo"
)

type statsFns struct{}

func (statsFns) GiftStats(ctx context.Context, db *gorm.DB) (repo.GiftTotals, error) {
	return repo.GiftStats(ctx, db)
}

func seedCounters(t *testing.T, db *gorm.DB, pairs [][2]int64) {
	t.Helper()
	for i, p := range pairs {
		g := domain.Gift{
			ID: fmt.Sprintf("g%d", i), Slug: fmt.Sprintf("s%d", i),
			RecipientName: "r", SenderName: "s", Relation: "Friend", Message: "m",
			ViewsCount: p[0], LikesCount: p[1],
			CreatedAt: time.Now().UTC(),
		}
		if err := db.Create(&g).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestOverview_ZeroGuardOnEmptyTable(t *testing.T) {
	svc := &AnalyticsService{DB: newServiceDB(t), Repo: statsFns{}}

	got, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if got.TotalGifts != 0 || got.TotalViews != 0 || got.TotalLikes != 0 {
		t.Fatalf("expected zero totals: %+v", got)
	}
	if got.EngagementRate != 0 {
		t.Fatalf("engagement rate = %v, want 0 (zero-guard)", got.EngagementRate)
	}
}

func TestOverview_ZeroGuardWithLikesButNoViews(t *testing.T) {
	db := newServiceDB(t)
	// Likes without views cannot happen through the public flow, but the
	// zero-guard must still hold if it ever does.
	seedCounters(t, db, [][2]int64{{0, 3}})

	svc := &AnalyticsService{DB: db, Repo: statsFns{}}
	got, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if got.EngagementRate != 0 {
		t.Fatalf("engagement rate = %v, want 0", got.EngagementRate)
	}
}

func TestOverview_ComputesAggregateRate(t *testing.T) {
	db := newServiceDB(t)
	seedCounters(t, db, [][2]int64{{10, 2}, {40, 8}})

	svc := &AnalyticsService{DB: db, Repo: statsFns{}}
	got, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if got.TotalGifts != 2 || got.TotalViews != 50 || got.TotalLikes != 10 {
		t.Fatalf("totals: %+v", got)
	}
	if got.EngagementRate != 20 {
		t.Fatalf("engagement rate = %v, want 20", got.EngagementRate)
	}
}

func TestEngagementRate_PerRecord(t *testing.T) {
	cases := []struct {
		likes, views int64
		want         float64
	}{
		{2, 10, 20},
		{0, 0, 0},
		{5, 0, 0}, // zero-guard beats the nonzero numerator
		{1, 3, 100.0 / 3.0},
	}
	for _, tc := range cases {
		if got := EngagementRate(tc.likes, tc.views); got != tc.want {
			t.Fatalf("EngagementRate(%d, %d) = %v, want %v", tc.likes, tc.views, got, tc.want)
		}
	}
}
