// Package services – AnalyticsService
//
// This file implements the aggregate analytics read path: totals across all
// gifts plus the likes-to-views engagement rate. The computation is pure and
// derived; it never mutates state. Both the aggregate and the per-record
// rate share the same zero-guard convention: a rate over zero views is 0,
// never NaN or an error.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/repo"
)

// StatsOverview is the aggregate engagement summary for the analytics view.
type StatsOverview struct {
	TotalGifts     int64   `json:"total_gifts"`
	TotalViews     int64   `json:"total_views"`
	TotalLikes     int64   `json:"total_likes"`
	EngagementRate float64 `json:"engagement_rate"`
}

// StatsRepo defines the aggregate query contract required by AnalyticsService.
type StatsRepo interface {
	GiftStats(ctx context.Context, db *gorm.DB) (repo.GiftTotals, error)
}

// AnalyticsService computes aggregate engagement figures over all gifts.
type AnalyticsService struct {
	// DB is the GORM handle used for the aggregate query.
	DB *gorm.DB
	// Repo supplies the SQL-side totals.
	Repo StatsRepo
}

// Overview returns the current totals and aggregate engagement rate.
func (s *AnalyticsService) Overview(ctx context.Context) (StatsOverview, error) {
	totals, err := s.Repo.GiftStats(ctx, s.DB)
	if err != nil {
		return StatsOverview{}, err
	}
	return StatsOverview{
		TotalGifts:     totals.Gifts,
		TotalViews:     totals.Views,
		TotalLikes:     totals.Likes,
		EngagementRate: EngagementRate(totals.Likes, totals.Views),
	}, nil
}

// EngagementRate expresses likes as a percentage of views, returning 0 when
// there are no views. Used for both the aggregate and per-record figures.
func EngagementRate(likes, views int64) float64 {
	if views == 0 {
		return 0
	}
	return float64(likes) / float64(views) * 100
}
