// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate engagement query used by
// the analytics read path. The sums are computed in SQL so the result is a
// consistent snapshot of the table, not an application-side fold.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

// GiftTotals is the aggregate engagement snapshot across all gifts.
type GiftTotals struct {
	Gifts int64
	Views int64
	Likes int64
}

// GiftStats returns the total gift count and the summed view/like counters.
// COALESCE guards the empty-table case where SUM() yields NULL.
func GiftStats(ctx context.Context, db *gorm.DB) (GiftTotals, error) {
	var row struct {
		Gifts int64
		Views int64
		Likes int64
	}
	err := db.WithContext(ctx).
		Model(&domain.Gift{}).
		Select("COUNT(*) AS gifts, COALESCE(SUM(views_count), 0) AS views, COALESCE(SUM(likes_count), 0) AS likes").
		Scan(&row).Error
	if err != nil {
		return GiftTotals{}, err
	}
	return GiftTotals{Gifts: row.Gifts, Views: row.Views, Likes: row.Likes}, nil
}
