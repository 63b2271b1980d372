// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Gift model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a gift is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - Slug uniqueness violations on insert surface as ErrDuplicateSlug so
//     the service layer can re-allocate and retry.
//   - On other DB errors (connectivity issues, etc.), the raw gorm error
//     is propagated.
//
// The counter increments are the only mutation path after creation. Both
// run a single `UPDATE ... SET x = x + 1` statement rather than an
// application-level read-modify-write, so N concurrent increments against
// the same row always land as exactly N.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicateSlug indicates that an insert lost the race on the slug
// unique index. The caller should allocate a fresh slug and retry.
var ErrDuplicateSlug = errors.New("slug already exists")

// CreateGift inserts a new Gift row. The gift ID is a randomly generated
// UUID (string), CreatedAt is set to UTC, and both counters start at zero
// regardless of what the passed struct carries.
//
// On a slug unique-constraint violation it returns ErrDuplicateSlug; the
// losing caller of a concurrent race re-allocates and retries. On success,
// it returns the persisted Gift.
func CreateGift(ctx context.Context, db *gorm.DB, g *domain.Gift) (*domain.Gift, error) {
	g.ID = uuid.NewString()
	g.ViewsCount = 0
	g.LikesCount = 0
	g.CreatedAt = time.Now().UTC()

	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return g, nil
}

// GetGiftBySlug fetches a single gift by its public slug. If the record
// does not exist, it returns ErrNotFound. The lookup has no side effects
// and is safe to call concurrently with any write.
func GetGiftBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Gift, error) {
	var g domain.Gift
	err := db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGifts returns all gifts ordered by creation time descending (most
// recent first). It returns an empty slice when no gifts exist.
func ListGifts(ctx context.Context, db *gorm.DB) ([]domain.Gift, error) {
	var out []domain.Gift
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// CountGifts returns the total number of gifts.
func CountGifts(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Gift{}).
		Count(&total).Error
	return total, err
}

// ListGiftsPage returns a paginated slice of gifts ordered by creation time
// descending. Use CountGifts to obtain the total for pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListGiftsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Gift, error) {
	var out []domain.Gift
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// IncrementViews atomically adds 1 to the gift's views_count and returns
// the post-increment value. The addition happens in SQL (`views_count + 1`)
// so concurrent callers never lose updates; the read-back runs in the same
// transaction as the update. Returns ErrNotFound when the gift id does not
// match any row.
func IncrementViews(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return incrementCounter(ctx, db, id, "views_count")
}

// IncrementLikes atomically adds 1 to the gift's likes_count and returns
// the post-increment value, with the same atomicity contract as
// IncrementViews. Per-viewer at-most-once semantics are the caller's
// responsibility (see LikeToken).
func IncrementLikes(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	return incrementCounter(ctx, db, id, "likes_count")
}

// incrementCounter performs the shared update-then-read for a counter
// column. column must be one of the two counter names; it is never taken
// from user input.
func incrementCounter(ctx context.Context, db *gorm.DB, id, column string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Gift{}).
			Where("id = ?", id).
			UpdateColumn(column, gorm.Expr(column+" + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&domain.Gift{}).
			Where("id = ?", id).
			Select(column).
			Scan(&count).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey. glebarez/sqlite often returns plain-text
// errors for UNIQUE violations.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}
