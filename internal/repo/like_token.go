// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the LikeToken
// model used to implement safe-retry semantics for the like endpoint.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

// ErrDuplicate indicates that a like token already exists for the given
// (gift_id, token) tuple, i.e. this like was already counted.
var ErrDuplicate = errors.New("duplicate")

// CreateLikeToken inserts a token record and returns ErrDuplicate on unique
// violation. The insert doubles as the atomic claim: of two concurrent likes
// carrying the same token, exactly one caller wins the insert and proceeds
// to increment.
func CreateLikeToken(ctx context.Context, db *gorm.DB, giftID, token string) error {
	rec := &domain.LikeToken{
		ID:        uuid.NewString(),
		GiftID:    giftID,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}
