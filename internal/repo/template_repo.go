// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// GiftTemplate catalog: listing and idempotent seeding of the built-in
// message templates.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

// ListTemplates returns the template catalog ordered by category, then
// title, optionally filtered to a single category. An empty category means
// no filter.
func ListTemplates(ctx context.Context, db *gorm.DB, category string) ([]domain.GiftTemplate, error) {
	q := db.WithContext(ctx).Model(&domain.GiftTemplate{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []domain.GiftTemplate
	err := q.Order("category, title").Find(&out).Error
	return out, err
}

// CountTemplates returns the number of catalog rows.
func CountTemplates(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.GiftTemplate{}).Count(&total).Error
	return total, err
}

// SeedTemplates inserts the built-in catalog when the table is empty.
// Calling it on every startup is safe: a non-empty table is left untouched.
func SeedTemplates(ctx context.Context, db *gorm.DB) error {
	total, err := CountTemplates(ctx, db)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]domain.GiftTemplate, 0, len(builtinTemplates))
	for _, t := range builtinTemplates {
		t.ID = uuid.NewString()
		t.CreatedAt = now
		rows = append(rows, t)
	}
	return db.WithContext(ctx).Create(&rows).Error
}

// builtinTemplates is the default catalog. Template text keeps the literal
// {name} and {sender} placeholders; substitution happens at render time.
var builtinTemplates = []domain.GiftTemplate{
	{
		Title:           "Warm Wishes",
		Category:        "Heartfelt",
		MessageTemplate: "Dear {name},\n\nEvery Christmas I'm reminded how lucky I am to have you in my life. May this season bring you all the warmth and joy you give to everyone around you.\n\nWith love,\n{sender}",
	},
	{
		Title:           "Across the Miles",
		Category:        "Heartfelt",
		MessageTemplate: "{name},\n\nWe may be far apart this Christmas, but you're right here in my heart. I hope your holidays are full of light, laughter, and everything you love.\n\nMissing you,\n{sender}",
	},
	{
		Title:           "Thank You",
		Category:        "Heartfelt",
		MessageTemplate: "Dear {name},\n\nThis year you made such a difference in my life, and I wanted you to know it. Merry Christmas — you deserve every bit of happiness this season brings.\n\n{sender}",
	},
	{
		Title:           "Santa's Favorite",
		Category:        "Funny",
		MessageTemplate: "{name}!\n\nI checked with Santa and you're officially on the nice list this year. Barely. Merry Christmas — try to keep it that way until at least January.\n\n{sender}",
	},
	{
		Title:           "Cookie Alert",
		Category:        "Funny",
		MessageTemplate: "Dear {name},\n\nThis is your annual reminder that Christmas calories don't count. Eat the cookies. All of them. Merry Christmas!\n\nYour enabler,\n{sender}",
	},
	{
		Title:           "Classic Greetings",
		Category:        "Traditional",
		MessageTemplate: "Dear {name},\n\nWishing you a very Merry Christmas and a Happy New Year. May your home be filled with peace, joy, and the company of those you love.\n\nWarm regards,\n{sender}",
	},
	{
		Title:           "New Year Blessings",
		Category:        "Traditional",
		MessageTemplate: "{name},\n\nAs this year draws to a close, I wish you health, happiness, and prosperity for the year ahead. Merry Christmas and a wonderful New Year!\n\n{sender}",
	},
}
