// Package domain defines the persistence models for gift pages and their
// engagement counters. These types are mapped with GORM and form the core
// data layer of the gift-page application.
package domain

import "time"

// Gift represents one personalized gift page, addressed externally only by
// its unguessable slug. A gift is created exactly once; after creation the
// only fields that ever change are the two engagement counters.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Slug: short high-entropy public identifier; unique across all gifts.
//   - RecipientName: who the page is addressed to (required).
//   - SenderName: who created it; defaults to "Someone special".
//   - SenderEmail: optional; when present the sender is notified when the
//     page is liked.
//   - Relation: sender/recipient relationship; defaults to "Friend".
//   - Message: the personalized message, stored verbatim.
//   - ImageURL: opaque locator into external asset storage; may be empty.
//   - ViewsCount / LikesCount: monotonically non-decreasing counters,
//     mutated only through the atomic increment operations in repo.
//   - CreatedAt: set once at creation (UTC).
type Gift struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	Slug          string    `json:"slug"           gorm:"type:varchar(64);not null;uniqueIndex:ux_gift_slug"`
	RecipientName string    `json:"recipient_name" gorm:"type:varchar(255);not null"`
	SenderName    string    `json:"sender_name"    gorm:"type:varchar(255);not null"`
	SenderEmail   string    `json:"sender_email,omitempty" gorm:"type:varchar(320)"`
	Relation      string    `json:"relation"       gorm:"type:varchar(64);not null"`
	Message       string    `json:"message"        gorm:"type:text;not null"`
	ImageURL      string    `json:"image_url,omitempty" gorm:"type:text"`
	ViewsCount    int64     `json:"views_count"    gorm:"not null;default:0"`
	LikesCount    int64     `json:"likes_count"    gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName returns the database table name for Gift.
func (Gift) TableName() string { return "gift_messages" }

// GiftTemplate is a pre-written message offered in the creation flow.
// The template text carries literal {name} and {sender} placeholders that
// are substituted at render time; templates themselves are immutable
// catalog rows seeded at startup.
type GiftTemplate struct {
	ID              string    `json:"id"               gorm:"type:char(36);primaryKey"`
	Title           string    `json:"title"            gorm:"type:varchar(255);not null"`
	Category        string    `json:"category"         gorm:"type:varchar(64);not null;index"`
	MessageTemplate string    `json:"message_template" gorm:"type:text;not null"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName returns the database table name for GiftTemplate.
func (GiftTemplate) TableName() string { return "gift_templates" }

// LikeToken records that a like carrying a given client token was already
// counted for a gift, keyed by (gift_id, token). It gives the like path
// safe-retry semantics: a repeat like with the same token is a no-op
// instead of a double increment. Likes without a token are not recorded
// here and rely on the client-held liked flag alone.
type LikeToken struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	GiftID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_like_gift_token,priority:1"`
	Token     string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_like_gift_token,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the database table name for LikeToken.
func (LikeToken) TableName() string { return "like_tokens" }
