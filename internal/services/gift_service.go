// Package services – GiftService
//
// This file implements the GiftService, which owns the gift lifecycle:
// validated creation with slug allocation and bounded conflict retry,
// slug lookup, the two atomic engagement increments, and the best-effort
// like notification. The counters are the only post-creation mutation;
// everything else on a gift is immutable.
//
// Service-level errors (ErrGiftNotFound, ErrRecipientRequired,
// ErrMessageRequired, ErrSlugExhausted) are returned for predictable cases
// so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/domain"
	"github.com/tbourn/go-gift-backend/internal/repo"
)

// Defaults applied when optional creation fields are absent. They match the
// placeholder copy shown on the public gift page.
const (
	DefaultSenderName = "Someone special"
	DefaultRelation   = "Friend"
)

// notifyTimeout bounds the detached notification dispatch so a hung email
// transport cannot leak goroutines indefinitely.
const notifyTimeout = 15 * time.Second

// GiftRepo defines the repository contract required by GiftService.
// Implementations are responsible for persistence of gift aggregates.
type GiftRepo interface {
	// CreateGift inserts a new gift row; ErrDuplicateSlug on slug conflict.
	CreateGift(ctx context.Context, db *gorm.DB, g *domain.Gift) (*domain.Gift, error)

	// GetGiftBySlug fetches a gift by its public slug.
	GetGiftBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Gift, error)

	// ListGifts returns all gifts, newest first.
	ListGifts(ctx context.Context, db *gorm.DB) ([]domain.Gift, error)

	// CountGifts returns the total number of gifts for pagination.
	CountGifts(ctx context.Context, db *gorm.DB) (int64, error)

	// ListGiftsPage returns a page of gifts, newest first.
	ListGiftsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Gift, error)

	// IncrementViews atomically bumps views_count, returning the new value.
	IncrementViews(ctx context.Context, db *gorm.DB, id string) (int64, error)

	// IncrementLikes atomically bumps likes_count, returning the new value.
	IncrementLikes(ctx context.Context, db *gorm.DB, id string) (int64, error)

	// CreateLikeToken claims a per-viewer like token; ErrDuplicate if taken.
	CreateLikeToken(ctx context.Context, db *gorm.DB, giftID, token string) error
}

// Notifier is the collaborator that tells a sender their gift was liked.
// Implementations must be safe for concurrent use; dispatch failures are the
// implementation's to report via error, never to panic.
type Notifier interface {
	GiftLiked(ctx context.Context, gift *domain.Gift, giftURL string) error
}

// SlugAllocator produces candidate slugs for new gifts.
type SlugAllocator interface {
	Allocate() (string, error)
}

// CreateGiftInput carries the caller-supplied fields for a new gift.
type CreateGiftInput struct {
	RecipientName string
	SenderName    string
	SenderEmail   string
	Relation      string
	Message       string
	ImageURL      string
}

// GiftService provides gift-level operations: creation, lookup, the two
// engagement increments, and listing. It enforces validation and default
// rules and coordinates slug allocation retries.
type GiftService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the gift repository used by this service.
	Repo GiftRepo
	// Slugs allocates candidate slugs for creation.
	Slugs SlugAllocator
	// Notifier receives like events for gifts with a sender email.
	// May be nil, in which case no notifications are dispatched.
	Notifier Notifier

	// BaseURL is the public origin used to derive shareable gift URLs.
	BaseURL string
	// MaxSlugAttempts bounds allocation retries on slug conflicts.
	MaxSlugAttempts int

	relationCaser cases.Caser
}

// NewGiftService constructs a GiftService with sane defaults.
func NewGiftService(db *gorm.DB, r GiftRepo, slugs SlugAllocator, n Notifier, baseURL string) *GiftService {
	return &GiftService{
		DB:              db,
		Repo:            r,
		Slugs:           slugs,
		Notifier:        n,
		BaseURL:         strings.TrimRight(baseURL, "/"),
		MaxSlugAttempts: 5,
		relationCaser:   cases.Title(language.English),
	}
}

// Create validates the input, applies defaults, allocates a unique slug and
// persists the gift. On a slug conflict (a concurrent creation won the same
// candidate) it re-allocates and retries up to MaxSlugAttempts before giving
// up with ErrSlugExhausted.
func (s *GiftService) Create(ctx context.Context, in CreateGiftInput) (*domain.Gift, error) {
	recipient := strings.TrimSpace(in.RecipientName)
	if recipient == "" {
		return nil, ErrRecipientRequired
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrMessageRequired
	}

	sender := strings.TrimSpace(in.SenderName)
	if sender == "" {
		sender = DefaultSenderName
	}
	relation := strings.TrimSpace(in.Relation)
	if relation == "" {
		relation = DefaultRelation
	} else {
		relation = s.relationCaser.String(relation)
	}

	ctx, span := s.tracer().Start(ctx, "GiftService.Create")
	defer span.End()

	attempts := s.MaxSlugAttempts
	if attempts <= 0 {
		attempts = 5
	}
	for i := 0; i < attempts; i++ {
		candidate, err := s.Slugs.Allocate()
		if err != nil {
			return nil, err
		}
		g, err := s.Repo.CreateGift(ctx, s.DB, &domain.Gift{
			Slug:          candidate,
			RecipientName: recipient,
			SenderName:    sender,
			SenderEmail:   strings.TrimSpace(in.SenderEmail),
			Relation:      relation,
			Message:       message,
			ImageURL:      strings.TrimSpace(in.ImageURL),
		})
		if errors.Is(err, repo.ErrDuplicateSlug) {
			continue
		}
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.String("gift.slug", g.Slug))
		giftsCreated.Inc()
		return g, nil
	}
	return nil, ErrSlugExhausted
}

// GetBySlug returns the gift published under slug, or ErrGiftNotFound.
func (s *GiftService) GetBySlug(ctx context.Context, slug string) (*domain.Gift, error) {
	g, err := s.Repo.GetGiftBySlug(ctx, s.DB, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, err
	}
	return g, nil
}

// RegisterView records one page view for the gift under slug and returns the
// post-increment view count.
func (s *GiftService) RegisterView(ctx context.Context, slug string) (int64, error) {
	g, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	count, err := s.Repo.IncrementViews(ctx, s.DB, g.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrGiftNotFound
		}
		return 0, err
	}
	giftViews.Inc()
	return count, nil
}

// Like records one like for the gift under slug and returns the
// post-increment like count.
//
// When clientToken is non-empty, the token is claimed first: a repeat call
// carrying an already-claimed token is a no-op that returns the current
// count unchanged. An empty token preserves the original client-trusted
// behavior where the browser's liked flag is the only deduplication.
//
// When the gift carries a sender email, the notifier is invoked in a
// detached goroutine after a successful increment. The like is the
// authoritative state change: a notification failure is logged and counted,
// never surfaced to the caller.
func (s *GiftService) Like(ctx context.Context, slug, clientToken string) (int64, error) {
	ctx, span := s.tracer().Start(ctx, "GiftService.Like",
		trace.WithAttributes(attribute.String("gift.slug", slug)))
	defer span.End()

	g, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}

	if tok := strings.TrimSpace(clientToken); tok != "" {
		err := s.Repo.CreateLikeToken(ctx, s.DB, g.ID, tok)
		if errors.Is(err, repo.ErrDuplicate) {
			span.SetAttributes(attribute.Bool("gift.like_replay", true))
			return g.LikesCount, nil
		}
		if err != nil {
			return 0, err
		}
	}

	count, err := s.Repo.IncrementLikes(ctx, s.DB, g.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrGiftNotFound
		}
		return 0, err
	}
	giftLikes.Inc()

	if g.SenderEmail != "" && s.Notifier != nil {
		s.dispatchLikeNotification(g)
	}
	return count, nil
}

// dispatchLikeNotification hands the like event to the notifier without
// tying its outcome to the request that triggered it. The goroutine gets
// its own deadline; the request context may already be gone by the time
// the email transport answers.
func (s *GiftService) dispatchLikeNotification(g *domain.Gift) {
	gift := *g
	url := s.GiftURL(gift.Slug)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.Notifier.GiftLiked(ctx, &gift, url); err != nil {
			log.Error().
				Err(err).
				Str("gift_id", gift.ID).
				Str("slug", gift.Slug).
				Msg("like notification failed")
		}
	}()
}

// List returns all gifts, newest first.
func (s *GiftService) List(ctx context.Context) ([]domain.Gift, error) {
	return s.Repo.ListGifts(ctx, s.DB)
}

// ListPage returns a page of gifts (newest first) and the total count.
// It applies defaults for invalid page/pageSize.
func (s *GiftService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Gift, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountGifts(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Gift{}, 0, nil
	}

	items, err := s.Repo.ListGiftsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// GiftURL derives the shareable public URL for a slug.
func (s *GiftService) GiftURL(slug string) string {
	return s.BaseURL + "/gift/" + slug
}

func (s *GiftService) tracer() trace.Tracer {
	return otel.Tracer("github.com/tbourn/go-gift-backend/internal/services")
}
