package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

func TestCreateLikeToken_FirstInsertWins(t *testing.T) {
	db := newGiftRepoDB(t, &domain.LikeToken{})

	if err := CreateLikeToken(context.Background(), db, "gift-1", "tok-1"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := CreateLikeToken(context.Background(), db, "gift-1", "tok-1")
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCreateLikeToken_SameTokenDifferentGift(t *testing.T) {
	db := newGiftRepoDB(t, &domain.LikeToken{})

	if err := CreateLikeToken(context.Background(), db, "gift-1", "tok"); err != nil {
		t.Fatalf("gift-1: %v", err)
	}
	// The token is scoped per gift, not global.
	if err := CreateLikeToken(context.Background(), db, "gift-2", "tok"); err != nil {
		t.Fatalf("gift-2: %v", err)
	}
}

func TestCreateLikeToken_ConcurrentSingleWinner(t *testing.T) {
	db := newGiftRepoDB(t, &domain.LikeToken{})

	const n = 20
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- CreateLikeToken(context.Background(), db, "gift-1", "race")
		}()
	}
	wg.Wait()
	close(results)

	var wins, dups int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrDuplicate):
			dups++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || dups != n-1 {
		t.Fatalf("wins=%d dups=%d, want 1/%d", wins, dups, n-1)
	}
}
