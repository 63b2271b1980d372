package repo

import (
	"context"
	"strings"
	"testing"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

func TestSeedTemplates_PopulatesOnce(t *testing.T) {
	db := newGiftRepoDB(t, &domain.GiftTemplate{})

	if err := SeedTemplates(context.Background(), db); err != nil {
		t.Fatalf("SeedTemplates: %v", err)
	}
	first, err := CountTemplates(context.Background(), db)
	if err != nil {
		t.Fatalf("CountTemplates: %v", err)
	}
	if first == 0 {
		t.Fatal("seed left the catalog empty")
	}

	// Second seed must not duplicate rows.
	if err := SeedTemplates(context.Background(), db); err != nil {
		t.Fatalf("second SeedTemplates: %v", err)
	}
	second, _ := CountTemplates(context.Background(), db)
	if second != first {
		t.Fatalf("re-seed changed count: %d -> %d", first, second)
	}
}

func TestSeedTemplates_PlaceholdersPresent(t *testing.T) {
	db := newGiftRepoDB(t, &domain.GiftTemplate{})
	if err := SeedTemplates(context.Background(), db); err != nil {
		t.Fatalf("SeedTemplates: %v", err)
	}
	all, err := ListTemplates(context.Background(), db, "")
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	for _, tpl := range all {
		if tpl.ID == "" || tpl.Title == "" || tpl.Category == "" {
			t.Fatalf("incomplete template row: %+v", tpl)
		}
		if !strings.Contains(tpl.MessageTemplate, "{name}") {
			t.Fatalf("template %q lacks {name} placeholder", tpl.Title)
		}
	}
}

func TestListTemplates_CategoryFilterAndOrder(t *testing.T) {
	db := newGiftRepoDB(t, &domain.GiftTemplate{})
	if err := SeedTemplates(context.Background(), db); err != nil {
		t.Fatalf("SeedTemplates: %v", err)
	}

	funny, err := ListTemplates(context.Background(), db, "Funny")
	if err != nil {
		t.Fatalf("ListTemplates(Funny): %v", err)
	}
	if len(funny) == 0 {
		t.Fatal("expected Funny templates in the seed catalog")
	}
	for _, tpl := range funny {
		if tpl.Category != "Funny" {
			t.Fatalf("filter leaked category %q", tpl.Category)
		}
	}

	all, err := ListTemplates(context.Background(), db, "")
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Category > all[i].Category {
			t.Fatalf("not ordered by category: %q > %q", all[i-1].Category, all[i].Category)
		}
	}
}
