package services

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/domain"
	"github.com/tbourn/go-gift-backend/internal/repo"
)

type templateFns struct{}

func (templateFns) ListTemplates(ctx context.Context, db *gorm.DB, category string) ([]domain.GiftTemplate, error) {
	return repo.ListTemplates(ctx, db, category)
}

func TestTemplateList_SeededCatalog(t *testing.T) {
	db := newServiceDB(t)
	if err := repo.SeedTemplates(context.Background(), db); err != nil {
		t.Fatalf("SeedTemplates: %v", err)
	}
	svc := &TemplateService{DB: db, Repo: templateFns{}}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("empty catalog")
	}

	heartfelt, err := svc.List(context.Background(), "Heartfelt")
	if err != nil {
		t.Fatalf("List(Heartfelt): %v", err)
	}
	for _, tpl := range heartfelt {
		if tpl.Category != "Heartfelt" {
			t.Fatalf("filter leaked %q", tpl.Category)
		}
	}
}

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	tpl := "Dear {name},\nMerry Christmas!\nLove, {sender}"
	got := Render(tpl, "Alex", "Sam")
	if strings.Contains(got, "{name}") || strings.Contains(got, "{sender}") {
		t.Fatalf("placeholders left in output: %q", got)
	}
	if !strings.Contains(got, "Dear Alex,") || !strings.Contains(got, "Love, Sam") {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestRender_RepeatedPlaceholders(t *testing.T) {
	got := Render("{name} {name} {sender} {sender}", "A", "B")
	if got != "A A B B" {
		t.Fatalf("render = %q", got)
	}
}

func TestRender_BlankValuesFallBack(t *testing.T) {
	got := Render("To {name} from {sender}", " ", "")
	if got != "To [Recipient Name] from [Your Name]" {
		t.Fatalf("render = %q", got)
	}
}
