// Package services – TemplateService
//
// This file implements the message template catalog: listing the seeded
// templates and rendering one by substituting the literal {name} and
// {sender} placeholders. Rendering is a pure string-replace pass; when a
// value is blank the visible bracket placeholders from the creation form
// are used so a preview never shows an empty hole.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-gift-backend/internal/domain"
)

// Fallback placeholders shown when a template is previewed before the
// corresponding form field is filled in.
const (
	placeholderRecipient = "[Recipient Name]"
	placeholderSender    = "[Your Name]"
)

// TemplateRepo defines the catalog persistence contract.
type TemplateRepo interface {
	ListTemplates(ctx context.Context, db *gorm.DB, category string) ([]domain.GiftTemplate, error)
}

// TemplateService lists and renders the pre-written message catalog.
type TemplateService struct {
	// DB is the GORM handle used for catalog reads.
	DB *gorm.DB
	// Repo is the template repository.
	Repo TemplateRepo
}

// List returns the catalog, optionally filtered by category.
func (s *TemplateService) List(ctx context.Context, category string) ([]domain.GiftTemplate, error) {
	return s.Repo.ListTemplates(ctx, s.DB, category)
}

// Render substitutes {name} and {sender} in template text. Blank values
// fall back to the visible bracket placeholders.
func Render(template, recipientName, senderName string) string {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = placeholderRecipient
	}
	sender := strings.TrimSpace(senderName)
	if sender == "" {
		sender = placeholderSender
	}
	out := strings.ReplaceAll(template, "{name}", name)
	return strings.ReplaceAll(out, "{sender}", sender)
}
