package repositories

import (
	"context"
	"time"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
)

// TemplateReader defines read operations for auto-posting templates.
type TemplateReader interface {
	// FindActiveByTrigger retrieves the active templates for a trigger event,
	// ordered by priority descending then template ID ascending.
	FindActiveByTrigger(ctx context.Context, trigger domain.TriggerEvent) ([]domain.AutoPostingTemplate, error)

	// FindTemplateByID retrieves a specific template by its unique identifier.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.AutoPostingTemplate, error)

	// ListTemplates retrieves all templates, active and inactive.
	ListTemplates(ctx context.Context) ([]domain.AutoPostingTemplate, error)
}

// TemplateWriter defines write operations for auto-posting templates.
type TemplateWriter interface {
	// SaveTemplate persists a new template.
	SaveTemplate(ctx context.Context, template domain.AutoPostingTemplate) error

	// SetTemplateActive flips a template's active flag.
	SetTemplateActive(ctx context.Context, templateID string, active bool, userID string, now time.Time) error
}

// TemplateRepositoryFacade combines all template-related repository interfaces.
type TemplateRepositoryFacade interface {
	TemplateReader
	TemplateWriter
}
