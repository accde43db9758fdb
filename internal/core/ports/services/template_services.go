package services

import (
	"context"

	"github.com/awqafio/waqf_ledger/internal/core/domain"
	"github.com/awqafio/waqf_ledger/internal/dto"
)

// TemplateSvcFacade covers authoring and resolution of auto-posting templates.
type TemplateSvcFacade interface {
	// CreateTemplate validates and persists a new template. Percentage sums
	// and split shapes are enforced here, at authoring time.
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, creatorUserID string) (*domain.AutoPostingTemplate, error)

	// ListTemplates returns all templates, active and inactive.
	ListTemplates(ctx context.Context) ([]domain.AutoPostingTemplate, error)

	// ResolveForTrigger picks the active template for a trigger event:
	// highest priority wins, ties broken by template ID ascending.
	// Returns ErrNoTemplateForTrigger when no active template matches.
	ResolveForTrigger(ctx context.Context, trigger domain.TriggerEvent) (*domain.AutoPostingTemplate, error)

	// SetTemplateActive flips a template's active flag.
	SetTemplateActive(ctx context.Context, templateID string, active bool, userID string) error
}
