package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/dto"
	"github.com/awqafio/waqf_ledger/internal/middleware"
)

// ErrNoTemplateForTrigger indicates no active auto-posting template matches a
// trigger event. Non-retriable; the caller decides whether the business event
// may proceed without an automatic posting.
var ErrNoTemplateForTrigger = errors.New("no active auto-posting template for trigger")

// templateService covers authoring and resolution of auto-posting templates.
type templateService struct {
	templateRepo portsrepo.TemplateRepositoryFacade
}

// NewTemplateService creates a new template service.
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade) portssvc.TemplateSvcFacade {
	return &templateService{templateRepo: templateRepo}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

// CreateTemplate validates and persists a new auto-posting template.
// Split shapes and percentage sums are enforced here so a broken template is
// rejected at authoring time rather than discovered during posting.
func (s *templateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, creatorUserID string) (*domain.AutoPostingTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	trigger := domain.TriggerEvent(req.TriggerEvent)
	if !trigger.IsKnown() {
		// Unknown keys are allowed for extensibility but worth flagging.
		logger.Warn("Template authored for unrecognized trigger event", slog.String("trigger_event", req.TriggerEvent))
	}

	now := time.Now().UTC()
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	template := domain.AutoPostingTemplate{
		TemplateID:     uuid.NewString(),
		TriggerEvent:   trigger,
		TemplateName:   req.TemplateName,
		DebitAccounts:  dto.ToTemplateSplits(req.DebitAccounts),
		CreditAccounts: dto.ToTemplateSplits(req.CreditAccounts),
		IsActive:       isActive,
		Priority:       req.Priority,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := template.Validate(); err != nil {
		logger.Warn("Template failed authoring validation", slog.String("trigger_event", req.TriggerEvent), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		logger.Error("Failed to save template", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	logger.Info("Auto-posting template created", slog.String("template_id", template.TemplateID), slog.String("trigger_event", req.TriggerEvent))
	return &template, nil
}

// ListTemplates returns all templates, active and inactive.
func (s *templateService) ListTemplates(ctx context.Context) ([]domain.AutoPostingTemplate, error) {
	templates, err := s.templateRepo.ListTemplates(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list templates", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// ResolveForTrigger picks the template used to expand a trigger event.
// The repository orders by priority descending then template ID ascending, so
// the first row wins and ties break deterministically.
func (s *templateService) ResolveForTrigger(ctx context.Context, trigger domain.TriggerEvent) (*domain.AutoPostingTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	templates, err := s.templateRepo.FindActiveByTrigger(ctx, trigger)
	if err != nil {
		logger.Error("Failed to look up templates for trigger", slog.String("trigger_event", string(trigger)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up templates for trigger %s: %w", trigger, err)
	}
	if len(templates) == 0 {
		// A configuration gap, not a user input error.
		logger.Warn("No active template for trigger", slog.String("trigger_event", string(trigger)), slog.Bool("known_trigger", trigger.IsKnown()))
		return nil, fmt.Errorf("%w: %s", ErrNoTemplateForTrigger, trigger)
	}
	return &templates[0], nil
}

// SetTemplateActive flips a template's active flag.
func (s *templateService) SetTemplateActive(ctx context.Context, templateID string, active bool, userID string) error {
	if err := s.templateRepo.SetTemplateActive(ctx, templateID, active, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to update template active flag", slog.String("template_id", templateID), slog.String("error", err.Error()))
		}
		return fmt.Errorf("failed to update template %s: %w", templateID, err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Template active flag updated", slog.String("template_id", templateID), slog.Bool("is_active", active))
	return nil
}
