package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTemplateRepository stores auto-posting templates. The debit and credit
// split lists are persisted as jsonb; their shape is enforced by the domain
// layer at authoring time.
type PgxTemplateRepository struct {
	BaseRepository
}

func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

const templateColumns = `
	template_id, trigger_event, template_name, debit_accounts, credit_accounts,
	is_active, priority, created_at, created_by, last_updated_at, last_updated_by
`

// SaveTemplate persists a new template.
func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.AutoPostingTemplate) error {
	debitJSON, err := json.Marshal(template.DebitAccounts)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal debit splits for template "+template.TemplateID, err)
	}
	creditJSON, err := json.Marshal(template.CreditAccounts)
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal credit splits for template "+template.TemplateID, err)
	}

	query := `
		INSERT INTO auto_posting_templates (
			template_id, trigger_event, template_name, debit_accounts, credit_accounts,
			is_active, priority, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = r.Pool.Exec(ctx, query,
		template.TemplateID,
		template.TriggerEvent,
		template.TemplateName,
		debitJSON,
		creditJSON,
		template.IsActive,
		template.Priority,
		template.CreatedAt,
		template.CreatedBy,
		template.LastUpdatedAt,
		template.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert template "+template.TemplateID, err)
	}
	return nil
}

// FindActiveByTrigger retrieves active templates for a trigger, highest
// priority first with template ID as the deterministic tie-break.
func (r *PgxTemplateRepository) FindActiveByTrigger(ctx context.Context, trigger domain.TriggerEvent) ([]domain.AutoPostingTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM auto_posting_templates
		WHERE trigger_event = $1 AND is_active = TRUE
		ORDER BY priority DESC, template_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, trigger)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query templates for trigger "+string(trigger), err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// FindTemplateByID retrieves a specific template.
func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.AutoPostingTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM auto_posting_templates
		WHERE template_id = $1;
	`
	template, err := scanTemplate(r.Pool.QueryRow(ctx, query, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find template "+templateID, err)
	}
	return template, nil
}

// ListTemplates retrieves all templates ordered by trigger then priority.
func (r *PgxTemplateRepository) ListTemplates(ctx context.Context) ([]domain.AutoPostingTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM auto_posting_templates
		ORDER BY trigger_event, priority DESC, template_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query templates", err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// SetTemplateActive flips a template's active flag.
func (r *PgxTemplateRepository) SetTemplateActive(ctx context.Context, templateID string, active bool, userID string, now time.Time) error {
	query := `
		UPDATE auto_posting_templates
		SET is_active = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE template_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, templateID, active, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update template "+templateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("template " + templateID + " not found for update")
	}
	return nil
}

func scanTemplate(row pgx.Row) (*domain.AutoPostingTemplate, error) {
	var t domain.AutoPostingTemplate
	var debitJSON, creditJSON []byte

	err := row.Scan(
		&t.TemplateID,
		&t.TriggerEvent,
		&t.TemplateName,
		&debitJSON,
		&creditJSON,
		&t.IsActive,
		&t.Priority,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(debitJSON, &t.DebitAccounts); err != nil {
		return nil, apperrors.NewAppError(500, "failed to unmarshal debit splits for template "+t.TemplateID, err)
	}
	if err := json.Unmarshal(creditJSON, &t.CreditAccounts); err != nil {
		return nil, apperrors.NewAppError(500, "failed to unmarshal credit splits for template "+t.TemplateID, err)
	}
	return &t, nil
}

func scanTemplates(rows pgx.Rows) ([]domain.AutoPostingTemplate, error) {
	templates := []domain.AutoPostingTemplate{}
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template row", err)
		}
		templates = append(templates, *template)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating template rows", err)
	}
	return templates, nil
}
