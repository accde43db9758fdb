package pgsql

import (
	"context"
	"errors"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fiscalYearColumns = `
	fiscal_year_id, name, start_date, end_date, is_active, is_closed,
	created_at, created_by, last_updated_at, last_updated_by
`

// PgxFiscalYearRepository reads fiscal year data.
type PgxFiscalYearRepository struct {
	BaseRepository
}

func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

// FindActiveOpenFiscalYear retrieves the fiscal year accepting new entries.
// Administrative configuration keeps at most one year active at a time; the
// most recently started one wins if that invariant is ever violated.
func (r *PgxFiscalYearRepository) FindActiveOpenFiscalYear(ctx context.Context) (*domain.FiscalYear, error) {
	query := `
		SELECT ` + fiscalYearColumns + `
		FROM fiscal_years
		WHERE is_active = TRUE AND is_closed = FALSE
		ORDER BY start_date DESC
		LIMIT 1;
	`
	fy, err := scanFiscalYear(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find active fiscal year", err)
	}
	return fy, nil
}

// FindFiscalYearByID retrieves a specific fiscal year.
func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `
		SELECT ` + fiscalYearColumns + `
		FROM fiscal_years
		WHERE fiscal_year_id = $1;
	`
	fy, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year "+fiscalYearID, err)
	}
	return fy, nil
}

func scanFiscalYear(row pgx.Row) (*domain.FiscalYear, error) {
	var fy domain.FiscalYear
	err := row.Scan(
		&fy.FiscalYearID,
		&fy.Name,
		&fy.StartDate,
		&fy.EndDate,
		&fy.IsActive,
		&fy.IsClosed,
		&fy.CreatedAt,
		&fy.CreatedBy,
		&fy.LastUpdatedAt,
		&fy.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &fy, nil
}
