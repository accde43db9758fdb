package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	"github.com/awqafio/waqf_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

const entryColumns = `
	entry_id, entry_number, entry_date, description, fiscal_year_id, status,
	created_at, created_by, last_updated_at, last_updated_by
`

// PgxEntryRepository is the commit/persistence gateway for journal entries.
type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// SaveEntry atomically persists the entry header and its lines. The fiscal
// year gate, header insert, and line batch all run inside one transaction, so
// partial entries are never visible to readers.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored if the transaction commits

	if entry.FiscalYearID != "" {
		var isActive, isClosed bool
		err = tx.QueryRow(ctx,
			`SELECT is_active, is_closed FROM fiscal_years WHERE fiscal_year_id = $1;`,
			entry.FiscalYearID,
		).Scan(&isActive, &isClosed)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("fiscal year " + entry.FiscalYearID + " not found")
			}
			return apperrors.NewAppError(500, "failed to check fiscal year "+entry.FiscalYearID, err)
		}
		if !isActive || isClosed {
			return portsrepo.ErrFiscalYearClosed
		}
	}

	headerQuery := `
		INSERT INTO journal_entries (
			entry_id, entry_number, entry_date, description, fiscal_year_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, headerQuery,
		entry.EntryID,
		entry.EntryNumber,
		entry.EntryDate,
		entry.Description,
		entry.FiscalYearID,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return portsrepo.ErrDuplicateEntryNumber
		}
		return apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}

	// Line order is preserved exactly as built; no reordering occurs here.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (entry_id, line_number, account_id, description, debit_amount, credit_amount)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			entry.EntryID,
			line.LineNumber,
			line.AccountID,
			line.Description,
			line.Debit,
			line.Credit,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	return entry, nil
}

// FindLinesByEntryID retrieves all lines of an entry in line-number order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `
		SELECT entry_id, line_number, account_id, description, debit_amount, credit_amount
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.EntryLine{}
	for rows.Next() {
		var l domain.EntryLine
		err := rows.Scan(
			&l.EntryID,
			&l.LineNumber,
			&l.AccountID,
			&l.Description,
			&l.Debit,
			&l.Credit,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}

	return lines, nil
}

// ListEntries retrieves a paginated list of entries using token-based
// pagination. It returns the entries, a token for the next page, and an error.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20 // Or a configurable default
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
	`
	// Ordering must be stable: entry_date DESC with created_at as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		// Tuple comparison is concise and efficient in Postgres.
		cursorClause := `WHERE (entry_date, created_at) < ($1, $2)`
		args = append(args, lastEntryDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", scanErr)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextTokenVal *string
	results := entries
	if len(entries) > limit {
		// The token points to the last item included in this response page;
		// the next query starts after it.
		lastEntry := entries[limit-1]
		token := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &token
		results = entries[:limit]
	}

	return results, nextTokenVal, nil
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var fiscalYearID *string

	err := row.Scan(
		&e.EntryID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.Description,
		&fiscalYearID,
		&e.Status,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if fiscalYearID != nil {
		e.FiscalYearID = *fiscalYearID
	}
	return &e, nil
}
