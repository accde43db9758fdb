package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/dto"
	"github.com/awqafio/waqf_ledger/internal/middleware"
	"github.com/awqafio/waqf_ledger/internal/utils/accounting"
	"github.com/awqafio/waqf_ledger/internal/utils/entrynumber"
)

// ErrSubmitInFlight indicates a submission for the same entry number has not
// resolved yet. Double submission would otherwise race two commits with the
// same number, so the second caller is rejected instead of queued.
var ErrSubmitInFlight = errors.New("a submission for this entry is already in flight")

// postingService implements the journal entry posting engine.
type postingService struct {
	entryRepo     portsrepo.EntryRepositoryWithTx
	accountSvc    portssvc.AccountSvcFacade
	fiscalYearSvc portssvc.FiscalYearSvcFacade
	templateSvc   portssvc.TemplateSvcFacade
	allocator     *entrynumber.Allocator

	listenersMu sync.Mutex
	listeners   []portssvc.CommitListener

	inFlightMu sync.Mutex
	inFlight   map[string]struct{} // entry numbers with an unresolved commit
}

// NewPostingService creates a new posting engine.
func NewPostingService(
	entryRepo portsrepo.EntryRepositoryWithTx,
	accountSvc portssvc.AccountSvcFacade,
	fiscalYearSvc portssvc.FiscalYearSvcFacade,
	templateSvc portssvc.TemplateSvcFacade,
	allocator *entrynumber.Allocator,
) portssvc.PostingSvcFacade {
	return &postingService{
		entryRepo:     entryRepo,
		accountSvc:    accountSvc,
		fiscalYearSvc: fiscalYearSvc,
		templateSvc:   templateSvc,
		allocator:     allocator,
		inFlight:      make(map[string]struct{}),
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// AutoPost expands a business trigger event into a balanced journal entry and
// commits it. Expansion is pure; only the final commit touches persistence.
func (s *postingService) AutoPost(ctx context.Context, req dto.AutoPostRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	trigger := domain.TriggerEvent(req.TriggerEvent)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}

	template, err := s.templateSvc.ResolveForTrigger(ctx, trigger)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(template.DebitAccounts)+len(template.CreditAccounts))
	for _, split := range template.DebitAccounts {
		codes = append(codes, split.AccountCode)
	}
	for _, split := range template.CreditAccounts {
		codes = append(codes, split.AccountCode)
	}
	accountsByCode, err := s.accountSvc.GetAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	lines, err := accounting.ExpandTemplate(*template, req.Amount, accountsByCode)
	if err != nil {
		// Template misconfiguration, not user input. Imbalance is never
		// coerced into a balanced entry.
		logger.Error("Template expansion failed",
			slog.String("template_id", template.TemplateID),
			slog.String("trigger_event", req.TriggerEvent),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConfiguration, err)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("%s: %s", trigger, req.ReferenceID)
	}

	fiscalYearID, err := s.defaultFiscalYearID(ctx, req.FiscalYearID)
	if err != nil {
		return nil, err
	}

	entry := s.newEntry(s.allocator.Allocate(), req.EntryDate, description, fiscalYearID, creatorUserID)
	committed, err := s.commitWithRetry(ctx, entry, lines)
	if err != nil {
		return nil, err
	}

	logger.Info("Auto-posted journal entry",
		slog.String("entry_id", committed.EntryID),
		slog.String("entry_number", committed.EntryNumber),
		slog.String("trigger_event", req.TriggerEvent),
		slog.String("reference_id", req.ReferenceID))
	return committed, nil
}

// PrepareManualEntry returns a fresh two-line builder with an allocated
// provisional entry number, plus the default open fiscal year when one exists.
func (s *postingService) PrepareManualEntry(ctx context.Context) (*domain.EntryBuilder, *domain.FiscalYear, error) {
	fy, err := s.fiscalYearSvc.GetActiveOpenFiscalYear(ctx)
	if err != nil {
		return nil, nil, err
	}
	builder := domain.NewEntryBuilder(s.allocator.Allocate())
	return builder, fy, nil
}

// SubmitManualEntry validates the candidate lines and commits the entry.
func (s *postingService) SubmitManualEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryNumber := req.EntryNumber
	if entryNumber == "" {
		entryNumber = s.allocator.Allocate()
	}

	// Same-session double submission shares the provisional entry number, so
	// the number doubles as the in-flight key.
	if !s.acquireInFlight(entryNumber) {
		logger.Warn("Rejected concurrent submission", slog.String("entry_number", entryNumber))
		return nil, fmt.Errorf("%w: %s", ErrSubmitInFlight, entryNumber)
	}
	defer s.releaseInFlight(entryNumber)

	lines := make([]domain.EntryLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.EntryLine{
			LineNumber:  i + 1,
			AccountID:   lineReq.AccountID,
			Description: lineReq.Description,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
		}
		if lineReq.AccountID != "" {
			accountIDs = append(accountIDs, lineReq.AccountID)
		}
	}

	accountsByID, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	if validationErr := accounting.ValidateEntryBalance(lines, accountsByID); validationErr != nil {
		logger.Warn("Manual entry failed validation", slog.String("entry_number", entryNumber), slog.String("error", validationErr.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, validationErr)
	}

	fiscalYearID, err := s.defaultFiscalYearID(ctx, req.FiscalYearID)
	if err != nil {
		return nil, err
	}

	entry := s.newEntry(entryNumber, req.EntryDate, req.Description, fiscalYearID, creatorUserID)

	committed, err := s.commitWithRetry(ctx, entry, lines)
	if err != nil {
		return nil, err
	}

	logger.Info("Manual journal entry committed",
		slog.String("entry_id", committed.EntryID),
		slog.String("entry_number", committed.EntryNumber),
		slog.Int("line_count", len(lines)))
	return committed, nil
}

// GetEntryByID retrieves an entry header with its lines.
func (s *postingService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a token-paginated entry listing, newest first.
func (s *postingService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entries from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	entryResponses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		entryResponses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{
		Entries:   entryResponses,
		NextToken: nextToken,
	}, nil
}

// RegisterCommitListener adds a post-commit callback. Listeners run
// synchronously after the gateway reports a durable commit.
func (s *postingService) RegisterCommitListener(listener portssvc.CommitListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// newEntry builds a draft entry header around the given entry number.
func (s *postingService) newEntry(entryNumber string, entryDate time.Time, description, fiscalYearID, creatorUserID string) domain.JournalEntry {
	now := time.Now().UTC()
	return domain.JournalEntry{
		EntryID:      uuid.NewString(),
		EntryNumber:  entryNumber,
		EntryDate:    entryDate,
		Description:  description,
		FiscalYearID: fiscalYearID,
		Status:       domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

// defaultFiscalYearID resolves the fiscal year for a new entry, preferring
// the caller's choice over the active open year. An empty result is allowed;
// the gateway rejects closed years regardless.
func (s *postingService) defaultFiscalYearID(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	fy, err := s.fiscalYearSvc.GetActiveOpenFiscalYear(ctx)
	if err != nil {
		return "", err
	}
	if fy == nil {
		return "", nil
	}
	return fy.FiscalYearID, nil
}

// commitWithRetry persists the entry through the gateway. A duplicate entry
// number is retried exactly once with a freshly allocated number; every other
// failure surfaces immediately.
func (s *postingService) commitWithRetry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for i := range lines {
		lines[i].EntryID = entry.EntryID
	}

	err := s.entryRepo.SaveEntry(ctx, entry, lines)
	if errors.Is(err, portsrepo.ErrDuplicateEntryNumber) {
		reallocated := s.allocator.Allocate()
		logger.Warn("Entry number collision, retrying once with a new number",
			slog.String("colliding_number", entry.EntryNumber),
			slog.String("new_number", reallocated))
		entry.EntryNumber = reallocated
		err = s.entryRepo.SaveEntry(ctx, entry, lines)
	}
	if err != nil {
		if !errors.Is(err, portsrepo.ErrFiscalYearClosed) && !errors.Is(err, portsrepo.ErrDuplicateEntryNumber) {
			logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("entry_number", entry.EntryNumber))
		}
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	entry.Lines = lines
	s.notifyCommitted(entry)
	return &entry, nil
}

// notifyCommitted fires registered commit listeners.
func (s *postingService) notifyCommitted(entry domain.JournalEntry) {
	s.listenersMu.Lock()
	listeners := make([]portssvc.CommitListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.Unlock()

	for _, listener := range listeners {
		listener(entry)
	}
}

// acquireInFlight marks an entry number as being committed. It returns false
// when a commit for the same number is already unresolved.
func (s *postingService) acquireInFlight(entryNumber string) bool {
	s.inFlightMu.Lock()
	defer s.inFlightMu.Unlock()
	if _, busy := s.inFlight[entryNumber]; busy {
		return false
	}
	s.inFlight[entryNumber] = struct{}{}
	return true
}

func (s *postingService) releaseInFlight(entryNumber string) {
	s.inFlightMu.Lock()
	defer s.inFlightMu.Unlock()
	delete(s.inFlight, entryNumber)
}
