package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/awqafio/waqf_ledger/internal/apperrors"
	"github.com/awqafio/waqf_ledger/internal/core/domain"
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/middleware"
)

// accountService provides read-only access to the ledger account directory.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account directory service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ListPostableAccounts returns all accounts that may appear on entry lines.
func (s *accountService) ListPostableAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListPostableAccounts(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list postable accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list postable accounts: %w", err)
	}
	return accounts, nil
}

// ResolveAccountByCode resolves a human-readable account code to its account.
func (s *accountService) ResolveAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to resolve account by code", slog.String("code", code), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to resolve account code %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByCodes resolves multiple codes, keyed by code.
func (s *accountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, uniqueStrings(codes))
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch accounts by codes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountsByIDs resolves multiple account IDs, keyed by ID.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch accounts by IDs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accounts, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
