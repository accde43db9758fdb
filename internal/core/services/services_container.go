package services

import (
	portsrepo "github.com/awqafio/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/awqafio/waqf_ledger/internal/core/ports/services"
	"github.com/awqafio/waqf_ledger/internal/utils/entrynumber"
	"github.com/awqafio/waqf_ledger/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.FiscalYear = NewFiscalYearService(repos.FiscalYearRepo)
	container.Template = NewTemplateService(repos.TemplateRepo)
	container.Posting = NewPostingService(
		repos.EntryRepo,
		container.Account,
		container.FiscalYear,
		container.Template,
		entrynumber.New(cfg.EntryNumberPrefix),
	)

	return container
}
