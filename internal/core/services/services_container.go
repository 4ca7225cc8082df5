package services

import (
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
	portssvc "github.com/rusingacademy/ledger-service/internal/core/ports/services"
	"github.com/rusingacademy/ledger-service/internal/platform/config"
	"github.com/shopspring/decimal"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since posting and reporting depend on it
	container.Account = NewAccountService(repos.AccountRepo)

	container.Entry = NewEntryService(repos.EntryRepo, container.Account)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Account)
	container.Reconciliation = NewReconciliationService(
		repos.ReconciliationRepo,
		decimal.NewFromFloat(cfg.ReconDriftEpsilon),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.EntrySvcFacade        = (*entryService)(nil)
	_ portssvc.ReportingService      = (*reportingService)(nil)
	_ portssvc.ReconciliationService = (*reconciliationService)(nil)
)
