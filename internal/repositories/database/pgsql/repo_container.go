package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/rusingacademy/ledger-service/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	reconciliationRepo := newReconciliationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		EntryRepo:          entryRepo,
		ReportingRepo:      reportingRepo,
		ReconciliationRepo: reconciliationRepo,
	}
}
