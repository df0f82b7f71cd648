package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	ledgerRepo := newPgxLedgerRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	allocationRepo := newPgxAllocationRepository(dbPool)
	openItemRepo := newPgxOpenItemRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool, openItemRepo)
	periodRepo := newPgxPeriodRepository(dbPool)
	vatRepo := newPgxVatRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		LedgerRepo:     ledgerRepo,
		AccountRepo:    accountRepo,
		AllocationRepo: allocationRepo,
		VoucherRepo:    voucherRepo,
		OpenItemRepo:   openItemRepo,
		PeriodRepo:     periodRepo,
		VatRepo:        vatRepo,
		ReportingRepo:  reportingRepo,
	}
}
