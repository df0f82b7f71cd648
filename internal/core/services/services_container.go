package services

import (
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, archiver portssvc.PeriodArchiver) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Account = NewAccountService(
		repos.AccountRepo,
		WithPeriodReader(repos.PeriodRepo),
		WithReportingReader(repos.ReportingRepo),
	)
	container.Allocation = NewAllocationService(repos.AllocationRepo)
	container.Vat = NewVatService(repos.VatRepo, repos.LedgerRepo, repos.AccountRepo)

	// The voucher service depends on the VAT annotator for taxable postings.
	vatAnnotator := container.Vat.(portssvc.VatAnnotatorSvc)
	container.Voucher = NewVoucherService(
		repos.VoucherRepo,
		repos.LedgerRepo,
		repos.PeriodRepo,
		container.Account,
		repos.AllocationRepo,
		repos.OpenItemRepo,
		vatAnnotator,
	)

	container.OpenItem = NewOpenItemService(
		repos.OpenItemRepo,
		repos.AccountRepo,
		repos.PeriodRepo,
		repos.ReportingRepo,
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.LedgerRepo,
		repos.AccountRepo,
		repos.PeriodRepo,
	)

	// The period service drives the lock-time archive snapshot through the
	// reporting service.
	container.Period = NewPeriodService(
		repos.PeriodRepo,
		repos.VoucherRepo,
		repos.VatRepo,
		container.Reporting,
		WithArchiver(archiver),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade     = (*ledgerService)(nil)
	_ portssvc.AccountSvcFacade    = (*accountService)(nil)
	_ portssvc.AllocationSvcFacade = (*allocationService)(nil)
	_ portssvc.VoucherSvcFacade    = (*voucherService)(nil)
	_ portssvc.OpenItemSvcFacade   = (*openItemService)(nil)
	_ portssvc.PeriodSvcFacade     = (*periodService)(nil)
	_ portssvc.VatSvcFacade        = (*vatService)(nil)
	_ portssvc.ReportingSvcFacade  = (*reportingService)(nil)
)
