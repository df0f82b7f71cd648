package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LedgerRepo     LedgerRepositoryFacade
	AccountRepo    AccountRepositoryFacade
	AllocationRepo AllocationRepositoryFacade
	VoucherRepo    VoucherRepositoryWithTx
	OpenItemRepo   OpenItemRepositoryFacade
	PeriodRepo     PeriodRepositoryFacade
	VatRepo        VatRepositoryFacade
	ReportingRepo  ReportingRepositoryFacade
}
