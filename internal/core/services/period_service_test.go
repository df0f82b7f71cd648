package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
)

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

// Ensure MockPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, ledgerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, ledgerID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriodState(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdateArchiveStatus(ctx context.Context, periodID string, status domain.ArchiveStatus, ref string, userID string, now time.Time) error {
	args := m.Called(ctx, periodID, status, ref, userID, now)
	return args.Error(0)
}

func (m *MockPeriodRepository) SetStatement(ctx context.Context, periodID string, ref string, finalized bool, userID string, now time.Time) error {
	args := m.Called(ctx, periodID, ref, finalized, userID, now)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdateHeadcount(ctx context.Context, periodID string, headcount int, userID string, now time.Time) error {
	args := m.Called(ctx, periodID, headcount, userID, now)
	return args.Error(0)
}

// --- Mock VatReturnReader ---
type MockVatReturnReader struct {
	mock.Mock
}

var _ portsrepo.VatReturnReader = (*MockVatReturnReader)(nil)

func (m *MockVatReturnReader) FindReturnOverlapping(ctx context.Context, ledgerID string, start, end time.Time) (*domain.VatReturn, error) {
	args := m.Called(ctx, ledgerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatReturn), args.Error(1)
}

func (m *MockVatReturnReader) ListReturns(ctx context.Context, ledgerID string) ([]domain.VatReturn, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatReturn), args.Error(1)
}

func (m *MockVatReturnReader) FindTaxablePostings(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.Posting, error) {
	args := m.Called(ctx, ledgerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockVatReturnReader) FindTaxablePostingsByPaymentDate(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.Posting, error) {
	args := m.Called(ctx, ledgerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

// --- Mock ReportingService (as used by PeriodService) ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) Postings(ctx context.Context, ledgerID string, params dto.PostingQueryParams) ([]domain.ReportPosting, error) {
	args := m.Called(ctx, ledgerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportPosting), args.Error(1)
}

func (m *MockReportingService) TrialBalance(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, ledgerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingService) PeriodSnapshot(ctx context.Context, ledgerID string, periodID string) ([]byte, error) {
	args := m.Called(ctx, ledgerID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Mock PeriodArchiver ---
type MockPeriodArchiver struct {
	mock.Mock
}

var _ portssvc.PeriodArchiver = (*MockPeriodArchiver)(nil)

func (m *MockPeriodArchiver) Store(ctx context.Context, ledgerID string, periodID string, snapshot []byte) (string, error) {
	args := m.Called(ctx, ledgerID, periodID, snapshot)
	return args.String(0), args.Error(1)
}

// --- Test Suite Setup ---
type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo  *MockPeriodRepository
	mockVoucherRepo *MockVoucherRepository
	mockVatRepo     *MockVatReturnReader
	mockReporting   *MockReportingService
	mockArchiver    *MockPeriodArchiver
	service         portssvc.PeriodSvcFacade
	ledgerID        string
	userID          string
	openPeriod      domain.FiscalPeriod
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockVoucherRepo = new(MockVoucherRepository)
	suite.mockVatRepo = new(MockVatReturnReader)
	suite.mockReporting = new(MockReportingService)
	suite.mockArchiver = new(MockPeriodArchiver)
	suite.service = services.NewPeriodService(
		suite.mockPeriodRepo,
		suite.mockVoucherRepo,
		suite.mockVatRepo,
		suite.mockReporting,
		services.WithArchiver(suite.mockArchiver),
	)

	suite.ledgerID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.openPeriod = domain.FiscalPeriod{
		PeriodID:      uuid.NewString(),
		LedgerID:      suite.ledgerID,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		State:         domain.PeriodOpen,
		ArchiveStatus: domain.ArchiveNone,
	}
}

// expectNoWarnings stubs the warning probes to report a clean period.
func (suite *PeriodServiceTestSuite) expectNoWarnings(ctx context.Context) {
	suite.mockVoucherRepo.On("CountDraftVouchersInRange", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return(0, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return([]domain.Posting{}, nil).Once()
}

// --- AddPeriod ---

func (suite *PeriodServiceTestSuite) TestAddPeriod_FirstPeriod() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Opening:   true,
	}

	suite.mockPeriodRepo.On("ListPeriods", ctx, suite.ledgerID).Return([]domain.FiscalPeriod{}, nil).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Return(nil).Once()

	period, err := suite.service.AddPeriod(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.State)
	suite.True(period.Opening)
	suite.Equal(domain.ArchiveNone, period.ArchiveStatus)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestAddPeriod_AppendsContiguously() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("ListPeriods", ctx, suite.ledgerID).Return([]domain.FiscalPeriod{suite.openPeriod}, nil).Once()
	suite.mockPeriodRepo.On("SavePeriod", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Return(nil).Once()

	period, err := suite.service.AddPeriod(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(req.StartDate, period.StartDate)
}

func (suite *PeriodServiceTestSuite) TestAddPeriod_GapRejected() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	suite.mockPeriodRepo.On("ListPeriods", ctx, suite.ledgerID).Return([]domain.FiscalPeriod{suite.openPeriod}, nil).Once()

	_, err := suite.service.AddPeriod(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrOverlap)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestAddPeriod_EndBeforeStart() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.AddPeriod(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PeriodServiceTestSuite) TestAddPeriod_OpeningMustBeFirst() {
	ctx := context.Background()
	req := dto.CreatePeriodRequest{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Opening:   true,
	}

	suite.mockPeriodRepo.On("ListPeriods", ctx, suite.ledgerID).Return([]domain.FiscalPeriod{suite.openPeriod}, nil).Once()

	_, err := suite.service.AddPeriod(ctx, suite.ledgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- LockWarnings ---

func (suite *PeriodServiceTestSuite) TestLockWarnings_DraftVouchers() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockVoucherRepo.On("CountDraftVouchersInRange", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return(3, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return([]domain.Posting{}, nil).Once()

	warnings, err := suite.service.LockWarnings(ctx, suite.ledgerID, suite.openPeriod.PeriodID)

	suite.Require().NoError(err)
	suite.Require().Len(warnings, 1)
	suite.Equal(domain.WarnDraftVouchers, warnings[0].Code)
}

func (suite *PeriodServiceTestSuite) TestLockWarnings_UnsealedVat() {
	ctx := context.Background()
	taxable := []domain.Posting{
		{
			PostingID: uuid.NewString(),
			Amount:    decimal.NewFromInt(100),
			Side:      domain.CreditSide,
			Vat:       &domain.VatAnnotation{Class: domain.VatSales, Percent: decimal.NewFromFloat(25.5)},
		},
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockVoucherRepo.On("CountDraftVouchersInRange", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return(0, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return(taxable, nil).Once()

	warnings, err := suite.service.LockWarnings(ctx, suite.ledgerID, suite.openPeriod.PeriodID)

	suite.Require().NoError(err)
	suite.Require().Len(warnings, 1)
	suite.Equal(domain.WarnUnfiledVatReturn, warnings[0].Code)
}

func (suite *PeriodServiceTestSuite) TestLockWarnings_SealedVatIsClean() {
	ctx := context.Background()
	taxable := []domain.Posting{
		{
			PostingID: uuid.NewString(),
			Amount:    decimal.NewFromInt(100),
			Side:      domain.CreditSide,
			Vat:       &domain.VatAnnotation{Class: domain.VatSales, Percent: decimal.NewFromFloat(25.5), Sealed: true},
		},
	}

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()
	suite.mockVoucherRepo.On("CountDraftVouchersInRange", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return(0, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return(taxable, nil).Once()

	warnings, err := suite.service.LockWarnings(ctx, suite.ledgerID, suite.openPeriod.PeriodID)

	suite.Require().NoError(err)
	suite.Empty(warnings)
}

// --- Lock ---

func (suite *PeriodServiceTestSuite) TestLock_Success() {
	ctx := context.Background()
	archived := make(chan struct{})
	snapshot := []byte(`{"ledger":{}}`)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Twice()
	suite.expectNoWarnings(ctx)
	suite.mockPeriodRepo.On("UpdatePeriodState", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Return(nil).Once()
	suite.mockReporting.On("PeriodSnapshot", mock.Anything, suite.ledgerID, suite.openPeriod.PeriodID).Return(snapshot, nil).Once()
	suite.mockArchiver.On("Store", mock.Anything, suite.ledgerID, suite.openPeriod.PeriodID, snapshot).Return("gs://archive/snapshot.json", nil).Once()
	suite.mockPeriodRepo.On("UpdateArchiveStatus", mock.Anything, suite.openPeriod.PeriodID, domain.ArchiveDone, "gs://archive/snapshot.json", suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { close(archived) }).
		Return(nil).Once()

	period, err := suite.service.Lock(ctx, suite.ledgerID, suite.openPeriod.PeriodID, false, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodLocked, period.State)
	suite.Equal(domain.ArchiveRequested, period.ArchiveStatus)
	suite.Empty(period.LockAcknowledgedBy)

	select {
	case <-archived:
	case <-time.After(2 * time.Second):
		suite.FailNow("archive snapshot never completed")
	}
	suite.mockArchiver.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestLock_WarningsRequireAcknowledgment() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Twice()
	suite.mockVoucherRepo.On("CountDraftVouchersInRange", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return(2, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return([]domain.Posting{}, nil).Once()

	_, err := suite.service.Lock(ctx, suite.ledgerID, suite.openPeriod.PeriodID, false, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIncompleteVoucherCheck)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdatePeriodState", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestLock_AcknowledgmentIsRecorded() {
	ctx := context.Background()
	archived := make(chan struct{})

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Twice()
	suite.mockVoucherRepo.On("CountDraftVouchersInRange", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return(2, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledgerID, suite.openPeriod.StartDate, suite.openPeriod.EndDate).Return([]domain.Posting{}, nil).Once()

	var lockedPeriod domain.FiscalPeriod
	suite.mockPeriodRepo.On("UpdatePeriodState", ctx, mock.AnythingOfType("domain.FiscalPeriod")).
		Run(func(args mock.Arguments) {
			lockedPeriod = args.Get(1).(domain.FiscalPeriod)
		}).
		Return(nil).Once()
	suite.mockReporting.On("PeriodSnapshot", mock.Anything, suite.ledgerID, suite.openPeriod.PeriodID).Return([]byte(`{}`), nil).Once()
	suite.mockArchiver.On("Store", mock.Anything, suite.ledgerID, suite.openPeriod.PeriodID, mock.Anything).Return("ref", nil).Once()
	suite.mockPeriodRepo.On("UpdateArchiveStatus", mock.Anything, suite.openPeriod.PeriodID, domain.ArchiveDone, "ref", suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { close(archived) }).
		Return(nil).Once()

	_, err := suite.service.Lock(ctx, suite.ledgerID, suite.openPeriod.PeriodID, true, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(suite.userID, lockedPeriod.LockAcknowledgedBy)
	suite.NotNil(lockedPeriod.LockAcknowledgedAt)

	select {
	case <-archived:
	case <-time.After(2 * time.Second):
		suite.FailNow("archive snapshot never completed")
	}
}

func (suite *PeriodServiceTestSuite) TestLock_ArchiveFailureIsAdvisory() {
	ctx := context.Background()
	archived := make(chan struct{})

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Twice()
	suite.expectNoWarnings(ctx)
	suite.mockPeriodRepo.On("UpdatePeriodState", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Return(nil).Once()
	suite.mockReporting.On("PeriodSnapshot", mock.Anything, suite.ledgerID, suite.openPeriod.PeriodID).Return(nil, apperrors.ErrInternal).Once()
	suite.mockPeriodRepo.On("UpdateArchiveStatus", mock.Anything, suite.openPeriod.PeriodID, domain.ArchiveFailed, "", suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { close(archived) }).
		Return(nil).Once()

	period, err := suite.service.Lock(ctx, suite.ledgerID, suite.openPeriod.PeriodID, false, suite.userID)

	suite.Require().NoError(err, "archive failure must not fail the lock")
	suite.Equal(domain.PeriodLocked, period.State)

	select {
	case <-archived:
	case <-time.After(2 * time.Second):
		suite.FailNow("archive status was never recorded")
	}
}

func (suite *PeriodServiceTestSuite) TestLock_AlreadyLocked() {
	ctx := context.Background()
	locked := suite.openPeriod
	locked.State = domain.PeriodLocked

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, locked.PeriodID).Return(&locked, nil).Once()

	_, err := suite.service.Lock(ctx, suite.ledgerID, locked.PeriodID, false, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- Unlock ---

func (suite *PeriodServiceTestSuite) TestUnlock_Success() {
	ctx := context.Background()
	locked := suite.openPeriod
	locked.State = domain.PeriodLocked

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, locked.PeriodID).Return(&locked, nil).Once()
	suite.mockPeriodRepo.On("UpdatePeriodState", ctx, mock.AnythingOfType("domain.FiscalPeriod")).Return(nil).Once()

	period, err := suite.service.Unlock(ctx, suite.ledgerID, locked.PeriodID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodOpen, period.State)
}

func (suite *PeriodServiceTestSuite) TestUnlock_ArchivedStaysClosed() {
	ctx := context.Background()
	archivedPeriod := suite.openPeriod
	archivedPeriod.State = domain.PeriodArchived

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, archivedPeriod.PeriodID).Return(&archivedPeriod, nil).Once()

	_, err := suite.service.Unlock(ctx, suite.ledgerID, archivedPeriod.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PeriodServiceTestSuite) TestUnlock_FinalizedStatementBlocks() {
	ctx := context.Background()
	locked := suite.openPeriod
	locked.State = domain.PeriodLocked
	locked.StatementRef = "statements/2024.pdf"
	locked.StatementFinalized = true

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, locked.PeriodID).Return(&locked, nil).Once()

	_, err := suite.service.Unlock(ctx, suite.ledgerID, locked.PeriodID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStatementFinalized)
}

// --- SetStatement / UpdateHeadcount ---

func (suite *PeriodServiceTestSuite) TestSetStatement_RequiresLockedPeriod() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.openPeriod.PeriodID).Return(&suite.openPeriod, nil).Once()

	_, err := suite.service.SetStatement(ctx, suite.ledgerID, suite.openPeriod.PeriodID, dto.SetStatementRequest{
		StatementRef: "statements/2024.pdf",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PeriodServiceTestSuite) TestSetStatement_Finalizes() {
	ctx := context.Background()
	locked := suite.openPeriod
	locked.State = domain.PeriodLocked

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, locked.PeriodID).Return(&locked, nil).Once()
	suite.mockPeriodRepo.On("SetStatement", ctx, locked.PeriodID, "statements/2024.pdf", true, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	period, err := suite.service.SetStatement(ctx, suite.ledgerID, locked.PeriodID, dto.SetStatementRequest{
		StatementRef: "statements/2024.pdf",
		Finalized:    true,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.True(period.StatementFinalized)
	suite.Equal("statements/2024.pdf", period.StatementRef)
}

func (suite *PeriodServiceTestSuite) TestUpdateHeadcount_NegativeRejected() {
	ctx := context.Background()

	err := suite.service.UpdateHeadcount(ctx, suite.ledgerID, suite.openPeriod.PeriodID, -1, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
