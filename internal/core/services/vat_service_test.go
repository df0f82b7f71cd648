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

// --- Mock VatRepository ---
type MockVatRepository struct {
	mock.Mock
}

// Ensure MockVatRepository implements portsrepo.VatRepositoryFacade
var _ portsrepo.VatRepositoryFacade = (*MockVatRepository)(nil)

func (m *MockVatRepository) FindRateForDate(ctx context.Context, ledgerID string, class domain.VatClass, date time.Time) (*domain.VatRate, error) {
	args := m.Called(ctx, ledgerID, class, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatRate), args.Error(1)
}

func (m *MockVatRepository) ListRates(ctx context.Context, ledgerID string) ([]domain.VatRate, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatRate), args.Error(1)
}

func (m *MockVatRepository) SaveRate(ctx context.Context, rate domain.VatRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockVatRepository) FindReturnOverlapping(ctx context.Context, ledgerID string, start, end time.Time) (*domain.VatReturn, error) {
	args := m.Called(ctx, ledgerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VatReturn), args.Error(1)
}

func (m *MockVatRepository) ListReturns(ctx context.Context, ledgerID string) ([]domain.VatReturn, error) {
	args := m.Called(ctx, ledgerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VatReturn), args.Error(1)
}

func (m *MockVatRepository) FindTaxablePostings(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.Posting, error) {
	args := m.Called(ctx, ledgerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockVatRepository) FindTaxablePostingsByPaymentDate(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.Posting, error) {
	args := m.Called(ctx, ledgerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Posting), args.Error(1)
}

func (m *MockVatRepository) SaveReturnAndSeal(ctx context.Context, ret domain.VatReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountByNumber(ctx context.Context, ledgerID string, number string) (*domain.Account, error) {
	args := m.Called(ctx, ledgerID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, ledgerID string, includeHidden bool) ([]domain.Account, error) {
	args := m.Called(ctx, ledgerID, includeHidden)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountReader) IsReferenced(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite Setup ---
type VatServiceTestSuite struct {
	suite.Suite
	mockVatRepo     *MockVatRepository
	mockLedgerRepo  *MockLedgerReader
	mockAccountRepo *MockAccountReader
	service         portssvc.VatSvcFacade
	ledger          domain.Ledger
	salesAccount    domain.Account
	userID          string
}

func (suite *VatServiceTestSuite) SetupTest() {
	suite.mockVatRepo = new(MockVatRepository)
	suite.mockLedgerRepo = new(MockLedgerReader)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.service = services.NewVatService(suite.mockVatRepo, suite.mockLedgerRepo, suite.mockAccountRepo)

	suite.userID = uuid.NewString()
	suite.ledger = domain.Ledger{
		LedgerID:        uuid.NewString(),
		Name:            "Test Oy",
		CurrencyCode:    "EUR",
		NumberingScheme: domain.SchemeSingle,
		VatBasis:        domain.BasisInvoice,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		LedgerID:    suite.ledger.LedgerID,
		Number:      "3000",
		Name:        "Sales",
		Type:        domain.Revenue,
		VatClass:    domain.VatSales,
	}
}

func (suite *VatServiceTestSuite) rate(percent float64) *domain.VatRate {
	return &domain.VatRate{
		RateID:        uuid.NewString(),
		LedgerID:      suite.ledger.LedgerID,
		Class:         domain.VatSales,
		Percent:       decimal.NewFromFloat(percent),
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// --- Annotate ---

func (suite *VatServiceTestSuite) TestAnnotate_NetAccount() {
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	suite.mockVatRepo.On("FindRateForDate", ctx, suite.ledger.LedgerID, domain.VatSales, date).Return(suite.rate(25.5), nil).Once()

	annotation, err := suite.service.Annotate(ctx, &suite.ledger, &suite.salesAccount, decimal.NewFromInt(100), date)

	suite.Require().NoError(err)
	suite.Require().NotNil(annotation)
	suite.Equal(domain.VatSales, annotation.Class)
	suite.True(annotation.Basis.Equal(decimal.NewFromInt(100)))
	suite.True(annotation.Tax.Equal(decimal.NewFromFloat(25.5)), "25.5%% on a 100 net basis, got %s", annotation.Tax)
	suite.False(annotation.Deductible)
	suite.False(annotation.Sealed)
}

func (suite *VatServiceTestSuite) TestAnnotate_GrossAccount() {
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	grossAccount := suite.salesAccount
	grossAccount.GrossAmounts = true

	suite.mockVatRepo.On("FindRateForDate", ctx, suite.ledger.LedgerID, domain.VatSales, date).Return(suite.rate(25.5), nil).Once()

	annotation, err := suite.service.Annotate(ctx, &suite.ledger, &grossAccount, decimal.NewFromFloat(125.50), date)

	suite.Require().NoError(err)
	suite.Require().NotNil(annotation)
	// 125.50 * 25.5 / 125.5 = 25.50 tax, leaving a 100.00 basis
	suite.True(annotation.Tax.Equal(decimal.NewFromFloat(25.50)), "tax derived out of the gross amount, got %s", annotation.Tax)
	suite.True(annotation.Basis.Equal(decimal.NewFromInt(100)), "basis is gross minus tax, got %s", annotation.Basis)
}

func (suite *VatServiceTestSuite) TestAnnotate_PurchaseIsDeductible() {
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	purchaseAccount := suite.salesAccount
	purchaseAccount.VatClass = domain.VatPurchase

	purchaseRate := suite.rate(25.5)
	purchaseRate.Class = domain.VatPurchase
	suite.mockVatRepo.On("FindRateForDate", ctx, suite.ledger.LedgerID, domain.VatPurchase, date).Return(purchaseRate, nil).Once()

	annotation, err := suite.service.Annotate(ctx, &suite.ledger, &purchaseAccount, decimal.NewFromInt(100), date)

	suite.Require().NoError(err)
	suite.True(annotation.Deductible)
}

func (suite *VatServiceTestSuite) TestAnnotate_UntaxedAccount() {
	ctx := context.Background()
	bankAccount := suite.salesAccount
	bankAccount.VatClass = domain.VatNone

	annotation, err := suite.service.Annotate(ctx, &suite.ledger, &bankAccount, decimal.NewFromInt(100), time.Now())

	suite.Require().NoError(err)
	suite.Nil(annotation)
	suite.mockVatRepo.AssertNotCalled(suite.T(), "FindRateForDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VatServiceTestSuite) TestAnnotate_NoRateForDate() {
	ctx := context.Background()
	date := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockVatRepo.On("FindRateForDate", ctx, suite.ledger.LedgerID, domain.VatSales, date).Return(nil, apperrors.ErrNoRateForDate).Once()

	_, err := suite.service.Annotate(ctx, &suite.ledger, &suite.salesAccount, decimal.NewFromInt(100), date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoRateForDate)
}

// --- BuildReturn ---

func (suite *VatServiceTestSuite) buildRange() (time.Time, time.Time) {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *VatServiceTestSuite) TestBuildReturn_AggregatesByRate() {
	ctx := context.Background()
	start, end := suite.buildRange()
	postings := []domain.Posting{
		{
			Amount: decimal.NewFromFloat(125.50),
			Side:   domain.CreditSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatSales, Percent: decimal.NewFromFloat(25.5), Basis: decimal.NewFromInt(100), Tax: decimal.NewFromFloat(25.5)},
		},
		{
			Amount: decimal.NewFromFloat(251.00),
			Side:   domain.CreditSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatSales, Percent: decimal.NewFromFloat(25.5), Basis: decimal.NewFromInt(200), Tax: decimal.NewFromInt(51)},
		},
		{
			Amount: decimal.NewFromFloat(114.00),
			Side:   domain.DebitSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatPurchase, Percent: decimal.NewFromInt(14), Basis: decimal.NewFromInt(100), Tax: decimal.NewFromInt(14), Deductible: true},
		},
	}

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, suite.ledger.LedgerID).Return(&suite.ledger, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledger.LedgerID, start, end).Return(postings, nil).Once()

	ret, err := suite.service.BuildReturn(ctx, suite.ledger.LedgerID, start, end)

	suite.Require().NoError(err)
	suite.True(ret.Payable.Equal(decimal.NewFromFloat(76.5)), "payable 25.50+51.00, got %s", ret.Payable)
	suite.True(ret.Deductible.Equal(decimal.NewFromInt(14)))
	suite.True(ret.Net.Equal(decimal.NewFromFloat(62.5)))
	suite.Require().Len(ret.Lines, 2)
	// Lines sorted by class then percent: PURCHASE@14 before SALES@25.5
	suite.Equal(domain.VatPurchase, ret.Lines[0].Class)
	suite.Equal(domain.VatSales, ret.Lines[1].Class)
	suite.True(ret.Lines[1].Basis.Equal(decimal.NewFromInt(300)), "sales bases merged into one line, got %s", ret.Lines[1].Basis)
	suite.Equal(time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), ret.DueDate)
	suite.Nil(ret.FiledAt)
}

func (suite *VatServiceTestSuite) TestBuildReturn_CreditNoteReducesPayable() {
	ctx := context.Background()
	start, end := suite.buildRange()
	postings := []domain.Posting{
		{
			Amount: decimal.NewFromFloat(124.00),
			Side:   domain.CreditSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatSales, Percent: decimal.NewFromInt(24), Basis: decimal.NewFromInt(100), Tax: decimal.NewFromInt(24)},
		},
		{
			// Credit note: the same sales class posted on the debit side
			// reverses part of the sale.
			Amount: decimal.NewFromFloat(49.60),
			Side:   domain.DebitSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatSales, Percent: decimal.NewFromInt(24), Basis: decimal.NewFromInt(40), Tax: decimal.NewFromFloat(9.60)},
		},
	}

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, suite.ledger.LedgerID).Return(&suite.ledger, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledger.LedgerID, start, end).Return(postings, nil).Once()

	ret, err := suite.service.BuildReturn(ctx, suite.ledger.LedgerID, start, end)

	suite.Require().NoError(err)
	suite.True(ret.Payable.Equal(decimal.NewFromFloat(14.40)), "24.00 minus the 9.60 reversal, got %s", ret.Payable)
	suite.True(ret.Net.Equal(decimal.NewFromFloat(14.40)))
	suite.Require().Len(ret.Lines, 1)
	suite.True(ret.Lines[0].Basis.Equal(decimal.NewFromInt(60)), "line basis nets the reversal, got %s", ret.Lines[0].Basis)
	suite.True(ret.Lines[0].Tax.Equal(decimal.NewFromFloat(14.40)))
}

func (suite *VatServiceTestSuite) TestBuildReturn_CreditPurchaseReducesDeductible() {
	ctx := context.Background()
	start, end := suite.buildRange()
	postings := []domain.Posting{
		{
			Amount: decimal.NewFromFloat(124.00),
			Side:   domain.DebitSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatPurchase, Percent: decimal.NewFromInt(24), Basis: decimal.NewFromInt(100), Tax: decimal.NewFromInt(24), Deductible: true},
		},
		{
			Amount: decimal.NewFromFloat(62.00),
			Side:   domain.CreditSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatPurchase, Percent: decimal.NewFromInt(24), Basis: decimal.NewFromInt(50), Tax: decimal.NewFromInt(12), Deductible: true},
		},
	}

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, suite.ledger.LedgerID).Return(&suite.ledger, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledger.LedgerID, start, end).Return(postings, nil).Once()

	ret, err := suite.service.BuildReturn(ctx, suite.ledger.LedgerID, start, end)

	suite.Require().NoError(err)
	suite.True(ret.Deductible.Equal(decimal.NewFromInt(12)), "24 minus the 12 returned, got %s", ret.Deductible)
}

func (suite *VatServiceTestSuite) cashLedgerWithChart(ctx context.Context) domain.Ledger {
	cashLedger := suite.ledger
	cashLedger.VatBasis = domain.BasisCash
	cashLedger.VatClearingSales = "2939"
	cashLedger.VatClearingPurchase = "1763"
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, cashLedger.LedgerID, "2939").
		Return(&domain.Account{AccountID: uuid.NewString(), Number: "2939"}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, cashLedger.LedgerID, "1763").
		Return(&domain.Account{AccountID: uuid.NewString(), Number: "1763"}, nil).Once()
	return cashLedger
}

func (suite *VatServiceTestSuite) TestBuildReturn_CashBasisUsesPaymentDates() {
	ctx := context.Background()
	start, end := suite.buildRange()
	cashLedger := suite.cashLedgerWithChart(ctx)
	settled := []domain.Posting{
		{
			Amount: decimal.NewFromFloat(124.00),
			Side:   domain.CreditSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatSales, Percent: decimal.NewFromInt(24), Basis: decimal.NewFromInt(100), Tax: decimal.NewFromInt(24)},
		},
	}

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, cashLedger.LedgerID).Return(&cashLedger, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostingsByPaymentDate", ctx, cashLedger.LedgerID, start, end).Return(settled, nil).Once()

	ret, err := suite.service.BuildReturn(ctx, cashLedger.LedgerID, start, end)

	suite.Require().NoError(err)
	suite.True(ret.Payable.Equal(decimal.NewFromInt(24)))
	suite.mockVatRepo.AssertNotCalled(suite.T(), "FindTaxablePostings", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VatServiceTestSuite) TestBuildReturn_CashBasisUnpaidInvoiceExcluded() {
	ctx := context.Background()
	start, end := suite.buildRange()
	cashLedger := suite.cashLedgerWithChart(ctx)

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, cashLedger.LedgerID).Return(&cashLedger, nil).Once()
	// The invoice was booked inside the range but its open item is unsettled,
	// so the payment-date query returns nothing.
	suite.mockVatRepo.On("FindTaxablePostingsByPaymentDate", ctx, cashLedger.LedgerID, start, end).Return([]domain.Posting{}, nil).Once()

	ret, err := suite.service.BuildReturn(ctx, cashLedger.LedgerID, start, end)

	suite.Require().NoError(err)
	suite.True(ret.Payable.IsZero(), "unpaid sales carry no tax yet, got %s", ret.Payable)
	suite.True(ret.Net.IsZero())
	suite.Empty(ret.Lines)
}

func (suite *VatServiceTestSuite) TestBuildReturn_CashBasisNeedsClearingAccounts() {
	ctx := context.Background()
	start, end := suite.buildRange()
	cashLedger := suite.ledger
	cashLedger.VatBasis = domain.BasisCash

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, cashLedger.LedgerID).Return(&cashLedger, nil).Once()

	_, err := suite.service.BuildReturn(ctx, cashLedger.LedgerID, start, end)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIncompleteData)
}

func (suite *VatServiceTestSuite) TestBuildReturn_CashBasisMissingFromChart() {
	ctx := context.Background()
	start, end := suite.buildRange()
	cashLedger := suite.ledger
	cashLedger.VatBasis = domain.BasisCash
	cashLedger.VatClearingSales = "2939"
	cashLedger.VatClearingPurchase = "1763"

	suite.mockLedgerRepo.On("FindLedgerByID", ctx, cashLedger.LedgerID).Return(&cashLedger, nil).Once()
	suite.mockAccountRepo.On("FindAccountByNumber", ctx, cashLedger.LedgerID, "2939").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.BuildReturn(ctx, cashLedger.LedgerID, start, end)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIncompleteData)
}

// --- FileReturn ---

func (suite *VatServiceTestSuite) TestFileReturn_Success() {
	ctx := context.Background()
	start, end := suite.buildRange()
	req := dto.BuildVatReturnRequest{PeriodStart: start, PeriodEnd: end}
	postings := []domain.Posting{
		{
			Amount: decimal.NewFromFloat(125.50),
			Side:   domain.CreditSide,
			Vat:    &domain.VatAnnotation{Class: domain.VatSales, Percent: decimal.NewFromFloat(25.5), Basis: decimal.NewFromInt(100), Tax: decimal.NewFromFloat(25.5)},
		},
	}

	suite.mockVatRepo.On("FindReturnOverlapping", ctx, suite.ledger.LedgerID, start, end).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("FindLedgerByID", ctx, suite.ledger.LedgerID).Return(&suite.ledger, nil).Once()
	suite.mockVatRepo.On("FindTaxablePostings", ctx, suite.ledger.LedgerID, start, end).Return(postings, nil).Once()
	suite.mockVatRepo.On("SaveReturnAndSeal", ctx, mock.AnythingOfType("domain.VatReturn")).Return(nil).Once()

	ret, err := suite.service.FileReturn(ctx, suite.ledger.LedgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(ret.ReturnID)
	suite.Require().NotNil(ret.FiledAt)
	suite.Equal(suite.userID, ret.CreatedBy)
	suite.mockVatRepo.AssertExpectations(suite.T())
}

func (suite *VatServiceTestSuite) TestFileReturn_OverlapRejected() {
	ctx := context.Background()
	start, end := suite.buildRange()
	filed := &domain.VatReturn{ReturnID: uuid.NewString(), LedgerID: suite.ledger.LedgerID}

	suite.mockVatRepo.On("FindReturnOverlapping", ctx, suite.ledger.LedgerID, start, end).Return(filed, nil).Once()

	_, err := suite.service.FileReturn(ctx, suite.ledger.LedgerID, dto.BuildVatReturnRequest{PeriodStart: start, PeriodEnd: end}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyFiled)
	suite.mockVatRepo.AssertNotCalled(suite.T(), "SaveReturnAndSeal", mock.Anything, mock.Anything)
}

// --- CreateRate ---

func (suite *VatServiceTestSuite) TestCreateRate_Success() {
	ctx := context.Background()
	req := dto.CreateVatRateRequest{
		Class:         "SALES",
		Percent:       decimal.NewFromFloat(25.5),
		EffectiveFrom: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockVatRepo.On("SaveRate", ctx, mock.AnythingOfType("domain.VatRate")).Return(nil).Once()

	rate, err := suite.service.CreateRate(ctx, suite.ledger.LedgerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.VatSales, rate.Class)
	suite.True(rate.Percent.Equal(decimal.NewFromFloat(25.5)))
	suite.Nil(rate.EffectiveTo)
}

func (suite *VatServiceTestSuite) TestCreateRate_NonPositivePercent() {
	ctx := context.Background()
	req := dto.CreateVatRateRequest{
		Class:         "SALES",
		Percent:       decimal.Zero,
		EffectiveFrom: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := suite.service.CreateRate(ctx, suite.ledger.LedgerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockVatRepo.AssertNotCalled(suite.T(), "SaveRate", mock.Anything, mock.Anything)
}

func TestVatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VatServiceTestSuite))
}
