package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/services"
)

type OpenItemServiceTestSuite struct {
	suite.Suite
	mockOpenItemRepo *MockOpenItemReader
	mockAccountRepo  *MockAccountReader
	mockPeriodRepo   *MockPeriodReader
	mockReporting    *MockReportingReader
	service          portssvc.OpenItemSvcFacade
	ledgerID         string
	receivable       domain.Account
	periods          []domain.FiscalPeriod
}

func (suite *OpenItemServiceTestSuite) SetupTest() {
	suite.mockOpenItemRepo = new(MockOpenItemReader)
	suite.mockAccountRepo = new(MockAccountReader)
	suite.mockPeriodRepo = new(MockPeriodReader)
	suite.mockReporting = new(MockReportingReader)
	suite.service = services.NewOpenItemService(
		suite.mockOpenItemRepo,
		suite.mockAccountRepo,
		suite.mockPeriodRepo,
		suite.mockReporting,
	)

	suite.ledgerID = uuid.NewString()
	suite.receivable = domain.Account{
		AccountID:       uuid.NewString(),
		LedgerID:        suite.ledgerID,
		Number:          "1700",
		Name:            "Trade receivables",
		Type:            domain.Asset,
		TracksOpenItems: true,
	}
	suite.periods = []domain.FiscalPeriod{
		{
			PeriodID:  uuid.NewString(),
			LedgerID:  suite.ledgerID,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			State:     domain.PeriodOpen,
		},
	}
}

func (suite *OpenItemServiceTestSuite) TestGetItemByID_WrongLedger() {
	ctx := context.Background()
	item := domain.OpenItem{
		ItemID:    uuid.NewString(),
		LedgerID:  uuid.NewString(),
		AccountID: suite.receivable.AccountID,
	}

	suite.mockOpenItemRepo.On("FindItemByID", ctx, item.ItemID).Return(&item, nil).Once()

	_, err := suite.service.GetItemByID(ctx, suite.ledgerID, item.ItemID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OpenItemServiceTestSuite) TestListItemsByAccount_Success() {
	ctx := context.Background()
	items := []domain.OpenItem{
		{
			ItemID:         uuid.NewString(),
			LedgerID:       suite.ledgerID,
			AccountID:      suite.receivable.AccountID,
			Counterparty:   "Acme Oy",
			OriginalAmount: decimal.NewFromInt(250),
			Balance:        decimal.NewFromInt(100),
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockOpenItemRepo.On("ListItemsByAccount", ctx, suite.receivable.AccountID, false).Return(items, nil).Once()

	result, err := suite.service.ListItemsByAccount(ctx, suite.ledgerID, suite.receivable.AccountID, false)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("Acme Oy", result[0].Counterparty)
}

func (suite *OpenItemServiceTestSuite) TestListItemsByAccount_NonTrackingAccount() {
	ctx := context.Background()
	bank := suite.receivable
	bank.TracksOpenItems = false

	suite.mockAccountRepo.On("FindAccountByID", ctx, bank.AccountID).Return(&bank, nil).Once()

	_, err := suite.service.ListItemsByAccount(ctx, suite.ledgerID, bank.AccountID, false)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *OpenItemServiceTestSuite) TestReconcile_Matches() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockOpenItemRepo.On("SubledgerTotal", ctx, suite.receivable.AccountID).Return(decimal.NewFromInt(1250), nil).Once()
	suite.mockPeriodRepo.On("ListPeriods", ctx, suite.ledgerID).Return(suite.periods, nil).Once()
	suite.mockReporting.On("AccountBalance", ctx, suite.ledgerID, suite.receivable.AccountID, suite.periods[0].StartDate, suite.periods[0].EndDate).Return(decimal.NewFromInt(1250), nil).Once()

	resp, err := suite.service.Reconcile(ctx, suite.ledgerID, suite.receivable.AccountID)

	suite.Require().NoError(err)
	suite.True(resp.Matches)
	suite.True(resp.SubledgerTotal.Equal(decimal.NewFromInt(1250)))
	suite.True(resp.LedgerBalance.Equal(decimal.NewFromInt(1250)))
}

func (suite *OpenItemServiceTestSuite) TestReconcile_Mismatch() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockOpenItemRepo.On("SubledgerTotal", ctx, suite.receivable.AccountID).Return(decimal.NewFromInt(1250), nil).Once()
	suite.mockPeriodRepo.On("ListPeriods", ctx, suite.ledgerID).Return(suite.periods, nil).Once()
	suite.mockReporting.On("AccountBalance", ctx, suite.ledgerID, suite.receivable.AccountID, suite.periods[0].StartDate, suite.periods[0].EndDate).Return(decimal.NewFromInt(1300), nil).Once()

	resp, err := suite.service.Reconcile(ctx, suite.ledgerID, suite.receivable.AccountID)

	suite.Require().NoError(err)
	suite.False(resp.Matches, "a posting bypassed the subledger")
}

func (suite *OpenItemServiceTestSuite) TestReconcile_NoPeriods() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.receivable.AccountID).Return(&suite.receivable, nil).Once()
	suite.mockOpenItemRepo.On("SubledgerTotal", ctx, suite.receivable.AccountID).Return(decimal.Zero, nil).Once()
	suite.mockPeriodRepo.On("ListPeriods", ctx, suite.ledgerID).Return([]domain.FiscalPeriod{}, nil).Once()

	_, err := suite.service.Reconcile(ctx, suite.ledgerID, suite.receivable.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIncompleteData)
}

func TestOpenItemServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OpenItemServiceTestSuite))
}
