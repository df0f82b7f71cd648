package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/accounting"
)

func TestCalculateSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		side        domain.PostingSide
		accountType domain.AccountType
		want        decimal.Decimal
	}{
		{"debit to asset is positive", domain.DebitSide, domain.Asset, decimal.NewFromInt(100)},
		{"credit to asset is negative", domain.CreditSide, domain.Asset, decimal.NewFromInt(-100)},
		{"debit to expense is positive", domain.DebitSide, domain.Expense, decimal.NewFromInt(100)},
		{"debit to liability is negative", domain.DebitSide, domain.Liability, decimal.NewFromInt(-100)},
		{"credit to revenue is positive", domain.CreditSide, domain.Revenue, decimal.NewFromInt(100)},
		{"credit to equity is positive", domain.CreditSide, domain.Equity, decimal.NewFromInt(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posting := domain.Posting{Amount: decimal.NewFromInt(100), Side: tt.side}
			got, err := accounting.CalculateSignedAmount(posting, tt.accountType)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestCalculateSignedAmount_UnknownType(t *testing.T) {
	posting := domain.Posting{Amount: decimal.NewFromInt(100), Side: domain.DebitSide}
	_, err := accounting.CalculateSignedAmount(posting, domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestValidatePostingAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr bool
	}{
		{"positive integer", decimal.NewFromInt(100), false},
		{"two decimal places", decimal.NewFromFloat(99.99), false},
		{"one cent", decimal.NewFromFloat(0.01), false},
		{"zero", decimal.Zero, true},
		{"negative", decimal.NewFromInt(-5), true},
		{"sub-cent fraction", decimal.NewFromFloat(10.001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidatePostingAmount(tt.amount)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVoucherBalance(t *testing.T) {
	debit := func(amount float64) domain.Posting {
		return domain.Posting{Amount: decimal.NewFromFloat(amount), Side: domain.DebitSide}
	}
	credit := func(amount float64) domain.Posting {
		return domain.Posting{Amount: decimal.NewFromFloat(amount), Side: domain.CreditSide}
	}

	t.Run("balanced pair", func(t *testing.T) {
		err := accounting.ValidateVoucherBalance([]domain.Posting{debit(100), credit(100)})
		assert.NoError(t, err)
	})

	t.Run("balanced split", func(t *testing.T) {
		err := accounting.ValidateVoucherBalance([]domain.Posting{debit(125.50), credit(100), credit(25.50)})
		assert.NoError(t, err)
	})

	t.Run("off by one cent", func(t *testing.T) {
		err := accounting.ValidateVoucherBalance([]domain.Posting{debit(100), credit(99.99)})
		assert.ErrorIs(t, err, apperrors.ErrUnbalancedVoucher)
	})

	t.Run("single posting", func(t *testing.T) {
		err := accounting.ValidateVoucherBalance([]domain.Posting{debit(100)})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative amount rejected before balancing", func(t *testing.T) {
		err := accounting.ValidateVoucherBalance([]domain.Posting{debit(-100), credit(-100)})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestVoucherTotal(t *testing.T) {
	postings := []domain.Posting{
		{Amount: decimal.NewFromFloat(100.50), Side: domain.DebitSide},
		{Amount: decimal.NewFromInt(50), Side: domain.DebitSide},
		{Amount: decimal.NewFromFloat(150.50), Side: domain.CreditSide},
	}
	total := accounting.VoucherTotal(postings)
	assert.True(t, total.Equal(decimal.NewFromFloat(150.50)), "got %s", total)
}

func TestVatFromNet(t *testing.T) {
	tests := []struct {
		name    string
		net     decimal.Decimal
		percent decimal.Decimal
		want    decimal.Decimal
	}{
		{"standard rate", decimal.NewFromInt(100), decimal.NewFromFloat(25.5), decimal.NewFromFloat(25.5)},
		{"reduced rate", decimal.NewFromInt(100), decimal.NewFromInt(14), decimal.NewFromInt(14)},
		{"rounds half up", decimal.NewFromFloat(10.01), decimal.NewFromFloat(25.5), decimal.NewFromFloat(2.55)},
		{"zero basis", decimal.Zero, decimal.NewFromFloat(25.5), decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.VatFromNet(tt.net, tt.percent)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestVatFromGross(t *testing.T) {
	tests := []struct {
		name    string
		gross   decimal.Decimal
		percent decimal.Decimal
		want    decimal.Decimal
	}{
		{"standard rate", decimal.NewFromFloat(125.50), decimal.NewFromFloat(25.5), decimal.NewFromFloat(25.50)},
		{"reduced rate", decimal.NewFromInt(114), decimal.NewFromInt(14), decimal.NewFromInt(14)},
		{"rounded", decimal.NewFromInt(100), decimal.NewFromFloat(25.5), decimal.NewFromFloat(20.32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.VatFromGross(tt.gross, tt.percent)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNetFromGross(t *testing.T) {
	net := accounting.NetFromGross(decimal.NewFromFloat(125.50), decimal.NewFromFloat(25.5))
	assert.True(t, net.Equal(decimal.NewFromInt(100)), "got %s", net)

	// Net plus tax always reassembles the gross amount.
	gross := decimal.NewFromFloat(99.37)
	percent := decimal.NewFromFloat(25.5)
	sum := accounting.NetFromGross(gross, percent).Add(accounting.VatFromGross(gross, percent))
	assert.True(t, gross.Equal(sum), "got %s", sum)
}
