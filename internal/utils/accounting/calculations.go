package accounting

import (
	"fmt"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a posting amount based on
// account type and posting side. Used by services and repositories alike so
// balance arithmetic stays consistent.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(posting domain.Posting, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := posting.Amount
	isDebit := posting.Side == domain.DebitSide

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, posting.AccountID)
	}
	return signedAmount, nil
}

// ValidatePostingAmount checks the one-sided positive-amount rule: the amount
// must be strictly positive and expressed at minor-currency-unit granularity
// (no fractions of a cent).
func ValidatePostingAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: posting amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	cents := amount.Mul(decimal.NewFromInt(100))
	if !cents.Equal(cents.Floor()) {
		return fmt.Errorf("%w: posting amount %s has more than 2 decimal places", apperrors.ErrValidation, amount.String())
	}
	return nil
}

// ValidateVoucherBalance checks the double-entry invariant over a voucher's
// postings: sum of debit lines equals sum of credit lines exactly, at cent
// granularity, with no tolerance.
func ValidateVoucherBalance(postings []domain.Posting) error {
	if len(postings) < 2 {
		return fmt.Errorf("%w: voucher must have at least two postings", apperrors.ErrValidation)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, p := range postings {
		if err := ValidatePostingAmount(p.Amount); err != nil {
			return err
		}
		if p.Side == domain.DebitSide {
			debits = debits.Add(p.Amount)
		} else {
			credits = credits.Add(p.Amount)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			apperrors.ErrUnbalancedVoucher, debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}

// VoucherTotal computes the economic value of a balanced voucher: the sum of
// its debit side.
func VoucherTotal(postings []domain.Posting) decimal.Decimal {
	total := decimal.Zero
	for _, p := range postings {
		if p.Side == domain.DebitSide {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// VatFromNet computes the tax on a net (tax-exclusive) basis amount, rounded
// half-up to cents.
func VatFromNet(net decimal.Decimal, percent decimal.Decimal) decimal.Decimal {
	return net.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}

// VatFromGross splits a gross (tax-inclusive) amount into its tax portion:
// tax = gross * p / (100 + p), rounded half-up to cents.
func VatFromGross(gross decimal.Decimal, percent decimal.Decimal) decimal.Decimal {
	return gross.Mul(percent).Div(percent.Add(decimal.NewFromInt(100))).Round(2)
}

// NetFromGross strips the tax portion out of a gross amount.
func NetFromGross(gross decimal.Decimal, percent decimal.Decimal) decimal.Decimal {
	return gross.Sub(VatFromGross(gross, percent))
}
