package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirjuri-app/kirjuri_backend/internal/apperrors"
	"github.com/kirjuri-app/kirjuri_backend/internal/core/domain"
	portsrepo "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/repositories"
	portssvc "github.com/kirjuri-app/kirjuri_backend/internal/core/ports/services"
	"github.com/kirjuri-app/kirjuri_backend/internal/dto"
	"github.com/kirjuri-app/kirjuri_backend/internal/middleware"
	"github.com/kirjuri-app/kirjuri_backend/internal/utils/accounting"
)

// maxRecordAttempts bounds the retry loop around sequence assignment
// conflicts during voucher commit.
const maxRecordAttempts = 3

// voucherService drives the voucher lifecycle: draft, posting entry, commit,
// delete, and bulk import.
type voucherService struct {
	voucherRepo    portsrepo.VoucherRepositoryWithTx
	ledgerRepo     portsrepo.LedgerReader
	periodRepo     portsrepo.PeriodReader
	accountSvc     portssvc.AccountSvcFacade
	allocationRepo portsrepo.AllocationReader
	openItemRepo   portsrepo.OpenItemReader
	vatSvc         portssvc.VatAnnotatorSvc
}

// NewVoucherService creates a new VoucherService.
func NewVoucherService(
	voucherRepo portsrepo.VoucherRepositoryWithTx,
	ledgerRepo portsrepo.LedgerReader,
	periodRepo portsrepo.PeriodReader,
	accountSvc portssvc.AccountSvcFacade,
	allocationRepo portsrepo.AllocationReader,
	openItemRepo portsrepo.OpenItemReader,
	vatSvc portssvc.VatAnnotatorSvc,
) portssvc.VoucherSvcFacade {
	return &voucherService{
		voucherRepo:    voucherRepo,
		ledgerRepo:     ledgerRepo,
		periodRepo:     periodRepo,
		accountSvc:     accountSvc,
		allocationRepo: allocationRepo,
		openItemRepo:   openItemRepo,
		vatSvc:         vatSvc,
	}
}

// Ensure voucherService implements the portssvc.VoucherSvcFacade interface
var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

// seriesFor resolves the numbering series a voucher draws its sequence from.
func seriesFor(scheme domain.NumberingScheme, voucherType domain.VoucherType) string {
	switch scheme {
	case domain.SchemeByType:
		switch voucherType {
		case domain.Sales:
			return "SL"
		case domain.Purchase:
			return "PU"
		case domain.CashReceipt:
			return "CR"
		case domain.CashPayment:
			return "CP"
		case domain.Bank:
			return "BK"
		default:
			return "GL"
		}
	case domain.SchemeCashSeparate:
		if voucherType.IsCash() {
			return "CA"
		}
		return "V"
	default: // SchemeSingle
		return "V"
	}
}

// openPeriodForDate resolves the fiscal period containing the date and checks
// that it accepts postings.
func (s *voucherService) openPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.FiscalPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, ledgerID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodDateOutOfRange, date.Format("2006-01-02"))
		}
		return nil, err
	}
	if period.State != domain.PeriodOpen {
		return nil, fmt.Errorf("%w: period %s..%s is %s", apperrors.ErrPeriodClosed,
			period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"), period.State)
	}
	return period, nil
}

// CreateDraft opens a new draft voucher. The date must fall inside an open
// fiscal period; the series is fixed here, the sequence only at record time.
func (s *voucherService) CreateDraft(ctx context.Context, ledgerID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.openPeriodForDate(ctx, ledgerID, req.Date); err != nil {
		return nil, err
	}

	voucherType := domain.VoucherType(req.Type)
	if voucherType == "" {
		voucherType = domain.General
	}

	now := time.Now().UTC()
	voucher := domain.Voucher{
		VoucherID: uuid.NewString(),
		LedgerID:  ledgerID,
		Type:      voucherType,
		Series:    seriesFor(ledger.NumberingScheme, voucherType),
		Date:      req.Date,
		Title:     req.Title,
		State:     domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.voucherRepo.SaveDraft(ctx, voucher); err != nil {
		logger.Error("Failed to save draft voucher", slog.String("error", err.Error()))
		return nil, err
	}
	return &voucher, nil
}

// buildPosting validates a posting spec against the voucher and turns it into
// a domain posting, including the VAT annotation for taxable accounts.
func (s *voucherService) buildPosting(ctx context.Context, ledger *domain.Ledger, voucher *domain.Voucher, spec dto.PostingSpec, userID string, now time.Time) (*domain.Posting, error) {
	if err := accounting.ValidatePostingAmount(spec.Amount); err != nil {
		return nil, err
	}

	account, err := s.accountSvc.GetAccountByNumber(ctx, ledger.LedgerID, spec.AccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not in chart", apperrors.ErrValidation, spec.AccountNumber)
		}
		return nil, err
	}
	if account.Hidden {
		return nil, fmt.Errorf("%w: account %s is hidden", apperrors.ErrValidation, spec.AccountNumber)
	}

	if spec.AllocationID != "" {
		allocation, err := s.allocationRepo.FindAllocationByID(ctx, spec.AllocationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: allocation %s not found", apperrors.ErrValidation, spec.AllocationID)
			}
			return nil, err
		}
		if allocation.LedgerID != ledger.LedgerID {
			return nil, fmt.Errorf("%w: allocation %s not found", apperrors.ErrValidation, spec.AllocationID)
		}
		if !allocation.ValidOn(voucher.Date) {
			return nil, fmt.Errorf("%w: allocation %s not valid on %s", apperrors.ErrValidation,
				allocation.Name, voucher.Date.Format("2006-01-02"))
		}
	}

	// Open-item resolution is mandatory on tracking accounts and forbidden
	// elsewhere. Matching is explicit: an APPLY names the item.
	var openItemRef *domain.OpenItemRef
	if account.TracksOpenItems {
		if spec.OpenItem == nil {
			return nil, fmt.Errorf("%w: account %s tracks open items, posting must carry a resolution", apperrors.ErrValidation, account.Number)
		}
		choice := domain.OpenItemChoice(spec.OpenItem.Choice)
		switch choice {
		case domain.NewItem:
			if spec.OpenItem.Counterparty == "" {
				return nil, fmt.Errorf("%w: new open item requires a counterparty", apperrors.ErrValidation)
			}
		case domain.ApplyItem:
			if spec.OpenItem.ItemID == "" {
				return nil, fmt.Errorf("%w: open item application must name the item", apperrors.ErrValidation)
			}
			item, err := s.openItemRepo.FindItemByID(ctx, spec.OpenItem.ItemID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: open item %s not found", apperrors.ErrValidation, spec.OpenItem.ItemID)
				}
				return nil, err
			}
			if item.AccountID != account.AccountID {
				return nil, fmt.Errorf("%w: open item %s belongs to a different account", apperrors.ErrValidation, spec.OpenItem.ItemID)
			}
			// An application may settle the item but not flip its sign unless
			// the caller marked it an overpayment. The repository re-checks
			// under lock at record time; this rejects the obvious case early.
			delta := spec.Amount
			if domain.PostingSide(spec.Side) == domain.CreditSide {
				delta = delta.Neg()
			}
			newBalance := item.Balance.Add(delta)
			if !spec.OpenItem.Overpayment && newBalance.Sign() != 0 && newBalance.Sign() == -item.Balance.Sign() {
				return nil, apperrors.ErrOverApplication
			}
		default:
			return nil, fmt.Errorf("%w: unknown open item choice %q", apperrors.ErrValidation, spec.OpenItem.Choice)
		}
		openItemRef = &domain.OpenItemRef{
			Choice:       choice,
			ItemID:       spec.OpenItem.ItemID,
			Counterparty: spec.OpenItem.Counterparty,
			Overpayment:  spec.OpenItem.Overpayment,
		}
	} else if spec.OpenItem != nil {
		return nil, fmt.Errorf("%w: account %s does not track open items", apperrors.ErrValidation, account.Number)
	}

	annotation, err := s.vatSvc.Annotate(ctx, ledger, account, spec.Amount, voucher.Date)
	if err != nil {
		return nil, err
	}

	return &domain.Posting{
		PostingID:    uuid.NewString(),
		VoucherID:    voucher.VoucherID,
		AccountID:    account.AccountID,
		Amount:       spec.Amount,
		Side:         domain.PostingSide(spec.Side),
		Description:  spec.Description,
		AllocationID: spec.AllocationID,
		OpenItem:     openItemRef,
		Vat:          annotation,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// AddPosting appends a posting line to a draft voucher.
func (s *voucherService) AddPosting(ctx context.Context, ledgerID string, voucherID string, spec dto.PostingSpec, userID string) (*domain.Voucher, error) {
	voucher, err := s.GetVoucherByID(ctx, ledgerID, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.State != domain.Draft {
		return nil, fmt.Errorf("%w: postings can only change on a draft voucher", apperrors.ErrConflict)
	}

	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	posting, err := s.buildPosting(ctx, ledger, voucher, spec, userID, now)
	if err != nil {
		return nil, err
	}

	voucher.Postings = append(voucher.Postings, *posting)
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID

	if err := s.voucherRepo.ReplaceDraftPostings(ctx, *voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// UpdateVoucher updates the header of a voucher whose period is unlocked. A
// recorded voucher may not move to another period: its sequence belongs to the
// period it was numbered in.
func (s *voucherService) UpdateVoucher(ctx context.Context, ledgerID string, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error) {
	voucher, err := s.GetVoucherByID(ctx, ledgerID, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.State == domain.Deleted {
		return nil, fmt.Errorf("%w: voucher is deleted", apperrors.ErrConflict)
	}

	currentPeriod, err := s.periodRepo.FindPeriodForDate(ctx, ledgerID, voucher.Date)
	if err != nil {
		// A draft may sit on a date no period covers yet; anything else is a
		// real failure.
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		currentPeriod = nil
	} else if currentPeriod.State != domain.PeriodOpen {
		return nil, apperrors.ErrPeriodLocked
	}

	if req.Date != nil && !req.Date.Equal(voucher.Date) {
		newPeriod, err := s.openPeriodForDate(ctx, ledgerID, *req.Date)
		if err != nil {
			return nil, err
		}
		if voucher.State == domain.Recorded && currentPeriod != nil && newPeriod.PeriodID != currentPeriod.PeriodID {
			return nil, fmt.Errorf("%w: recorded voucher cannot move to another fiscal period", apperrors.ErrConflict)
		}
		voucher.Date = *req.Date
	}
	if req.Title != nil {
		voucher.Title = *req.Title
	}
	voucher.LastUpdatedAt = time.Now().UTC()
	voucher.LastUpdatedBy = userID

	if err := s.voucherRepo.UpdateVoucherHeader(ctx, *voucher); err != nil {
		return nil, err
	}
	return voucher, nil
}

// openItemMutations derives the subledger side effects of committing (or, with
// reverse set, deleting) a voucher. The signed delta convention is debit
// positive, credit negative, so receivable items carry positive balances and
// payable items negative ones.
func openItemMutations(voucher *domain.Voucher, reverse bool) []domain.OpenItemMutation {
	mutations := []domain.OpenItemMutation{}
	for i := range voucher.Postings {
		p := &voucher.Postings[i]
		if p.OpenItem == nil {
			continue
		}
		delta := p.Amount
		if p.Side == domain.CreditSide {
			delta = delta.Neg()
		}
		if reverse {
			delta = delta.Neg()
		}

		switch p.OpenItem.Choice {
		case domain.NewItem:
			if reverse {
				// Undo the item this voucher opened. The sign flip is
				// intentional, so the overpayment guard is bypassed.
				mutations = append(mutations, domain.OpenItemMutation{
					Apply: &domain.OpenItemApplication{
						ItemID:      p.OpenItem.ItemID,
						Delta:       delta,
						Overpayment: true,
					},
				})
				continue
			}
			itemID := uuid.NewString()
			p.OpenItem.ItemID = itemID
			mutations = append(mutations, domain.OpenItemMutation{
				Open: &domain.OpenItem{
					ItemID:         itemID,
					LedgerID:       voucher.LedgerID,
					AccountID:      p.AccountID,
					Counterparty:   p.OpenItem.Counterparty,
					Description:    p.Description,
					OriginalAmount: delta,
					Balance:        delta,
					CreatedDate:    voucher.Date,
				},
			})
		case domain.ApplyItem:
			mutations = append(mutations, domain.OpenItemMutation{
				Apply: &domain.OpenItemApplication{
					ItemID:      p.OpenItem.ItemID,
					Delta:       delta,
					Overpayment: p.OpenItem.Overpayment || reverse,
				},
			})
		}
	}
	return mutations
}

// Record commits a draft: checks the balance invariant and the period gate,
// assigns the next sequence number of the voucher's series, and applies the
// open-item side effects atomically. Sequence counter conflicts are retried a
// bounded number of times before surfacing.
func (s *voucherService) Record(ctx context.Context, ledgerID string, voucherID string, userID string) (*domain.Voucher, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.GetVoucherByID(ctx, ledgerID, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.State != domain.Draft {
		return nil, fmt.Errorf("%w: only a draft voucher can be recorded", apperrors.ErrConflict)
	}

	if err := accounting.ValidateVoucherBalance(voucher.Postings); err != nil {
		return nil, err
	}

	period, err := s.openPeriodForDate(ctx, ledgerID, voucher.Date)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	voucher.LastUpdatedAt = now
	voucher.LastUpdatedBy = userID
	mutations := openItemMutations(voucher, false)

	var recorded *domain.Voucher
	for attempt := 1; ; attempt++ {
		recorded, err = s.voucherRepo.RecordVoucher(ctx, *voucher, period.PeriodID, mutations)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrSequenceConflict) || attempt >= maxRecordAttempts {
			return nil, err
		}
		logger.Warn("Sequence conflict while recording voucher, retrying",
			slog.String("voucher_id", voucherID),
			slog.Int("attempt", attempt))
	}

	logger.Info("Voucher recorded",
		slog.String("voucher_id", voucherID),
		slog.String("series", recorded.Series),
		slog.Int64("sequence", *recorded.Sequence))
	return recorded, nil
}

// Delete marks a recorded voucher deleted, reversing its open-item effects.
// The enclosing period must be open, and a filed VAT return pins the voucher's
// tax in place. The sequence number is never reused.
func (s *voucherService) Delete(ctx context.Context, ledgerID string, voucherID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	voucher, err := s.GetVoucherByID(ctx, ledgerID, voucherID)
	if err != nil {
		return err
	}
	if voucher.State != domain.Recorded {
		return fmt.Errorf("%w: only a recorded voucher can be deleted", apperrors.ErrConflict)
	}

	period, err := s.periodRepo.FindPeriodForDate(ctx, ledgerID, voucher.Date)
	if err != nil {
		return err
	}
	if period.State != domain.PeriodOpen {
		return apperrors.ErrPeriodLocked
	}

	for _, p := range voucher.Postings {
		if p.Vat != nil && p.Vat.Sealed {
			return apperrors.ErrVatSealed
		}
	}

	mutations := openItemMutations(voucher, true)
	if err := s.voucherRepo.MarkVoucherDeleted(ctx, voucherID, userID, time.Now().UTC(), mutations); err != nil {
		return err
	}

	logger.Info("Voucher deleted", slog.String("voucher_id", voucherID))
	return nil
}

// GetVoucherByID retrieves a voucher with its postings, verifying ledger ownership.
func (s *voucherService) GetVoucherByID(ctx context.Context, ledgerID string, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if voucher.LedgerID != ledgerID {
		return nil, apperrors.ErrNotFound
	}
	return voucher, nil
}

// ListVouchers retrieves a paginated list of vouchers.
func (s *voucherService) ListVouchers(ctx context.Context, ledgerID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	vouchers, nextToken, err := s.voucherRepo.ListVouchersByLedger(ctx, ledgerID, params.Limit, params.NextToken, params.IncludeDeleted)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListVouchersResponse{
		Vouchers:  make([]dto.VoucherResponse, len(vouchers)),
		NextToken: nextToken,
	}
	for i := range vouchers {
		resp.Vouchers[i] = dto.ToVoucherResponse(&vouchers[i])
	}
	return resp, nil
}

// ImportBatch drives a batch of import voucher specs through the standard
// draft/posting/record contract. Vouchers fail independently: one rejected
// voucher never blocks the rest of the batch.
func (s *voucherService) ImportBatch(ctx context.Context, ledgerID string, req dto.ImportBatchRequest, userID string) (*dto.ImportBatchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	resp := &dto.ImportBatchResponse{}
	for i, spec := range req.Vouchers {
		voucher, err := s.importOne(ctx, ledgerID, spec, userID)
		if err != nil {
			resp.Failed = append(resp.Failed, dto.ImportFailure{
				Index: i,
				Title: spec.Title,
				Error: err.Error(),
			})
			continue
		}
		resp.Recorded = append(resp.Recorded, dto.ToVoucherResponse(voucher))
	}

	logger.Info("Import batch processed",
		slog.Int("recorded", len(resp.Recorded)),
		slog.Int("failed", len(resp.Failed)))
	return resp, nil
}

func (s *voucherService) importOne(ctx context.Context, ledgerID string, spec dto.ImportVoucherSpec, userID string) (*domain.Voucher, error) {
	draft, err := s.CreateDraft(ctx, ledgerID, dto.CreateVoucherRequest{
		Date:  spec.Date,
		Title: spec.Title,
		Type:  spec.Type,
	}, userID)
	if err != nil {
		return nil, err
	}
	for _, postingSpec := range spec.Postings {
		if _, err := s.AddPosting(ctx, ledgerID, draft.VoucherID, postingSpec, userID); err != nil {
			return nil, err
		}
	}
	return s.Record(ctx, ledgerID, draft.VoucherID, userID)
}
