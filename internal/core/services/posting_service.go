package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// postingService is the transaction orchestrator. For every source event it
// sequences balance-ledger adjustments and journal posting inside the
// caller's transaction, and reverses both on update/delete. Any failing step
// aborts the whole unit; no partial balance change or orphaned journal can
// persist.
type postingService struct {
	journalSvc portssvc.JournalSvcFacade
	balanceSvc portssvc.BalanceSvcFacade
}

// NewPostingService creates a new posting orchestrator.
func NewPostingService(journalSvc portssvc.JournalSvcFacade, balanceSvc portssvc.BalanceSvcFacade) portssvc.PostingOrchestrator {
	return &postingService{
		journalSvc: journalSvc,
		balanceSvc: balanceSvc,
	}
}

var _ portssvc.PostingOrchestrator = (*postingService)(nil)

// channelAccount maps a settled payment channel to its well-known account code.
func channelAccount(ch domain.Channel) (string, error) {
	switch ch {
	case domain.ChannelCash:
		return domain.CodeCash, nil
	case domain.ChannelBank:
		return domain.CodeBank, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidChannel, ch)
	}
}

// ApplyCreateInTx applies the event's cash/bank movements, posts its journal
// and returns the journal ID for linking back onto the event row.
func (s *postingService) ApplyCreateInTx(ctx context.Context, tx pgx.Tx, ev domain.PostingSource, userID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !ev.Amount().IsPositive() {
		return "", fmt.Errorf("%w: event amount must be positive", apperrors.ErrValidation)
	}

	for _, move := range ev.BalanceMoves() {
		if _, err := s.balanceSvc.AdjustInTx(ctx, tx, ev.Scope(), move, userID); err != nil {
			return "", fmt.Errorf("balance adjustment for %s %s: %w", ev.Kind(), ev.Reference(), err)
		}
	}

	lines, err := s.buildLines(ev)
	if err != nil {
		return "", err
	}

	draft := dto.JournalDraft{
		ScopeID:   ev.Scope(),
		Date:      ev.EventDate(),
		Reference: ev.Reference(),
		Narration: ev.Narration(),
		Lines:     lines,
	}

	entry, err := s.journalSvc.PostInTx(ctx, tx, draft, userID)
	if err != nil {
		return "", fmt.Errorf("journal posting for %s %s: %w", ev.Kind(), ev.Reference(), err)
	}

	logger.Debug("Event posted",
		slog.String("kind", string(ev.Kind())),
		slog.String("reference", ev.Reference()),
		slog.String("journal_id", entry.JournalID))
	return entry.JournalID, nil
}

// ReverseInTx undoes the event's balance effect and retracts its journal.
// Used before re-applying on update, and on delete.
func (s *postingService) ReverseInTx(ctx context.Context, tx pgx.Tx, ev domain.PostingSource, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, move := range ev.BalanceMoves() {
		if _, err := s.balanceSvc.AdjustInTx(ctx, tx, ev.Scope(), move.Reversed(), userID); err != nil {
			return fmt.Errorf("balance reversal for %s %s: %w", ev.Kind(), ev.Reference(), err)
		}
	}

	journalID := ev.JournalRef()
	if journalID == nil || *journalID == "" {
		// Every created event is posted immediately; a missing link means the
		// row predates posting and there is nothing to retract.
		logger.Warn("Event has no linked journal to retract",
			slog.String("kind", string(ev.Kind())),
			slog.String("reference", ev.Reference()))
		return nil
	}

	if err := s.journalSvc.RetractInTx(ctx, tx, *journalID); err != nil {
		return fmt.Errorf("journal retraction for %s %s: %w", ev.Kind(), ev.Reference(), err)
	}

	logger.Debug("Event reversed",
		slog.String("kind", string(ev.Kind())),
		slog.String("reference", ev.Reference()),
		slog.String("journal_id", *journalID))
	return nil
}

// buildLines constructs the per-domain posting recipe for an event.
func (s *postingService) buildLines(ev domain.PostingSource) ([]dto.DraftLine, error) {
	switch e := ev.(type) {
	case domain.IncomeEvent:
		return incomeLines(e)
	case *domain.IncomeEvent:
		return incomeLines(*e)
	case domain.ExpenseEvent:
		return expenseLines(e.AccountCode, e.Settlement, e.Amount(), e.Narration())
	case *domain.ExpenseEvent:
		return expenseLines(e.AccountCode, e.Settlement, e.Amount(), e.Narration())
	case domain.SalaryEvent:
		return expenseLines(domain.CodeSalaryExpense, e.Settlement, e.Amount(), e.Narration())
	case *domain.SalaryEvent:
		return expenseLines(domain.CodeSalaryExpense, e.Settlement, e.Amount(), e.Narration())
	case domain.PurchaseEvent:
		return purchaseLines(e)
	case *domain.PurchaseEvent:
		return purchaseLines(*e)
	case domain.SaleEvent:
		return saleLines(e)
	case *domain.SaleEvent:
		return saleLines(*e)
	case domain.AssetEvent:
		return assetLines(e)
	case *domain.AssetEvent:
		return assetLines(*e)
	case domain.StockAdjustEvent:
		return stockLines(e)
	case *domain.StockAdjustEvent:
		return stockLines(*e)
	default:
		return nil, fmt.Errorf("%w: unknown event kind %s", apperrors.ErrInternal, ev.Kind())
	}
}

// incomeLines: debit cash/bank when settled, Accounts Receivable when owed;
// credit the income account for the full amount.
func incomeLines(e domain.IncomeEvent) ([]dto.DraftLine, error) {
	debitCode := domain.CodeAccountsReceivable
	description := "Income receivable"
	if e.Channel != "" {
		code, err := channelAccount(e.Channel)
		if err != nil {
			return nil, err
		}
		debitCode = code
		description = fmt.Sprintf("Received via %s", e.Channel)
	}

	incomeCode := e.AccountCode
	if incomeCode == "" {
		incomeCode = domain.CodeOtherIncome
	}

	return []dto.DraftLine{
		{AccountCode: debitCode, Debit: e.Amount(), Description: description},
		{AccountCode: incomeCode, Credit: e.Amount(), Description: e.Narration()},
	}, nil
}

// expenseLines: debit the expense account; credit cash/bank when settled,
// Accounts Payable when still owed. Shared by expense and salary events.
func expenseLines(expenseCode string, settle domain.Settlement, amount decimal.Decimal, narration string) ([]dto.DraftLine, error) {
	if expenseCode == "" {
		expenseCode = domain.CodeGeneralExpense
	}

	creditCode := domain.CodeAccountsPayable
	description := "Expense payable"
	if settle.Channel != "" {
		code, err := channelAccount(settle.Channel)
		if err != nil {
			return nil, err
		}
		creditCode = code
		description = fmt.Sprintf("Paid via %s", settle.Channel)
	}

	return []dto.DraftLine{
		{AccountCode: expenseCode, Debit: amount, Description: narration},
		{AccountCode: creditCode, Credit: amount, Description: description},
	}, nil
}

// purchaseLines: debit Inventory for the full payable amount; credit
// cash/bank per payment row and Accounts Payable for the unpaid remainder.
func purchaseLines(e domain.PurchaseEvent) ([]dto.DraftLine, error) {
	due := e.DueAmount()
	if due.IsNegative() {
		return nil, fmt.Errorf("%w: payments exceed total payable for purchase %s", apperrors.ErrValidation, e.Reference())
	}

	lines := []dto.DraftLine{
		{AccountCode: domain.CodeInventory, Debit: e.TotalPayable, Description: "Inventory purchased"},
	}
	for _, p := range e.Payments {
		code, err := channelAccount(p.Channel)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.DraftLine{
			AccountCode: code,
			Credit:      p.Amount,
			Description: fmt.Sprintf("Paid via %s", p.Channel),
		})
	}
	if due.IsPositive() {
		lines = append(lines, dto.DraftLine{
			AccountCode: domain.CodeAccountsPayable,
			Credit:      due,
			Description: "Payable to vendor",
		})
	}
	return lines, nil
}

// saleLines: debit cash/bank per payment row plus Accounts Receivable for the
// uncollected remainder; credit Sales Revenue for the full amount.
func saleLines(e domain.SaleEvent) ([]dto.DraftLine, error) {
	due := e.DueAmount()
	if due.IsNegative() {
		return nil, fmt.Errorf("%w: payments exceed total payable for sale %s", apperrors.ErrValidation, e.Reference())
	}

	lines := make([]dto.DraftLine, 0, len(e.Payments)+2)
	for _, p := range e.Payments {
		code, err := channelAccount(p.Channel)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.DraftLine{
			AccountCode: code,
			Debit:       p.Amount,
			Description: fmt.Sprintf("Collected via %s", p.Channel),
		})
	}
	if due.IsPositive() {
		lines = append(lines, dto.DraftLine{
			AccountCode: domain.CodeAccountsReceivable,
			Debit:       due,
			Description: "Receivable from customer",
		})
	}
	lines = append(lines, dto.DraftLine{
		AccountCode: domain.CodeSalesRevenue,
		Credit:      e.TotalPayable,
		Description: "Sales revenue",
	})
	return lines, nil
}

// assetLines: debit Fixed Assets; credit cash/bank when settled, Accounts
// Payable when unpaid.
func assetLines(e domain.AssetEvent) ([]dto.DraftLine, error) {
	creditCode := domain.CodeAccountsPayable
	description := "Asset payable"
	if e.Channel != "" {
		code, err := channelAccount(e.Channel)
		if err != nil {
			return nil, err
		}
		creditCode = code
		description = fmt.Sprintf("Paid via %s", e.Channel)
	}

	return []dto.DraftLine{
		{AccountCode: domain.CodeFixedAssets, Debit: e.TotalPrice, Description: "Asset acquired"},
		{AccountCode: creditCode, Credit: e.TotalPrice, Description: description},
	}, nil
}

// stockLines: increases move value from Raw Materials into Inventory;
// decreases are the symmetric reversal. No cash or bank leg.
func stockLines(e domain.StockAdjustEvent) ([]dto.DraftLine, error) {
	if e.Increase {
		return []dto.DraftLine{
			{AccountCode: domain.CodeInventory, Debit: e.Amount(), Description: "Stock value increase"},
			{AccountCode: domain.CodeRawMaterials, Credit: e.Amount(), Description: "Stock value increase"},
		}, nil
	}
	return []dto.DraftLine{
		{AccountCode: domain.CodeRawMaterials, Debit: e.Amount(), Description: "Stock value decrease"},
		{AccountCode: domain.CodeInventory, Credit: e.Amount(), Description: "Stock value decrease"},
	}, nil
}
