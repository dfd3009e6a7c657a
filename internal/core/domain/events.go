package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind identifies the business-event variant driving a posting workflow.
type EventKind string

const (
	KindIncome      EventKind = "INCOME"
	KindExpense     EventKind = "EXPENSE"
	KindSalary      EventKind = "SALARY"
	KindPurchase    EventKind = "PURCHASE"
	KindSale        EventKind = "SALE"
	KindAsset       EventKind = "ASSET"
	KindStockAdjust EventKind = "STOCK_ADJUST"
)

// PostingSource is the capability every source event exposes to the posting
// orchestrator. Each variant implements the accessors explicitly; the
// orchestrator never sniffs for optional attributes.
type PostingSource interface {
	Kind() EventKind
	Scope() string
	Amount() decimal.Decimal
	Reference() string
	Narration() string
	EventDate() time.Time
	// BalanceMoves lists the cash/bank movements the event settles through.
	// Empty for events routed entirely to receivable/payable accounts.
	BalanceMoves() []BalanceMove
	// JournalRef is the journal this event is linked to, nil before posting.
	JournalRef() *string
}

// Settlement is the shared payment-channel shape embedded by events that
// settle with a single optional cash/bank leg.
type Settlement struct {
	Channel Channel `json:"channel"` // Empty when unsettled
	BankID  string  `json:"bankID"`
}

func (s Settlement) settled() bool {
	return s.Channel == ChannelCash || s.Channel == ChannelBank
}

func (s Settlement) moves(amount decimal.Decimal, dir AdjustDirection) []BalanceMove {
	if !s.settled() {
		return nil
	}
	return []BalanceMove{{Channel: s.Channel, BankID: s.BankID, Amount: amount, Direction: dir}}
}

// IncomeEvent records money received for a business unit. When no payment
// channel is supplied the amount is owed and routes to Accounts Receivable.
type IncomeEvent struct {
	IncomeID    string          `json:"incomeID"`
	ScopeID     string          `json:"scopeID"`
	AccountCode string          `json:"accountCode"` // INCOME account, e.g. 4100
	Date        time.Time       `json:"date"`
	AmountValue decimal.Decimal `json:"amount"`
	ReceivedBy  string          `json:"receivedBy"`
	Note        string          `json:"note"`
	JournalID   *string         `json:"journalID,omitempty"`
	Settlement
	AuditFields
}

func (e IncomeEvent) Kind() EventKind         { return KindIncome }
func (e IncomeEvent) Scope() string           { return e.ScopeID }
func (e IncomeEvent) Amount() decimal.Decimal { return e.AmountValue }
func (e IncomeEvent) Reference() string       { return "INCOME-" + e.IncomeID }
func (e IncomeEvent) EventDate() time.Time    { return e.Date }
func (e IncomeEvent) JournalRef() *string     { return e.JournalID }
func (e IncomeEvent) BalanceMoves() []BalanceMove {
	return e.moves(e.AmountValue, AdjustCredit)
}
func (e IncomeEvent) Narration() string {
	if e.Note != "" {
		return e.Note
	}
	return "Income recorded"
}

// ExpenseEvent records a paid or payable business expense.
type ExpenseEvent struct {
	ExpenseID   string          `json:"expenseID"`
	ScopeID     string          `json:"scopeID"`
	AccountCode string          `json:"accountCode"` // EXPENSE account, e.g. 5000
	AmountValue decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	RecordedBy  string          `json:"recordedBy"`
	Note        string          `json:"note"`
	JournalID   *string         `json:"journalID,omitempty"`
	Settlement
	AuditFields
}

func (e ExpenseEvent) Kind() EventKind         { return KindExpense }
func (e ExpenseEvent) Scope() string           { return e.ScopeID }
func (e ExpenseEvent) Amount() decimal.Decimal { return e.AmountValue }
func (e ExpenseEvent) Reference() string       { return "EXPENSE-" + e.ExpenseID }
func (e ExpenseEvent) EventDate() time.Time    { return e.Date }
func (e ExpenseEvent) JournalRef() *string     { return e.JournalID }
func (e ExpenseEvent) BalanceMoves() []BalanceMove {
	return e.moves(e.AmountValue, AdjustDebit)
}
func (e ExpenseEvent) Narration() string {
	if e.Note != "" {
		return e.Note
	}
	return "Expense recorded"
}

// SalaryEvent records a monthly salary payout for one staff member. The
// posted amount is always the explicit total of its components.
type SalaryEvent struct {
	SalaryID    string          `json:"salaryID"`
	ScopeID     string          `json:"scopeID"`
	StaffName   string          `json:"staffName"`
	SalaryMonth string          `json:"salaryMonth"` // e.g. "2025-01"
	BaseAmount  decimal.Decimal `json:"baseAmount"`
	Allowance   decimal.Decimal `json:"allowance"`
	Bonus       decimal.Decimal `json:"bonus"`
	Date        time.Time       `json:"date"`
	Note        string          `json:"note"`
	JournalID   *string         `json:"journalID,omitempty"`
	Settlement
	AuditFields
}

func (e SalaryEvent) Kind() EventKind      { return KindSalary }
func (e SalaryEvent) Scope() string        { return e.ScopeID }
func (e SalaryEvent) Reference() string    { return "SALARY-" + e.SalaryID }
func (e SalaryEvent) EventDate() time.Time { return e.Date }
func (e SalaryEvent) JournalRef() *string  { return e.JournalID }

// Amount is the total salary: base + allowance + bonus.
func (e SalaryEvent) Amount() decimal.Decimal {
	return e.BaseAmount.Add(e.Allowance).Add(e.Bonus)
}
func (e SalaryEvent) BalanceMoves() []BalanceMove {
	return e.moves(e.Amount(), AdjustDebit)
}
func (e SalaryEvent) Narration() string {
	return "Salary " + e.SalaryMonth + ": " + e.StaffName
}

// EventPayment is one settled payment row attached to a purchase or sale.
type EventPayment struct {
	PaymentID string          `json:"paymentID"`
	Amount    decimal.Decimal `json:"amount"`
	Channel   Channel         `json:"channel"` // CASH or BANK, never empty
	BankID    string          `json:"bankID"`
}

// sumPayments totals the settled portion of a payment list.
func sumPayments(payments []EventPayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

func paymentMoves(payments []EventPayment, dir AdjustDirection) []BalanceMove {
	moves := make([]BalanceMove, 0, len(payments))
	for _, p := range payments {
		moves = append(moves, BalanceMove{Channel: p.Channel, BankID: p.BankID, Amount: p.Amount, Direction: dir})
	}
	return moves
}

// PurchaseEvent records inventory bought from a vendor, possibly partially
// paid; the unpaid remainder routes to Accounts Payable.
type PurchaseEvent struct {
	PurchaseID   string          `json:"purchaseID"`
	ScopeID      string          `json:"scopeID"`
	VendorName   string          `json:"vendorName"`
	InvoiceNo    string          `json:"invoiceNo"`
	Date         time.Time       `json:"date"`
	TotalPayable decimal.Decimal `json:"totalPayable"`
	Note         string          `json:"note"`
	JournalID    *string         `json:"journalID,omitempty"`
	Payments     []EventPayment  `json:"payments"`
	AuditFields
}

func (e PurchaseEvent) Kind() EventKind         { return KindPurchase }
func (e PurchaseEvent) Scope() string           { return e.ScopeID }
func (e PurchaseEvent) Amount() decimal.Decimal { return e.TotalPayable }
func (e PurchaseEvent) EventDate() time.Time    { return e.Date }
func (e PurchaseEvent) JournalRef() *string     { return e.JournalID }
func (e PurchaseEvent) Reference() string {
	if e.InvoiceNo != "" {
		return e.InvoiceNo
	}
	return "PURCHASE-" + e.PurchaseID
}
func (e PurchaseEvent) BalanceMoves() []BalanceMove {
	return paymentMoves(e.Payments, AdjustDebit)
}
func (e PurchaseEvent) Narration() string {
	if e.Note != "" {
		return e.Note
	}
	return "Purchase from " + e.VendorName
}

// TotalPaid is the settled portion across payment rows.
func (e PurchaseEvent) TotalPaid() decimal.Decimal { return sumPayments(e.Payments) }

// DueAmount is the unpaid remainder owed to the vendor.
func (e PurchaseEvent) DueAmount() decimal.Decimal { return e.TotalPayable.Sub(e.TotalPaid()) }

// SaleEvent records a sale invoice, possibly partially collected; the
// uncollected remainder routes to Accounts Receivable.
type SaleEvent struct {
	SaleID       string          `json:"saleID"`
	ScopeID      string          `json:"scopeID"`
	CustomerName string          `json:"customerName"`
	InvoiceNo    string          `json:"invoiceNo"`
	Date         time.Time       `json:"date"`
	TotalPayable decimal.Decimal `json:"totalPayable"`
	Note         string          `json:"note"`
	JournalID    *string         `json:"journalID,omitempty"`
	Payments     []EventPayment  `json:"payments"`
	AuditFields
}

func (e SaleEvent) Kind() EventKind         { return KindSale }
func (e SaleEvent) Scope() string           { return e.ScopeID }
func (e SaleEvent) Amount() decimal.Decimal { return e.TotalPayable }
func (e SaleEvent) EventDate() time.Time    { return e.Date }
func (e SaleEvent) JournalRef() *string     { return e.JournalID }
func (e SaleEvent) Reference() string {
	if e.InvoiceNo != "" {
		return e.InvoiceNo
	}
	return "SALE-" + e.SaleID
}
func (e SaleEvent) BalanceMoves() []BalanceMove {
	return paymentMoves(e.Payments, AdjustCredit)
}
func (e SaleEvent) Narration() string {
	if e.Note != "" {
		return e.Note
	}
	return "Sale Invoice"
}

// TotalPaid is the collected portion across payment rows.
func (e SaleEvent) TotalPaid() decimal.Decimal { return sumPayments(e.Payments) }

// DueAmount is the uncollected remainder owed by the customer.
func (e SaleEvent) DueAmount() decimal.Decimal { return e.TotalPayable.Sub(e.TotalPaid()) }

// AssetEvent records the acquisition of a fixed asset.
type AssetEvent struct {
	AssetID    string          `json:"assetID"`
	ScopeID    string          `json:"scopeID"`
	Name       string          `json:"name"`
	AssetCode  string          `json:"assetCode"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note"`
	JournalID  *string         `json:"journalID,omitempty"`
	Settlement
	AuditFields
}

func (e AssetEvent) Kind() EventKind         { return KindAsset }
func (e AssetEvent) Scope() string           { return e.ScopeID }
func (e AssetEvent) Amount() decimal.Decimal { return e.TotalPrice }
func (e AssetEvent) EventDate() time.Time    { return e.Date }
func (e AssetEvent) JournalRef() *string     { return e.JournalID }
func (e AssetEvent) Reference() string {
	return "ASSET-" + e.AssetCode
}
func (e AssetEvent) BalanceMoves() []BalanceMove {
	return e.moves(e.TotalPrice, AdjustDebit)
}
func (e AssetEvent) Narration() string {
	if e.Note != "" {
		return e.Note
	}
	return "Asset acquired: " + e.Name
}

// StockAdjustEvent records a stock value change between the Inventory and Raw
// Materials accounts. It never touches cash or bank balances.
type StockAdjustEvent struct {
	AdjustmentID string          `json:"adjustmentID"`
	ScopeID      string          `json:"scopeID"`
	AmountValue  decimal.Decimal `json:"amount"`
	Increase     bool            `json:"increase"`
	Date         time.Time       `json:"date"`
	Note         string          `json:"note"`
	JournalID    *string         `json:"journalID,omitempty"`
	AuditFields
}

func (e StockAdjustEvent) Kind() EventKind             { return KindStockAdjust }
func (e StockAdjustEvent) Scope() string               { return e.ScopeID }
func (e StockAdjustEvent) Amount() decimal.Decimal     { return e.AmountValue }
func (e StockAdjustEvent) Reference() string           { return "STOCK-" + e.AdjustmentID }
func (e StockAdjustEvent) EventDate() time.Time        { return e.Date }
func (e StockAdjustEvent) JournalRef() *string         { return e.JournalID }
func (e StockAdjustEvent) BalanceMoves() []BalanceMove { return nil }
func (e StockAdjustEvent) Narration() string {
	if e.Note != "" {
		return e.Note
	}
	if e.Increase {
		return "Stock value increase"
	}
	return "Stock value decrease"
}
