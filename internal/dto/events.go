package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventListParams holds common list filters for source events.
type EventListParams struct {
	ScopeID string    `form:"scopeID"`
	From    time.Time `form:"from" time_format:"2006-01-02"`
	To      time.Time `form:"to" time_format:"2006-01-02"`
}

// CreateIncomeRequest defines the input for recording an income event.
// Channel is empty when the income is owed rather than settled.
type CreateIncomeRequest struct {
	ScopeID     string          `json:"scopeID" binding:"required"`
	AccountCode string          `json:"accountCode"`
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,posamount"`
	ReceivedBy  string          `json:"receivedBy"`
	Note        string          `json:"note"`
	Channel     string          `json:"channel" binding:"omitempty,oneof=CASH BANK"`
	BankID      string          `json:"bankID"`
}

// CreateExpenseRequest defines the input for recording an expense event.
type CreateExpenseRequest struct {
	ScopeID     string          `json:"scopeID" binding:"required"`
	AccountCode string          `json:"accountCode"`
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,posamount"`
	RecordedBy  string          `json:"recordedBy"`
	Note        string          `json:"note"`
	Channel     string          `json:"channel" binding:"omitempty,oneof=CASH BANK"`
	BankID      string          `json:"bankID"`
}

// CreateSalaryRequest defines the input for recording a salary payout.
type CreateSalaryRequest struct {
	ScopeID     string          `json:"scopeID" binding:"required"`
	StaffName   string          `json:"staffName" binding:"required"`
	SalaryMonth string          `json:"salaryMonth" binding:"required"`
	BaseAmount  decimal.Decimal `json:"baseAmount" binding:"required,posamount"`
	Allowance   decimal.Decimal `json:"allowance"`
	Bonus       decimal.Decimal `json:"bonus"`
	Date        time.Time       `json:"date" binding:"required"`
	Note        string          `json:"note"`
	Channel     string          `json:"channel" binding:"omitempty,oneof=CASH BANK"`
	BankID      string          `json:"bankID"`
}

// PaymentRequest is one settled payment row on a purchase or sale.
type PaymentRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required,posamount"`
	Channel string          `json:"channel" binding:"required,oneof=CASH BANK"`
	BankID  string          `json:"bankID"`
}

// CreatePurchaseRequest defines the input for recording a purchase.
type CreatePurchaseRequest struct {
	ScopeID      string           `json:"scopeID" binding:"required"`
	VendorName   string           `json:"vendorName"`
	InvoiceNo    string           `json:"invoiceNo"`
	Date         time.Time        `json:"date" binding:"required"`
	TotalPayable decimal.Decimal  `json:"totalPayable" binding:"required,posamount"`
	Note         string           `json:"note"`
	Payments     []PaymentRequest `json:"payments" binding:"dive"`
}

// CreateSaleRequest defines the input for recording a sale invoice.
type CreateSaleRequest struct {
	ScopeID      string           `json:"scopeID" binding:"required"`
	CustomerName string           `json:"customerName"`
	InvoiceNo    string           `json:"invoiceNo"`
	Date         time.Time        `json:"date" binding:"required"`
	TotalPayable decimal.Decimal  `json:"totalPayable" binding:"required,posamount"`
	Note         string           `json:"note"`
	Payments     []PaymentRequest `json:"payments" binding:"dive"`
}

// CreateAssetRequest defines the input for recording an asset acquisition.
type CreateAssetRequest struct {
	ScopeID    string          `json:"scopeID" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	AssetCode  string          `json:"assetCode" binding:"required"`
	TotalPrice decimal.Decimal `json:"totalPrice" binding:"required,posamount"`
	Date       time.Time       `json:"date" binding:"required"`
	Note       string          `json:"note"`
	Channel    string          `json:"channel" binding:"omitempty,oneof=CASH BANK"`
	BankID     string          `json:"bankID"`
}

// CreateStockAdjustRequest defines the input for a stock value change.
type CreateStockAdjustRequest struct {
	ScopeID  string          `json:"scopeID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required,posamount"`
	Increase bool            `json:"increase"`
	Date     time.Time       `json:"date" binding:"required"`
	Note     string          `json:"note"`
}
