package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/core/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
)

// --- Mock JournalSvcFacade ---
type MockJournalSvc struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalSvc)(nil)

func (m *MockJournalSvc) PostInTx(ctx context.Context, tx pgx.Tx, draft dto.JournalDraft, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, draft, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSvc) RetractInTx(ctx context.Context, tx pgx.Tx, journalID string) error {
	args := m.Called(ctx, tx, journalID)
	return args.Error(0)
}

func (m *MockJournalSvc) GetJournalByID(ctx context.Context, scopeID, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scopeID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalSvc) ListJournals(ctx context.Context, scopeID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, scopeID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalSvc) ListAccountLines(ctx context.Context, scopeID, accountCode string, from, to time.Time) ([]domain.JournalLine, error) {
	args := m.Called(ctx, scopeID, accountCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

// --- Mock BalanceSvcFacade ---
type MockBalanceSvc struct {
	mock.Mock
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceSvc)(nil)

func (m *MockBalanceSvc) OpenBalanceAccount(ctx context.Context, req dto.OpenBalanceAccountRequest, creatorUserID string) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockBalanceSvc) AdjustInTx(ctx context.Context, tx pgx.Tx, scopeID string, move domain.BalanceMove, userID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, scopeID, move, userID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceSvc) Snapshot(ctx context.Context, scopeID string) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalSvc *MockJournalSvc
	mockBalanceSvc *MockBalanceSvc
	orchestrator   portssvc.PostingOrchestrator
	scopeID        string
	userID         string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockJournalSvc = new(MockJournalSvc)
	suite.mockBalanceSvc = new(MockBalanceSvc)
	suite.orchestrator = services.NewPostingService(suite.mockJournalSvc, suite.mockBalanceSvc)

	suite.scopeID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// expectPost captures the draft passed to PostInTx so line assertions can run
// against what was actually posted.
func (suite *PostingServiceTestSuite) expectPost(captured *dto.JournalDraft) {
	entry := &domain.JournalEntry{JournalID: uuid.NewString(), ScopeID: suite.scopeID}
	suite.mockJournalSvc.On("PostInTx", mock.Anything, mock.Anything, mock.AnythingOfType("dto.JournalDraft"), suite.userID).
		Run(func(args mock.Arguments) {
			*captured = args.Get(2).(dto.JournalDraft)
		}).
		Return(entry, nil).Once()
}

func (suite *PostingServiceTestSuite) lineFor(lines []dto.DraftLine, code string) dto.DraftLine {
	for _, l := range lines {
		if l.AccountCode == code {
			return l
		}
	}
	suite.FailNowf("missing line", "no line posted to account %s", code)
	return dto.DraftLine{}
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestApplyCreate_UnpaidIncome_RoutesToReceivable() {
	ctx := context.Background()
	ev := domain.IncomeEvent{
		IncomeID:    uuid.NewString(),
		ScopeID:     suite.scopeID,
		AccountCode: domain.CodeSalesRevenue,
		Date:        time.Now(),
		AmountValue: decimal.NewFromInt(500),
		// No channel: the amount is owed, not settled.
	}

	var draft dto.JournalDraft
	suite.expectPost(&draft)

	journalID, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(journalID)
	suite.Len(draft.Lines, 2)

	ar := suite.lineFor(draft.Lines, domain.CodeAccountsReceivable)
	suite.True(ar.Debit.Equal(decimal.NewFromInt(500)))
	revenue := suite.lineFor(draft.Lines, domain.CodeSalesRevenue)
	suite.True(revenue.Credit.Equal(decimal.NewFromInt(500)))

	// Unsettled events must never touch the balance ledger.
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "AdjustInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestApplyCreate_CashIncome_AdjustsBalanceAndDebitsCash() {
	ctx := context.Background()
	ev := domain.IncomeEvent{
		IncomeID:    uuid.NewString(),
		ScopeID:     suite.scopeID,
		Date:        time.Now(),
		AmountValue: decimal.NewFromInt(250),
		Settlement:  domain.Settlement{Channel: domain.ChannelCash},
	}

	suite.mockBalanceSvc.On("AdjustInTx", mock.Anything, mock.Anything, suite.scopeID,
		domain.BalanceMove{Channel: domain.ChannelCash, Amount: decimal.NewFromInt(250), Direction: domain.AdjustCredit},
		suite.userID).Return(decimal.NewFromInt(250), nil).Once()

	var draft dto.JournalDraft
	suite.expectPost(&draft)

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	cash := suite.lineFor(draft.Lines, domain.CodeCash)
	suite.True(cash.Debit.Equal(decimal.NewFromInt(250)))
	// Without an explicit income account the credit falls back to Other Income.
	other := suite.lineFor(draft.Lines, domain.CodeOtherIncome)
	suite.True(other.Credit.Equal(decimal.NewFromInt(250)))

	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestApplyCreate_NonPositiveAmount() {
	ctx := context.Background()
	ev := domain.IncomeEvent{
		IncomeID:    uuid.NewString(),
		ScopeID:     suite.scopeID,
		AmountValue: decimal.Zero,
	}

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestApplyCreate_PartiallyCollectedSale() {
	ctx := context.Background()
	ev := domain.SaleEvent{
		SaleID:       uuid.NewString(),
		ScopeID:      suite.scopeID,
		CustomerName: "Corner Store",
		Date:         time.Now(),
		TotalPayable: decimal.NewFromInt(1000),
		Payments: []domain.EventPayment{
			{PaymentID: uuid.NewString(), Amount: decimal.NewFromInt(400), Channel: domain.ChannelCash},
		},
	}

	suite.mockBalanceSvc.On("AdjustInTx", mock.Anything, mock.Anything, suite.scopeID,
		domain.BalanceMove{Channel: domain.ChannelCash, Amount: decimal.NewFromInt(400), Direction: domain.AdjustCredit},
		suite.userID).Return(decimal.NewFromInt(400), nil).Once()

	var draft dto.JournalDraft
	suite.expectPost(&draft)

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	suite.Len(draft.Lines, 3)

	cash := suite.lineFor(draft.Lines, domain.CodeCash)
	suite.True(cash.Debit.Equal(decimal.NewFromInt(400)))
	ar := suite.lineFor(draft.Lines, domain.CodeAccountsReceivable)
	suite.True(ar.Debit.Equal(decimal.NewFromInt(600)))
	revenue := suite.lineFor(draft.Lines, domain.CodeSalesRevenue)
	suite.True(revenue.Credit.Equal(decimal.NewFromInt(1000)))

	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestApplyCreate_PurchasePaymentsExceedTotal() {
	ctx := context.Background()
	ev := domain.PurchaseEvent{
		PurchaseID:   uuid.NewString(),
		ScopeID:      suite.scopeID,
		VendorName:   "Wholesale Ltd",
		Date:         time.Now(),
		TotalPayable: decimal.NewFromInt(100),
		Payments: []domain.EventPayment{
			{PaymentID: uuid.NewString(), Amount: decimal.NewFromInt(150), Channel: domain.ChannelCash},
		},
	}

	suite.mockBalanceSvc.On("AdjustInTx", mock.Anything, mock.Anything, suite.scopeID, mock.Anything, suite.userID).
		Return(decimal.Zero, nil).Once()

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestApplyCreate_PartiallyPaidPurchase() {
	ctx := context.Background()
	bankID := uuid.NewString()
	ev := domain.PurchaseEvent{
		PurchaseID:   uuid.NewString(),
		ScopeID:      suite.scopeID,
		VendorName:   "Wholesale Ltd",
		InvoiceNo:    "INV-42",
		Date:         time.Now(),
		TotalPayable: decimal.NewFromInt(900),
		Payments: []domain.EventPayment{
			{PaymentID: uuid.NewString(), Amount: decimal.NewFromInt(300), Channel: domain.ChannelBank, BankID: bankID},
		},
	}

	suite.mockBalanceSvc.On("AdjustInTx", mock.Anything, mock.Anything, suite.scopeID,
		domain.BalanceMove{Channel: domain.ChannelBank, BankID: bankID, Amount: decimal.NewFromInt(300), Direction: domain.AdjustDebit},
		suite.userID).Return(decimal.NewFromInt(-300), nil).Once()

	var draft dto.JournalDraft
	suite.expectPost(&draft)

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("INV-42", draft.Reference)
	suite.Len(draft.Lines, 3)

	inventory := suite.lineFor(draft.Lines, domain.CodeInventory)
	suite.True(inventory.Debit.Equal(decimal.NewFromInt(900)))
	bank := suite.lineFor(draft.Lines, domain.CodeBank)
	suite.True(bank.Credit.Equal(decimal.NewFromInt(300)))
	ap := suite.lineFor(draft.Lines, domain.CodeAccountsPayable)
	suite.True(ap.Credit.Equal(decimal.NewFromInt(600)))

	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestApplyCreate_SalaryPostsComponentTotal() {
	ctx := context.Background()
	ev := domain.SalaryEvent{
		SalaryID:    uuid.NewString(),
		ScopeID:     suite.scopeID,
		StaffName:   "R. Ahmed",
		SalaryMonth: "2025-07",
		BaseAmount:  decimal.NewFromInt(20000),
		Allowance:   decimal.NewFromInt(3000),
		Bonus:       decimal.NewFromInt(1000),
		Date:        time.Now(),
		Settlement:  domain.Settlement{Channel: domain.ChannelCash},
	}

	total := decimal.NewFromInt(24000)
	suite.mockBalanceSvc.On("AdjustInTx", mock.Anything, mock.Anything, suite.scopeID,
		domain.BalanceMove{Channel: domain.ChannelCash, Amount: total, Direction: domain.AdjustDebit},
		suite.userID).Return(decimal.NewFromInt(-24000), nil).Once()

	var draft dto.JournalDraft
	suite.expectPost(&draft)

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	salary := suite.lineFor(draft.Lines, domain.CodeSalaryExpense)
	suite.True(salary.Debit.Equal(total))
	cash := suite.lineFor(draft.Lines, domain.CodeCash)
	suite.True(cash.Credit.Equal(total))

	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestApplyCreate_UnpaidAsset_CreditsPayable() {
	ctx := context.Background()
	ev := domain.AssetEvent{
		AssetID:    uuid.NewString(),
		ScopeID:    suite.scopeID,
		Name:       "Delivery Van",
		AssetCode:  "VAN-01",
		TotalPrice: decimal.NewFromInt(50000),
		Date:       time.Now(),
		// No channel: the acquisition is on credit.
	}

	var draft dto.JournalDraft
	suite.expectPost(&draft)

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	fixed := suite.lineFor(draft.Lines, domain.CodeFixedAssets)
	suite.True(fixed.Debit.Equal(decimal.NewFromInt(50000)))
	ap := suite.lineFor(draft.Lines, domain.CodeAccountsPayable)
	suite.True(ap.Credit.Equal(decimal.NewFromInt(50000)))

	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "AdjustInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestApplyCreate_StockDecrease_SymmetricLines() {
	ctx := context.Background()
	ev := domain.StockAdjustEvent{
		AdjustmentID: uuid.NewString(),
		ScopeID:      suite.scopeID,
		AmountValue:  decimal.NewFromInt(120),
		Increase:     false,
		Date:         time.Now(),
	}

	var draft dto.JournalDraft
	suite.expectPost(&draft)

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	raw := suite.lineFor(draft.Lines, domain.CodeRawMaterials)
	suite.True(raw.Debit.Equal(decimal.NewFromInt(120)))
	inventory := suite.lineFor(draft.Lines, domain.CodeInventory)
	suite.True(inventory.Credit.Equal(decimal.NewFromInt(120)))

	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "AdjustInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestApplyCreate_InvalidChannel() {
	ctx := context.Background()
	ev := domain.ExpenseEvent{
		ExpenseID:   uuid.NewString(),
		ScopeID:     suite.scopeID,
		AmountValue: decimal.NewFromInt(75),
		Date:        time.Now(),
		Settlement:  domain.Settlement{Channel: "CRYPTO"},
	}

	_, err := suite.orchestrator.ApplyCreateInTx(ctx, nil, ev, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidChannel)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestReverse_FlipsMovesAndRetracts() {
	ctx := context.Background()
	journalID := uuid.NewString()
	ev := domain.ExpenseEvent{
		ExpenseID:   uuid.NewString(),
		ScopeID:     suite.scopeID,
		AmountValue: decimal.NewFromInt(80),
		Date:        time.Now(),
		JournalID:   &journalID,
		Settlement:  domain.Settlement{Channel: domain.ChannelCash},
	}

	// The stored expense debited cash down; the reversal credits it back.
	suite.mockBalanceSvc.On("AdjustInTx", mock.Anything, mock.Anything, suite.scopeID,
		domain.BalanceMove{Channel: domain.ChannelCash, Amount: decimal.NewFromInt(80), Direction: domain.AdjustCredit},
		suite.userID).Return(decimal.NewFromInt(80), nil).Once()
	suite.mockJournalSvc.On("RetractInTx", mock.Anything, mock.Anything, journalID).Return(nil).Once()

	err := suite.orchestrator.ReverseInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestReverse_NoLinkedJournal() {
	ctx := context.Background()
	ev := domain.StockAdjustEvent{
		AdjustmentID: uuid.NewString(),
		ScopeID:      suite.scopeID,
		AmountValue:  decimal.NewFromInt(10),
		Increase:     true,
		Date:         time.Now(),
	}

	err := suite.orchestrator.ReverseInTx(ctx, nil, ev, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "RetractInTx", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
