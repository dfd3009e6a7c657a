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
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/core/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
)

// passthroughTxManager runs the workflow function directly; the repositories
// behind it are mocked, so no real transaction is needed.
type passthroughTxManager struct{}

var _ portsrepo.TxManager = passthroughTxManager{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.ExpenseRepository = (*MockExpenseRepository)(nil)

func (m *MockExpenseRepository) InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.ExpenseEvent) error {
	args := m.Called(ctx, tx, ev)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.ExpenseEvent) error {
	args := m.Called(ctx, tx, ev)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	args := m.Called(ctx, tx, expenseID)
	return args.Error(0)
}

func (m *MockExpenseRepository) SetJournalIDInTx(ctx context.Context, tx pgx.Tx, expenseID string, journalID *string) error {
	args := m.Called(ctx, tx, expenseID, journalID)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, expenseID string) (*domain.ExpenseEvent, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpenseEvent), args.Error(1)
}

func (m *MockExpenseRepository) List(ctx context.Context, filter portsrepo.EventFilter) ([]domain.ExpenseEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseEvent), args.Error(1)
}

// --- Test Suite Setup ---

// ExpenseServiceTestSuite drives the expense workflow through a real posting
// orchestrator so update and delete exercise the full reverse-then-reapply
// sequence against the mocked journal and balance facades.
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo *MockExpenseRepository
	mockJournalSvc  *MockJournalSvc
	mockBalanceSvc  *MockBalanceSvc
	service         portssvc.ExpenseSvcFacade
	scopeID         string
	userID          string
	bankID          string

	// steps records the side-effecting calls in the order they were made.
	steps []string
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockJournalSvc = new(MockJournalSvc)
	suite.mockBalanceSvc = new(MockBalanceSvc)

	orch := services.NewPostingService(suite.mockJournalSvc, suite.mockBalanceSvc)
	suite.service = services.NewExpenseService(passthroughTxManager{}, suite.mockExpenseRepo, orch)

	suite.scopeID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.bankID = uuid.NewString()
	suite.steps = nil
}

func (suite *ExpenseServiceTestSuite) step(name string) func(mock.Arguments) {
	return func(mock.Arguments) {
		suite.steps = append(suite.steps, name)
	}
}

// storedCashExpense is a previously posted expense settled from cash.
func (suite *ExpenseServiceTestSuite) storedCashExpense(amount int64, journalID string) *domain.ExpenseEvent {
	created := time.Now().UTC().Add(-24 * time.Hour)
	return &domain.ExpenseEvent{
		ExpenseID:   uuid.NewString(),
		ScopeID:     suite.scopeID,
		AccountCode: domain.CodeGeneralExpense,
		AmountValue: decimal.NewFromInt(amount),
		Date:        created,
		JournalID:   &journalID,
		Settlement:  domain.Settlement{Channel: domain.ChannelCash},
		AuditFields: domain.AuditFields{
			CreatedAt: created, CreatedBy: suite.userID,
			LastUpdatedAt: created, LastUpdatedBy: suite.userID,
		},
	}
}

func (suite *ExpenseServiceTestSuite) expectAdjust(move domain.BalanceMove, name string) {
	suite.mockBalanceSvc.On("AdjustInTx", mock.Anything, mock.Anything, suite.scopeID, move, suite.userID).
		Run(suite.step(name)).
		Return(decimal.Zero, nil).Once()
}

func (suite *ExpenseServiceTestSuite) lineIn(lines []dto.DraftLine, code string) dto.DraftLine {
	for _, l := range lines {
		if l.AccountCode == code {
			return l
		}
	}
	suite.FailNowf("missing line", "no line posted to account %s", code)
	return dto.DraftLine{}
}

// --- Test Cases ---

func (suite *ExpenseServiceTestSuite) TestUpdate_MovesSettlementFromCashToBank() {
	ctx := context.Background()
	oldJournalID := uuid.NewString()
	newJournalID := uuid.NewString()
	existing := suite.storedCashExpense(200, oldJournalID)

	req := dto.CreateExpenseRequest{
		ScopeID:     suite.scopeID,
		AccountCode: domain.CodeGeneralExpense,
		Date:        time.Now().UTC(),
		Amount:      decimal.NewFromInt(300),
		Channel:     string(domain.ChannelBank),
		BankID:      suite.bankID,
		Note:        "Corrected supplier invoice",
	}

	suite.mockExpenseRepo.On("FindByID", mock.Anything, existing.ExpenseID).Return(existing, nil).Once()

	// The stored expense drained 200 from cash; the reversal credits it back.
	suite.expectAdjust(domain.BalanceMove{
		Channel: domain.ChannelCash, Amount: decimal.NewFromInt(200), Direction: domain.AdjustCredit,
	}, "restore-cash")
	suite.mockJournalSvc.On("RetractInTx", mock.Anything, mock.Anything, oldJournalID).
		Run(suite.step("retract-old-journal")).
		Return(nil).Once()

	var updatedRow domain.ExpenseEvent
	suite.mockExpenseRepo.On("UpdateInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.ExpenseEvent")).
		Run(func(args mock.Arguments) {
			suite.steps = append(suite.steps, "update-row")
			updatedRow = args.Get(2).(domain.ExpenseEvent)
		}).
		Return(nil).Once()

	// Re-applying with the new values debits 300 out of the bank balance.
	suite.expectAdjust(domain.BalanceMove{
		Channel: domain.ChannelBank, BankID: suite.bankID,
		Amount: decimal.NewFromInt(300), Direction: domain.AdjustDebit,
	}, "debit-bank")

	var draft dto.JournalDraft
	entry := &domain.JournalEntry{JournalID: newJournalID, ScopeID: suite.scopeID}
	suite.mockJournalSvc.On("PostInTx", mock.Anything, mock.Anything, mock.AnythingOfType("dto.JournalDraft"), suite.userID).
		Run(func(args mock.Arguments) {
			suite.steps = append(suite.steps, "post-new-journal")
			draft = args.Get(2).(dto.JournalDraft)
		}).
		Return(entry, nil).Once()

	var linkedJournalID *string
	suite.mockExpenseRepo.On("SetJournalIDInTx", mock.Anything, mock.Anything, existing.ExpenseID, mock.AnythingOfType("*string")).
		Run(func(args mock.Arguments) {
			linkedJournalID = args.Get(3).(*string)
		}).
		Return(nil).Once()

	updated, err := suite.service.Update(ctx, existing.ExpenseID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)

	// The old effect is fully undone before the new one is applied.
	suite.Equal([]string{"restore-cash", "retract-old-journal", "update-row", "debit-bank", "post-new-journal"}, suite.steps)

	// Exactly one new balanced journal for the new values.
	suite.Len(draft.Lines, 2)
	expense := suite.lineIn(draft.Lines, domain.CodeGeneralExpense)
	suite.True(expense.Debit.Equal(decimal.NewFromInt(300)))
	bank := suite.lineIn(draft.Lines, domain.CodeBank)
	suite.True(bank.Credit.Equal(decimal.NewFromInt(300)))

	suite.Require().NotNil(linkedJournalID)
	suite.Equal(newJournalID, *linkedJournalID)
	suite.Require().NotNil(updated.JournalID)
	suite.Equal(newJournalID, *updated.JournalID)

	// Creation audit survives the update; the modifier is stamped.
	suite.Equal(existing.CreatedAt, updatedRow.CreatedAt)
	suite.Equal(existing.CreatedBy, updatedRow.CreatedBy)
	suite.Equal(suite.userID, updatedRow.LastUpdatedBy)

	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestUpdate_SameValuesNetToZeroOnCash() {
	ctx := context.Background()
	oldJournalID := uuid.NewString()
	existing := suite.storedCashExpense(200, oldJournalID)

	req := dto.CreateExpenseRequest{
		ScopeID:     suite.scopeID,
		AccountCode: existing.AccountCode,
		Date:        existing.Date,
		Amount:      existing.AmountValue,
		Channel:     string(domain.ChannelCash),
	}

	suite.mockExpenseRepo.On("FindByID", mock.Anything, existing.ExpenseID).Return(existing, nil).Once()
	suite.expectAdjust(domain.BalanceMove{
		Channel: domain.ChannelCash, Amount: decimal.NewFromInt(200), Direction: domain.AdjustCredit,
	}, "restore-cash")
	suite.mockJournalSvc.On("RetractInTx", mock.Anything, mock.Anything, oldJournalID).
		Run(suite.step("retract-old-journal")).
		Return(nil).Once()
	suite.mockExpenseRepo.On("UpdateInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.ExpenseEvent")).
		Run(suite.step("update-row")).
		Return(nil).Once()
	suite.expectAdjust(domain.BalanceMove{
		Channel: domain.ChannelCash, Amount: decimal.NewFromInt(200), Direction: domain.AdjustDebit,
	}, "debit-cash")
	entry := &domain.JournalEntry{JournalID: uuid.NewString(), ScopeID: suite.scopeID}
	suite.mockJournalSvc.On("PostInTx", mock.Anything, mock.Anything, mock.AnythingOfType("dto.JournalDraft"), suite.userID).
		Run(suite.step("post-new-journal")).
		Return(entry, nil).Once()
	suite.mockExpenseRepo.On("SetJournalIDInTx", mock.Anything, mock.Anything, existing.ExpenseID, mock.AnythingOfType("*string")).
		Return(nil).Once()

	_, err := suite.service.Update(ctx, existing.ExpenseID, req, suite.userID)

	suite.Require().NoError(err)
	// An unchanged update credits and debits cash by the same amount, so the
	// running balance ends where it started.
	suite.Equal([]string{"restore-cash", "retract-old-journal", "update-row", "debit-cash", "post-new-journal"}, suite.steps)
	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockJournalSvc.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDelete_RestoresBalanceAndRetractsJournal() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := suite.storedCashExpense(200, journalID)

	suite.mockExpenseRepo.On("FindByID", mock.Anything, existing.ExpenseID).Return(existing, nil).Once()
	suite.expectAdjust(domain.BalanceMove{
		Channel: domain.ChannelCash, Amount: decimal.NewFromInt(200), Direction: domain.AdjustCredit,
	}, "restore-cash")
	suite.mockJournalSvc.On("RetractInTx", mock.Anything, mock.Anything, journalID).
		Run(suite.step("retract-journal")).
		Return(nil).Once()
	suite.mockExpenseRepo.On("DeleteInTx", mock.Anything, mock.Anything, existing.ExpenseID).
		Run(suite.step("delete-row")).
		Return(nil).Once()

	err := suite.service.Delete(ctx, existing.ExpenseID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal([]string{"restore-cash", "retract-journal", "delete-row"}, suite.steps)
	// Deletion never posts a replacement journal.
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "PostInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBalanceSvc.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestDelete_NotFound() {
	ctx := context.Background()
	expenseID := uuid.NewString()
	suite.mockExpenseRepo.On("FindByID", mock.Anything, expenseID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.Delete(ctx, expenseID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBalanceSvc.AssertNotCalled(suite.T(), "AdjustInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "DeleteInTx", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestExpenseService(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}
