package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/core/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournalInTx(ctx context.Context, tx pgx.Tx, journalID string) error {
	args := m.Called(ctx, tx, journalID)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByScope(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, scopeID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccount(ctx context.Context, scopeID, accountCode string, from, to time.Time) ([]domain.JournalLine, error) {
	args := m.Called(ctx, scopeID, accountCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, code string, active bool, userID string, now time.Time) error {
	args := m.Called(ctx, code, active, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade
	scopeID         string
	userID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo)

	suite.scopeID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeCash,
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeSalesRevenue,
		Name:        "Sales Revenue",
		AccountType: domain.Income,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) balancedDraft() dto.JournalDraft {
	return dto.JournalDraft{
		ScopeID:   suite.scopeID,
		Date:      time.Now(),
		Reference: "INV-001",
		Narration: "Cash sale",
		Lines: []dto.DraftLine{
			{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(100)},
			{AccountCode: domain.CodeSalesRevenue, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.Code:    suite.cashAccount,
		suite.revenueAccount.Code: suite.revenueAccount,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestPostInTx_Success() {
	ctx := context.Background()
	draft := suite.balancedDraft()

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveJournalInTx", ctx, mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.JournalID)
	suite.Equal(suite.scopeID, entry.ScopeID)
	suite.Equal(draft.Reference, entry.Reference)
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	for _, line := range entry.Lines {
		suite.Equal(entry.JournalID, line.JournalID)
		suite.NotEmpty(line.LineID)
	}

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostInTx_ScopeMissing() {
	ctx := context.Background()
	draft := suite.balancedDraft()
	draft.ScopeID = ""

	_, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostInTx_LessThanTwoLines() {
	ctx := context.Background()
	draft := suite.balancedDraft()
	draft.Lines = draft.Lines[:1]

	_, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostInTx_SingleAccount() {
	ctx := context.Background()
	draft := suite.balancedDraft()
	draft.Lines = []dto.DraftLine{
		{AccountCode: domain.CodeCash, Debit: decimal.NewFromInt(100)},
		{AccountCode: domain.CodeCash, Credit: decimal.NewFromInt(100)},
	}

	_, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostInTx_Unbalanced() {
	ctx := context.Background()
	draft := suite.balancedDraft()
	draft.Lines[1].Credit = decimal.NewFromInt(99)

	_, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalanced)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostInTx_LineWithBothSides() {
	ctx := context.Background()
	draft := suite.balancedDraft()
	draft.Lines[0].Credit = decimal.NewFromInt(100)

	_, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostInTx_AccountNotFound() {
	ctx := context.Background()
	draft := suite.balancedDraft()

	// Revenue account missing from the lookup result.
	partial := map[string]domain.Account{suite.cashAccount.Code: suite.cashAccount}
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(partial, nil).Once()

	_, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostInTx_InactiveAccount() {
	ctx := context.Background()
	draft := suite.balancedDraft()

	inactive := suite.revenueAccount
	inactive.IsActive = false
	accounts := map[string]domain.Account{
		suite.cashAccount.Code: suite.cashAccount,
		inactive.Code:          inactive,
	}
	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(accounts, nil).Once()

	_, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostInTx_SaveError() {
	ctx := context.Background()
	draft := suite.balancedDraft()
	repoErr := assert.AnError

	suite.mockAccountRepo.On("FindAccountsByCodes", ctx, mock.Anything).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveJournalInTx", ctx, mock.Anything, mock.Anything, mock.Anything).Return(repoErr).Once()

	_, err := suite.service.PostInTx(ctx, nil, draft, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestRetractInTx_EmptyID() {
	ctx := context.Background()

	err := suite.service.RetractInTx(ctx, nil, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteJournalInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestRetractInTx_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("DeleteJournalInTx", ctx, mock.Anything, journalID).Return(nil).Once()

	err := suite.service.RetractInTx(ctx, nil, journalID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_WrongScope() {
	ctx := context.Background()
	journalID := uuid.NewString()
	entry := &domain.JournalEntry{JournalID: journalID, ScopeID: uuid.NewString()}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(entry, nil).Once()

	_, err := suite.service.GetJournalByID(ctx, suite.scopeID, journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByJournalID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournals_PassesToken() {
	ctx := context.Background()
	token := "next-page"
	entries := []domain.JournalEntry{
		{JournalID: uuid.NewString(), ScopeID: suite.scopeID},
	}

	suite.mockJournalRepo.On("ListJournalsByScope", ctx, suite.scopeID, 10, (*string)(nil)).Return(entries, token, nil).Once()

	resp, err := suite.service.ListJournals(ctx, suite.scopeID, dto.ListJournalsParams{Limit: 10})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Journals, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListAccountLines_RequiresAccountCode() {
	ctx := context.Background()

	_, err := suite.service.ListAccountLines(ctx, suite.scopeID, "", time.Time{}, time.Now().UTC())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ListLinesByAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListAccountLines_EmptyRangeYieldsEmptySlice() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	suite.mockJournalRepo.On("ListLinesByAccount", ctx, suite.scopeID, domain.CodeCash, from, to).Return(nil, nil).Once()

	lines, err := suite.service.ListAccountLines(ctx, suite.scopeID, domain.CodeCash, from, to)

	suite.Require().NoError(err)
	suite.NotNil(lines)
	suite.Empty(lines)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
