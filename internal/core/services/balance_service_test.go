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

// --- Mock BalanceRepository ---
type MockBalanceRepository struct {
	mock.Mock
}

var _ portsrepo.BalanceRepository = (*MockBalanceRepository)(nil)

func (m *MockBalanceRepository) CreateBalanceAccount(ctx context.Context, acct domain.BalanceAccount) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *MockBalanceRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, scopeID string, channel domain.Channel, bankID string) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, tx, scopeID, channel, bankID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockBalanceRepository) ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, balanceID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, balanceID, delta, userID, now)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceRepository) FindCashAccount(ctx context.Context, scopeID string) (*domain.BalanceAccount, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAccount), args.Error(1)
}

func (m *MockBalanceRepository) ListBankAccounts(ctx context.Context, scopeID string) ([]domain.BalanceAccount, error) {
	args := m.Called(ctx, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceAccount), args.Error(1)
}

// --- Test Suite Setup ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockBalanceRepo *MockBalanceRepository
	service         portssvc.BalanceSvcFacade
	scopeID         string
	userID          string
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.service = services.NewBalanceService(suite.mockBalanceRepo)

	suite.scopeID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestOpenBalanceAccount_Success() {
	ctx := context.Background()
	req := dto.OpenBalanceAccountRequest{
		ScopeID:        suite.scopeID,
		Channel:        domain.ChannelCash,
		OpeningBalance: decimal.NewFromInt(1000),
	}

	suite.mockBalanceRepo.On("CreateBalanceAccount", ctx, mock.AnythingOfType("domain.BalanceAccount")).Return(nil).Once()

	acct, err := suite.service.OpenBalanceAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(acct)
	suite.NotEmpty(acct.BalanceID)
	suite.True(acct.CurrentBalance.Equal(acct.OpeningBalance))
	suite.Equal(suite.userID, acct.CreatedBy)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestOpenBalanceAccount_BankWithoutBankID() {
	ctx := context.Background()
	req := dto.OpenBalanceAccountRequest{
		ScopeID: suite.scopeID,
		Channel: domain.ChannelBank,
	}

	_, err := suite.service.OpenBalanceAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidChannel)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "CreateBalanceAccount", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestOpenBalanceAccount_CashWithBankID() {
	ctx := context.Background()
	req := dto.OpenBalanceAccountRequest{
		ScopeID: suite.scopeID,
		Channel: domain.ChannelCash,
		BankID:  uuid.NewString(),
	}

	_, err := suite.service.OpenBalanceAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BalanceServiceTestSuite) TestOpenBalanceAccount_NegativeOpening() {
	ctx := context.Background()
	req := dto.OpenBalanceAccountRequest{
		ScopeID:        suite.scopeID,
		Channel:        domain.ChannelCash,
		OpeningBalance: decimal.NewFromInt(-5),
	}

	_, err := suite.service.OpenBalanceAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BalanceServiceTestSuite) TestOpenBalanceAccount_Duplicate() {
	ctx := context.Background()
	req := dto.OpenBalanceAccountRequest{
		ScopeID: suite.scopeID,
		Channel: domain.ChannelCash,
	}

	suite.mockBalanceRepo.On("CreateBalanceAccount", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.OpenBalanceAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *BalanceServiceTestSuite) TestAdjustInTx_CreditIncreases() {
	ctx := context.Background()
	balanceID := uuid.NewString()
	acct := &domain.BalanceAccount{BalanceID: balanceID, ScopeID: suite.scopeID, Channel: domain.ChannelCash}
	move := domain.BalanceMove{Channel: domain.ChannelCash, Amount: decimal.NewFromInt(200), Direction: domain.AdjustCredit}

	suite.mockBalanceRepo.On("FindForUpdateInTx", ctx, mock.Anything, suite.scopeID, domain.ChannelCash, "").Return(acct, nil).Once()
	suite.mockBalanceRepo.On("ApplyDeltaInTx", ctx, mock.Anything, balanceID, decimal.NewFromInt(200), suite.userID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(1200), nil).Once()

	newBalance, err := suite.service.AdjustInTx(ctx, nil, suite.scopeID, move, suite.userID)

	suite.Require().NoError(err)
	suite.True(newBalance.Equal(decimal.NewFromInt(1200)))
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestAdjustInTx_DebitDecreases() {
	ctx := context.Background()
	balanceID := uuid.NewString()
	bankID := uuid.NewString()
	acct := &domain.BalanceAccount{BalanceID: balanceID, ScopeID: suite.scopeID, Channel: domain.ChannelBank, BankID: bankID}
	move := domain.BalanceMove{Channel: domain.ChannelBank, BankID: bankID, Amount: decimal.NewFromInt(50), Direction: domain.AdjustDebit}

	suite.mockBalanceRepo.On("FindForUpdateInTx", ctx, mock.Anything, suite.scopeID, domain.ChannelBank, bankID).Return(acct, nil).Once()
	suite.mockBalanceRepo.On("ApplyDeltaInTx", ctx, mock.Anything, balanceID, decimal.NewFromInt(-50), suite.userID, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(950), nil).Once()

	newBalance, err := suite.service.AdjustInTx(ctx, nil, suite.scopeID, move, suite.userID)

	suite.Require().NoError(err)
	suite.True(newBalance.Equal(decimal.NewFromInt(950)))
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestAdjustInTx_NegativeAmount() {
	ctx := context.Background()
	move := domain.BalanceMove{Channel: domain.ChannelCash, Amount: decimal.NewFromInt(-10), Direction: domain.AdjustCredit}

	_, err := suite.service.AdjustInTx(ctx, nil, suite.scopeID, move, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "FindForUpdateInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestAdjustInTx_BankWithoutBankID() {
	ctx := context.Background()
	move := domain.BalanceMove{Channel: domain.ChannelBank, Amount: decimal.NewFromInt(10), Direction: domain.AdjustCredit}

	_, err := suite.service.AdjustInTx(ctx, nil, suite.scopeID, move, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidChannel)
}

func (suite *BalanceServiceTestSuite) TestAdjustInTx_UnknownChannel() {
	ctx := context.Background()
	move := domain.BalanceMove{Channel: "WALLET", Amount: decimal.NewFromInt(10), Direction: domain.AdjustCredit}

	_, err := suite.service.AdjustInTx(ctx, nil, suite.scopeID, move, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidChannel)
}

func (suite *BalanceServiceTestSuite) TestAdjustInTx_MissingBalanceRow() {
	ctx := context.Background()
	move := domain.BalanceMove{Channel: domain.ChannelCash, Amount: decimal.NewFromInt(10), Direction: domain.AdjustCredit}

	suite.mockBalanceRepo.On("FindForUpdateInTx", ctx, mock.Anything, suite.scopeID, domain.ChannelCash, "").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AdjustInTx(ctx, nil, suite.scopeID, move, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "ApplyDeltaInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestSnapshot_ToleratesMissingCash() {
	ctx := context.Background()
	banks := []domain.BalanceAccount{
		{BalanceID: uuid.NewString(), ScopeID: suite.scopeID, Channel: domain.ChannelBank, BankID: uuid.NewString()},
	}

	suite.mockBalanceRepo.On("FindCashAccount", ctx, suite.scopeID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockBalanceRepo.On("ListBankAccounts", ctx, suite.scopeID).Return(banks, nil).Once()

	snapshot, err := suite.service.Snapshot(ctx, suite.scopeID)

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.Nil(snapshot.Cash)
	suite.Len(snapshot.Banks, 1)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestBalanceService(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
