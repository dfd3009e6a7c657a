package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, scopeID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, scopeID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, scopeID string, from, to time.Time) ([]domain.AccountTotal, []domain.AccountTotal, error) {
	args := m.Called(ctx, scopeID, from, to)
	var income, expenses []domain.AccountTotal
	if args.Get(0) != nil {
		income = args.Get(0).([]domain.AccountTotal)
	}
	if args.Get(1) != nil {
		expenses = args.Get(1).([]domain.AccountTotal)
	}
	return income, expenses, args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, scopeID string, asOf time.Time) ([]domain.AccountTotal, []domain.AccountTotal, []domain.AccountTotal, error) {
	args := m.Called(ctx, scopeID, asOf)
	var assets, liabilities, equity []domain.AccountTotal
	if args.Get(0) != nil {
		assets = args.Get(0).([]domain.AccountTotal)
	}
	if args.Get(1) != nil {
		liabilities = args.Get(1).([]domain.AccountTotal)
	}
	if args.Get(2) != nil {
		equity = args.Get(2).([]domain.AccountTotal)
	}
	return assets, liabilities, equity, args.Error(3)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvcFacade
	scopeID           string
	asOf              time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)

	suite.scopeID = uuid.NewString()
	suite.asOf = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
}

func total(code, name string, amount int64) domain.AccountTotal {
	return domain.AccountTotal{AccountCode: code, AccountName: name, NetAmount: decimal.NewFromInt(amount)}
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_EmptyDataYieldsEmptySlice() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.scopeID, suite.asOf).Return(nil, nil).Once()

	rows, err := suite.service.TrialBalance(ctx, suite.scopeID, suite.asOf)

	suite.Require().NoError(err)
	suite.NotNil(rows)
	suite.Empty(rows)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ComputesNetProfit() {
	ctx := context.Background()
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	income := []domain.AccountTotal{
		total(domain.CodeSalesRevenue, "Sales Revenue", 5000),
		total(domain.CodeOtherIncome, "Other Income", 500),
	}
	expenses := []domain.AccountTotal{
		total(domain.CodeGeneralExpense, "General Expense", 1200),
		total(domain.CodeSalaryExpense, "Salary Expense", 1800),
	}

	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, suite.scopeID, from, suite.asOf).Return(income, expenses, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.scopeID, from, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(5500)))
	suite.True(report.TotalExpense.Equal(decimal.NewFromInt(3000)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(2500)))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_NoActivity() {
	ctx := context.Background()
	from := time.Time{}

	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, suite.scopeID, from, suite.asOf).Return(nil, nil, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.scopeID, from, suite.asOf)

	suite.Require().NoError(err)
	suite.NotNil(report.Income)
	suite.NotNil(report.Expenses)
	suite.True(report.NetProfit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_FoldsEarningsIntoEquity() {
	ctx := context.Background()
	assets := []domain.AccountTotal{
		total(domain.CodeCash, "Cash", 1500),
		total(domain.CodeInventory, "Inventory", 1000),
	}
	liabilities := []domain.AccountTotal{total(domain.CodeAccountsPayable, "Accounts Payable", 500)}
	income := []domain.AccountTotal{total(domain.CodeSalesRevenue, "Sales Revenue", 3000)}
	expenses := []domain.AccountTotal{total(domain.CodeGeneralExpense, "General Expense", 1000)}

	suite.mockReportingRepo.On("GetBalanceSheetData", ctx, suite.scopeID, suite.asOf).Return(assets, liabilities, nil, nil).Once()
	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, suite.scopeID, time.Time{}, suite.asOf).Return(income, expenses, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.scopeID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Equity, 1)
	suite.Equal("Current Earnings", report.Equity[0].AccountName)
	suite.True(report.Equity[0].NetAmount.Equal(decimal.NewFromInt(2000)))
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(2500)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(500)))
	suite.True(report.TotalEquity.Equal(decimal.NewFromInt(2000)))
	suite.True(report.Balanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_ReportsMismatchAsFlag() {
	ctx := context.Background()
	assets := []domain.AccountTotal{total(domain.CodeCash, "Cash", 1000)}

	suite.mockReportingRepo.On("GetBalanceSheetData", ctx, suite.scopeID, suite.asOf).Return(assets, nil, nil, nil).Once()
	suite.mockReportingRepo.On("GetProfitAndLossData", ctx, suite.scopeID, time.Time{}, suite.asOf).Return(nil, nil, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.scopeID, suite.asOf)

	suite.Require().NoError(err)
	suite.False(report.Balanced)
	suite.Empty(report.Equity, "Zero earnings should not add a synthetic equity line")
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
