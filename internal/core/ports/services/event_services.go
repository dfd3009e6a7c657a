package services

import (
	"context"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
)

// Each source-event facade runs the same posting lifecycle: create posts a
// journal immediately, update reverses the old effect and applies the new one,
// delete reverses and removes the journal. All three run as one atomic unit.

type IncomeSvcFacade interface {
	Create(ctx context.Context, req dto.CreateIncomeRequest, userID string) (*domain.IncomeEvent, error)
	Update(ctx context.Context, incomeID string, req dto.CreateIncomeRequest, userID string) (*domain.IncomeEvent, error)
	Delete(ctx context.Context, incomeID string, userID string) error
	GetByID(ctx context.Context, incomeID string) (*domain.IncomeEvent, error)
	List(ctx context.Context, filter dto.EventListParams) ([]domain.IncomeEvent, error)
}

type ExpenseSvcFacade interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseEvent, error)
	Update(ctx context.Context, expenseID string, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseEvent, error)
	Delete(ctx context.Context, expenseID string, userID string) error
	GetByID(ctx context.Context, expenseID string) (*domain.ExpenseEvent, error)
	List(ctx context.Context, filter dto.EventListParams) ([]domain.ExpenseEvent, error)
}

type SalarySvcFacade interface {
	Create(ctx context.Context, req dto.CreateSalaryRequest, userID string) (*domain.SalaryEvent, error)
	Update(ctx context.Context, salaryID string, req dto.CreateSalaryRequest, userID string) (*domain.SalaryEvent, error)
	Delete(ctx context.Context, salaryID string, userID string) error
	GetByID(ctx context.Context, salaryID string) (*domain.SalaryEvent, error)
	List(ctx context.Context, filter dto.EventListParams) ([]domain.SalaryEvent, error)
}

type PurchaseSvcFacade interface {
	Create(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseEvent, error)
	Update(ctx context.Context, purchaseID string, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseEvent, error)
	Delete(ctx context.Context, purchaseID string, userID string) error
	GetByID(ctx context.Context, purchaseID string) (*domain.PurchaseEvent, error)
	List(ctx context.Context, filter dto.EventListParams) ([]domain.PurchaseEvent, error)
}

type SaleSvcFacade interface {
	Create(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.SaleEvent, error)
	Update(ctx context.Context, saleID string, req dto.CreateSaleRequest, userID string) (*domain.SaleEvent, error)
	Delete(ctx context.Context, saleID string, userID string) error
	GetByID(ctx context.Context, saleID string) (*domain.SaleEvent, error)
	List(ctx context.Context, filter dto.EventListParams) ([]domain.SaleEvent, error)
}

type AssetSvcFacade interface {
	Create(ctx context.Context, req dto.CreateAssetRequest, userID string) (*domain.AssetEvent, error)
	Update(ctx context.Context, assetID string, req dto.CreateAssetRequest, userID string) (*domain.AssetEvent, error)
	Delete(ctx context.Context, assetID string, userID string) error
	GetByID(ctx context.Context, assetID string) (*domain.AssetEvent, error)
	List(ctx context.Context, filter dto.EventListParams) ([]domain.AssetEvent, error)
}

type StockSvcFacade interface {
	Create(ctx context.Context, req dto.CreateStockAdjustRequest, userID string) (*domain.StockAdjustEvent, error)
	Update(ctx context.Context, adjustmentID string, req dto.CreateStockAdjustRequest, userID string) (*domain.StockAdjustEvent, error)
	Delete(ctx context.Context, adjustmentID string, userID string) error
	GetByID(ctx context.Context, adjustmentID string) (*domain.StockAdjustEvent, error)
	List(ctx context.Context, filter dto.EventListParams) ([]domain.StockAdjustEvent, error)
}
