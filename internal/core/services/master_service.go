package services

import (
	"context"
	"fmt"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
)

// masterService serves read-mostly reference data.
type masterService struct {
	masterRepo portsrepo.MasterRepository
}

// NewMasterService creates a new master data service.
func NewMasterService(masterRepo portsrepo.MasterRepository) portssvc.MasterSvcFacade {
	return &masterService{masterRepo: masterRepo}
}

var _ portssvc.MasterSvcFacade = (*masterService)(nil)

func (s *masterService) ListBusinessUnits(ctx context.Context) ([]domain.BusinessUnit, error) {
	units, err := s.masterRepo.ListBusinessUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list business units: %w", err)
	}
	return units, nil
}

func (s *masterService) GetBusinessUnit(ctx context.Context, unitID string) (*domain.BusinessUnit, error) {
	unit, err := s.masterRepo.FindBusinessUnitByID(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to find business unit %s: %w", unitID, err)
	}
	return unit, nil
}

func (s *masterService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	banks, err := s.masterRepo.ListBanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	return banks, nil
}

func (s *masterService) GetBank(ctx context.Context, bankID string) (*domain.Bank, error) {
	bank, err := s.masterRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank %s: %w", bankID, err)
	}
	return bank, nil
}
