package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
)

type PgxMasterRepository struct {
	BaseRepository
}

// newPgxMasterRepository creates a new repository for reference data.
func newPgxMasterRepository(pool *pgxpool.Pool) portsrepo.MasterRepository {
	return &PgxMasterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MasterRepository = (*PgxMasterRepository)(nil)

func (r *PgxMasterRepository) ListBusinessUnits(ctx context.Context) ([]domain.BusinessUnit, error) {
	rows, err := r.Pool.Query(ctx, `SELECT unit_id, name FROM business_units ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query business units", err)
	}
	defer rows.Close()

	units := []domain.BusinessUnit{}
	for rows.Next() {
		var u domain.BusinessUnit
		if err := rows.Scan(&u.UnitID, &u.Name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan business unit row", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating business unit rows", err)
	}

	return units, nil
}

func (r *PgxMasterRepository) FindBusinessUnitByID(ctx context.Context, unitID string) (*domain.BusinessUnit, error) {
	var u domain.BusinessUnit
	err := r.Pool.QueryRow(ctx, `SELECT unit_id, name FROM business_units WHERE unit_id = $1;`, unitID).
		Scan(&u.UnitID, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("business unit " + unitID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find business unit "+unitID, err)
	}
	return &u, nil
}

func (r *PgxMasterRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	rows, err := r.Pool.Query(ctx, `SELECT bank_id, name FROM banks ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query banks", err)
	}
	defer rows.Close()

	banks := []domain.Bank{}
	for rows.Next() {
		var b domain.Bank
		if err := rows.Scan(&b.BankID, &b.Name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank row", err)
		}
		banks = append(banks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank rows", err)
	}

	return banks, nil
}

func (r *PgxMasterRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	var b domain.Bank
	err := r.Pool.QueryRow(ctx, `SELECT bank_id, name FROM banks WHERE bank_id = $1;`, bankID).
		Scan(&b.BankID, &b.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("bank " + bankID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find bank "+bankID, err)
	}
	return &b, nil
}
