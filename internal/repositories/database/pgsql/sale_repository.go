package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
)

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sale events and their
// payment rows.
func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepository {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepository = (*PgxSaleRepository)(nil)

const saleColumns = `sale_id, scope_id, customer_name, invoice_no, sale_date, total_payable, note, journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (*domain.SaleEvent, error) {
	var e domain.SaleEvent
	var journalID sql.NullString
	err := row.Scan(
		&e.SaleID,
		&e.ScopeID,
		&e.CustomerName,
		&e.InvoiceNo,
		&e.Date,
		&e.TotalPayable,
		&e.Note,
		&journalID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if journalID.Valid {
		e.JournalID = &journalID.String
	}
	return &e, nil
}

func (r *PgxSaleRepository) insertSalePayments(ctx context.Context, tx pgx.Tx, saleID string, payments []domain.EventPayment) error {
	if len(payments) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO sale_payments (payment_id, sale_id, amount, channel, bank_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''));
	`
	for _, p := range payments {
		batch.Queue(query, p.PaymentID, saleID, p.Amount, p.Channel, p.BankID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert payments for sale "+saleID, err)
	}
	return nil
}

func (r *PgxSaleRepository) InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.SaleEvent) error {
	query := `
		INSERT INTO sales (sale_id, scope_id, customer_name, invoice_no, sale_date, total_payable, note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		ev.SaleID, ev.ScopeID, ev.CustomerName, ev.InvoiceNo, ev.Date, ev.TotalPayable, ev.Note,
		ev.CreatedAt, ev.CreatedBy, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert sale "+ev.SaleID, err)
	}
	return r.insertSalePayments(ctx, tx, ev.SaleID, ev.Payments)
}

// UpdateInTx rewrites the sale row and replaces its payment rows wholesale.
func (r *PgxSaleRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.SaleEvent) error {
	query := `
		UPDATE sales
		SET scope_id = $2, customer_name = $3, invoice_no = $4, sale_date = $5, total_payable = $6,
		    note = $7, last_updated_at = $8, last_updated_by = $9
		WHERE sale_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		ev.SaleID, ev.ScopeID, ev.CustomerName, ev.InvoiceNo, ev.Date, ev.TotalPayable, ev.Note,
		ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update sale "+ev.SaleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_payments WHERE sale_id = $1;`, ev.SaleID); err != nil {
		return apperrors.NewAppError(500, "failed to clear payments for sale "+ev.SaleID, err)
	}
	return r.insertSalePayments(ctx, tx, ev.SaleID, ev.Payments)
}

// DeleteInTx removes a sale; payment rows cascade.
func (r *PgxSaleRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, saleID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM sales WHERE sale_id = $1;`, saleID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete sale "+saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSaleRepository) SetJournalIDInTx(ctx context.Context, tx pgx.Tx, saleID string, journalID *string) error {
	tag, err := tx.Exec(ctx, `UPDATE sales SET journal_id = $2 WHERE sale_id = $1;`, saleID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal to sale "+saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSaleRepository) findSalePayments(ctx context.Context, saleIDs []string) (map[string][]domain.EventPayment, error) {
	if len(saleIDs) == 0 {
		return map[string][]domain.EventPayment{}, nil
	}
	query := `
		SELECT payment_id, sale_id, amount, channel, bank_id
		FROM sale_payments
		WHERE sale_id = ANY($1)
		ORDER BY payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sale payments", err)
	}
	defer rows.Close()

	payments := make(map[string][]domain.EventPayment)
	for rows.Next() {
		var p domain.EventPayment
		var saleID string
		var bankID sql.NullString
		if err := rows.Scan(&p.PaymentID, &saleID, &p.Amount, &p.Channel, &bankID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale payment row", err)
		}
		p.BankID = bankID.String
		payments[saleID] = append(payments[saleID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sale payment rows", err)
	}

	return payments, nil
}

func (r *PgxSaleRepository) FindByID(ctx context.Context, saleID string) (*domain.SaleEvent, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`

	ev, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale "+saleID, err)
	}

	payments, err := r.findSalePayments(ctx, []string{saleID})
	if err != nil {
		return nil, err
	}
	ev.Payments = payments[saleID]
	return ev, nil
}

// List retrieves sale events newest first with their payment rows, optionally
// filtered by scope and date window.
func (r *PgxSaleRepository) List(ctx context.Context, filter portsrepo.EventFilter) ([]domain.SaleEvent, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE ($1 = '' OR scope_id = $1)
		  AND ($2::timestamptz IS NULL OR sale_date >= $2)
		  AND ($3::timestamptz IS NULL OR sale_date <= $3)
		ORDER BY sale_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, filter.ScopeID, nullableTime(filter.From), nullableTime(filter.To))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sales", err)
	}
	defer rows.Close()

	events := []domain.SaleEvent{}
	ids := []string{}
	for rows.Next() {
		ev, err := scanSale(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sale row", err)
		}
		events = append(events, *ev)
		ids = append(ids, ev.SaleID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sale rows", err)
	}

	payments, err := r.findSalePayments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Payments = payments[events[i].SaleID]
	}

	return events, nil
}
