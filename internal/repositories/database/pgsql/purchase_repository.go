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

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase events and
// their payment rows.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepository {
	return &PgxPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepository = (*PgxPurchaseRepository)(nil)

const purchaseColumns = `purchase_id, scope_id, vendor_name, invoice_no, purchase_date, total_payable, note, journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanPurchase(row pgx.Row) (*domain.PurchaseEvent, error) {
	var e domain.PurchaseEvent
	var journalID sql.NullString
	err := row.Scan(
		&e.PurchaseID,
		&e.ScopeID,
		&e.VendorName,
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

// insertPurchasePayments batches the payment rows of one purchase.
func (r *PgxPurchaseRepository) insertPurchasePayments(ctx context.Context, tx pgx.Tx, purchaseID string, payments []domain.EventPayment) error {
	if len(payments) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO purchase_payments (payment_id, purchase_id, amount, channel, bank_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''));
	`
	for _, p := range payments {
		batch.Queue(query, p.PaymentID, purchaseID, p.Amount, p.Channel, p.BankID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert payments for purchase "+purchaseID, err)
	}
	return nil
}

func (r *PgxPurchaseRepository) InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.PurchaseEvent) error {
	query := `
		INSERT INTO purchases (purchase_id, scope_id, vendor_name, invoice_no, purchase_date, total_payable, note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		ev.PurchaseID, ev.ScopeID, ev.VendorName, ev.InvoiceNo, ev.Date, ev.TotalPayable, ev.Note,
		ev.CreatedAt, ev.CreatedBy, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert purchase "+ev.PurchaseID, err)
	}
	return r.insertPurchasePayments(ctx, tx, ev.PurchaseID, ev.Payments)
}

// UpdateInTx rewrites the purchase row and replaces its payment rows wholesale.
func (r *PgxPurchaseRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.PurchaseEvent) error {
	query := `
		UPDATE purchases
		SET scope_id = $2, vendor_name = $3, invoice_no = $4, purchase_date = $5, total_payable = $6,
		    note = $7, last_updated_at = $8, last_updated_by = $9
		WHERE purchase_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		ev.PurchaseID, ev.ScopeID, ev.VendorName, ev.InvoiceNo, ev.Date, ev.TotalPayable, ev.Note,
		ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update purchase "+ev.PurchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_payments WHERE purchase_id = $1;`, ev.PurchaseID); err != nil {
		return apperrors.NewAppError(500, "failed to clear payments for purchase "+ev.PurchaseID, err)
	}
	return r.insertPurchasePayments(ctx, tx, ev.PurchaseID, ev.Payments)
}

// DeleteInTx removes a purchase; payment rows cascade.
func (r *PgxPurchaseRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, purchaseID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1;`, purchaseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete purchase "+purchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPurchaseRepository) SetJournalIDInTx(ctx context.Context, tx pgx.Tx, purchaseID string, journalID *string) error {
	tag, err := tx.Exec(ctx, `UPDATE purchases SET journal_id = $2 WHERE purchase_id = $1;`, purchaseID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal to purchase "+purchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// findPurchasePayments loads the payment rows for a set of purchase IDs,
// keyed by purchase.
func (r *PgxPurchaseRepository) findPurchasePayments(ctx context.Context, purchaseIDs []string) (map[string][]domain.EventPayment, error) {
	if len(purchaseIDs) == 0 {
		return map[string][]domain.EventPayment{}, nil
	}
	query := `
		SELECT payment_id, purchase_id, amount, channel, bank_id
		FROM purchase_payments
		WHERE purchase_id = ANY($1)
		ORDER BY payment_id;
	`
	rows, err := r.Pool.Query(ctx, query, purchaseIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchase payments", err)
	}
	defer rows.Close()

	payments := make(map[string][]domain.EventPayment)
	for rows.Next() {
		var p domain.EventPayment
		var purchaseID string
		var bankID sql.NullString
		if err := rows.Scan(&p.PaymentID, &purchaseID, &p.Amount, &p.Channel, &bankID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase payment row", err)
		}
		p.BankID = bankID.String
		payments[purchaseID] = append(payments[purchaseID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase payment rows", err)
	}

	return payments, nil
}

func (r *PgxPurchaseRepository) FindByID(ctx context.Context, purchaseID string) (*domain.PurchaseEvent, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE purchase_id = $1;`

	ev, err := scanPurchase(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find purchase "+purchaseID, err)
	}

	payments, err := r.findPurchasePayments(ctx, []string{purchaseID})
	if err != nil {
		return nil, err
	}
	ev.Payments = payments[purchaseID]
	return ev, nil
}

// List retrieves purchase events newest first with their payment rows,
// optionally filtered by scope and date window.
func (r *PgxPurchaseRepository) List(ctx context.Context, filter portsrepo.EventFilter) ([]domain.PurchaseEvent, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE ($1 = '' OR scope_id = $1)
		  AND ($2::timestamptz IS NULL OR purchase_date >= $2)
		  AND ($3::timestamptz IS NULL OR purchase_date <= $3)
		ORDER BY purchase_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, filter.ScopeID, nullableTime(filter.From), nullableTime(filter.To))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query purchases", err)
	}
	defer rows.Close()

	events := []domain.PurchaseEvent{}
	ids := []string{}
	for rows.Next() {
		ev, err := scanPurchase(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan purchase row", err)
		}
		events = append(events, *ev)
		ids = append(ids, ev.PurchaseID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating purchase rows", err)
	}

	payments, err := r.findPurchasePayments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Payments = payments[events[i].PurchaseID]
	}

	return events, nil
}
