package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "invoice_dashboard/internal/domain/invoice"
	"invoice_dashboard/internal/domain/repository"
)

type InvoiceRepository struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// Migrate creates the invoices table when it is missing.
func (r *InvoiceRepository) Migrate(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS invoices (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
			customer_id TEXT NOT NULL,
			amount BIGINT NOT NULL CHECK (amount >= 0),
			status TEXT NOT NULL CHECK (status IN ('pending', 'paid')),
			date DATE NOT NULL
		);
	`
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create invoices table: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv == nil {
		return fmt.Errorf("invoice is nil")
	}

	const query = `
		INSERT INTO invoices (customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`
	return r.pool.QueryRow(ctx, query,
		inv.CustomerID,
		int64(inv.Amount),
		string(inv.Status),
		inv.Date,
	).Scan(&inv.ID)
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) (int64, error) {
	if inv == nil {
		return 0, fmt.Errorf("invoice is nil")
	}

	const query = `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4;
	`
	tag, err := r.pool.Exec(ctx, query,
		inv.CustomerID,
		int64(inv.Amount),
		string(inv.Status),
		inv.ID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM invoices WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	const query = `
		SELECT id, customer_id, amount, status, to_char(date, 'YYYY-MM-DD')
		FROM invoices
		WHERE id = $1;
	`
	var inv domain.Invoice
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.CustomerID,
		&inv.Amount,
		&inv.Status,
		&inv.Date,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	const query = `
		SELECT id, customer_id, amount, status, to_char(date, 'YYYY-MM-DD')
		FROM invoices
		ORDER BY date DESC, id;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &inv.Status, &inv.Date); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)
