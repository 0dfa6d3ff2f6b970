package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	domain "invoice_dashboard/internal/domain/invoice"
	"invoice_dashboard/internal/domain/repository"
)

// InvoiceRepository stores invoices in a SQLite file. It plays the role of the
// database for local runs, so it also assigns ids.
type InvoiceRepository struct {
	db    *sql.DB
	newID func() string
}

// Open opens (or creates) the database at path and ensures the schema exists.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*InvoiceRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite only supports one writer at a time; :memory: is also per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	r := &InvoiceRepository{db: db, newID: uuid.NewString}
	if err := r.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *InvoiceRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *InvoiceRepository) Migrate(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS invoices (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			amount INTEGER NOT NULL CHECK (amount >= 0),
			status TEXT NOT NULL CHECK (status IN ('pending', 'paid')),
			date TEXT NOT NULL
		);
	`
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create invoices table: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv == nil {
		return fmt.Errorf("invoice is nil")
	}

	id := r.newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES (?, ?, ?, ?, ?)`,
		id, inv.CustomerID, int64(inv.Amount), string(inv.Status), inv.Date,
	)
	if err != nil {
		return err
	}
	inv.ID = id
	return nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) (int64, error) {
	if inv == nil {
		return 0, fmt.Errorf("invoice is nil")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE invoices
		SET customer_id = ?, amount = ?, status = ?
		WHERE id = ?`,
		inv.CustomerID, int64(inv.Amount), string(inv.Status), inv.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, amount, status, date
		FROM invoices WHERE id = ?`, id)

	var inv domain.Invoice
	var amount int64
	var status string
	err := row.Scan(&inv.ID, &inv.CustomerID, &amount, &status, &inv.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	inv.Amount = domain.Cents(amount)
	inv.Status = domain.Status(status)
	return &inv, nil
}

func (r *InvoiceRepository) List(ctx context.Context) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		ORDER BY date DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var inv domain.Invoice
		var amount int64
		var status string
		if err := rows.Scan(&inv.ID, &inv.CustomerID, &amount, &status, &inv.Date); err != nil {
			return nil, err
		}
		inv.Amount = domain.Cents(amount)
		inv.Status = domain.Status(status)
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)
