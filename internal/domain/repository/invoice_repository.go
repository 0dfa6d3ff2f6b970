package repository

import (
	"context"

	"invoice_dashboard/internal/domain/invoice"
)

// InvoiceRepository issues exactly one statement per call.
// Update and Delete report how many rows matched; zero is not an error.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *invoice.Invoice) error
	Update(ctx context.Context, inv *invoice.Invoice) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	FindByID(ctx context.Context, id string) (*invoice.Invoice, error)
	List(ctx context.Context) ([]invoice.Invoice, error)
}
