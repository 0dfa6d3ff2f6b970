package invoice

import (
	"context"
	"fmt"
	"time"

	domain "invoice_dashboard/internal/domain/invoice"
	"invoice_dashboard/internal/domain/repository"
	"invoice_dashboard/pkg/logger"
)

// InvoicesPath is both the redirect target and the route invalidated after a mutation.
const InvoicesPath = "/dashboard/invoices"

const (
	msgCreateInvalid = "Missing Fields. Failed to create invoice"
	msgUpdateInvalid = "Missing Fields. Failed to update invoice"
	msgCreateFailed  = "Database Error: Failed to create invoice"
	msgUpdateFailed  = "Database Error: Failed to update invoice"
	msgDeleteFailed  = "Database Error: Failed to delete invoice"
	msgDeleted       = "Invoice deleted successfully"
)

// Revalidator marks a route stale. It must not fail the action.
type Revalidator interface {
	RevalidatePath(ctx context.Context, path string)
}

// Recorder counts mutations by action and outcome kind.
type Recorder interface {
	Mutation(action string, kind Kind)
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string, Kind) {}

type Service struct {
	repo        repository.InvoiceRepository
	revalidator Revalidator
	validator   *Validator
	recorder    Recorder
	log         logger.Logger
	now         func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used for the creation date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(repo repository.InvoiceRepository, revalidator Revalidator, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		revalidator: revalidator,
		validator:   NewValidator(),
		recorder:    nopRecorder{},
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) CreateInvoice(ctx context.Context, form Form) Outcome {
	out := s.createInvoice(ctx, form)
	s.recorder.Mutation("create", out.Kind)
	return out
}

func (s *Service) createInvoice(ctx context.Context, form Form) Outcome {
	fields, errs := s.validator.Validate(form)
	if errs != nil {
		return invalid(errs, msgCreateInvalid)
	}

	inv, err := domain.NewInvoice(fields.CustomerID, fields.Amount, fields.Status, s.now())
	if err != nil {
		return invalid(map[string][]string{"form": {err.Error()}}, msgCreateInvalid)
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return storageError(msgCreateFailed, fmt.Errorf("create invoice: %w", err))
	}

	s.revalidator.RevalidatePath(context.WithoutCancel(ctx), InvoicesPath)
	return redirectTo(InvoicesPath)
}

func (s *Service) UpdateInvoice(ctx context.Context, id string, form Form) Outcome {
	out := s.updateInvoice(ctx, id, form)
	s.recorder.Mutation("update", out.Kind)
	return out
}

func (s *Service) updateInvoice(ctx context.Context, id string, form Form) Outcome {
	fields, errs := s.validator.Validate(form)
	if errs != nil {
		return invalid(errs, msgUpdateInvalid)
	}

	inv := &domain.Invoice{ID: id}
	if err := inv.Apply(fields.CustomerID, fields.Amount, fields.Status); err != nil {
		return invalid(map[string][]string{"form": {err.Error()}}, msgUpdateInvalid)
	}

	rows, err := s.repo.Update(ctx, inv)
	if err != nil {
		return storageError(msgUpdateFailed, fmt.Errorf("update invoice %s: %w", id, err))
	}
	if rows == 0 {
		s.log.WithContext(ctx).Warn("update matched no invoice", logger.String("invoice_id", id))
	}

	s.revalidator.RevalidatePath(context.WithoutCancel(ctx), InvoicesPath)
	return redirectTo(InvoicesPath)
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) Outcome {
	out := s.deleteInvoice(ctx, id)
	s.recorder.Mutation("delete", out.Kind)
	return out
}

func (s *Service) deleteInvoice(ctx context.Context, id string) Outcome {
	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storageError(msgDeleteFailed, fmt.Errorf("delete invoice %s: %w", id, err))
	}
	if rows == 0 {
		s.log.WithContext(ctx).Debug("delete matched no invoice", logger.String("invoice_id", id))
	}

	s.revalidator.RevalidatePath(context.WithoutCancel(ctx), InvoicesPath)
	return done(msgDeleted)
}

// GetInvoice loads one invoice for the edit form.
func (s *Service) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find invoice %s: %w", id, err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (s *Service) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}
