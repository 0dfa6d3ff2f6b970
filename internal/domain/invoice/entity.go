package invoice

import "time"

// DateLayout is how the creation date is stored and rendered.
const DateLayout = "2006-01-02"

type Invoice struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     Cents  `json:"amount"`
	Status     Status `json:"status"`
	Date       string `json:"date"`
}

// NewInvoice builds a not yet persisted invoice. The id stays empty until storage assigns it.
func NewInvoice(customerID string, amount Cents, status Status, now time.Time) (*Invoice, error) {
	if customerID == "" {
		return nil, ErrMissingCustomer
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	return &Invoice{
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
		Date:       now.UTC().Format(DateLayout),
	}, nil
}

// Apply overwrites the mutable columns. ID and Date never change after creation.
func (i *Invoice) Apply(customerID string, amount Cents, status Status) error {
	if customerID == "" {
		return ErrMissingCustomer
	}
	if amount < 0 {
		return ErrInvalidAmount
	}
	if !status.Valid() {
		return ErrInvalidStatus
	}
	i.CustomerID = customerID
	i.Amount = amount
	i.Status = status
	return nil
}
