package invoice

import "errors"

var (
	ErrMissingCustomer = errors.New("customer id is required")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrAmountNotNumber = errors.New("amount is not a number")
	ErrAmountTooLarge  = errors.New("amount is too large")
	ErrInvalidStatus   = errors.New("status must be pending or paid")
	ErrNotFound        = errors.New("invoice not found")
)
