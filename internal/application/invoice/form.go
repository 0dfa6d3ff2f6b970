package invoice

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	domain "invoice_dashboard/internal/domain/invoice"
)

const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

const (
	msgSelectCustomer = "Please select a customer."
	msgAmountNumber   = "Please enter a valid amount"
	msgAmountPositive = "Please enter an amount greater than 0"
	msgAmountTooLarge = "Please enter a smaller amount"
	msgSelectStatus   = "Please select an invoice status."
)

// Form is the raw payload of the create and edit forms.
type Form struct {
	CustomerID string `form:"customerId" json:"customerId" validate:"required"`
	Amount     string `form:"amount" json:"amount" validate:"amount_number,amount_positive,amount_max"`
	Status     string `form:"status" json:"status" validate:"oneof=pending paid"`
}

// Fields is a Form that passed validation.
type Fields struct {
	CustomerID string
	Amount     domain.Cents
	Status     domain.Status
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	// blank amount is coerced to zero and reported by amount_positive instead
	_ = v.RegisterValidation("amount_number", func(fl validator.FieldLevel) bool {
		raw := strings.TrimSpace(fl.Field().String())
		if raw == "" {
			return true
		}
		_, err := decimal.NewFromString(raw)
		return err == nil
	})
	_ = v.RegisterValidation("amount_positive", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAmount(fl.Field().String())
		return !errors.Is(err, domain.ErrInvalidAmount)
	})
	_ = v.RegisterValidation("amount_max", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAmount(fl.Field().String())
		return !errors.Is(err, domain.ErrAmountTooLarge)
	})
	return &Validator{validate: v}
}

// Validate checks every field and collects all messages. A nil map means the form is valid.
func (v *Validator) Validate(form Form) (Fields, map[string][]string) {
	if err := v.validate.Struct(form); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return Fields{}, map[string][]string{"form": {err.Error()}}
		}
		errs := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			errs[fe.Field()] = append(errs[fe.Field()], messageFor(fe))
		}
		return Fields{}, errs
	}

	amount, err := domain.ParseAmount(form.Amount)
	if err != nil {
		return Fields{}, map[string][]string{FieldAmount: {amountMessage(err)}}
	}

	return Fields{
		CustomerID: form.CustomerID,
		Amount:     amount,
		Status:     domain.Status(form.Status),
	}, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "amount_number":
		return msgAmountNumber
	case "amount_positive":
		return msgAmountPositive
	case "amount_max":
		return msgAmountTooLarge
	}
	switch fe.Field() {
	case FieldCustomerID:
		return msgSelectCustomer
	case FieldStatus:
		return msgSelectStatus
	}
	return fe.Error()
}

func amountMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAmountNotNumber):
		return msgAmountNumber
	case errors.Is(err, domain.ErrAmountTooLarge):
		return msgAmountTooLarge
	}
	return msgAmountPositive
}
