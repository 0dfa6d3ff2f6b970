package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "invoice_dashboard/internal/domain/invoice"
)

func TestValidator_Valid(t *testing.T) {
	v := NewValidator()

	fields, errs := v.Validate(Form{CustomerID: "c1", Amount: "19.99", Status: "pending"})

	assert.Nil(t, errs)
	assert.Equal(t, Fields{CustomerID: "c1", Amount: 1999, Status: domain.StatusPending}, fields)
}

func TestValidator_FieldErrors(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want map[string][]string
	}{
		{
			name: "missing customer",
			form: Form{Amount: "10", Status: "paid"},
			want: map[string][]string{FieldCustomerID: {"Please select a customer."}},
		},
		{
			name: "zero amount",
			form: Form{CustomerID: "c1", Amount: "0", Status: "paid"},
			want: map[string][]string{FieldAmount: {"Please enter an amount greater than 0"}},
		},
		{
			name: "negative amount",
			form: Form{CustomerID: "c1", Amount: "-5", Status: "paid"},
			want: map[string][]string{FieldAmount: {"Please enter an amount greater than 0"}},
		},
		{
			name: "blank amount coerces to zero",
			form: Form{CustomerID: "c1", Amount: "", Status: "paid"},
			want: map[string][]string{FieldAmount: {"Please enter an amount greater than 0"}},
		},
		{
			name: "amount not a number",
			form: Form{CustomerID: "c1", Amount: "ten", Status: "paid"},
			want: map[string][]string{FieldAmount: {"Please enter a valid amount"}},
		},
		{
			name: "amount rounds to zero cents",
			form: Form{CustomerID: "c1", Amount: "0.001", Status: "paid"},
			want: map[string][]string{FieldAmount: {"Please enter an amount greater than 0"}},
		},
		{
			name: "amount in exponent form overflows cents",
			form: Form{CustomerID: "c1", Amount: "1e19", Status: "paid"},
			want: map[string][]string{FieldAmount: {"Please enter a smaller amount"}},
		},
		{
			name: "amount one cent past the largest",
			form: Form{CustomerID: "c1", Amount: "92233720368547758.08", Status: "paid"},
			want: map[string][]string{FieldAmount: {"Please enter a smaller amount"}},
		},
		{
			name: "unknown status",
			form: Form{CustomerID: "c1", Amount: "1", Status: "overdue"},
			want: map[string][]string{FieldStatus: {"Please select an invoice status."}},
		},
		{
			name: "everything wrong at once",
			form: Form{},
			want: map[string][]string{
				FieldCustomerID: {"Please select a customer."},
				FieldAmount:     {"Please enter an amount greater than 0"},
				FieldStatus:     {"Please select an invoice status."},
			},
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, errs := v.Validate(tt.form)
			assert.Equal(t, tt.want, errs)
			assert.Equal(t, Fields{}, fields)
		})
	}
}
