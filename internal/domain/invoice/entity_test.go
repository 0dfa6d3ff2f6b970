package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice(t *testing.T) {
	now := time.Date(2026, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))

	inv, err := NewInvoice("c1", 1999, StatusPending, now)

	require.NoError(t, err)
	assert.Empty(t, inv.ID)
	assert.Equal(t, "c1", inv.CustomerID)
	assert.Equal(t, Cents(1999), inv.Amount)
	assert.Equal(t, StatusPending, inv.Status)
	// creation date is taken in UTC
	assert.Equal(t, "2026-03-10", inv.Date)
}

func TestNewInvoice_Invalid(t *testing.T) {
	now := time.Now()

	_, err := NewInvoice("", 100, StatusPaid, now)
	assert.ErrorIs(t, err, ErrMissingCustomer)

	_, err = NewInvoice("c1", -1, StatusPaid, now)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewInvoice("c1", 100, Status("void"), now)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestInvoice_ApplyKeepsIdentity(t *testing.T) {
	inv := &Invoice{ID: "id-1", CustomerID: "c1", Amount: 100, Status: StatusPending, Date: "2026-01-01"}

	require.NoError(t, inv.Apply("c2", 250, StatusPaid))

	assert.Equal(t, "id-1", inv.ID)
	assert.Equal(t, "2026-01-01", inv.Date)
	assert.Equal(t, "c2", inv.CustomerID)
	assert.Equal(t, Cents(250), inv.Amount)
	assert.Equal(t, StatusPaid, inv.Status)

	assert.ErrorIs(t, inv.Apply("c2", 250, Status("x")), ErrInvalidStatus)
}
