package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAmounts() InvoiceAmounts {
	return InvoiceAmounts{
		Subtotal:      decimal.NewFromInt(200),
		TotalDiscount: decimal.NewFromInt(20),
		TotalTaxable:  decimal.NewFromInt(180),
		TotalGST:      decimal.NewFromFloat(32.4),
		GrandTotal:    decimal.NewFromFloat(212.4),
	}
}

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv, err := NewInvoice("INV-202609-0001", uuid.New(), "SAL-202609-0001",
		uuid.New(), "Asha Patel", "", testAmounts())
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("issues with frozen amounts", func(t *testing.T) {
		inv := newTestInvoice(t)
		assert.Equal(t, InvoiceStatusIssued, inv.Status)
		assert.True(t, inv.GrandTotal.Equal(decimal.NewFromFloat(212.4)))
		assert.False(t, inv.IssuedAt.IsZero())

		events := inv.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventInvoiceIssued, events[0].EventType())
	})

	t.Run("rejects missing identifiers", func(t *testing.T) {
		_, err := NewInvoice("", uuid.New(), "SAL-202609-0001", uuid.New(), "Asha", "", testAmounts())
		assert.Error(t, err)
		_, err = NewInvoice("INV-202609-0001", uuid.Nil, "SAL-202609-0001", uuid.New(), "Asha", "", testAmounts())
		assert.Error(t, err)
		_, err = NewInvoice("INV-202609-0001", uuid.New(), "", uuid.New(), "Asha", "", testAmounts())
		assert.Error(t, err)
	})
}

func TestInvoiceTransitions(t *testing.T) {
	t.Run("issued to paid", func(t *testing.T) {
		inv := newTestInvoice(t)
		require.NoError(t, inv.MarkPaid())
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		require.NotNil(t, inv.PaidAt)
		assert.Error(t, inv.MarkPaid())
		assert.Error(t, inv.Cancel("too late"))
	})

	t.Run("issued to cancelled", func(t *testing.T) {
		inv := newTestInvoice(t)
		assert.Error(t, inv.Cancel(""))
		require.NoError(t, inv.Cancel("issued against wrong sale"))
		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
		assert.Error(t, inv.MarkPaid())
	})
}
