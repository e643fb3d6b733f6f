package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, quantity, minQuantity int) *InventoryItem {
	t.Helper()
	item, err := NewInventoryItem("Dog Food 5kg", "DF-5KG", CategoryFood,
		decimal.NewFromInt(100), quantity, minQuantity)
	require.NoError(t, err)
	return item
}

func TestNewInventoryItem(t *testing.T) {
	t.Run("creates active item", func(t *testing.T) {
		item := newTestItem(t, 50, 10)
		assert.Equal(t, 50, item.Quantity)
		assert.Equal(t, 0, item.TotalSold)
		assert.Nil(t, item.LastSaleDate)
		assert.True(t, item.IsActive)
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewInventoryItem("Dog Food", "", CategoryFood, decimal.NewFromInt(100), 1, 0)
		assert.Error(t, err)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewInventoryItem("Dog Food", "DF", ItemCategory("toys"), decimal.NewFromInt(100), 1, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewInventoryItem("Dog Food", "DF", CategoryFood, decimal.NewFromInt(100), -1, 0)
		assert.Error(t, err)
	})
}

func TestDeductForSale(t *testing.T) {
	t.Run("deducts and tracks sale stats", func(t *testing.T) {
		item := newTestItem(t, 50, 10)

		require.NoError(t, item.DeductForSale(3, "SAL-202609-0001"))
		assert.Equal(t, 47, item.Quantity)
		assert.Equal(t, 3, item.TotalSold)
		require.NotNil(t, item.LastSaleDate)

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		deducted, ok := events[0].(*StockDeductedEvent)
		require.True(t, ok)
		assert.Equal(t, "SAL-202609-0001", deducted.SaleNumber)
		assert.Equal(t, 47, deducted.Remaining)
	})

	t.Run("accumulates total sold", func(t *testing.T) {
		item := newTestItem(t, 50, 0)
		require.NoError(t, item.DeductForSale(3, "SAL-202609-0001"))
		require.NoError(t, item.DeductForSale(2, "SAL-202609-0002"))
		assert.Equal(t, 5, item.TotalSold)
		assert.Equal(t, 45, item.Quantity)
	})

	t.Run("rejects insufficient stock without deducting", func(t *testing.T) {
		item := newTestItem(t, 2, 0)
		err := item.DeductForSale(5, "SAL-202609-0003")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, 2, item.Quantity)
		assert.Equal(t, 0, item.TotalSold)
	})

	t.Run("allows deduction to exactly zero", func(t *testing.T) {
		item := newTestItem(t, 5, 0)
		require.NoError(t, item.DeductForSale(5, "SAL-202609-0004"))
		assert.True(t, item.IsOutOfStock())
	})

	t.Run("emits low stock event at threshold", func(t *testing.T) {
		item := newTestItem(t, 12, 10)
		require.NoError(t, item.DeductForSale(2, "SAL-202609-0005"))

		events := item.GetDomainEvents()
		require.Len(t, events, 2)
		low, ok := events[1].(*LowStockEvent)
		require.True(t, ok)
		assert.Equal(t, 10, low.Quantity)
		assert.Equal(t, 10, low.MinQuantity)
		assert.True(t, item.IsLowStock())
	})

	t.Run("no low stock event without threshold", func(t *testing.T) {
		item := newTestItem(t, 3, 0)
		require.NoError(t, item.DeductForSale(2, "SAL-202609-0006"))
		assert.Len(t, item.GetDomainEvents(), 1)
		assert.False(t, item.IsLowStock())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := newTestItem(t, 10, 0)
		assert.Error(t, item.DeductForSale(0, "SAL-202609-0007"))
		assert.Error(t, item.DeductForSale(-1, "SAL-202609-0007"))
	})
}

func TestRestockAndAdjust(t *testing.T) {
	t.Run("restock adds stock", func(t *testing.T) {
		item := newTestItem(t, 5, 0)
		require.NoError(t, item.Restock(20))
		assert.Equal(t, 25, item.Quantity)
		assert.Error(t, item.Restock(0))
	})

	t.Run("adjust sets absolute level", func(t *testing.T) {
		item := newTestItem(t, 30, 0)
		require.NoError(t, item.Adjust(27, "stock take shrinkage"))
		assert.Equal(t, 27, item.Quantity)

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		adjusted, ok := events[0].(*StockAdjustedEvent)
		require.True(t, ok)
		assert.Equal(t, -3, adjusted.Delta)
	})

	t.Run("adjust requires reason", func(t *testing.T) {
		item := newTestItem(t, 30, 0)
		assert.Error(t, item.Adjust(25, ""))
		assert.Error(t, item.Adjust(-1, "negative"))
	})
}

func TestItemExpiry(t *testing.T) {
	item := newTestItem(t, 10, 0)
	assert.False(t, item.IsExpired(time.Now()))

	past := time.Now().Add(-24 * time.Hour)
	item.ExpiryDate = &past
	assert.True(t, item.IsExpired(time.Now()))
}

func TestNewStockMovement(t *testing.T) {
	invID := uuid.New()

	m, err := NewStockMovement(invID, MovementSale, -3, 47, "SAL-202609-0001", "")
	require.NoError(t, err)
	assert.Equal(t, -3, m.Quantity)
	assert.Equal(t, 47, m.Balance)

	_, err = NewStockMovement(uuid.Nil, MovementSale, -3, 47, "", "")
	assert.Error(t, err)

	_, err = NewStockMovement(invID, MovementType("transfer"), 1, 1, "", "")
	assert.Error(t, err)

	_, err = NewStockMovement(invID, MovementPurchase, 0, 1, "", "")
	assert.Error(t, err)
}
