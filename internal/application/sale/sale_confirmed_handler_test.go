package sale

import (
	"context"
	"testing"

	"github.com/google/uuid"
	inventoryapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/inventory"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/inventory"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryItemRepo is an in-memory inventory.Repository for handler tests
type memoryItemRepo struct {
	items map[uuid.UUID]*inventory.InventoryItem
}

func newMemoryItemRepo() *memoryItemRepo {
	return &memoryItemRepo{items: make(map[uuid.UUID]*inventory.InventoryItem)}
}

func (r *memoryItemRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *memoryItemRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.InventoryItem, error) {
	out := make([]inventory.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *memoryItemRepo) Save(_ context.Context, item *inventory.InventoryItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *memoryItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *memoryItemRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *memoryItemRepo) FindBySKU(_ context.Context, sku string) (*inventory.InventoryItem, error) {
	for _, item := range r.items {
		if item.SKU == sku {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryItemRepo) FindLowStock(_ context.Context, _ shared.Filter) ([]inventory.InventoryItem, error) {
	out := make([]inventory.InventoryItem, 0)
	for _, item := range r.items {
		if item.IsLowStock() {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *memoryItemRepo) FindByCategory(_ context.Context, category inventory.ItemCategory, _ shared.Filter) ([]inventory.InventoryItem, error) {
	out := make([]inventory.InventoryItem, 0)
	for _, item := range r.items {
		if item.Category == category {
			out = append(out, *item)
		}
	}
	return out, nil
}

// memoryMovementRepo is an in-memory inventory.MovementRepository
type memoryMovementRepo struct {
	movements []inventory.StockMovement
}

func (r *memoryMovementRepo) Save(_ context.Context, m *inventory.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memoryMovementRepo) FindByInventory(_ context.Context, inventoryID uuid.UUID, _ shared.Filter) ([]inventory.StockMovement, error) {
	out := make([]inventory.StockMovement, 0)
	for _, m := range r.movements {
		if m.InventoryID == inventoryID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memoryMovementRepo) FindByReference(_ context.Context, reference string) ([]inventory.StockMovement, error) {
	out := make([]inventory.StockMovement, 0)
	for _, m := range r.movements {
		if m.Reference == reference {
			out = append(out, m)
		}
	}
	return out, nil
}

func seedItem(t *testing.T, repo *memoryItemRepo, sku string, quantity int) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem("Item "+sku, sku, inventory.CategoryFood,
		decimal.NewFromInt(100), quantity, 0)
	require.NoError(t, err)
	repo.items[item.ID] = item
	return item
}

func confirmedEvent(t *testing.T, lines ...sale.ConfirmedItem) *sale.SaleConfirmedEvent {
	t.Helper()
	sl, err := sale.NewSale("SAL-202609-0042", uuid.New(), "Asha Patel", nil, uuid.New())
	require.NoError(t, err)
	for _, line := range lines {
		_, err := sl.AddItem(line.InventoryID, line.ItemName, line.SKU, line.Quantity,
			decimal.NewFromInt(100), decimal.Zero, sale.DiscountTypePercentage, sale.GSTDetails{Type: sale.GSTTypeExempt})
		require.NoError(t, err)
	}
	sl.ClearDomainEvents()
	require.NoError(t, sl.Confirm())
	events := sl.GetDomainEvents()
	require.Len(t, events, 1)
	return events[0].(*sale.SaleConfirmedEvent)
}

func TestSaleConfirmedHandler(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("deducts stock for each confirmed line", func(t *testing.T) {
		itemRepo := newMemoryItemRepo()
		movementRepo := &memoryMovementRepo{}
		invService := inventoryapp.NewService(itemRepo, movementRepo)
		handler := NewSaleConfirmedHandler(invService, logger)

		food := seedItem(t, itemRepo, "DF-5KG", 50)
		litter := seedItem(t, itemRepo, "CL-10", 20)

		event := confirmedEvent(t,
			sale.ConfirmedItem{InventoryID: food.ID, ItemName: food.Name, SKU: food.SKU, Quantity: 3},
			sale.ConfirmedItem{InventoryID: litter.ID, ItemName: litter.Name, SKU: litter.SKU, Quantity: 2},
		)

		require.NoError(t, handler.Handle(ctx, event))
		assert.Equal(t, 47, itemRepo.items[food.ID].Quantity)
		assert.Equal(t, 18, itemRepo.items[litter.ID].Quantity)
		assert.Equal(t, 3, itemRepo.items[food.ID].TotalSold)

		// Movements carry the sale number as reference and name the buyer
		moved, err := movementRepo.FindByReference(ctx, "SAL-202609-0042")
		require.NoError(t, err)
		require.Len(t, moved, 2)
		for _, m := range moved {
			assert.Equal(t, inventory.MovementSale, m.Type)
			assert.Equal(t, "Sold to Asha Patel", m.Reason)
		}
	})

	t.Run("restocks deducted items when a later line fails", func(t *testing.T) {
		itemRepo := newMemoryItemRepo()
		movementRepo := &memoryMovementRepo{}
		invService := inventoryapp.NewService(itemRepo, movementRepo)
		handler := NewSaleConfirmedHandler(invService, logger)

		food := seedItem(t, itemRepo, "DF-5KG", 50)
		scarce := seedItem(t, itemRepo, "MED-01", 1)

		event := confirmedEvent(t,
			sale.ConfirmedItem{InventoryID: food.ID, ItemName: food.Name, SKU: food.SKU, Quantity: 3},
			sale.ConfirmedItem{InventoryID: scarce.ID, ItemName: scarce.Name, SKU: scarce.SKU, Quantity: 5},
		)

		err := handler.Handle(ctx, event)
		require.Error(t, err)

		// Compensation restored the first item; the scarce one never moved
		assert.Equal(t, 50, itemRepo.items[food.ID].Quantity)
		assert.Equal(t, 1, itemRepo.items[scarce.ID].Quantity)

		// The reversal is a return movement tied to the sale number
		moved, err := movementRepo.FindByReference(ctx, "SAL-202609-0042")
		require.NoError(t, err)
		require.Len(t, moved, 2)
		assert.Equal(t, inventory.MovementSale, moved[0].Type)
		assert.Equal(t, inventory.MovementReturn, moved[1].Type)
		assert.Equal(t, food.ID, moved[1].InventoryID)
		assert.Equal(t, 3, moved[1].Quantity)
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		itemRepo := newMemoryItemRepo()
		invService := inventoryapp.NewService(itemRepo, &memoryMovementRepo{})
		handler := NewSaleConfirmedHandler(invService, logger)

		sl, err := sale.NewSale("SAL-202609-0001", uuid.New(), "Asha Patel", nil, uuid.New())
		require.NoError(t, err)
		assert.Error(t, handler.Handle(ctx, sale.NewSaleCreatedEvent(sl)))
	})

	t.Run("declares interest in the confirmed event only", func(t *testing.T) {
		invService := inventoryapp.NewService(newMemoryItemRepo(), &memoryMovementRepo{})
		handler := NewSaleConfirmedHandler(invService, logger)
		assert.Equal(t, []string{sale.EventSaleConfirmed}, handler.EventTypes())
	})
}
