package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Repository defines persistence operations for inventory items
type Repository interface {
	shared.Repository[InventoryItem]

	// FindBySKU looks an item up by its SKU
	FindBySKU(ctx context.Context, sku string) (*InventoryItem, error)

	// FindLowStock returns active items at or below their minimum quantity
	FindLowStock(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// FindByCategory returns items in the given category
	FindByCategory(ctx context.Context, category ItemCategory, filter shared.Filter) ([]InventoryItem, error)
}

// MovementRepository defines persistence operations for stock movements
type MovementRepository interface {
	Save(ctx context.Context, movement *StockMovement) error
	FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	FindByReference(ctx context.Context, reference string) ([]StockMovement, error)
}
