package inventory

import (
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

const AggregateTypeInventoryItem = "InventoryItem"

const (
	EventStockDeducted  = "inventory.stock_deducted"
	EventStockRestocked = "inventory.stock_restocked"
	EventStockAdjusted  = "inventory.stock_adjusted"
	EventLowStock       = "inventory.low_stock"
)

// StockDeductedEvent is raised when stock is removed by a confirmed sale
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	SKU        string `json:"sku"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	Remaining  int    `json:"remaining"`
	SaleNumber string `json:"sale_number"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(item *InventoryItem, quantity int, saleNumber string) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStockDeducted, AggregateTypeInventoryItem, item.ID),
		SKU:             item.SKU,
		ItemName:        item.Name,
		Quantity:        quantity,
		Remaining:       item.Quantity,
		SaleNumber:      saleNumber,
	}
}

// StockRestockedEvent is raised when stock is received
type StockRestockedEvent struct {
	shared.BaseDomainEvent
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

// NewStockRestockedEvent creates a new StockRestockedEvent
func NewStockRestockedEvent(item *InventoryItem, quantity int) *StockRestockedEvent {
	return &StockRestockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStockRestocked, AggregateTypeInventoryItem, item.ID),
		SKU:             item.SKU,
		Quantity:        quantity,
		Remaining:       item.Quantity,
	}
}

// StockAdjustedEvent is raised by a stock-taking correction
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	SKU    string `json:"sku"`
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(item *InventoryItem, delta int, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStockAdjusted, AggregateTypeInventoryItem, item.ID),
		SKU:             item.SKU,
		Delta:           delta,
		Reason:          reason,
	}
}

// LowStockEvent is raised when the remaining quantity reaches the minimum
// threshold. Notification subscribers use it to alert staff.
type LowStockEvent struct {
	shared.BaseDomainEvent
	SKU         string `json:"sku"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}

// NewLowStockEvent creates a new LowStockEvent
func NewLowStockEvent(item *InventoryItem) *LowStockEvent {
	return &LowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventLowStock, AggregateTypeInventoryItem, item.ID),
		SKU:             item.SKU,
		ItemName:        item.Name,
		Quantity:        item.Quantity,
		MinQuantity:     item.MinQuantity,
	}
}
