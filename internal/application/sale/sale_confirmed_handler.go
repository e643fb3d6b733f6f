package sale

import (
	"context"
	"fmt"

	inventoryapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/inventory"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// SaleConfirmedHandler handles SaleConfirmedEvent and deducts inventory
// stock for each confirmed line item. Lines without an inventory reference
// were already filtered out of the event payload.
//
// Deduction is all-or-nothing across the sale: if any item has
// insufficient stock, previously deducted items are restocked before the
// error is returned.
type SaleConfirmedHandler struct {
	inventoryService *inventoryapp.Service
	logger           *zap.Logger
}

// NewSaleConfirmedHandler creates a new handler for sale confirmed events
func NewSaleConfirmedHandler(inventoryService *inventoryapp.Service, logger *zap.Logger) *SaleConfirmedHandler {
	return &SaleConfirmedHandler{
		inventoryService: inventoryService,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SaleConfirmedHandler) EventTypes() []string {
	return []string{sale.EventSaleConfirmed}
}

// Handle processes a SaleConfirmedEvent by deducting stock for each item
func (h *SaleConfirmedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	confirmed, ok := event.(*sale.SaleConfirmedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", sale.EventSaleConfirmed),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			sale.EventSaleConfirmed, event.EventType())
	}

	h.logger.Info("processing sale confirmed event",
		zap.String("sale_id", confirmed.AggregateID().String()),
		zap.String("sale_number", confirmed.SaleNumber),
		zap.Int("items_count", len(confirmed.Items)),
	)

	type deducted struct {
		item sale.ConfirmedItem
	}
	done := make([]deducted, 0, len(confirmed.Items))

	for _, item := range confirmed.Items {
		_, err := h.inventoryService.DeductStock(ctx, inventoryapp.DeductStockRequest{
			InventoryID:  item.InventoryID,
			Quantity:     item.Quantity,
			SaleNumber:   confirmed.SaleNumber,
			CustomerName: confirmed.OwnerName,
		})
		if err != nil {
			h.logger.Error("failed to deduct stock for sale item",
				zap.String("sale_number", confirmed.SaleNumber),
				zap.String("inventory_id", item.InventoryID.String()),
				zap.String("sku", item.SKU),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)

			// Compensation: return everything deducted so far, referencing
			// the sale number so the reversal shows up in the audit trail
			for _, d := range done {
				if _, returnErr := h.inventoryService.ReturnStock(ctx, inventoryapp.ReturnStockRequest{
					InventoryID: d.item.InventoryID,
					Quantity:    d.item.Quantity,
					SaleNumber:  confirmed.SaleNumber,
					Reason:      "Deduction reversed, confirmation failed",
				}); returnErr != nil {
					h.logger.Error("compensation failed, could not return item to stock",
						zap.String("sale_number", confirmed.SaleNumber),
						zap.String("inventory_id", d.item.InventoryID.String()),
						zap.String("sku", d.item.SKU),
						zap.Error(returnErr),
					)
				}
			}

			return fmt.Errorf("stock deduction failed for %s: %w", item.SKU, err)
		}
		done = append(done, deducted{item: item})
	}

	h.logger.Info("sale stock deduction completed",
		zap.String("sale_number", confirmed.SaleNumber),
		zap.Int("items_deducted", len(done)),
	)

	return nil
}

// Ensure SaleConfirmedHandler implements shared.EventHandler
var _ shared.EventHandler = (*SaleConfirmedHandler)(nil)
