package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/inventory"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Service handles inventory business operations
type Service struct {
	itemRepo       inventory.Repository
	movementRepo   inventory.MovementRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new inventory Service
func NewService(itemRepo inventory.Repository, movementRepo inventory.MovementRepository) *Service {
	return &Service{
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new inventory item
func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	if existing, err := s.itemRepo.FindBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_SKU", "An item with this SKU already exists")
	}

	item, err := inventory.NewInventoryItem(req.Name, req.SKU, inventory.ItemCategory(req.Category),
		req.Price, req.Quantity, req.MinQuantity)
	if err != nil {
		return nil, err
	}
	item.Description = req.Description
	item.Cost = req.Cost
	item.GSTRate = req.GSTRate
	item.HSNCode = req.HSNCode
	item.ExpiryDate = req.ExpiryDate
	item.Supplier = req.Supplier

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByID retrieves an inventory item by ID
func (s *Service) GetByID(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetBySKU retrieves an inventory item by SKU
func (s *Service) GetBySKU(ctx context.Context, sku string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List retrieves inventory items with filtering and pagination
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ItemResponse], error) {
	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToItemResponses(items), total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListLowStock retrieves items at or below their minimum quantity
func (s *Service) ListLowStock(ctx context.Context, filter shared.Filter) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindLowStock(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Update modifies mutable fields of an inventory item
func (s *Service) Update(ctx context.Context, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		if err := item.UpdatePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Cost != nil {
		item.Cost = *req.Cost
	}
	if req.GSTRate != nil {
		item.GSTRate = *req.GSTRate
	}
	if req.MinQuantity != nil {
		if err := item.UpdateMinQuantity(*req.MinQuantity); err != nil {
			return nil, err
		}
	}
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// DeductStock removes sold units from an item. The deduction, the movement
// record and the event publication happen in order; insufficient stock
// fails before anything is written.
func (s *Service) DeductStock(ctx context.Context, req DeductStockRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, req.InventoryID)
	if err != nil {
		return nil, err
	}

	if err := item.DeductForSale(req.Quantity, req.SaleNumber); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	reason := ""
	if req.CustomerName != "" {
		reason = "Sold to " + req.CustomerName
	}
	movement, err := inventory.NewStockMovement(item.ID, inventory.MovementSale,
		-req.Quantity, item.Quantity, req.SaleNumber, reason)
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	resp := ToItemResponse(item)
	return &resp, nil
}

// Restock adds received units to an item
func (s *Service) Restock(ctx context.Context, itemID uuid.UUID, req RestockRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := item.Restock(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	movement, err := inventory.NewStockMovement(item.ID, inventory.MovementPurchase,
		req.Quantity, item.Quantity, "", "")
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	resp := ToItemResponse(item)
	return &resp, nil
}

// ReturnStock puts units back into stock after a sale reversal. The
// movement carries the sale number so the audit trail ties the return to
// the sale that caused it.
func (s *Service) ReturnStock(ctx context.Context, req ReturnStockRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, req.InventoryID)
	if err != nil {
		return nil, err
	}
	if err := item.Restock(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	movement, err := inventory.NewStockMovement(item.ID, inventory.MovementReturn,
		req.Quantity, item.Quantity, req.SaleNumber, req.Reason)
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	resp := ToItemResponse(item)
	return &resp, nil
}

// AdjustStock sets the stock level to an absolute count
func (s *Service) AdjustStock(ctx context.Context, itemID uuid.UUID, req AdjustStockRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	delta := req.Quantity - item.Quantity
	if err := item.Adjust(req.Quantity, req.Reason); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	if delta != 0 {
		movement, err := inventory.NewStockMovement(item.ID, inventory.MovementAdjustment,
			delta, item.Quantity, "", req.Reason)
		if err != nil {
			return nil, err
		}
		if err := s.movementRepo.Save(ctx, movement); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, item)

	resp := ToItemResponse(item)
	return &resp, nil
}

// Movements retrieves the stock movement history of an item
func (s *Service) Movements(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindByInventory(ctx, itemID, filter)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

// Delete soft-deletes an inventory item
func (s *Service) Delete(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	item.Deactivate()
	return s.itemRepo.Save(ctx, item)
}

func (s *Service) publishEvents(ctx context.Context, item *inventory.InventoryItem) {
	if s.eventPublisher == nil {
		item.ClearDomainEvents()
		return
	}
	for _, event := range item.GetDomainEvents() {
		// Stock was already persisted; event delivery failures must not
		// fail the operation.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	item.ClearDomainEvents()
}
