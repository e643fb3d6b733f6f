package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/inventory"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db *Database
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *Database) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindBySKU finds an inventory item by its SKU
func (r *GormInventoryRepository) FindBySKU(ctx context.Context, sku string) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.DB.WithContext(ctx).Where("sku = ?", sku).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds items matching the filter
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&inventory.InventoryItem{}), filter)
	query = applyPagination(query, filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindLowStock returns active items at or below their minimum quantity
func (r *GormInventoryRepository) FindLowStock(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.db.DB.WithContext(ctx).Model(&inventory.InventoryItem{}).
		Where("is_active = ?", true).
		Where("min_quantity > 0 AND quantity <= min_quantity")
	query = applyPagination(query, filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByCategory returns items in the given category
func (r *GormInventoryRepository) FindByCategory(ctx context.Context, category inventory.ItemCategory, filter shared.Filter) ([]inventory.InventoryItem, error) {
	return r.FindAll(ctx, withFilters(filter, "category", string(category)))
}

// Save persists an inventory item
func (r *GormInventoryRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	return r.db.DB.WithContext(ctx).Save(item).Error
}

// Delete removes an inventory item
func (r *GormInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Delete(&inventory.InventoryItem{}, "id = ?", id).Error
}

// Count counts items matching the filter
func (r *GormInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&inventory.InventoryItem{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Where("is_active = ?", true)

	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if supplier, ok := filter.Filters["supplier"]; ok {
		query = query.Where("supplier = ?", supplier)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}
	return query
}

var _ inventory.Repository = (*GormInventoryRepository)(nil)

// GormMovementRepository implements inventory.MovementRepository using GORM
type GormMovementRepository struct {
	db *Database
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *Database) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Save persists a stock movement
func (r *GormMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.DB.WithContext(ctx).Save(movement).Error
}

// FindByInventory returns movements for an inventory item, newest first
func (r *GormMovementRepository) FindByInventory(ctx context.Context, inventoryID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.DB.WithContext(ctx).Model(&inventory.StockMovement{}).
		Where("inventory_id = ?", inventoryID)
	query = applyPagination(query, filter)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByReference returns movements recorded against a reference such as
// a sale number
func (r *GormMovementRepository) FindByReference(ctx context.Context, reference string) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.DB.WithContext(ctx).
		Where("reference = ?", reference).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
