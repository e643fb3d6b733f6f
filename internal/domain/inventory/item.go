package inventory

import (
	"fmt"
	"time"

	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemCategory classifies inventory for reporting and GST defaults
type ItemCategory string

const (
	CategoryFood        ItemCategory = "food"
	CategoryMedicine    ItemCategory = "medicine"
	CategoryAccessory   ItemCategory = "accessory"
	CategoryGrooming    ItemCategory = "grooming"
	CategoryService     ItemCategory = "service"
	CategoryMiscellaneo ItemCategory = "miscellaneous"
)

// IsValid checks if the category is a valid ItemCategory
func (c ItemCategory) IsValid() bool {
	switch c {
	case CategoryFood, CategoryMedicine, CategoryAccessory, CategoryGrooming, CategoryService, CategoryMiscellaneo:
		return true
	}
	return false
}

// InventoryItem is the aggregate root for a stocked product. Quantity is
// whole units; sales deduct through DeductForSale which also maintains the
// TotalSold counter and LastSaleDate.
type InventoryItem struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null" json:"name"`
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex" json:"sku"`
	Category     ItemCategory    `gorm:"type:varchar(30);not null;default:'miscellaneous'" json:"category"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Cost         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost"`
	GSTRate      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"gstRate"`
	HSNCode      string          `gorm:"type:varchar(20)" json:"hsnCode,omitempty"`
	Quantity     int             `gorm:"not null;default:0" json:"quantity"`
	MinQuantity  int             `gorm:"not null;default:0" json:"minQuantity"`
	TotalSold    int             `gorm:"not null;default:0" json:"totalSold"`
	LastSaleDate *time.Time      `json:"lastSaleDate,omitempty"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
	Supplier     string          `gorm:"type:varchar(200)" json:"supplier,omitempty"`
	IsActive     bool            `gorm:"not null;default:true" json:"isActive"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(name, sku string, category ItemCategory, price decimal.Decimal, quantity, minQuantity int) (*InventoryItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Item category is not recognised")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if minQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_MIN_QUANTITY", "Minimum quantity cannot be negative")
	}

	return &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		Category:          category,
		Price:             price,
		Quantity:          quantity,
		MinQuantity:       minQuantity,
		IsActive:          true,
	}, nil
}

// DeductForSale removes sold units from stock. The deduction is atomic at
// the aggregate level: either the full quantity is available or nothing is
// deducted. A successful deduction bumps TotalSold, stamps LastSaleDate
// and emits StockDeductedEvent, plus LowStockEvent when the remaining
// quantity falls to or below the minimum threshold.
func (i *InventoryItem) DeductForSale(quantity int, saleNumber string) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}
	if i.Quantity < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: have %d, need %d", i.SKU, i.Quantity, quantity))
	}

	now := time.Now()
	i.Quantity -= quantity
	i.TotalSold += quantity
	i.LastSaleDate = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewStockDeductedEvent(i, quantity, saleNumber))

	if i.MinQuantity > 0 && i.Quantity <= i.MinQuantity {
		i.AddDomainEvent(NewLowStockEvent(i))
	}

	return nil
}

// Restock adds received units to stock
func (i *InventoryItem) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	i.Quantity += quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockRestockedEvent(i, quantity))

	return nil
}

// Adjust sets the stock level to an absolute count, recording the reason.
// Used for stock-taking corrections.
func (i *InventoryItem) Adjust(newQuantity int, reason string) error {
	if newQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Adjusted quantity cannot be negative")
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}

	delta := newQuantity - i.Quantity
	i.Quantity = newQuantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockAdjustedEvent(i, delta, reason))

	if i.MinQuantity > 0 && i.Quantity <= i.MinQuantity {
		i.AddDomainEvent(NewLowStockEvent(i))
	}

	return nil
}

// UpdatePrice updates the selling price
func (i *InventoryItem) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	i.Price = price
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateMinQuantity updates the low-stock threshold
func (i *InventoryItem) UpdateMinQuantity(minQuantity int) error {
	if minQuantity < 0 {
		return shared.NewDomainError("INVALID_MIN_QUANTITY", "Minimum quantity cannot be negative")
	}
	i.MinQuantity = minQuantity
	i.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the item is at or below its threshold
func (i *InventoryItem) IsLowStock() bool {
	return i.MinQuantity > 0 && i.Quantity <= i.MinQuantity
}

// IsOutOfStock reports whether the item has no stock left
func (i *InventoryItem) IsOutOfStock() bool {
	return i.Quantity <= 0
}

// IsExpired reports whether the item has passed its expiry date
func (i *InventoryItem) IsExpired(asOf time.Time) bool {
	return i.ExpiryDate != nil && i.ExpiryDate.Before(asOf)
}

// Deactivate soft-deletes the item
func (i *InventoryItem) Deactivate() {
	i.IsActive = false
	i.UpdatedAt = time.Now()
}
