package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateItemRequest is the payload for registering a new inventory item
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	SKU         string          `json:"sku" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Cost        decimal.Decimal `json:"cost"`
	GSTRate     decimal.Decimal `json:"gstRate"`
	HSNCode     string          `json:"hsnCode"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
	ExpiryDate  *time.Time      `json:"expiryDate"`
	Supplier    string          `json:"supplier"`
}

// UpdateItemRequest updates mutable fields of an inventory item
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	GSTRate     *decimal.Decimal `json:"gstRate"`
	MinQuantity *int             `json:"minQuantity"`
	Supplier    *string          `json:"supplier"`
}

// DeductStockRequest removes sold units from an item. CustomerName is
// carried into the movement record so the audit trail names the buyer.
type DeductStockRequest struct {
	InventoryID  uuid.UUID `json:"inventoryId" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
	SaleNumber   string    `json:"saleNumber" binding:"required"`
	CustomerName string    `json:"customerName"`
}

// RestockRequest adds received units to an item
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ReturnStockRequest puts units back into stock after a sale reversal
type ReturnStockRequest struct {
	InventoryID uuid.UUID `json:"inventoryId" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
	SaleNumber  string    `json:"saleNumber" binding:"required"`
	Reason      string    `json:"reason"`
}

// AdjustStockRequest sets the stock level to an absolute count
type AdjustStockRequest struct {
	Quantity int    `json:"quantity" binding:"min=0"`
	Reason   string `json:"reason" binding:"required"`
}

// ItemResponse is the full representation of an inventory item
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	HSNCode      string          `json:"hsnCode,omitempty"`
	Quantity     int             `json:"quantity"`
	MinQuantity  int             `json:"minQuantity"`
	TotalSold    int             `json:"totalSold"`
	LowStock     bool            `json:"lowStock"`
	LastSaleDate *time.Time      `json:"lastSaleDate,omitempty"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// MovementResponse is the representation of a stock movement
type MovementResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Balance   int       `json:"balance"`
	Reference string    `json:"reference,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToItemResponse converts a domain item to its response
func ToItemResponse(item *inventory.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		Category:     string(item.Category),
		Description:  item.Description,
		Price:        item.Price,
		Cost:         item.Cost,
		GSTRate:      item.GSTRate,
		HSNCode:      item.HSNCode,
		Quantity:     item.Quantity,
		MinQuantity:  item.MinQuantity,
		TotalSold:    item.TotalSold,
		LowStock:     item.IsLowStock(),
		LastSaleDate: item.LastSaleDate,
		ExpiryDate:   item.ExpiryDate,
		Supplier:     item.Supplier,
		IsActive:     item.IsActive,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ToItemResponses converts domain items to responses
func ToItemResponses(items []inventory.InventoryItem) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}

// ToMovementResponses converts stock movements to responses
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = MovementResponse{
			ID:        movements[i].ID,
			Type:      string(movements[i].Type),
			Quantity:  movements[i].Quantity,
			Balance:   movements[i].Balance,
			Reference: movements[i].Reference,
			Reason:    movements[i].Reason,
			CreatedAt: movements[i].CreatedAt,
		}
	}
	return out
}
