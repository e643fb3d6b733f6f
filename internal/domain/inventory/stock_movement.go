package inventory

import (
	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementSale       MovementType = "sale"
	MovementPurchase   MovementType = "purchase"
	MovementAdjustment MovementType = "adjustment"
	MovementReturn     MovementType = "return"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementSale, MovementPurchase, MovementAdjustment, MovementReturn:
		return true
	}
	return false
}

// StockMovement is the audit record of a quantity change on an inventory
// item. Quantity is signed: negative for outgoing stock.
type StockMovement struct {
	shared.BaseEntity
	InventoryID uuid.UUID    `gorm:"type:uuid;not null;index" json:"inventoryId"`
	Type        MovementType `gorm:"type:varchar(20);not null" json:"type"`
	Quantity    int          `gorm:"not null" json:"quantity"`
	Balance     int          `gorm:"not null" json:"balance"`
	Reference   string       `gorm:"type:varchar(50);index" json:"reference,omitempty"`
	Reason      string       `gorm:"type:varchar(500)" json:"reason,omitempty"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement records a quantity change. Balance is the item quantity
// after the movement was applied.
func NewStockMovement(inventoryID uuid.UUID, movementType MovementType, quantity, balance int, reference, reason string) (*StockMovement, error) {
	if inventoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVENTORY", "Inventory ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type is not recognised")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}

	return &StockMovement{
		BaseEntity:  shared.NewBaseEntity(),
		InventoryID: inventoryID,
		Type:        movementType,
		Quantity:    quantity,
		Balance:     balance,
		Reference:   reference,
		Reason:      reason,
	}, nil
}
