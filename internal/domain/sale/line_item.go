package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleLineItem represents a single line in a sale. The monetary fields
// Subtotal, DiscountAmount, TaxableAmount, GSTAmount and Total are derived:
// they are recomputed in full on every mutation and never set by callers.
type SaleLineItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"saleId"`
	InventoryID   uuid.UUID       `gorm:"type:uuid;index" json:"inventoryId"`
	ItemName      string          `gorm:"type:varchar(200);not null" json:"itemName"`
	SKU           string          `gorm:"type:varchar(50)" json:"sku"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	DiscountType  DiscountType    `gorm:"type:varchar(10);not null;default:'percentage'" json:"discountType"`
	GST           GSTDetails      `gorm:"embedded;embeddedPrefix:gst_" json:"gst"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	DiscountAmt   decimal.Decimal `gorm:"column:discount_amount;type:decimal(12,2);not null;default:0" json:"discountAmount"`
	TaxableAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"taxableAmount"`
	GSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"gstAmount"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TableName returns the table name for GORM
func (SaleLineItem) TableName() string {
	return "sale_line_items"
}

// NewSaleLineItem creates a new line item and computes its derived amounts
func NewSaleLineItem(saleID, inventoryID uuid.UUID, itemName, sku string, quantity int, unitPrice, discount decimal.Decimal, discountType DiscountType, gst GSTDetails) (*SaleLineItem, error) {
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if !discountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be percentage or fixed")
	}
	if err := gst.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &SaleLineItem{
		ID:           uuid.New(),
		SaleID:       saleID,
		InventoryID:  inventoryID,
		ItemName:     itemName,
		SKU:          sku,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Discount:     discount,
		DiscountType: discountType,
		GST:          gst,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	item.Recalculate()

	return item, nil
}

// Recalculate derives the monetary fields from the raw inputs. The
// computation is pure: quantity, unit price, discount and GST settings in,
// five derived amounts out. A percentage discount is taken against the
// pre-discount subtotal, never against a compounding base. The taxable
// amount is not floor-clamped, so a fixed discount larger than the subtotal
// yields a negative taxable amount.
func (i *SaleLineItem) Recalculate() {
	i.Subtotal = decimal.NewFromInt(int64(i.Quantity)).Mul(i.UnitPrice)

	if i.DiscountType == DiscountTypePercentage {
		i.DiscountAmt = i.Subtotal.Mul(i.Discount).Div(decimal.NewFromInt(100))
	} else {
		i.DiscountAmt = i.Discount
	}

	i.TaxableAmount = i.Subtotal.Sub(i.DiscountAmt)
	i.GSTAmount = i.TaxableAmount.Mul(i.GST.EffectiveRate()).Div(decimal.NewFromInt(100))
	i.Total = i.TaxableAmount.Add(i.GSTAmount)
}

// UpdateQuantity updates the quantity and recomputes the derived amounts
func (i *SaleLineItem) UpdateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	i.Quantity = quantity
	i.Recalculate()
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateUnitPrice updates the unit price and recomputes the derived amounts
func (i *SaleLineItem) UpdateUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	i.UnitPrice = unitPrice
	i.Recalculate()
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateDiscount updates the discount and recomputes the derived amounts
func (i *SaleLineItem) UpdateDiscount(discount decimal.Decimal, discountType DiscountType) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if !discountType.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be percentage or fixed")
	}
	i.Discount = discount
	i.DiscountType = discountType
	i.Recalculate()
	i.UpdatedAt = time.Now()
	return nil
}

// HasInventoryReference reports whether this line can be applied against
// stock. Lines without an inventory reference or a positive quantity still
// count towards totals but are skipped by the stock deduction.
func (i *SaleLineItem) HasInventoryReference() bool {
	return i.InventoryID != uuid.Nil && i.Quantity > 0
}
