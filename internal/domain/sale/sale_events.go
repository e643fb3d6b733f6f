package sale

import (
	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	EventSaleCreated     = "sale.created"
	EventSaleConfirmed   = "sale.confirmed"
	EventPaymentRecorded = "sale.payment_recorded"
	EventSaleCancelled   = "sale.cancelled"
)

// SaleCreatedEvent is emitted when a new draft sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleNumber string    `json:"sale_number"`
	OwnerID    uuid.UUID `json:"owner_id"`
	OwnerName  string    `json:"owner_name"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleCreated, "Sale", s.ID),
		SaleNumber:      s.SaleNumber,
		OwnerID:         s.OwnerID,
		OwnerName:       s.OwnerName,
	}
}

// ConfirmedItem is the per-line payload of a SaleConfirmedEvent. Only what
// the stock deduction needs is carried.
type ConfirmedItem struct {
	InventoryID uuid.UUID `json:"inventory_id"`
	ItemName    string    `json:"item_name"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
}

// SaleConfirmedEvent is emitted when a sale is confirmed. Subscribers use
// it to deduct inventory stock for the confirmed line items.
type SaleConfirmedEvent struct {
	shared.BaseDomainEvent
	SaleNumber string          `json:"sale_number"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	OwnerName  string          `json:"owner_name"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	Items      []ConfirmedItem `json:"items"`
}

// NewSaleConfirmedEvent creates a new SaleConfirmedEvent. Line items
// without an inventory reference are omitted from the payload.
func NewSaleConfirmedEvent(s *Sale) *SaleConfirmedEvent {
	items := make([]ConfirmedItem, 0, len(s.Items))
	for idx := range s.Items {
		if !s.Items[idx].HasInventoryReference() {
			continue
		}
		items = append(items, ConfirmedItem{
			InventoryID: s.Items[idx].InventoryID,
			ItemName:    s.Items[idx].ItemName,
			SKU:         s.Items[idx].SKU,
			Quantity:    s.Items[idx].Quantity,
		})
	}
	return &SaleConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleConfirmed, "Sale", s.ID),
		SaleNumber:      s.SaleNumber,
		OwnerID:         s.OwnerID,
		OwnerName:       s.OwnerName,
		GrandTotal:      s.GrandTotal,
		Items:           items,
	}
}

// PaymentRecordedEvent is emitted when a payment is applied to a sale
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	SaleNumber    string          `json:"sale_number"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	DueAmount     decimal.Decimal `json:"due_amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Method        string          `json:"method"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(s *Sale, amount decimal.Decimal) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPaymentRecorded, "Sale", s.ID),
		SaleNumber:      s.SaleNumber,
		OwnerID:         s.OwnerID,
		Amount:          amount,
		PaidAmount:      s.Payment.PaidAmount,
		DueAmount:       s.Payment.DueAmount,
		PaymentStatus:   s.Payment.Status,
		Method:          s.Payment.Method,
	}
}

// SaleCancelledEvent is emitted when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleNumber string `json:"sale_number"`
	Reason     string `json:"reason"`
	WasPaid    bool   `json:"was_paid"`
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(s *Sale, reason string) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSaleCancelled, "Sale", s.ID),
		SaleNumber:      s.SaleNumber,
		Reason:          reason,
		WasPaid:         s.Payment.PaidAmount.IsPositive(),
	}
}
