package billing

import (
	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const EventInvoiceIssued = "invoice.issued"

// InvoiceIssuedEvent is emitted when an invoice is issued for a sale
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string          `json:"invoice_number"`
	SaleID        uuid.UUID       `json:"sale_id"`
	SaleNumber    string          `json:"sale_number"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInvoiceIssued, "Invoice", inv.ID),
		InvoiceNumber:   inv.InvoiceNumber,
		SaleID:          inv.SaleID,
		SaleNumber:      inv.SaleNumber,
		OwnerID:         inv.OwnerID,
		GrandTotal:      inv.GrandTotal,
	}
}
