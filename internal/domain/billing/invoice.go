package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusIssued:
		return target == InvoiceStatusPaid || target == InvoiceStatusCancelled
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false
	}
	return false
}

// Invoice is the billing document issued for a sale. The monetary fields
// are copied from the sale at issue time and frozen; later edits to the
// sale do not flow back into an issued invoice.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"invoiceNumber"`
	SaleID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"saleId"`
	SaleNumber    string          `gorm:"type:varchar(20);not null" json:"saleNumber"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"ownerId"`
	OwnerName     string          `gorm:"type:varchar(200);not null" json:"ownerName"`
	OwnerGSTIN    string          `gorm:"type:varchar(15)" json:"ownerGstin,omitempty"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalDiscount"`
	TotalTaxable  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalTaxable"`
	TotalGST      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalGST"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"grandTotal"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'issued'" json:"status"`
	IssuedAt      time.Time       `gorm:"not null" json:"issuedAt"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CancelReason  string          `gorm:"type:varchar(500)" json:"cancelReason,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceAmounts carries the frozen monetary snapshot taken from a sale
type InvoiceAmounts struct {
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTaxable  decimal.Decimal
	TotalGST      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// NewInvoice issues an invoice for a sale
func NewInvoice(invoiceNumber string, saleID uuid.UUID, saleNumber string, ownerID uuid.UUID, ownerName, ownerGSTIN string, amounts InvoiceAmounts) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		SaleID:            saleID,
		SaleNumber:        saleNumber,
		OwnerID:           ownerID,
		OwnerName:         ownerName,
		OwnerGSTIN:        ownerGSTIN,
		Subtotal:          amounts.Subtotal,
		TotalDiscount:     amounts.TotalDiscount,
		TotalTaxable:      amounts.TotalTaxable,
		TotalGST:          amounts.TotalGST,
		GrandTotal:        amounts.GrandTotal,
		Status:            InvoiceStatusIssued,
		IssuedAt:          time.Now(),
	}

	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))

	return inv, nil
}

// MarkPaid marks the invoice as settled
func (i *Invoice) MarkPaid() error {
	if !i.Status.CanTransitionTo(InvoiceStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s invoice paid", i.Status))
	}
	now := time.Now()
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	i.UpdatedAt = now
	return nil
}

// Cancel voids the invoice
func (i *Invoice) Cancel(reason string) error {
	if !i.Status.CanTransitionTo(InvoiceStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s invoice", i.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	i.Status = InvoiceStatusCancelled
	i.CancelReason = reason
	i.UpdatedAt = time.Now()
	return nil
}
