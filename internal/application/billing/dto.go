package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// IssueInvoiceRequest issues an invoice for a confirmed sale
type IssueInvoiceRequest struct {
	SaleID uuid.UUID `json:"saleId" binding:"required"`
	Notes  string    `json:"notes"`
}

// CancelInvoiceRequest carries the mandatory cancellation reason
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// InvoiceResponse is the representation of an invoice
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	SaleID        uuid.UUID       `json:"saleId"`
	SaleNumber    string          `json:"saleNumber"`
	OwnerID       uuid.UUID       `json:"ownerId"`
	OwnerName     string          `json:"ownerName"`
	OwnerGSTIN    string          `json:"ownerGstin,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalTaxable  decimal.Decimal `json:"totalTaxable"`
	TotalGST      decimal.Decimal `json:"totalGST"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Status        string          `json:"status"`
	IssuedAt      time.Time       `json:"issuedAt"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CancelReason  string          `json:"cancelReason,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ToInvoiceResponse converts a domain invoice to its response
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		SaleID:        inv.SaleID,
		SaleNumber:    inv.SaleNumber,
		OwnerID:       inv.OwnerID,
		OwnerName:     inv.OwnerName,
		OwnerGSTIN:    inv.OwnerGSTIN,
		Subtotal:      inv.Subtotal,
		TotalDiscount: inv.TotalDiscount,
		TotalTaxable:  inv.TotalTaxable,
		TotalGST:      inv.TotalGST,
		GrandTotal:    inv.GrandTotal,
		Status:        string(inv.Status),
		IssuedAt:      inv.IssuedAt,
		PaidAt:        inv.PaidAt,
		CancelReason:  inv.CancelReason,
		Notes:         inv.Notes,
	}
}

// ToInvoiceResponses converts domain invoices to responses
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}
