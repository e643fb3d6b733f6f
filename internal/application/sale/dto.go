package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the payload for creating a draft sale
type CreateSaleRequest struct {
	OwnerID       uuid.UUID               `json:"ownerId" binding:"required"`
	PetID         *uuid.UUID              `json:"petId"`
	SalesPersonID uuid.UUID               `json:"salesPersonId" binding:"required"`
	Items         []CreateSaleItemRequest `json:"items"`
	Notes         string                  `json:"notes"`
	DueDate       *time.Time              `json:"dueDate"`
}

// CreateSaleItemRequest is one line of a create or add-item request
type CreateSaleItemRequest struct {
	InventoryID  uuid.UUID       `json:"inventoryId"`
	ItemName     string          `json:"itemName" binding:"required"`
	SKU          string          `json:"sku"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required"`
	Discount     decimal.Decimal `json:"discount"`
	DiscountType string          `json:"discountType"`
	GST          GSTRequest      `json:"gst"`
}

// GSTRequest carries the tax settings of a line item
type GSTRequest struct {
	IsApplicable bool            `json:"isApplicable"`
	Rate         decimal.Decimal `json:"rate"`
	Type         string          `json:"type"`
	HSNCode      string          `json:"hsnCode"`
	SACCode      string          `json:"sacCode"`
}

// UpdateItemRequest updates a single line item on a draft sale
type UpdateItemRequest struct {
	Quantity     *int             `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	Discount     *decimal.Decimal `json:"discount"`
	DiscountType *string          `json:"discountType"`
}

// RecordPaymentRequest applies a payment to a sale
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"method" binding:"required"`
	TransactionID string          `json:"transactionId"`
}

// CancelSaleRequest carries the mandatory cancellation reason
type CancelSaleRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ListFilter narrows a sale listing
type ListFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	Search    string
	OwnerID   *uuid.UUID
	Status    *sale.SaleStatus
	PayStatus *sale.PaymentStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// PaymentResponse mirrors the payment record of a sale
type PaymentResponse struct {
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	DueAmount     decimal.Decimal `json:"dueAmount"`
	TransactionID string          `json:"transactionId,omitempty"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
}

// SaleItemResponse mirrors a line item with its derived amounts
type SaleItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	InventoryID    uuid.UUID       `json:"inventoryId"`
	ItemName       string          `json:"itemName"`
	SKU            string          `json:"sku,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Discount       decimal.Decimal `json:"discount"`
	DiscountType   string          `json:"discountType"`
	GSTApplicable  bool            `json:"gstApplicable"`
	GSTRate        decimal.Decimal `json:"gstRate"`
	GSTType        string          `json:"gstType"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	GSTAmount      decimal.Decimal `json:"gstAmount"`
	Total          decimal.Decimal `json:"total"`
}

// SaleResponse is the full representation of a sale
type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	SaleNumber    string             `json:"saleNumber"`
	OwnerID       uuid.UUID          `json:"ownerId"`
	OwnerName     string             `json:"ownerName"`
	PetID         *uuid.UUID         `json:"petId,omitempty"`
	SalesPersonID uuid.UUID          `json:"salesPersonId"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TotalDiscount decimal.Decimal    `json:"totalDiscount"`
	TotalTaxable  decimal.Decimal    `json:"totalTaxable"`
	TotalGST      decimal.Decimal    `json:"totalGST"`
	GrandTotal    decimal.Decimal    `json:"grandTotal"`
	Payment       PaymentResponse    `json:"payment"`
	Status        string             `json:"status"`
	SaleDate      time.Time          `json:"saleDate"`
	DeliveryDate  *time.Time         `json:"deliveryDate,omitempty"`
	InvoiceID     *uuid.UUID         `json:"invoiceId,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CancelReason  string             `json:"cancelReason,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// SaleListItemResponse is the compact representation used in listings
type SaleListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	SaleNumber    string          `json:"saleNumber"`
	OwnerName     string          `json:"ownerName"`
	ItemCount     int             `json:"itemCount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	PaymentStatus string          `json:"paymentStatus"`
	DueAmount     decimal.Decimal `json:"dueAmount"`
	Status        string          `json:"status"`
	SaleDate      time.Time       `json:"saleDate"`
}

// ToSaleResponse converts a domain sale to its full response
func ToSaleResponse(s *sale.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i := range s.Items {
		items[i] = toSaleItemResponse(&s.Items[i])
	}
	return SaleResponse{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		OwnerID:       s.OwnerID,
		OwnerName:     s.OwnerName,
		PetID:         s.PetID,
		SalesPersonID: s.SalesPersonID,
		Items:         items,
		Subtotal:      s.Subtotal,
		TotalDiscount: s.TotalDiscount,
		TotalTaxable:  s.TotalTaxable,
		TotalGST:      s.TotalGST,
		GrandTotal:    s.GrandTotal,
		Payment: PaymentResponse{
			Method:        s.Payment.Method,
			Status:        string(s.Payment.Status),
			PaidAmount:    s.Payment.PaidAmount,
			DueAmount:     s.Payment.DueAmount,
			TransactionID: s.Payment.TransactionID,
			PaymentDate:   s.Payment.PaymentDate,
			DueDate:       s.Payment.DueDate,
		},
		Status:       string(s.Status),
		SaleDate:     s.SaleDate,
		DeliveryDate: s.DeliveryDate,
		InvoiceID:    s.InvoiceID,
		Notes:        s.Notes,
		CancelReason: s.CancelReason,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toSaleItemResponse(item *sale.SaleLineItem) SaleItemResponse {
	return SaleItemResponse{
		ID:             item.ID,
		InventoryID:    item.InventoryID,
		ItemName:       item.ItemName,
		SKU:            item.SKU,
		Quantity:       item.Quantity,
		UnitPrice:      item.UnitPrice,
		Discount:       item.Discount,
		DiscountType:   string(item.DiscountType),
		GSTApplicable:  item.GST.IsApplicable,
		GSTRate:        item.GST.Rate,
		GSTType:        string(item.GST.Type),
		Subtotal:       item.Subtotal,
		DiscountAmount: item.DiscountAmt,
		TaxableAmount:  item.TaxableAmount,
		GSTAmount:      item.GSTAmount,
		Total:          item.Total,
	}
}

// ToSaleListItemResponses converts domain sales to listing responses
func ToSaleListItemResponses(sales []sale.Sale) []SaleListItemResponse {
	out := make([]SaleListItemResponse, len(sales))
	for i := range sales {
		out[i] = SaleListItemResponse{
			ID:            sales[i].ID,
			SaleNumber:    sales[i].SaleNumber,
			OwnerName:     sales[i].OwnerName,
			ItemCount:     sales[i].ItemCount(),
			GrandTotal:    sales[i].GrandTotal,
			PaymentStatus: string(sales[i].Payment.Status),
			DueAmount:     sales[i].Payment.DueAmount,
			Status:        string(sales[i].Status),
			SaleDate:      sales[i].SaleDate,
		}
	}
	return out
}
