package sale

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle status of a sale
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "draft"
	SaleStatusConfirmed SaleStatus = "confirmed"
	SaleStatusDelivered SaleStatus = "delivered"
	SaleStatusCancelled SaleStatus = "cancelled"
	SaleStatusReturned  SaleStatus = "returned"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusDraft, SaleStatusConfirmed, SaleStatusDelivered, SaleStatusCancelled, SaleStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusDraft:
		return target == SaleStatusConfirmed || target == SaleStatusCancelled
	case SaleStatusConfirmed:
		return target == SaleStatusDelivered || target == SaleStatusCancelled
	case SaleStatusDelivered:
		return target == SaleStatusReturned
	case SaleStatusCancelled, SaleStatusReturned:
		return false // Terminal states
	}
	return false
}

// PaymentStatus represents the payment state of a sale
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no further payments are accepted in this state
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusRefunded || s == PaymentStatusCancelled
}

// Payment holds the running payment record for a sale. PaidAmount
// accumulates across payments; Method and TransactionID always reflect the
// most recent payment.
type Payment struct {
	Method        string          `gorm:"type:varchar(30)" json:"method"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"paidAmount"`
	DueAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"dueAmount"`
	TransactionID string          `gorm:"type:varchar(100)" json:"transactionId,omitempty"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
}

// Sale represents a sale aggregate root. It owns the line items, the
// aggregate totals derived from them and the payment record.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber    string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"saleNumber"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"ownerId"`
	OwnerName     string          `gorm:"type:varchar(200);not null" json:"ownerName"`
	PetID         *uuid.UUID      `gorm:"type:uuid;index" json:"petId,omitempty"`
	SalesPersonID uuid.UUID       `gorm:"type:uuid;not null;index" json:"salesPersonId"`
	Items         []SaleLineItem  `gorm:"foreignKey:SaleID;references:ID" json:"items"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalDiscount"`
	TotalTaxable  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalTaxable"`
	TotalGST      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalGST"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"grandTotal"`
	Payment       Payment         `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	Status        SaleStatus      `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	SaleDate      time.Time       `gorm:"not null" json:"saleDate"`
	DeliveryDate  *time.Time      `json:"deliveryDate,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	InvoiceID     *uuid.UUID      `gorm:"type:uuid" json:"invoiceId,omitempty"`
	CancelReason  string          `gorm:"type:varchar(500)" json:"cancelReason,omitempty"`
	IsActive      bool            `gorm:"not null;default:true" json:"isActive"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new draft sale. The sale number is assigned here, once,
// and is immutable afterwards.
func NewSale(saleNumber string, ownerID uuid.UUID, ownerName string, petID *uuid.UUID, salesPersonID uuid.UUID) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if ownerName == "" {
		return nil, shared.NewDomainError("INVALID_OWNER_NAME", "Owner name cannot be empty")
	}
	if salesPersonID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_PERSON", "Sales person ID cannot be empty")
	}

	s := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		OwnerID:           ownerID,
		OwnerName:         ownerName,
		PetID:             petID,
		SalesPersonID:     salesPersonID,
		Items:             make([]SaleLineItem, 0),
		Subtotal:          decimal.Zero,
		TotalDiscount:     decimal.Zero,
		TotalTaxable:      decimal.Zero,
		TotalGST:          decimal.Zero,
		GrandTotal:        decimal.Zero,
		Payment: Payment{
			Status:     PaymentStatusPending,
			PaidAmount: decimal.Zero,
			DueAmount:  decimal.Zero,
		},
		Status:   SaleStatusDraft,
		SaleDate: time.Now(),
		IsActive: true,
	}

	s.AddDomainEvent(NewSaleCreatedEvent(s))

	return s, nil
}

// AddItem adds a new line item to the sale
// Only allowed in draft status
func (s *Sale) AddItem(inventoryID uuid.UUID, itemName, sku string, quantity int, unitPrice, discount decimal.Decimal, discountType DiscountType, gst GSTDetails) (*SaleLineItem, error) {
	if s.Status != SaleStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft sale")
	}

	item, err := NewSaleLineItem(s.ID, inventoryID, itemName, sku, quantity, unitPrice, discount, discountType, gst)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.RecalculateTotals()
	s.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing line item
// Only allowed in draft status
func (s *Sale) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	if s.Status != SaleStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft sale")
	}

	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			if err := s.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			s.RecalculateTotals()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale line item not found")
}

// UpdateItemPrice updates the unit price of an existing line item
// Only allowed in draft status
func (s *Sale) UpdateItemPrice(itemID uuid.UUID, unitPrice decimal.Decimal) error {
	if s.Status != SaleStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft sale")
	}

	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			if err := s.Items[idx].UpdateUnitPrice(unitPrice); err != nil {
				return err
			}
			s.RecalculateTotals()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale line item not found")
}

// UpdateItemDiscount updates the discount of an existing line item
// Only allowed in draft status
func (s *Sale) UpdateItemDiscount(itemID uuid.UUID, discount decimal.Decimal, discountType DiscountType) error {
	if s.Status != SaleStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft sale")
	}

	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			if err := s.Items[idx].UpdateDiscount(discount, discountType); err != nil {
				return err
			}
			s.RecalculateTotals()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale line item not found")
}

// RemoveItem removes a line item from the sale
// Only allowed in draft status
func (s *Sale) RemoveItem(itemID uuid.UUID) error {
	if s.Status != SaleStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft sale")
	}

	for idx, item := range s.Items {
		if item.ID == itemID {
			s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			s.RecalculateTotals()
			s.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale line item not found")
}

// RecalculateTotals re-derives every line item and sums the per-item
// amounts into the sale-level totals. The recomputation is unconditional:
// it runs on every mutation and is invoked again by the repository layer
// immediately before any write. An empty item list yields all-zero totals.
// The due amount is re-derived from the latest grand total and the paid
// amount, clamped at zero when the sale is overpaid.
func (s *Sale) RecalculateTotals() {
	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	totalTaxable := decimal.Zero
	totalGST := decimal.Zero
	grandTotal := decimal.Zero

	for idx := range s.Items {
		s.Items[idx].Recalculate()
		subtotal = subtotal.Add(s.Items[idx].Subtotal)
		totalDiscount = totalDiscount.Add(s.Items[idx].DiscountAmt)
		totalTaxable = totalTaxable.Add(s.Items[idx].TaxableAmount)
		totalGST = totalGST.Add(s.Items[idx].GSTAmount)
		grandTotal = grandTotal.Add(s.Items[idx].Total)
	}

	s.Subtotal = subtotal
	s.TotalDiscount = totalDiscount
	s.TotalTaxable = totalTaxable
	s.TotalGST = totalGST
	s.GrandTotal = grandTotal

	s.Payment.DueAmount = s.GrandTotal.Sub(s.Payment.PaidAmount)
	if s.Payment.DueAmount.IsNegative() {
		s.Payment.DueAmount = decimal.Zero
	}
}

// RecordPayment applies a payment against the sale. The amount must be
// positive. Payments are accumulated; the method and transaction ID always
// reflect the latest payment. The payment status is re-derived from the
// cumulative paid amount: paid once it reaches the grand total, partial
// below it. Overpayment is not rejected here (the API layer checks the due
// balance); if it happens, the due amount is clamped to zero and the status
// forced to paid. Payments against refunded or cancelled sales are rejected.
func (s *Sale) RecordPayment(amount decimal.Decimal, method, transactionID string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if s.Payment.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot record payment on a %s sale", s.Payment.Status))
	}

	now := time.Now()
	s.Payment.PaidAmount = s.Payment.PaidAmount.Add(amount)
	s.Payment.Method = method
	s.Payment.TransactionID = transactionID
	s.Payment.PaymentDate = &now
	s.derivePaymentStatus()
	s.UpdatedAt = now

	s.AddDomainEvent(NewPaymentRecordedEvent(s, amount))

	return nil
}

// derivePaymentStatus recomputes the payment status and due amount from the
// cumulative paid amount. The status never regresses from paid.
func (s *Sale) derivePaymentStatus() {
	s.Payment.DueAmount = s.GrandTotal.Sub(s.Payment.PaidAmount)
	if s.Payment.DueAmount.IsNegative() {
		s.Payment.DueAmount = decimal.Zero
	}

	switch {
	case s.Payment.PaidAmount.IsZero():
		s.Payment.Status = PaymentStatusPending
	case s.Payment.PaidAmount.GreaterThanOrEqual(s.GrandTotal):
		s.Payment.Status = PaymentStatusPaid
	default:
		s.Payment.Status = PaymentStatusPartial
	}
}

// SetDueDate sets the payment due date
func (s *Sale) SetDueDate(dueDate time.Time) {
	s.Payment.DueDate = &dueDate
	s.UpdatedAt = time.Now()
}

// SetNotes sets the sale notes
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
}

// AttachInvoice links an issued invoice to the sale
func (s *Sale) AttachInvoice(invoiceID uuid.UUID) error {
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	s.InvoiceID = &invoiceID
	s.UpdatedAt = time.Now()
	return nil
}

// Confirm confirms the sale, transitioning from draft to confirmed.
// Requires at least one line item. Emits SaleConfirmedEvent, which drives
// the inventory stock deduction.
func (s *Sale) Confirm() error {
	if !s.Status.CanTransitionTo(SaleStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm sale in %s status", s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm sale without items")
	}

	s.RecalculateTotals()
	s.Status = SaleStatusConfirmed
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewSaleConfirmedEvent(s))

	return nil
}

// RevertConfirmation puts a confirmed sale back into draft. Used when the
// stock deduction triggered by confirmation fails and the confirmation has
// to be undone so the sale can be amended and confirmed again.
func (s *Sale) RevertConfirmation() error {
	if s.Status != SaleStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot revert confirmation of a %s sale", s.Status))
	}

	s.Status = SaleStatusDraft
	s.UpdatedAt = time.Now()

	return nil
}

// Deliver marks the sale as delivered
func (s *Sale) Deliver() error {
	if !s.Status.CanTransitionTo(SaleStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver sale in %s status", s.Status))
	}

	now := time.Now()
	s.Status = SaleStatusDelivered
	s.DeliveryDate = &now
	s.UpdatedAt = now

	return nil
}

// Cancel cancels the sale. Allowed in draft or confirmed status. When
// nothing has been paid the payment record is closed as cancelled; a paid
// or partially paid sale keeps its payment state for the refund flow.
// Cancellation is a status label only: no compensating stock increment is
// performed.
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(SaleStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	s.Status = SaleStatusCancelled
	s.CancelReason = reason
	if s.Payment.PaidAmount.IsZero() {
		s.Payment.Status = PaymentStatusCancelled
	}
	s.UpdatedAt = time.Now()

	s.AddDomainEvent(NewSaleCancelledEvent(s, reason))

	return nil
}

// Return marks a delivered sale as returned and the payment as refunded.
// As with cancellation, this is a label only; stock is not re-incremented.
func (s *Sale) Return() error {
	if !s.Status.CanTransitionTo(SaleStatusReturned) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot return sale in %s status", s.Status))
	}

	s.Status = SaleStatusReturned
	if s.Payment.PaidAmount.IsPositive() {
		s.Payment.Status = PaymentStatusRefunded
	}
	s.UpdatedAt = time.Now()

	return nil
}

// Deactivate soft-deletes the sale
func (s *Sale) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}

// ItemCount returns the number of line items in the sale
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// GetItem returns a line item by its ID
func (s *Sale) GetItem(itemID uuid.UUID) *SaleLineItem {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx]
		}
	}
	return nil
}

// IsDraft returns true if the sale is in draft status
func (s *Sale) IsDraft() bool {
	return s.Status == SaleStatusDraft
}

// IsConfirmed returns true if the sale is confirmed
func (s *Sale) IsConfirmed() bool {
	return s.Status == SaleStatusConfirmed
}

// IsTerminal returns true if the sale is cancelled or returned
func (s *Sale) IsTerminal() bool {
	return s.Status == SaleStatusCancelled || s.Status == SaleStatusReturned
}

// CanModify returns true if the line items can still be edited
func (s *Sale) CanModify() bool {
	return s.IsDraft()
}
