package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period bounds a reporting window. From is inclusive, To exclusive.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MonthPeriod returns the period covering the calendar month of t
func MonthPeriod(t time.Time) Period {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}

// SalesSummary aggregates sale counts and totals over a period
type SalesSummary struct {
	Period        Period          `json:"period"`
	SaleCount     int64           `json:"saleCount"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalGST      decimal.Decimal `json:"totalGST"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	DueAmount     decimal.Decimal `json:"dueAmount"`
}

// GSTSummaryRow aggregates taxable value and GST collected per rate
type GSTSummaryRow struct {
	Rate          decimal.Decimal `json:"rate"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	GSTAmount     decimal.Decimal `json:"gstAmount"`
}

// GSTSummary is the rate-wise GST collection report for a period
type GSTSummary struct {
	Period Period          `json:"period"`
	Rows   []GSTSummaryRow `json:"rows"`
	Total  decimal.Decimal `json:"total"`
}

// TopItem ranks an inventory item by units sold over a period
type TopItem struct {
	InventoryID uuid.UUID       `json:"inventoryId"`
	ItemName    string          `json:"itemName"`
	SKU         string          `json:"sku"`
	UnitsSold   int64           `json:"unitsSold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// OutstandingDue lists a sale with an unpaid balance
type OutstandingDue struct {
	SaleID     uuid.UUID       `json:"saleId"`
	SaleNumber string          `json:"saleNumber"`
	OwnerID    uuid.UUID       `json:"ownerId"`
	OwnerName  string          `json:"ownerName"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	DueAmount  decimal.Decimal `json:"dueAmount"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	SaleDate   time.Time       `json:"saleDate"`
}

// Repository defines the read-model queries behind the reports
type Repository interface {
	SalesSummary(ctx context.Context, period Period) (*SalesSummary, error)
	GSTSummary(ctx context.Context, period Period) (*GSTSummary, error)
	TopItems(ctx context.Context, period Period, limit int) ([]TopItem, error)
	OutstandingDues(ctx context.Context, limit int) ([]OutstandingDue, error)
}
