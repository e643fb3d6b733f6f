package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/report"
	"github.com/shopspring/decimal"
)

// GormReportRepository implements report.Repository with raw SQL
// aggregates. Reports only count confirmed and delivered sales; drafts,
// cancellations and returns are excluded.
type GormReportRepository struct {
	db *Database
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *Database) *GormReportRepository {
	return &GormReportRepository{db: db}
}

const reportableStatuses = "('confirmed', 'delivered')"

// SalesSummary aggregates counts and totals over the period
func (r *GormReportRepository) SalesSummary(ctx context.Context, period report.Period) (*report.SalesSummary, error) {
	var row struct {
		SaleCount     int64
		Subtotal      decimal.Decimal
		TotalDiscount decimal.Decimal
		TotalGST      decimal.Decimal
		GrandTotal    decimal.Decimal
		PaidAmount    decimal.Decimal
		DueAmount     decimal.Decimal
	}

	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT
			COUNT(*)                                   AS sale_count,
			COALESCE(SUM(subtotal), 0)                 AS subtotal,
			COALESCE(SUM(total_discount), 0)           AS total_discount,
			COALESCE(SUM(total_gst), 0)                AS total_gst,
			COALESCE(SUM(grand_total), 0)              AS grand_total,
			COALESCE(SUM(payment_paid_amount), 0)      AS paid_amount,
			COALESCE(SUM(payment_due_amount), 0)       AS due_amount
		FROM sales
		WHERE status IN `+reportableStatuses+`
		  AND is_active = true
		  AND sale_date >= ? AND sale_date < ?`,
		period.From, period.To,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &report.SalesSummary{
		Period:        period,
		SaleCount:     row.SaleCount,
		Subtotal:      row.Subtotal,
		TotalDiscount: row.TotalDiscount,
		TotalGST:      row.TotalGST,
		GrandTotal:    row.GrandTotal,
		PaidAmount:    row.PaidAmount,
		DueAmount:     row.DueAmount,
	}, nil
}

// GSTSummary aggregates taxable value and GST collected per rate
func (r *GormReportRepository) GSTSummary(ctx context.Context, period report.Period) (*report.GSTSummary, error) {
	var rows []struct {
		Rate          decimal.Decimal
		TaxableAmount decimal.Decimal
		GSTAmount     decimal.Decimal
	}

	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT
			i.gst_rate                        AS rate,
			COALESCE(SUM(i.taxable_amount), 0) AS taxable_amount,
			COALESCE(SUM(i.gst_amount), 0)     AS gst_amount
		FROM sale_line_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.status IN `+reportableStatuses+`
		  AND s.is_active = true
		  AND s.sale_date >= ? AND s.sale_date < ?
		  AND i.gst_is_applicable = true
		GROUP BY i.gst_rate
		ORDER BY i.gst_rate ASC`,
		period.From, period.To,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &report.GSTSummary{
		Period: period,
		Rows:   make([]report.GSTSummaryRow, 0, len(rows)),
		Total:  decimal.Zero,
	}
	for _, row := range rows {
		summary.Rows = append(summary.Rows, report.GSTSummaryRow{
			Rate:          row.Rate,
			TaxableAmount: row.TaxableAmount,
			GSTAmount:     row.GSTAmount,
		})
		summary.Total = summary.Total.Add(row.GSTAmount)
	}
	return summary, nil
}

// TopItems ranks inventory items by units sold over the period
func (r *GormReportRepository) TopItems(ctx context.Context, period report.Period, limit int) ([]report.TopItem, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []struct {
		InventoryID uuid.UUID
		ItemName    string
		SKU         string
		UnitsSold   int64
		Revenue     decimal.Decimal
	}

	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT
			i.inventory_id              AS inventory_id,
			MAX(i.item_name)            AS item_name,
			MAX(i.sku)                  AS sku,
			COALESCE(SUM(i.quantity), 0) AS units_sold,
			COALESCE(SUM(i.total), 0)    AS revenue
		FROM sale_line_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.status IN `+reportableStatuses+`
		  AND s.is_active = true
		  AND s.sale_date >= ? AND s.sale_date < ?
		  AND i.inventory_id <> '00000000-0000-0000-0000-000000000000'
		GROUP BY i.inventory_id
		ORDER BY units_sold DESC, revenue DESC
		LIMIT ?`,
		period.From, period.To, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]report.TopItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, report.TopItem{
			InventoryID: row.InventoryID,
			ItemName:    row.ItemName,
			SKU:         row.SKU,
			UnitsSold:   row.UnitsSold,
			Revenue:     row.Revenue,
		})
	}
	return items, nil
}

// OutstandingDues lists sales with an unpaid balance, oldest due date first
func (r *GormReportRepository) OutstandingDues(ctx context.Context, limit int) ([]report.OutstandingDue, error) {
	if limit <= 0 {
		limit = 50
	}

	var dues []report.OutstandingDue
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT
			id                  AS sale_id,
			sale_number,
			owner_id,
			owner_name,
			grand_total,
			payment_due_amount  AS due_amount,
			payment_due_date    AS due_date,
			sale_date
		FROM sales
		WHERE status IN `+reportableStatuses+`
		  AND is_active = true
		  AND payment_status IN ('pending', 'partial')
		  AND payment_due_amount > 0
		ORDER BY payment_due_date ASC NULLS LAST, sale_date ASC
		LIMIT ?`,
		limit,
	).Scan(&dues).Error
	if err != nil {
		return nil, err
	}
	return dues, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
