package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Repository defines persistence operations for invoices
type Repository interface {
	shared.Repository[Invoice]

	// FindByInvoiceNumber looks an invoice up by its business identifier
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindBySale returns the invoice issued for a sale, if any
	FindBySale(ctx context.Context, saleID uuid.UUID) (*Invoice, error)

	// NextInvoiceNumber produces the next invoice number for the month of
	// the given time, formatted INV-YYYYMM-NNNN. The sequence restarts at
	// 0001 each calendar month.
	NextInvoiceNumber(ctx context.Context, now time.Time) (string, error)
}
