package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/billing"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements billing.Repository using GORM
type GormInvoiceRepository struct {
	db *Database
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *Database) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var inv billing.Invoice
	if err := r.db.DB.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindByInvoiceNumber finds an invoice by its business identifier
func (r *GormInvoiceRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	var inv billing.Invoice
	if err := r.db.DB.WithContext(ctx).
		Where("invoice_number = ?", invoiceNumber).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindBySale returns the invoice issued for a sale, if any
func (r *GormInvoiceRepository) FindBySale(ctx context.Context, saleID uuid.UUID) (*billing.Invoice, error) {
	var inv billing.Invoice
	if err := r.db.DB.WithContext(ctx).
		Where("sale_id = ?", saleID).
		First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindAll finds invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&billing.Invoice{}), filter)
	query = applyPagination(query, filter)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save persists an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	return r.db.DB.WithContext(ctx).Save(inv).Error
}

// Delete removes an invoice
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Delete(&billing.Invoice{}, "id = ?", id).Error
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&billing.Invoice{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextInvoiceNumber produces the next invoice number for the month of now,
// formatted INV-YYYYMM-NNNN. Same scheme as sale numbers, separate sequence.
func (r *GormInvoiceRepository) NextInvoiceNumber(ctx context.Context, now time.Time) (string, error) {
	prefix := fmt.Sprintf("INV-%s-", now.Format("200601"))

	var last billing.Invoice
	err := r.db.DB.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	next := 1
	if err == nil && last.InvoiceNumber != "" {
		parts := strings.Split(last.InvoiceNumber, "-")
		if len(parts) == 3 {
			var num int
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				next = num + 1
			}
		}
	}

	for i := 0; i < 100; i++ {
		candidate := fmt.Sprintf("%s%04d", prefix, next)
		var count int64
		if err := r.db.DB.WithContext(ctx).
			Model(&billing.Invoice{}).
			Where("invoice_number = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		next++
	}

	return "", fmt.Errorf("could not generate a unique invoice number for prefix %s", prefix)
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if ownerID, ok := filter.Filters["owner_id"]; ok {
		query = query.Where("owner_id = ?", ownerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR owner_name ILIKE ?", pattern, pattern)
	}
	return query
}

var _ billing.Repository = (*GormInvoiceRepository)(nil)
