package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements sale.Repository using GORM
type GormSaleRepository struct {
	db *Database
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *Database) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID with line items loaded
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	var s sale.Sale
	if err := r.db.DB.WithContext(ctx).
		Preload("Items").
		First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindBySaleNumber finds a sale by its business identifier
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sale.Sale, error) {
	var s sale.Sale
	if err := r.db.DB.WithContext(ctx).
		Preload("Items").
		Where("sale_number = ?", saleNumber).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sale.Sale, error) {
	var sales []sale.Sale
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&sale.Sale{}), filter)
	query = applyPagination(query, filter)

	if err := query.Preload("Items").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindByOwner finds sales belonging to an owner
func (r *GormSaleRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]sale.Sale, error) {
	return r.FindAll(ctx, withFilters(filter, "owner_id", ownerID))
}

// FindByStatus finds sales in the given status
func (r *GormSaleRepository) FindByStatus(ctx context.Context, status sale.SaleStatus, filter shared.Filter) ([]sale.Sale, error) {
	return r.FindAll(ctx, withFilters(filter, "status", string(status)))
}

// FindOverdue finds sales with an unpaid balance past their due date
func (r *GormSaleRepository) FindOverdue(ctx context.Context, asOf time.Time, filter shared.Filter) ([]sale.Sale, error) {
	var sales []sale.Sale
	query := r.db.DB.WithContext(ctx).Model(&sale.Sale{}).
		Where("payment_status IN ?", []string{string(sale.PaymentStatusPending), string(sale.PaymentStatusPartial)}).
		Where("payment_due_date IS NOT NULL AND payment_due_date < ?", asOf).
		Where("is_active = ?", true)
	query = applyPagination(query, filter)

	if err := query.Preload("Items").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Save persists a sale and its line items. Removed items are deleted via
// full association replacement.
func (r *GormSaleRepository) Save(ctx context.Context, s *sale.Sale) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(s).Error; err != nil {
			return err
		}
		// Drop line items no longer present on the aggregate
		keep := make([]uuid.UUID, 0, len(s.Items))
		for i := range s.Items {
			keep = append(keep, s.Items[i].ID)
		}
		q := tx.Where("sale_id = ?", s.ID)
		if len(keep) > 0 {
			q = q.Where("id NOT IN ?", keep)
		}
		return q.Delete(&sale.SaleLineItem{}).Error
	})
}

// Delete removes a sale and its items
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&sale.SaleLineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale.Sale{}, "id = ?", id).Error
	})
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.DB.WithContext(ctx).Model(&sale.Sale{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextSaleNumber produces the next sale number for the month of now.
// Format: SAL-YYYYMM-NNNN, restarting at 0001 each calendar month. The
// candidate is checked for existence and bumped on collision; the unique
// index on sale_number is the final referee under concurrency.
func (r *GormSaleRepository) NextSaleNumber(ctx context.Context, now time.Time) (string, error) {
	prefix := fmt.Sprintf("SAL-%s-", now.Format("200601"))

	var last sale.Sale
	err := r.db.DB.WithContext(ctx).
		Model(&sale.Sale{}).
		Where("sale_number LIKE ?", prefix+"%").
		Order("sale_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	next := 1
	if err == nil && last.SaleNumber != "" {
		parts := strings.Split(last.SaleNumber, "-")
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
			Model(&sale.Sale{}).
			Where("sale_number = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		next++
	}

	return "", fmt.Errorf("could not generate a unique sale number for prefix %s", prefix)
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Where("is_active = ?", true)

	if ownerID, ok := filter.Filters["owner_id"]; ok {
		query = query.Where("owner_id = ?", ownerID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if payStatus, ok := filter.Filters["payment_status"]; ok {
		query = query.Where("payment_status = ?", payStatus)
	}
	if start, ok := filter.Filters["start_date"]; ok {
		query = query.Where("sale_date >= ?", start)
	}
	if end, ok := filter.Filters["end_date"]; ok {
		query = query.Where("sale_date < ?", end)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("sale_number ILIKE ? OR owner_name ILIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormSaleRepository implements sale.Repository
var _ sale.Repository = (*GormSaleRepository)(nil)
