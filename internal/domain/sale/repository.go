package sale

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Repository defines persistence operations for sales
type Repository interface {
	shared.Repository[Sale]

	// FindBySaleNumber looks a sale up by its business identifier
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindByOwner returns sales belonging to an owner
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindByStatus returns sales in the given status
	FindByStatus(ctx context.Context, status SaleStatus, filter shared.Filter) ([]Sale, error)

	// FindOverdue returns sales with an unpaid balance past their due date
	FindOverdue(ctx context.Context, asOf time.Time, filter shared.Filter) ([]Sale, error)

	// NextSaleNumber produces the next sale number for the month of the
	// given time, formatted SAL-YYYYMM-NNNN. The sequence restarts at 0001
	// each calendar month. Implementations must tolerate concurrent calls;
	// uniqueness is ultimately enforced by the unique index on sale_number.
	NextSaleNumber(ctx context.Context, now time.Time) (string, error)
}
