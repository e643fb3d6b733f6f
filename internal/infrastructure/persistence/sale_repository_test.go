package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSaleRepository creates a GormSaleRepository with a mocked SQL connection
func newMockSaleRepository(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSaleRepository(&Database{DB: gormDB}), mock, mockDB
}

func TestGormSaleRepository_FindByID(t *testing.T) {
	t.Run("finds existing sale with items", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		ownerID := uuid.New()

		saleRows := sqlmock.NewRows([]string{
			"id", "sale_number", "owner_id", "owner_name", "status", "payment_status",
		}).AddRow(
			saleID, "SAL-202609-0001", ownerID, "Asha Patel", "draft", "pending",
		)
		itemRows := sqlmock.NewRows([]string{
			"id", "sale_id", "item_name", "quantity",
		}).AddRow(
			uuid.New(), saleID, "Dog Food 5kg", 2,
		)

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id = \$1`).
			WithArgs(saleID, 1).
			WillReturnRows(saleRows)
		mock.ExpectQuery(`SELECT \* FROM "sale_line_items" WHERE "sale_line_items"."sale_id" = \$1`).
			WithArgs(saleID).
			WillReturnRows(itemRows)

		s, err := repo.FindByID(context.Background(), saleID)

		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "SAL-202609-0001", s.SaleNumber)
		assert.Equal(t, ownerID, s.OwnerID)
		require.Len(t, s.Items, 1)
		assert.Equal(t, "Dog Food 5kg", s.Items[0].ItemName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing sale", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE id = \$1`).
			WithArgs(saleID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		s, err := repo.FindByID(context.Background(), saleID)

		assert.Nil(t, s)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_NextSaleNumber(t *testing.T) {
	now := time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)

	t.Run("starts at 0001 for an empty month", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE sale_number LIKE \$1 ORDER BY sale_number DESC`).
			WithArgs("SAL-202609-%", 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE sale_number = \$1`).
			WithArgs("SAL-202609-0001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.NextSaleNumber(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, "SAL-202609-0001", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the highest number of the month", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE sale_number LIKE \$1 ORDER BY sale_number DESC`).
			WithArgs("SAL-202609-%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"sale_number"}).AddRow("SAL-202609-0041"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE sale_number = \$1`).
			WithArgs("SAL-202609-0042").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.NextSaleNumber(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, "SAL-202609-0042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("skips a taken candidate", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE sale_number LIKE \$1 ORDER BY sale_number DESC`).
			WithArgs("SAL-202609-%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"sale_number"}).AddRow("SAL-202609-0002"))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE sale_number = \$1`).
			WithArgs("SAL-202609-0003").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE sale_number = \$1`).
			WithArgs("SAL-202609-0004").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		number, err := repo.NextSaleNumber(context.Background(), now)

		assert.NoError(t, err)
		assert.Equal(t, "SAL-202609-0004", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockSaleRepository(t)
	defer mockDB.Close()

	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(sale.SaleStatusConfirmed)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE is_active = \$1 AND status = \$2`).
		WithArgs(true, "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
