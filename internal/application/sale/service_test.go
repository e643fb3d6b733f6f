package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/owner"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSaleRepository is a mock implementation of sale.Repository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sale.Sale, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, entity *sale.Sale) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sale.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]sale.Sale, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByStatus(ctx context.Context, status sale.SaleStatus, filter shared.Filter) ([]sale.Sale, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindOverdue(ctx context.Context, asOf time.Time, filter shared.Filter) ([]sale.Sale, error) {
	args := m.Called(ctx, asOf, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sale.Sale), args.Error(1)
}

func (m *MockSaleRepository) NextSaleNumber(ctx context.Context, now time.Time) (string, error) {
	args := m.Called(ctx, now)
	return args.String(0), args.Error(1)
}

// MockOwnerRepository is a mock implementation of owner.Repository
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*owner.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*owner.Owner), args.Error(1)
}

func (m *MockOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]owner.Owner, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]owner.Owner), args.Error(1)
}

func (m *MockOwnerRepository) Save(ctx context.Context, entity *owner.Owner) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOwnerRepository) FindByPhone(ctx context.Context, phone string) (*owner.Owner, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*owner.Owner), args.Error(1)
}

func (m *MockOwnerRepository) FindByEmail(ctx context.Context, email string) (*owner.Owner, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*owner.Owner), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
	published []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	m.published = append(m.published, events...)
	return args.Error(0)
}

const testSaleNumber = "SAL-202609-0001"

func testOwner(t *testing.T) *owner.Owner {
	t.Helper()
	o, err := owner.NewOwner("Asha", "Patel", "asha@example.com", "9876543210")
	require.NoError(t, err)
	return o
}

func testItemRequest() CreateSaleItemRequest {
	return CreateSaleItemRequest{
		InventoryID:  uuid.New(),
		ItemName:     "Dog Food 5kg",
		SKU:          "DF-5KG",
		Quantity:     2,
		UnitPrice:    decimal.NewFromInt(100),
		Discount:     decimal.NewFromInt(10),
		DiscountType: "percentage",
		GST: GSTRequest{
			IsApplicable: true,
			Rate:         decimal.NewFromInt(18),
			Type:         "CGST_SGST",
		},
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates sale with generated number and computed totals", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		ownerRepo := new(MockOwnerRepository)
		svc := NewService(saleRepo, ownerRepo)

		own := testOwner(t)
		ownerRepo.On("FindByID", ctx, own.ID).Return(own, nil)
		saleRepo.On("NextSaleNumber", ctx, mock.AnythingOfType("time.Time")).Return(testSaleNumber, nil)
		saleRepo.On("Save", ctx, mock.AnythingOfType("*sale.Sale")).Return(nil)

		resp, err := svc.Create(ctx, CreateSaleRequest{
			OwnerID:       own.ID,
			SalesPersonID: uuid.New(),
			Items:         []CreateSaleItemRequest{testItemRequest()},
		})
		require.NoError(t, err)

		assert.Equal(t, testSaleNumber, resp.SaleNumber)
		assert.Equal(t, "Asha Patel", resp.OwnerName)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(200)))
		assert.True(t, resp.TotalDiscount.Equal(decimal.NewFromInt(20)))
		assert.True(t, resp.TotalGST.Equal(decimal.NewFromFloat(32.4)))
		assert.True(t, resp.GrandTotal.Equal(decimal.NewFromFloat(212.4)))
		assert.Equal(t, "pending", resp.Payment.Status)
		saleRepo.AssertExpectations(t)
	})

	t.Run("fails when owner is unknown", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		ownerRepo := new(MockOwnerRepository)
		svc := NewService(saleRepo, ownerRepo)

		ownerID := uuid.New()
		ownerRepo.On("FindByID", ctx, ownerID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateSaleRequest{OwnerID: ownerID, SalesPersonID: uuid.New()})
		assert.Error(t, err)
		saleRepo.AssertNotCalled(t, "Save")
	})

	t.Run("fails when number generation fails", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		ownerRepo := new(MockOwnerRepository)
		svc := NewService(saleRepo, ownerRepo)

		own := testOwner(t)
		ownerRepo.On("FindByID", ctx, own.ID).Return(own, nil)
		saleRepo.On("NextSaleNumber", ctx, mock.AnythingOfType("time.Time")).Return("", assert.AnError)

		_, err := svc.Create(ctx, CreateSaleRequest{OwnerID: own.ID, SalesPersonID: uuid.New()})
		assert.Error(t, err)
	})
}

func storedSale(t *testing.T, items ...CreateSaleItemRequest) *sale.Sale {
	t.Helper()
	sl, err := sale.NewSale(testSaleNumber, uuid.New(), "Asha Patel", nil, uuid.New())
	require.NoError(t, err)
	for _, item := range items {
		_, err := sl.AddItem(item.InventoryID, item.ItemName, item.SKU, item.Quantity,
			item.UnitPrice, item.Discount, sale.DiscountType(item.DiscountType),
			sale.GSTDetails{IsApplicable: item.GST.IsApplicable, Rate: item.GST.Rate, Type: sale.GSTType(item.GST.Type)})
		require.NoError(t, err)
	}
	sl.ClearDomainEvents()
	return sl
}

func TestServiceConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms and publishes the confirmed event", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		ownerRepo := new(MockOwnerRepository)
		publisher := new(MockEventPublisher)
		svc := NewService(saleRepo, ownerRepo)
		svc.SetEventPublisher(publisher)

		sl := storedSale(t, testItemRequest())
		saleRepo.On("FindByID", ctx, sl.ID).Return(sl, nil)
		saleRepo.On("Save", ctx, sl).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := svc.Confirm(ctx, sl.ID)
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, sale.EventSaleConfirmed, publisher.published[0].EventType())
	})

	t.Run("reverts to draft when the stock deduction fails", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		ownerRepo := new(MockOwnerRepository)
		publisher := new(MockEventPublisher)
		svc := NewService(saleRepo, ownerRepo)
		svc.SetEventPublisher(publisher)

		sl := storedSale(t, testItemRequest())
		saleRepo.On("FindByID", ctx, sl.ID).Return(sl, nil)

		var savedStatuses []sale.SaleStatus
		saleRepo.On("Save", ctx, sl).Run(func(mock.Arguments) {
			savedStatuses = append(savedStatuses, sl.Status)
		}).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).
			Return(errors.Join(errors.New("stock deduction failed for DF-5KG"), shared.ErrInsufficientStock))

		_, err := svc.Confirm(ctx, sl.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		// The confirmed write was undone by a second save back in draft
		require.Equal(t, []sale.SaleStatus{sale.SaleStatusConfirmed, sale.SaleStatusDraft}, savedStatuses)
		assert.Equal(t, sale.SaleStatusDraft, sl.Status)

		// The sale is not stuck: confirming again is a valid transition
		require.NoError(t, sl.Confirm())
	})

	t.Run("rejects confirming an empty sale", func(t *testing.T) {
		saleRepo := new(MockSaleRepository)
		ownerRepo := new(MockOwnerRepository)
		svc := NewService(saleRepo, ownerRepo)

		sl := storedSale(t)
		saleRepo.On("FindByID", ctx, sl.ID).Return(sl, nil)

		_, err := svc.Confirm(ctx, sl.ID)
		assert.Error(t, err)
		saleRepo.AssertNotCalled(t, "Save")
	})
}

func TestServiceRecordPayment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *MockSaleRepository, *sale.Sale) {
		saleRepo := new(MockSaleRepository)
		ownerRepo := new(MockOwnerRepository)
		svc := NewService(saleRepo, ownerRepo)

		item := testItemRequest()
		item.Quantity = 10
		item.Discount = decimal.Zero
		item.GST = GSTRequest{}
		item.GST.Type = "EXEMPT"
		sl := storedSale(t, item) // grand total 1000
		saleRepo.On("FindByID", ctx, sl.ID).Return(sl, nil)
		saleRepo.On("Save", ctx, sl).Return(nil)
		return svc, saleRepo, sl
	}

	t.Run("partial payment then settlement", func(t *testing.T) {
		svc, _, sl := setup(t)

		resp, err := svc.RecordPayment(ctx, sl.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(400), Method: "upi", TransactionID: "TXN-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "partial", resp.Payment.Status)
		assert.True(t, resp.Payment.DueAmount.Equal(decimal.NewFromInt(600)))

		resp, err = svc.RecordPayment(ctx, sl.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(600), Method: "card", TransactionID: "TXN-2",
		})
		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Payment.Status)
		assert.True(t, resp.Payment.DueAmount.IsZero())
	})

	t.Run("rejects overpayment above due balance", func(t *testing.T) {
		svc, _, sl := setup(t)

		_, err := svc.RecordPayment(ctx, sl.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(1200), Method: "cash",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERPAYMENT", domainErr.Code)
	})
}

func TestServiceCancel(t *testing.T) {
	ctx := context.Background()
	saleRepo := new(MockSaleRepository)
	ownerRepo := new(MockOwnerRepository)
	svc := NewService(saleRepo, ownerRepo)

	sl := storedSale(t, testItemRequest())
	saleRepo.On("FindByID", ctx, sl.ID).Return(sl, nil)
	saleRepo.On("Save", ctx, sl).Return(nil)

	resp, err := svc.Cancel(ctx, sl.ID, CancelSaleRequest{Reason: "customer changed mind"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "cancelled", resp.Payment.Status)
}
