package sale

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/owner"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Service handles sale business operations
type Service struct {
	saleRepo       sale.Repository
	ownerRepo      owner.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates a new sale Service
func NewService(saleRepo sale.Repository, ownerRepo owner.Repository) *Service {
	return &Service{
		saleRepo:  saleRepo,
		ownerRepo: ownerRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft sale with an assigned sale number
func (s *Service) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	own, err := s.ownerRepo.FindByID(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	saleNumber, err := s.saleRepo.NextSaleNumber(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	sl, err := sale.NewSale(saleNumber, own.ID, own.FullName(), req.PetID, req.SalesPersonID)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := sl.AddItem(
			item.InventoryID,
			item.ItemName,
			item.SKU,
			item.Quantity,
			item.UnitPrice,
			item.Discount,
			discountTypeOrDefault(item.DiscountType),
			toGSTDetails(item.GST),
		); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		sl.SetNotes(req.Notes)
	}
	if req.DueDate != nil {
		sl.SetDueDate(*req.DueDate)
	}

	if err := s.save(ctx, sl); err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sl)
	return &resp, nil
}

// GetByID retrieves a sale by ID
func (s *Service) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sl)
	return &resp, nil
}

// GetBySaleNumber retrieves a sale by its sale number
func (s *Service) GetBySaleNumber(ctx context.Context, saleNumber string) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindBySaleNumber(ctx, saleNumber)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sl)
	return &resp, nil
}

// List retrieves sales with filtering and pagination
func (s *Service) List(ctx context.Context, filter ListFilter) (*shared.Paginated[SaleListItemResponse], error) {
	domainFilter := s.buildFilter(filter)

	sales, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToSaleListItemResponses(sales), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// AddItem adds a line item to a draft sale
func (s *Service) AddItem(ctx context.Context, saleID uuid.UUID, req CreateSaleItemRequest) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if _, err := sl.AddItem(
		req.InventoryID,
		req.ItemName,
		req.SKU,
		req.Quantity,
		req.UnitPrice,
		req.Discount,
		discountTypeOrDefault(req.DiscountType),
		toGSTDetails(req.GST),
	); err != nil {
		return nil, err
	}

	if err := s.save(ctx, sl); err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sl)
	return &resp, nil
}

// UpdateItem updates a line item on a draft sale
func (s *Service) UpdateItem(ctx context.Context, saleID, itemID uuid.UUID, req UpdateItemRequest) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		if err := sl.UpdateItemQuantity(itemID, *req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.UnitPrice != nil {
		if err := sl.UpdateItemPrice(itemID, *req.UnitPrice); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		dt := sale.DiscountTypePercentage
		if req.DiscountType != nil {
			dt = sale.DiscountType(*req.DiscountType)
		} else if item := sl.GetItem(itemID); item != nil {
			dt = item.DiscountType
		}
		if err := sl.UpdateItemDiscount(itemID, *req.Discount, dt); err != nil {
			return nil, err
		}
	}

	if err := s.save(ctx, sl); err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sl)
	return &resp, nil
}

// RemoveItem removes a line item from a draft sale
func (s *Service) RemoveItem(ctx context.Context, saleID, itemID uuid.UUID) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sl.RemoveItem(itemID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sl); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sl)
	return &resp, nil
}

// Confirm confirms a draft sale. The emitted SaleConfirmedEvent drives the
// inventory stock deduction through the event bus; when the deduction
// fails the confirmation is rolled back so the sale returns to draft and
// can be amended and confirmed again.
func (s *Service) Confirm(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sl.Confirm(); err != nil {
		return nil, err
	}

	sl.RecalculateTotals()
	if err := s.saleRepo.Save(ctx, sl); err != nil {
		return nil, err
	}

	if err := s.publishEvents(ctx, sl); err != nil {
		sl.ClearDomainEvents()
		if revertErr := sl.RevertConfirmation(); revertErr == nil {
			if saveErr := s.saleRepo.Save(ctx, sl); saveErr != nil {
				return nil, errors.Join(err, saveErr)
			}
		}
		return nil, err
	}

	resp := ToSaleResponse(sl)
	return &resp, nil
}

// Deliver marks a confirmed sale as delivered
func (s *Service) Deliver(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sl.Deliver(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sl); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sl)
	return &resp, nil
}

// RecordPayment applies a payment to a sale. A payment above the current
// due balance is rejected here so the domain clamp never hides an operator
// mistake.
func (s *Service) RecordPayment(ctx context.Context, saleID uuid.UUID, req RecordPaymentRequest) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if req.Amount.GreaterThan(sl.Payment.DueAmount) {
		return nil, shared.NewDomainError("OVERPAYMENT",
			"Payment amount exceeds the due balance of "+sl.Payment.DueAmount.StringFixed(2))
	}

	if err := sl.RecordPayment(req.Amount, req.Method, req.TransactionID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sl); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sl)
	return &resp, nil
}

// Cancel cancels a draft or confirmed sale
func (s *Service) Cancel(ctx context.Context, saleID uuid.UUID, req CancelSaleRequest) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sl.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sl); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sl)
	return &resp, nil
}

// Return marks a delivered sale as returned and refunded
func (s *Service) Return(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sl.Return(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sl); err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sl)
	return &resp, nil
}

// Delete soft-deletes a sale. Only draft and cancelled sales can be
// removed from listings.
func (s *Service) Delete(ctx context.Context, saleID uuid.UUID) error {
	sl, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sl.Status != sale.SaleStatusDraft && sl.Status != sale.SaleStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Only draft or cancelled sales can be deleted")
	}
	sl.Deactivate()
	return s.saleRepo.Save(ctx, sl)
}

// save persists the sale, recomputing totals first, then publishes any
// pending domain events.
func (s *Service) save(ctx context.Context, sl *sale.Sale) error {
	sl.RecalculateTotals()
	if err := s.saleRepo.Save(ctx, sl); err != nil {
		return err
	}
	return s.publishEvents(ctx, sl)
}

// publishEvents delivers pending domain events through the bus. The
// pending list is cleared only after every event was delivered.
func (s *Service) publishEvents(ctx context.Context, sl *sale.Sale) error {
	if s.eventPublisher != nil {
		for _, event := range sl.GetDomainEvents() {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				return err
			}
		}
	}
	sl.ClearDomainEvents()
	return nil
}

func (s *Service) buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.OwnerID != nil {
		domainFilter.Filters["owner_id"] = *filter.OwnerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = string(*filter.Status)
	}
	if filter.PayStatus != nil {
		domainFilter.Filters["payment_status"] = string(*filter.PayStatus)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}
	return domainFilter
}

func discountTypeOrDefault(raw string) sale.DiscountType {
	if raw == "" {
		return sale.DiscountTypePercentage
	}
	return sale.DiscountType(raw)
}

func toGSTDetails(req GSTRequest) sale.GSTDetails {
	gstType := sale.GSTTypeCGSTSGST
	if req.Type != "" {
		gstType = sale.GSTType(req.Type)
	}
	rate := req.Rate
	if rate.IsZero() {
		rate = decimal.Zero
	}
	return sale.GSTDetails{
		IsApplicable: req.IsApplicable,
		Rate:         rate,
		Type:         gstType,
		HSNCode:      req.HSNCode,
		SACCode:      req.SACCode,
	}
}
