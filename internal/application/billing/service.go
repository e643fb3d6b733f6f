package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/billing"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/owner"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
)

// Service handles invoice business operations
type Service struct {
	invoiceRepo    billing.Repository
	saleRepo       sale.Repository
	ownerRepo      owner.Repository
	eventPublisher shared.EventPublisher
}

// NewService creates a new billing Service
func NewService(invoiceRepo billing.Repository, saleRepo sale.Repository, ownerRepo owner.Repository) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		saleRepo:    saleRepo,
		ownerRepo:   ownerRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Issue issues an invoice for a confirmed or delivered sale. The sale's
// totals are frozen into the invoice, one invoice per sale.
func (s *Service) Issue(ctx context.Context, req IssueInvoiceRequest) (*InvoiceResponse, error) {
	sl, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}
	if sl.Status != sale.SaleStatusConfirmed && sl.Status != sale.SaleStatusDelivered {
		return nil, shared.NewDomainError("INVALID_STATE", "Invoices can only be issued for confirmed or delivered sales")
	}
	if sl.InvoiceID != nil {
		return nil, shared.NewDomainError("ALREADY_INVOICED", "An invoice was already issued for this sale")
	}

	gstin := ""
	if own, err := s.ownerRepo.FindByID(ctx, sl.OwnerID); err == nil {
		gstin = own.GSTIN
	}

	invoiceNumber, err := s.invoiceRepo.NextInvoiceNumber(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	inv, err := billing.NewInvoice(invoiceNumber, sl.ID, sl.SaleNumber, sl.OwnerID, sl.OwnerName, gstin,
		billing.InvoiceAmounts{
			Subtotal:      sl.Subtotal,
			TotalDiscount: sl.TotalDiscount,
			TotalTaxable:  sl.TotalTaxable,
			TotalGST:      sl.TotalGST,
			GrandTotal:    sl.GrandTotal,
		})
	if err != nil {
		return nil, err
	}
	inv.Notes = req.Notes
	if sl.Payment.Status == sale.PaymentStatusPaid {
		if err := inv.MarkPaid(); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	if err := sl.AttachInvoice(inv.ID); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sl); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range inv.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
	}
	inv.ClearDomainEvents()

	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetByID retrieves an invoice by ID
func (s *Service) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetByInvoiceNumber retrieves an invoice by its business identifier
func (s *Service) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// GetBySale retrieves the invoice issued for a sale
func (s *Service) GetBySale(ctx context.Context, saleID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// List retrieves invoices with filtering and pagination
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[InvoiceResponse], error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToInvoiceResponses(invoices), total, filter.Page, filter.PageSize)
	return &page, nil
}

// MarkPaid marks an invoice as settled
func (s *Service) MarkPaid(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := inv.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}

// Cancel voids an invoice
func (s *Service) Cancel(ctx context.Context, invoiceID uuid.UUID, req CancelInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := inv.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv)
	return &resp, nil
}
