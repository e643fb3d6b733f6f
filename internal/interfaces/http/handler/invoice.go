package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/billing"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/dto"
)

// InvoiceHandler exposes invoice management over HTTP
type InvoiceHandler struct {
	BaseHandler
	service *billingapp.Service
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(service *billingapp.Service) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// RegisterRoutes registers invoice routes on the given router group
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.Issue)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetByID)
		invoices.GET("/number/:number", h.GetByInvoiceNumber)
		invoices.GET("/sale/:saleId", h.GetBySale)
		invoices.POST("/:id/pay", h.MarkPaid)
		invoices.POST("/:id/cancel", h.Cancel)
	}
}

// Issue issues an invoice for a confirmed or delivered sale
func (h *InvoiceHandler) Issue(c *gin.Context) {
	var req billingapp.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.Issue(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var q dto.ListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toSharedFilter(q)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID retrieves an invoice by ID
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByInvoiceNumber retrieves an invoice by its business identifier
func (h *InvoiceHandler) GetByInvoiceNumber(c *gin.Context) {
	resp, err := h.service.GetByInvoiceNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetBySale retrieves the invoice issued for a sale
func (h *InvoiceHandler) GetBySale(c *gin.Context) {
	saleID, ok := parseUUIDParam(c, "saleId")
	if !ok {
		return
	}
	resp, err := h.service.GetBySale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkPaid marks an invoice as settled
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.service.MarkPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel voids an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req billingapp.CancelInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
