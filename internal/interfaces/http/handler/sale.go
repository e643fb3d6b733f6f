package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	saleapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/sale"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/sale"
)

// SaleHandler exposes the sale lifecycle over HTTP
type SaleHandler struct {
	BaseHandler
	service *saleapp.Service
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(service *saleapp.Service) *SaleHandler {
	return &SaleHandler{service: service}
}

// RegisterRoutes registers sale routes on the given router group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.GetByID)
		sales.GET("/number/:number", h.GetBySaleNumber)
		sales.DELETE("/:id", h.Delete)

		sales.POST("/:id/items", h.AddItem)
		sales.PUT("/:id/items/:itemId", h.UpdateItem)
		sales.DELETE("/:id/items/:itemId", h.RemoveItem)

		sales.POST("/:id/confirm", h.Confirm)
		sales.POST("/:id/deliver", h.Deliver)
		sales.POST("/:id/payments", h.RecordPayment)
		sales.POST("/:id/cancel", h.Cancel)
		sales.POST("/:id/return", h.Return)
	}
}

// Create creates a new draft sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req saleapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// saleListQuery binds the sale listing query parameters
type saleListQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"orderBy"`
	OrderDir      string `form:"orderDir" binding:"omitempty,oneof=asc desc"`
	Search        string `form:"search"`
	OwnerID       string `form:"ownerId" binding:"omitempty,uuid"`
	Status        string `form:"status"`
	PaymentStatus string `form:"paymentStatus"`
	StartDate     string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate       string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// List lists sales with filtering and pagination
func (h *SaleHandler) List(c *gin.Context) {
	var q saleListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := saleapp.ListFilter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
		Search:   q.Search,
	}
	if q.OwnerID != "" {
		ownerID, _ := uuid.Parse(q.OwnerID)
		filter.OwnerID = &ownerID
	}
	if q.Status != "" {
		status := sale.SaleStatus(q.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown sale status: "+q.Status)
			return
		}
		filter.Status = &status
	}
	if q.PaymentStatus != "" {
		payStatus := sale.PaymentStatus(q.PaymentStatus)
		if !payStatus.IsValid() {
			h.BadRequest(c, "Unknown payment status: "+q.PaymentStatus)
			return
		}
		filter.PayStatus = &payStatus
	}
	if q.StartDate != "" {
		start, _ := time.Parse("2006-01-02", q.StartDate)
		filter.StartDate = &start
	}
	if q.EndDate != "" {
		// End date is inclusive on the wire, exclusive in the query
		end, _ := time.Parse("2006-01-02", q.EndDate)
		end = end.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID retrieves a sale by ID
func (h *SaleHandler) GetByID(c *gin.Context) {
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

// GetBySaleNumber retrieves a sale by its sale number
func (h *SaleHandler) GetBySaleNumber(c *gin.Context) {
	resp, err := h.service.GetBySaleNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem adds a line item to a draft sale
func (h *SaleHandler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req saleapp.CreateSaleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem updates a line item on a draft sale
func (h *SaleHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}
	var req saleapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem removes a line item from a draft sale
func (h *SaleHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}
	resp, err := h.service.RemoveItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm confirms a draft sale and triggers the stock deduction
func (h *SaleHandler) Confirm(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deliver marks a confirmed sale as delivered
func (h *SaleHandler) Deliver(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.service.Deliver(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordPayment applies a payment to a sale
func (h *SaleHandler) RecordPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req saleapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels a draft or confirmed sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req saleapp.CancelSaleRequest
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

// Return marks a delivered sale as returned
func (h *SaleHandler) Return(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.service.Return(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete soft-deletes a draft or cancelled sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
