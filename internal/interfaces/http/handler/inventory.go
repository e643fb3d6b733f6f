package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/inventory"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/dto"
)

// InventoryHandler exposes inventory management over HTTP
type InventoryHandler struct {
	BaseHandler
	service *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers inventory routes on the given router group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory")
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/low-stock", h.ListLowStock)
		items.GET("/sku/:sku", h.GetBySKU)
		items.GET("/:id", h.GetByID)
		items.PUT("/:id", h.Update)
		items.DELETE("/:id", h.Delete)

		items.POST("/:id/restock", h.Restock)
		items.POST("/:id/adjust", h.AdjustStock)
		items.GET("/:id/movements", h.Movements)
	}
}

// Create registers a new inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
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

// List lists inventory items
func (h *InventoryHandler) List(c *gin.Context) {
	var q dto.ListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toSharedFilter(q)
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListLowStock lists items at or below their minimum quantity
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	var q dto.ListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	items, err := h.service.ListLowStock(c.Request.Context(), toSharedFilter(q))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetByID retrieves an inventory item by ID
func (h *InventoryHandler) GetByID(c *gin.Context) {
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

// GetBySKU retrieves an inventory item by SKU
func (h *InventoryHandler) GetBySKU(c *gin.Context) {
	resp, err := h.service.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update modifies mutable fields of an inventory item
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req inventoryapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Restock adds received units to an item
func (h *InventoryHandler) Restock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req inventoryapp.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.Restock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustStock sets the stock level to an absolute count
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Movements retrieves the stock movement history of an item
func (h *InventoryHandler) Movements(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var q dto.ListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	movements, err := h.service.Movements(c.Request.Context(), id, toSharedFilter(q))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

// Delete soft-deletes an inventory item
func (h *InventoryHandler) Delete(c *gin.Context) {
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

// toSharedFilter maps the common list query onto a domain filter
func toSharedFilter(q dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		filter.OrderDir = q.OrderDir
	}
	filter.Search = q.Search
	return filter
}
