package handler

import (
	"github.com/gin-gonic/gin"
	ownerapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/owner"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/dto"
)

// OwnerHandler exposes owner and pet management over HTTP
type OwnerHandler struct {
	BaseHandler
	service *ownerapp.Service
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(service *ownerapp.Service) *OwnerHandler {
	return &OwnerHandler{service: service}
}

// RegisterRoutes registers owner routes on the given router group
func (h *OwnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	owners := rg.Group("/owners")
	{
		owners.POST("", h.Create)
		owners.GET("", h.List)
		owners.GET("/:id", h.GetByID)
		owners.PUT("/:id", h.Update)
		owners.DELETE("/:id", h.Delete)

		owners.POST("/:id/pets", h.AddPet)
		owners.GET("/:id/pets", h.ListPets)
	}
	rg.DELETE("/pets/:id", h.RemovePet)
}

// Create registers a new owner
func (h *OwnerHandler) Create(c *gin.Context) {
	var req ownerapp.CreateOwnerRequest
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

// List lists owners
func (h *OwnerHandler) List(c *gin.Context) {
	var q dto.ListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.service.List(c.Request.Context(), toSharedFilter(q))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID retrieves an owner with their pets
func (h *OwnerHandler) GetByID(c *gin.Context) {
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

// Update modifies an owner's details
func (h *OwnerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ownerapp.UpdateOwnerRequest
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

// Delete soft-deletes an owner
func (h *OwnerHandler) Delete(c *gin.Context) {
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

// AddPet registers a pet under an owner
func (h *OwnerHandler) AddPet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ownerapp.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.AddPet(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPets retrieves the pets of an owner
func (h *OwnerHandler) ListPets(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	pets, err := h.service.ListPets(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pets)
}

// RemovePet soft-deletes a pet
func (h *OwnerHandler) RemovePet(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.RemovePet(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
