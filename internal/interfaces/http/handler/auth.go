package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/saurabhwebdev/tailtally-sub001/internal/application/identity"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/dto"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/middleware"
)

// AuthHandler exposes authentication and account management over HTTP
type AuthHandler struct {
	BaseHandler
	service *identityapp.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *identityapp.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPublicRoutes registers the routes that require no token
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterRoutes registers the authenticated account routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
	rg.POST("/auth/change-password", h.ChangePassword)

	users := rg.Group("/users", middleware.RequireUserManagement())
	{
		users.POST("", h.Register)
		users.GET("", h.List)
		users.GET("/:id", h.GetByID)
		users.POST("/:id/deactivate", h.Deactivate)
	}
}

// Login authenticates a user and returns an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Me returns the account of the authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangePassword rotates the password of the authenticated user
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := uuid.Parse(middleware.GetJWTUserID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
		return
	}
	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Register creates a new staff account
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List lists user accounts
func (h *AuthHandler) List(c *gin.Context) {
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

// GetByID retrieves a user account
func (h *AuthHandler) GetByID(c *gin.Context) {
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

// Deactivate disables a user account
func (h *AuthHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
