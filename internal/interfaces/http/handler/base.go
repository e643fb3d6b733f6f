package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, message))
}

// HandleError converts domain errors to HTTP responses, mapping the
// domain error code to a status code. Anything unrecognised becomes a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid ID format"))
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDParam parses a named path parameter as a UUID
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest,
			dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid "+name+" format"))
		return uuid.Nil, false
	}
	return id, true
}
