package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/logger"
	"github.com/shopdesk/backend/internal/interfaces/http/dto"
	"github.com/shopdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
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

// Error sends an error response with an explicit status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindingError answers a failed ShouldBind* with a 400 listing each failed rule
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError maps domain errors to their status and envelope. Anything
// else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.StatusForError(domainErr), dto.NewFieldErrorResponse(
			domainErr.Code, domainErr.Message, domainErr.Field, middleware.GetRequestID(c)))
		return
	}

	logger.FromContext(c.Request.Context()).Error("Unhandled request error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	h.InternalError(c)
}

// ParseUUIDParam parses a UUID path parameter, writing a 400 on failure
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(
			dto.ErrCodeValidation, "Invalid "+name+" format", name, middleware.GetRequestID(c)))
		return uuid.Nil, false
	}
	return id, true
}

// ParseUUIDQuery parses an optional UUID query parameter. An absent value
// yields nil; a malformed one writes a 400.
func (h *BaseHandler) ParseUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(
			dto.ErrCodeValidation, "Invalid "+name+" format", name, middleware.GetRequestID(c)))
		return nil, false
	}
	return &id, true
}

// Principal returns the authenticated principal ID, writing a 401 when absent
func (h *BaseHandler) Principal(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.GetPrincipalID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}

// pageOf returns the effective page and page size of a list request
func pageOf(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return page, pageSize
}
