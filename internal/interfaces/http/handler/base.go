// Package handler holds the HTTP handlers of the public site and the admin
// CMS.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/logger"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/dto"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	return c.GetString(middleware.RequestIDKey)
}

// log returns the request scoped logger
func log(c *gin.Context) *zap.Logger {
	return logger.FromContext(c.Request.Context())
}

// Render renders an HTML template
func (h *BaseHandler) Render(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, data)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleAPIError converts a backend call failure to a JSON response
func (h *BaseHandler) HandleAPIError(c *gin.Context, err *api.Error) {
	code := dto.CodeForAPIError(err)
	message := "An unexpected error occurred"
	if err != nil && err.Message != "" {
		message = err.Message
	}
	if err != nil && err.Kind == api.KindValidation && len(err.Fields) > 0 {
		c.JSON(dto.GetHTTPStatus(code), dto.NewValidationErrorResponse(message, getRequestID(c), err.Fields))
		return
	}
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}
