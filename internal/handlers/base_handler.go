package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/InternLink-2025/placement-service/internal/services"
	"github.com/InternLink-2025/placement-service/internal/utils"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Message string                      `json:"message"`
	Details string                      `json:"details,omitempty"`
	Fields  []validator.ValidationError `json:"fields,omitempty"`
}

// BaseHandler carries shared handler plumbing.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "path", c.FullPath(), "method", c.Request.Method)
	h.logger.Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	h.logger.Error(msg, "error", err, "path", c.FullPath(), "method", c.Request.Method)
}

// handleServiceError maps service-layer errors onto HTTP statuses. Database
// and other unexpected error texts are logged but never sent to clients.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Fields:  validationErrs,
		})
		return
	}

	var permissionErr *services.PermissionError
	if errors.As(err, &permissionErr) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
			Details: permissionErr.Reason,
		})
		return
	}

	var transitionErr *services.TransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Invalid status transition",
			Details: transitionErr.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Not found"})

	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid email or password"})

	case errors.Is(err, services.ErrAccountSuspended):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Account is suspended"})

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrAlreadySetup),
		errors.Is(err, services.ErrEmailVerified):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Conflict", Details: err.Error()})

	case errors.Is(err, services.ErrProjectNotEditable),
		errors.Is(err, services.ErrProjectNotPublished),
		errors.Is(err, services.ErrProjectCapacityFull),
		errors.Is(err, services.ErrApplicationNotOpen),
		errors.Is(err, services.ErrCoordinatorOverload),
		errors.Is(err, services.ErrRegistrationClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Conflict", Details: err.Error()})

	case errors.Is(err, services.ErrSetupRequired):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Setup required",
			Details: "platform setup has not been completed",
		})

	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}

// parseUintParam reads a numeric path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid path parameter",
			Details: name + " must be a positive integer",
		})
		return 0, false
	}
	return uint(value), true
}

// parsePagination reads page/page_size query params, leaving range
// normalization to the repository layer.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
