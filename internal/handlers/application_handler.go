package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/services"
	"github.com/InternLink-2025/placement-service/internal/utils"
)

type ApplicationHandler struct {
	BaseHandler
	service services.ApplicationService
}

func NewApplicationHandler(service services.ApplicationService, logger utils.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Apply submits an application to a published project
// @Summary Apply to a project
// @Tags applications
// @Accept json
// @Produce json
// @Success 201 {object} models.Application
// @Failure 409 {object} ErrorResponse "Duplicate application or project not open"
// @Router /applications [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	h.LogRequest(c, "Submitting application")

	studentID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req services.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	application, err := h.service.Apply(c.Request.Context(), &req, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := GetUserIDFromContext(c)
	role, _ := GetUserRoleFromContext(c)

	application, err := h.service.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// WithdrawApplication retracts a pending application
func (h *ApplicationHandler) WithdrawApplication(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, _ := GetUserIDFromContext(c)

	if err := h.service.Withdraw(c.Request.Context(), id, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "application withdrawn"})
}

// DecideApplication accepts or rejects a pending application
func (h *ApplicationHandler) DecideApplication(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := GetUserIDFromContext(c)
	role, _ := GetUserRoleFromContext(c)

	var req services.ApplicationDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	application, err := h.service.Decide(c.Request.Context(), id, &req, actorID, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// ListApplications returns applications visible to the caller
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	actorID, _ := GetUserIDFromContext(c)
	role, _ := GetUserRoleFromContext(c)

	filters := repositories.ApplicationFilters{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	filters.Page, filters.PageSize = parsePagination(c)

	if studentID := c.Query("student_id"); studentID != "" {
		filters.StudentID = &studentID
	}
	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid project filter",
				Details: "project_id must be a positive integer",
			})
			return
		}
		id := uint(projectID)
		filters.ProjectID = &id
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ApplicationStatus(statusStr)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid status filter",
				Details: "unknown status: " + statusStr,
			})
			return
		}
		filters.Status = &status
	}

	response, err := h.service.List(c.Request.Context(), filters, actorID, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
