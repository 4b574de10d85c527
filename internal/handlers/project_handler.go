package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InternLink-2025/placement-service/internal/models"
	"github.com/InternLink-2025/placement-service/internal/repositories"
	"github.com/InternLink-2025/placement-service/internal/services"
	"github.com/InternLink-2025/placement-service/internal/utils"
	"github.com/InternLink-2025/placement-service/internal/validator"
)

type ProjectHandler struct {
	BaseHandler
	service services.ProjectService
}

func NewProjectHandler(service services.ProjectService, logger utils.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateProject opens a new draft project for the organization
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	h.LogRequest(c, "Creating project")

	organizationID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req services.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	project, err := h.service.Create(c.Request.Context(), &req, organizationID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	project, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects returns a paginated, filterable project listing
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filters := repositories.ProjectFilters{
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	filters.Page, filters.PageSize = parsePagination(c)

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.ProjectStatus(statusStr)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid status filter",
				Details: "unknown status: " + statusStr,
			})
			return
		}
		filters.Status = &status
	}
	if orgID := c.Query("organization_id"); orgID != "" {
		filters.OrganizationID = &orgID
	}
	if coordinatorID := c.Query("coordinator_id"); coordinatorID != "" {
		filters.CoordinatorID = &coordinatorID
	}

	response, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := GetUserIDFromContext(c)
	role, _ := GetUserRoleFromContext(c)

	var req services.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	project, err := h.service.Update(c.Request.Context(), id, &req, actorID, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := GetUserIDFromContext(c)
	role, _ := GetUserRoleFromContext(c)

	if err := h.service.Delete(c.Request.Context(), id, actorID, role); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ===== LIFECYCLE ENDPOINTS =====

func (h *ProjectHandler) SubmitProject(c *gin.Context) {
	h.lifecycle(c, h.service.Submit)
}

func (h *ProjectHandler) PublishProject(c *gin.Context) {
	h.lifecycle(c, h.service.Publish)
}

func (h *ProjectHandler) StartProject(c *gin.Context) {
	h.lifecycle(c, h.service.Start)
}

func (h *ProjectHandler) CompleteProject(c *gin.Context) {
	h.lifecycle(c, h.service.Complete)
}

func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	h.lifecycle(c, h.service.Archive)
}

// AssignCoordinator attaches a coordinator and advances the status
func (h *ProjectHandler) AssignCoordinator(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	role, _ := GetUserRoleFromContext(c)

	var req validator.AssignCoordinatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if err := h.service.AssignCoordinator(c.Request.Context(), id, req.CoordinatorID, role); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "coordinator assigned"})
}

func (h *ProjectHandler) lifecycle(c *gin.Context, op func(ctx context.Context, id uint, actorID string, role models.UserRole) error) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	actorID, _ := GetUserIDFromContext(c)
	role, _ := GetUserRoleFromContext(c)

	if err := op(c.Request.Context(), id, actorID, role); err != nil {
		h.handleServiceError(c, err)
		return
	}

	project, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}
