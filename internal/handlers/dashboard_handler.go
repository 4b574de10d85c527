package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/InternLink-2025/placement-service/internal/services"
	"github.com/InternLink-2025/placement-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
	reports services.ReportService
}

func NewDashboardHandler(service services.DashboardService, reports services.ReportService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		reports:     reports,
	}
}

// GetOverview returns platform totals and the registration trend
// @Summary Get dashboard overview
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardOverview
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard overview")

	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetUsersByRole returns user counts for every role, zero-filled
func (h *DashboardHandler) GetUsersByRole(c *gin.Context) {
	counts, err := h.service.UsersByRole(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// GetProjectsByStatus returns project counts per status, optionally
// scoped to one organization
func (h *DashboardHandler) GetProjectsByStatus(c *gin.Context) {
	var organizationID *string
	if orgID := c.Query("organization_id"); orgID != "" {
		organizationID = &orgID
	}

	counts, err := h.service.ProjectsByStatus(c.Request.Context(), organizationID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// GetApplicationsByStatus returns application counts per status,
// optionally scoped to one project
func (h *DashboardHandler) GetApplicationsByStatus(c *gin.Context) {
	var projectID *uint
	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		parsed, err := strconv.ParseUint(projectIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid project filter",
				Details: "project_id must be a positive integer",
			})
			return
		}
		id := uint(parsed)
		projectID = &id
	}

	counts, err := h.service.ApplicationsByStatus(c.Request.Context(), projectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// DownloadReport streams the platform report workbook
func (h *DashboardHandler) DownloadReport(c *gin.Context) {
	h.LogRequest(c, "Building platform report")

	report, err := h.reports.BuildPlatformReport(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("platform-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}
