package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/InternLink-2025/placement-service/internal/services"
	"github.com/InternLink-2025/placement-service/internal/utils"
)

type ConfigHandler struct {
	BaseHandler
	service services.ConfigService
}

func NewConfigHandler(service services.ConfigService, logger utils.Logger) *ConfigHandler {
	return &ConfigHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetSetupStatus reports whether the setup wizard has run
func (h *ConfigHandler) GetSetupStatus(c *gin.Context) {
	status, err := h.service.SetupStatus(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// Setup performs the first-run configuration. Open only while the config
// row is absent; afterwards it returns a conflict.
func (h *ConfigHandler) Setup(c *gin.Context) {
	h.LogRequest(c, "Running platform setup")

	var req services.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	config, err := h.service.Setup(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, config)
}

// GetConfig returns the platform configuration
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	config, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, config)
}

// UpdateConfig applies partial changes to the platform configuration
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	h.LogRequest(c, "Updating platform config")

	var req services.ConfigUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	config, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, config)
}
