package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/T1mof/review-tracker/internal/domain"
)

// GetSettings обрабатывает GET /api/settings.
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings обрабатывает PUT /api/settings.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req domain.GlobalSettings
	if !h.bindJSON(c, &req) {
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
