package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/T1mof/review-tracker/internal/domain"
)

func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, templates)
}

func (h *Handler) GetTemplate(c *gin.Context) {
	template, err := h.service.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

// CreateTemplate обрабатывает POST /api/stage-templates.
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req domain.TemplateInput
	if !h.bindJSON(c, &req) {
		return
	}

	template, err := h.service.CreateTemplate(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

// UpdateTemplate обрабатывает PUT /api/stage-templates/:id.
func (h *Handler) UpdateTemplate(c *gin.Context) {
	var req domain.TemplateInput
	if !h.bindJSON(c, &req) {
		return
	}

	template, err := h.service.UpdateTemplate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *Handler) DeleteTemplate(c *gin.Context) {
	if err := h.service.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDefaultTemplate обрабатывает PUT /api/stage-templates/:id/default.
func (h *Handler) SetDefaultTemplate(c *gin.Context) {
	template, err := h.service.SetDefaultTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}
