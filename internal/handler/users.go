package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/T1mof/review-tracker/internal/domain"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser обрабатывает POST /api/users.
func (h *Handler) CreateUser(c *gin.Context) {
	var req domain.UserInput
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser обрабатывает PUT /api/users/:id.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req domain.UserInput
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
