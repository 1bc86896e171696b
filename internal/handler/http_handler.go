package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/T1mof/review-tracker/internal/domain"
	"github.com/T1mof/review-tracker/internal/middleware"
	"github.com/T1mof/review-tracker/internal/service"
)

const defaultRequestTimeout = 10 * time.Second

type Handler struct {
	service        service.ServiceInterface
	adminToken     string
	requestTimeout time.Duration
}

func NewHandler(svc service.ServiceInterface, adminToken string, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &Handler{
		service:        svc,
		adminToken:     adminToken,
		requestTimeout: requestTimeout,
	}
}

// ErrorResponse структура ответа с ошибкой.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// sendError отправляет структурированную ошибку клиенту и логирует её.
func (h *Handler) sendError(c *gin.Context, statusCode int, code, message string) {
	slog.Error("Request error",
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"status", statusCode,
		"error_code", code,
		"message", message,
	)

	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// handleError переводит ошибку сервиса в HTTP ответ.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.sendError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrValidation):
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		h.sendError(c, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-Id must reference an existing user")
	default:
		slog.Error("Unhandled service error", "path", c.Request.URL.Path, "error", err)
		h.sendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (h *Handler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return false
	}
	return true
}

// actor текущий пользователь запроса или nil для анонимного.
func actor(c *gin.Context) *domain.User {
	user, _ := middleware.ActorFrom(c)
	return user
}

// GetStatistics обрабатывает GET /stats.
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// SetupRouter настраивает маршруты для Gin роутера.
func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.requestTimeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stats
	r.GET("/stats", h.GetStatistics)

	api := r.Group("/api")
	api.Use(middleware.CurrentUser(h.service))

	// Reviews
	reviews := api.Group("/reviews")
	reviews.GET("", h.ListReviews)
	reviews.GET("/mine", h.ListMyReviews)
	reviews.GET("/:id", h.GetReview)
	reviews.GET("/:id/share", h.ShareReview)
	reviews.POST("", h.CreateReview)
	reviews.PUT("/:id", h.UpdateReview)
	reviews.PUT("/:id/stages/:stageId/assignments/:reviewerId", h.ChangeAssignmentStatus)
	reviews.POST("/:id/stages/:stageId/comments", h.AddComment)

	admin := middleware.AdminAuth(h.adminToken)

	// Users
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	api.POST("/users", admin, h.CreateUser)
	api.PUT("/users/:id", admin, h.UpdateUser)
	api.DELETE("/users/:id", admin, h.DeleteUser)

	// Stage templates
	api.GET("/stage-templates", h.ListTemplates)
	api.GET("/stage-templates/:id", h.GetTemplate)
	api.POST("/stage-templates", admin, h.CreateTemplate)
	api.PUT("/stage-templates/:id", admin, h.UpdateTemplate)
	api.DELETE("/stage-templates/:id", admin, h.DeleteTemplate)
	api.PUT("/stage-templates/:id/default", admin, h.SetDefaultTemplate)

	// Settings
	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", admin, h.UpdateSettings)

	return r
}
