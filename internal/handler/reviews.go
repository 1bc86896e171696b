package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/T1mof/review-tracker/internal/domain"
)

// ListReviews обрабатывает GET /api/reviews?reviewerId=&authorId=&sort=
func (h *Handler) ListReviews(c *gin.Context) {
	filter := domain.ReviewFilter{
		ReviewerID: c.Query("reviewerId"),
		AuthorID:   c.Query("authorId"),
		Sort:       c.DefaultQuery("sort", domain.SortByCreated),
	}
	if filter.Sort != domain.SortByCreated && filter.Sort != domain.SortByDue {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "sort must be createdAt or dueDate")
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// ListMyReviews обрабатывает GET /api/reviews/mine.
// Пользователь берётся из X-User-Id, иначе из ?userId=.
func (h *Handler) ListMyReviews(c *gin.Context) {
	userID := c.Query("userId")
	if user := actor(c); user != nil {
		userID = user.ID
	}
	if userID == "" {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "userId is required")
		return
	}

	reviews, err := h.service.ListMyReviews(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// GetReview обрабатывает GET /api/reviews/:id.
func (h *Handler) GetReview(c *gin.Context) {
	review, err := h.service.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// ShareReview обрабатывает GET /api/reviews/:id/share.
func (h *Handler) ShareReview(c *gin.Context) {
	link, err := h.service.ShareReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// CreateReview обрабатывает POST /api/reviews.
func (h *Handler) CreateReview(c *gin.Context) {
	var req domain.ReviewInput
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), actor(c), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// UpdateReview обрабатывает PUT /api/reviews/:id.
func (h *Handler) UpdateReview(c *gin.Context) {
	var req domain.ReviewInput
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// ChangeAssignmentStatus обрабатывает PUT /api/reviews/:id/stages/:stageId/assignments/:reviewerId.
func (h *Handler) ChangeAssignmentStatus(c *gin.Context) {
	var req struct {
		Status domain.ReviewStatus `json:"status" binding:"required"`
	}
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.service.ChangeAssignmentStatus(
		c.Request.Context(),
		actor(c),
		c.Param("id"),
		c.Param("stageId"),
		c.Param("reviewerId"),
		req.Status,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// AddComment обрабатывает POST /api/reviews/:id/stages/:stageId/comments.
func (h *Handler) AddComment(c *gin.Context) {
	var req domain.CommentInput
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.service.AddComment(c.Request.Context(), actor(c), c.Param("id"), c.Param("stageId"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
