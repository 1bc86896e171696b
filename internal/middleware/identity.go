package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/T1mof/review-tracker/internal/domain"
)

const (
	UserIDHeader   = "X-User-Id"
	currentUserKey = "currentUser"
)

// UserResolver находит пользователя по id из заголовка запроса.
type UserResolver interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// CurrentUser кладёт в контекст пользователя из X-User-Id.
// Отсутствующий заголовок, неизвестный id или ошибка поиска дают анонимный запрос.
func CurrentUser(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			c.Next()
			return
		}

		user, err := resolver.GetUser(c.Request.Context(), userID)
		switch {
		case err == nil:
			c.Set(currentUserKey, user)
		case errors.Is(err, domain.ErrNotFound):
			slog.Debug("Unknown current user", "user_id", userID)
		default:
			slog.Warn("Failed to resolve current user", "user_id", userID, "error", err)
		}

		c.Next()
	}
}

// ActorFrom возвращает текущего пользователя, если он был определён.
func ActorFrom(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
