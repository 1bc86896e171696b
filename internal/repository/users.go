package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/T1mof/review-tracker/internal/domain"
)

func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := sqlx.SelectContext(ctx, r.ext(ctx), &users, `
		SELECT id, name, avatar_url
		FROM users
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *Repository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := sqlx.GetContext(ctx, r.ext(ctx), &user, `
		SELECT id, name, avatar_url
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// FindMissingUsers возвращает id из списка, для которых нет строки в users.
func (r *Repository) FindMissingUsers(ctx context.Context, userIDs []string) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var missing []string
	err := sqlx.SelectContext(ctx, r.ext(ctx), &missing, `
		SELECT wanted.id
		FROM unnest($1::text[]) AS wanted(id)
		LEFT JOIN users u ON u.id = wanted.id
		WHERE u.id IS NULL
	`, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to check users existence: %w", err)
	}
	return missing, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := r.ext(ctx).ExecContext(ctx, `
		INSERT INTO users (id, name, avatar_url)
		VALUES ($1, $2, $3)
	`, user.ID, user.Name, user.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	slog.Info("User created in DB", "user_id", user.ID)
	return nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *domain.User) error {
	res, err := r.ext(ctx).ExecContext(ctx, `
		UPDATE users
		SET name = $1, avatar_url = $2, updated_at = NOW()
		WHERE id = $3
	`, user.Name, user.AvatarURL, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return rowsAffected(res, domain.ErrUserNotFound)
}

// DeleteUser не трогает ссылки на пользователя в ревью: они становятся Unknown.
func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := rowsAffected(res, domain.ErrUserNotFound); err != nil {
		return err
	}

	slog.Info("User deleted", "user_id", userID)
	return nil
}
