package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/T1mof/review-tracker/internal/domain"
)

const defaultAvatarURL = "https://i.pravatar.cc/150?u="

func (s *ReviewerService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		slog.Error("Failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *ReviewerService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			slog.Error("Failed to get user", "user_id", userID, "error", err)
		}
		return nil, err
	}
	return user, nil
}

func (s *ReviewerService) CreateUser(ctx context.Context, in *domain.UserInput) (*domain.User, error) {
	if err := s.validator.ValidateUserInput(in); err != nil {
		slog.Warn("User validation failed", "name", in.Name, "error", err)
		return nil, err
	}

	user := &domain.User{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		AvatarURL: strings.TrimSpace(in.AvatarURL),
	}
	if user.AvatarURL == "" {
		user.AvatarURL = defaultAvatarURL + user.ID
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		slog.Error("Failed to create user", "name", user.Name, "error", err)
		return nil, err
	}

	slog.Info("User created", "user_id", user.ID)
	return user, nil
}

// UpdateUser частичное обновление: пустые поля сохраняют прежние значения.
func (s *ReviewerService) UpdateUser(ctx context.Context, userID string, in *domain.UserInput) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		slog.Error("Failed to get user for update", "user_id", userID, "error", err)
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		if err := s.validator.ValidateUserInput(&domain.UserInput{Name: name}); err != nil {
			return nil, err
		}
		user.Name = name
	}
	if avatar := strings.TrimSpace(in.AvatarURL); avatar != "" {
		user.AvatarURL = avatar
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		slog.Error("Failed to update user", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("User updated", "user_id", userID)
	return user, nil
}

// DeleteUser не трогает ревью и комментарии: ссылки на пользователя
// остаются и отображаются как Unknown User.
func (s *ReviewerService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		slog.Error("Failed to delete user", "user_id", userID, "error", err)
		return err
	}

	slog.Info("User deleted", "user_id", userID)
	return nil
}
