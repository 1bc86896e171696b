package service

import (
	"context"
	"log/slog"

	"github.com/T1mof/review-tracker/internal/domain"
)

// GetSettings возвращает сохранённые настройки или значения по умолчанию.
func (s *ReviewerService) GetSettings(ctx context.Context) (*domain.GlobalSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		if isNotFound(err) {
			defaults := domain.DefaultGlobalSettings()
			return &defaults, nil
		}
		slog.Error("Failed to get settings", "error", err)
		return nil, err
	}
	return settings, nil
}

func (s *ReviewerService) UpdateSettings(ctx context.Context, settings *domain.GlobalSettings) (*domain.GlobalSettings, error) {
	if err := s.validator.ValidateSettings(settings); err != nil {
		slog.Warn("Settings validation failed", "error", err)
		return nil, err
	}

	if err := s.repo.UpsertSettings(ctx, settings); err != nil {
		slog.Error("Failed to update settings", "error", err)
		return nil, err
	}

	slog.Info("Settings updated", "service_domain", settings.ServiceDomain)
	return settings, nil
}
