package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/T1mof/review-tracker/internal/domain"
)

// settingsID единственная строка таблицы global_settings.
const settingsID = 1

func (r *Repository) GetSettings(ctx context.Context) (*domain.GlobalSettings, error) {
	var settings domain.GlobalSettings
	err := sqlx.GetContext(ctx, r.ext(ctx), &settings, `
		SELECT service_domain, default_reviewer_count, slack_message_template
		FROM global_settings
		WHERE id = $1
	`, settingsID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

func (r *Repository) UpsertSettings(ctx context.Context, settings *domain.GlobalSettings) error {
	_, err := r.ext(ctx).ExecContext(ctx, `
		INSERT INTO global_settings (id, service_domain, default_reviewer_count, slack_message_template)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			service_domain = EXCLUDED.service_domain,
			default_reviewer_count = EXCLUDED.default_reviewer_count,
			slack_message_template = EXCLUDED.slack_message_template,
			updated_at = NOW()
	`, settingsID, settings.ServiceDomain, settings.DefaultReviewerCount, settings.SlackMessageTemplate)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	slog.Info("Global settings saved", "service_domain", settings.ServiceDomain)
	return nil
}
