package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/T1mof/review-tracker/internal/domain"
)

func (r *Repository) ListTemplates(ctx context.Context) ([]domain.StageTemplate, error) {
	q := r.ext(ctx)

	var rows []templateRow
	err := sqlx.SelectContext(ctx, q, &rows, `
		SELECT id, name, is_default
		FROM stage_templates
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	var stageRows []templateStageRow
	err = sqlx.SelectContext(ctx, q, &stageRows, `
		SELECT stage_template_id, name, reviewer_ids, reviewer_count
		FROM template_stages
		ORDER BY stage_template_id, stage_order
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list template stages: %w", err)
	}

	stagesByTemplate := make(map[string][]domain.TemplateStage)
	for _, s := range stageRows {
		stagesByTemplate[s.TemplateID] = append(stagesByTemplate[s.TemplateID], s.toDomain())
	}

	templates := make([]domain.StageTemplate, 0, len(rows))
	for _, row := range rows {
		stages := stagesByTemplate[row.ID]
		if stages == nil {
			stages = []domain.TemplateStage{}
		}
		templates = append(templates, domain.StageTemplate{
			ID:        row.ID,
			Name:      row.Name,
			IsDefault: row.IsDefault,
			Stages:    stages,
		})
	}
	return templates, nil
}

func (r *Repository) GetTemplate(ctx context.Context, templateID string) (*domain.StageTemplate, error) {
	q := r.ext(ctx)

	var row templateRow
	err := sqlx.GetContext(ctx, q, &row, `
		SELECT id, name, is_default
		FROM stage_templates
		WHERE id = $1
	`, templateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	var stageRows []templateStageRow
	err = sqlx.SelectContext(ctx, q, &stageRows, `
		SELECT stage_template_id, name, reviewer_ids, reviewer_count
		FROM template_stages
		WHERE stage_template_id = $1
		ORDER BY stage_order
	`, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template stages: %w", err)
	}

	template := &domain.StageTemplate{
		ID:        row.ID,
		Name:      row.Name,
		IsDefault: row.IsDefault,
		Stages:    make([]domain.TemplateStage, 0, len(stageRows)),
	}
	for _, s := range stageRows {
		template.Stages = append(template.Stages, s.toDomain())
	}
	return template, nil
}

func (r *Repository) InsertTemplate(ctx context.Context, template *domain.StageTemplate) error {
	_, err := r.ext(ctx).ExecContext(ctx, `
		INSERT INTO stage_templates (id, name, is_default)
		VALUES ($1, $2, $3)
	`, template.ID, template.Name, template.IsDefault)
	if err != nil {
		return fmt.Errorf("failed to insert template: %w", err)
	}

	if err := r.insertTemplateStages(ctx, template.ID, template.Stages); err != nil {
		return err
	}

	slog.Info("Template inserted", "template_id", template.ID, "stages_count", len(template.Stages))
	return nil
}

// UpdateTemplate обновляет имя и флаг и полностью заменяет стадии шаблона.
func (r *Repository) UpdateTemplate(ctx context.Context, template *domain.StageTemplate) error {
	q := r.ext(ctx)

	res, err := q.ExecContext(ctx, `
		UPDATE stage_templates
		SET name = $1, is_default = $2, updated_at = NOW()
		WHERE id = $3
	`, template.Name, template.IsDefault, template.ID)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if err := rowsAffected(res, domain.ErrTemplateNotFound); err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, `
		DELETE FROM template_stages WHERE stage_template_id = $1
	`, template.ID); err != nil {
		return fmt.Errorf("failed to delete template stages: %w", err)
	}

	return r.insertTemplateStages(ctx, template.ID, template.Stages)
}

func (r *Repository) insertTemplateStages(ctx context.Context, templateID string, stages []domain.TemplateStage) error {
	for i, s := range stages {
		reviewerIDs := s.ReviewerIDs
		if reviewerIDs == nil {
			reviewerIDs = []string{}
		}
		_, err := r.ext(ctx).ExecContext(ctx, `
			INSERT INTO template_stages (id, stage_template_id, name, stage_order, reviewer_ids, reviewer_count)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), templateID, s.Name, i, pq.Array(reviewerIDs), s.ReviewerCount)
		if err != nil {
			return fmt.Errorf("failed to insert template stage: %w", err)
		}
	}
	return nil
}

func (r *Repository) DeleteTemplate(ctx context.Context, templateID string) error {
	res, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM stage_templates WHERE id = $1`, templateID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if err := rowsAffected(res, domain.ErrTemplateNotFound); err != nil {
		return err
	}

	slog.Info("Template deleted", "template_id", templateID)
	return nil
}

// ClearDefaultTemplates снимает флаг по умолчанию со всех шаблонов, кроме exceptID.
func (r *Repository) ClearDefaultTemplates(ctx context.Context, exceptID string) error {
	_, err := r.ext(ctx).ExecContext(ctx, `
		UPDATE stage_templates
		SET is_default = FALSE, updated_at = NOW()
		WHERE is_default AND id <> $1
	`, exceptID)
	if err != nil {
		return fmt.Errorf("failed to clear default templates: %w", err)
	}
	return nil
}

func (r *Repository) SetTemplateDefault(ctx context.Context, templateID string) error {
	res, err := r.ext(ctx).ExecContext(ctx, `
		UPDATE stage_templates
		SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1
	`, templateID)
	if err != nil {
		return fmt.Errorf("failed to set default template: %w", err)
	}
	if err := rowsAffected(res, domain.ErrTemplateNotFound); err != nil {
		return err
	}

	slog.Info("Default template set", "template_id", templateID)
	return nil
}
