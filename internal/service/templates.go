package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/T1mof/review-tracker/internal/domain"
)

func (s *ReviewerService) ListTemplates(ctx context.Context) ([]domain.StageTemplate, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		slog.Error("Failed to list templates", "error", err)
		return nil, err
	}
	return templates, nil
}

func (s *ReviewerService) GetTemplate(ctx context.Context, templateID string) (*domain.StageTemplate, error) {
	template, err := s.repo.GetTemplate(ctx, templateID)
	if err != nil {
		slog.Error("Failed to get template", "template_id", templateID, "error", err)
		return nil, err
	}
	return template, nil
}

func (s *ReviewerService) CreateTemplate(ctx context.Context, in *domain.TemplateInput) (*domain.StageTemplate, error) {
	if err := s.validator.ValidateTemplateInput(in); err != nil {
		slog.Warn("Template validation failed", "name", in.Name, "error", err)
		return nil, err
	}

	template := &domain.StageTemplate{
		ID:        s.newID(),
		Name:      in.Name,
		Stages:    in.Stages,
		IsDefault: in.IsDefault,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		if template.IsDefault {
			if err := s.repo.ClearDefaultTemplates(ctx, template.ID); err != nil {
				return err
			}
		}
		return s.repo.InsertTemplate(ctx, template)
	})
	if err != nil {
		slog.Error("Failed to create template", "name", in.Name, "error", err)
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	return s.repo.GetTemplate(ctx, template.ID)
}

// UpdateTemplate заменяет имя, флаг и список стадий.
func (s *ReviewerService) UpdateTemplate(ctx context.Context, templateID string, in *domain.TemplateInput) (*domain.StageTemplate, error) {
	if err := s.validator.ValidateTemplateInput(in); err != nil {
		slog.Warn("Template validation failed", "template_id", templateID, "error", err)
		return nil, err
	}

	template := &domain.StageTemplate{
		ID:        templateID,
		Name:      in.Name,
		Stages:    in.Stages,
		IsDefault: in.IsDefault,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		if template.IsDefault {
			if err := s.repo.ClearDefaultTemplates(ctx, templateID); err != nil {
				return err
			}
		}
		return s.repo.UpdateTemplate(ctx, template)
	})
	if err != nil {
		slog.Error("Failed to update template", "template_id", templateID, "error", err)
		return nil, fmt.Errorf("failed to update template: %w", err)
	}

	slog.Info("Template updated", "template_id", templateID, "is_default", template.IsDefault)
	return s.repo.GetTemplate(ctx, templateID)
}

func (s *ReviewerService) DeleteTemplate(ctx context.Context, templateID string) error {
	if err := s.repo.DeleteTemplate(ctx, templateID); err != nil {
		slog.Error("Failed to delete template", "template_id", templateID, "error", err)
		return err
	}
	return nil
}

// SetDefaultTemplate делает шаблон единственным шаблоном по умолчанию.
func (s *ReviewerService) SetDefaultTemplate(ctx context.Context, templateID string) (*domain.StageTemplate, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.ClearDefaultTemplates(ctx, templateID); err != nil {
			return err
		}
		return s.repo.SetTemplateDefault(ctx, templateID)
	})
	if err != nil {
		slog.Error("Failed to set default template", "template_id", templateID, "error", err)
		return nil, fmt.Errorf("failed to set default template: %w", err)
	}

	return s.repo.GetTemplate(ctx, templateID)
}
