package domain

import (
	"strings"
	"unicode/utf8"
)

const maxNameLength = 255

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Валидация статуса назначения.
func (v *Validator) ValidateStatus(status ReviewStatus) error {
	if !status.Valid() {
		return NewValidationError("invalid status: %q, must be one of pending, commented, answered, lgtm", status)
	}
	return nil
}

// Валидация ReviewInput. Пустой статус назначения допустим и означает pending.
func (v *Validator) ValidateReviewInput(in *ReviewInput) error {
	if err := v.validateName("title", in.Title); err != nil {
		return err
	}

	for i := range in.Stages {
		if err := v.validateStageInput(i, &in.Stages[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateStageInput(index int, stage *StageInput) error {
	if strings.TrimSpace(stage.Name) == "" {
		return NewValidationError("stages[%d].name cannot be empty", index)
	}
	if utf8.RuneCountInString(stage.Name) > maxNameLength {
		return NewValidationError("stages[%d].name too long (max %d characters)", index, maxNameLength)
	}
	if stage.ReviewerCount < 0 {
		return NewValidationError("stages[%d].reviewerCount cannot be negative", index)
	}

	seen := make(map[string]bool, len(stage.Assignments))
	for _, a := range stage.Assignments {
		if strings.TrimSpace(a.ReviewerID) == "" {
			return NewValidationError("stages[%d]: reviewerId cannot be empty", index)
		}
		if seen[a.ReviewerID] {
			return NewValidationError("stages[%d]: duplicate reviewer %s", index, a.ReviewerID)
		}
		seen[a.ReviewerID] = true

		if a.Status != "" {
			if err := v.ValidateStatus(a.Status); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Validator) ValidateCommentInput(in *CommentInput) error {
	if strings.TrimSpace(in.Content) == "" {
		return NewValidationError("content cannot be empty")
	}
	if in.LineNumber != nil && *in.LineNumber < 0 {
		return NewValidationError("lineNumber cannot be negative")
	}
	if in.ParentCommentID != nil && strings.TrimSpace(*in.ParentCommentID) == "" {
		return NewValidationError("parentCommentId cannot be blank")
	}
	return nil
}

func (v *Validator) ValidateTemplateInput(in *TemplateInput) error {
	if err := v.validateName("name", in.Name); err != nil {
		return err
	}

	for i, stage := range in.Stages {
		if strings.TrimSpace(stage.Name) == "" {
			return NewValidationError("stages[%d].name cannot be empty", i)
		}
		if utf8.RuneCountInString(stage.Name) > maxNameLength {
			return NewValidationError("stages[%d].name too long (max %d characters)", i, maxNameLength)
		}
		if stage.ReviewerCount < 0 {
			return NewValidationError("stages[%d].reviewerCount cannot be negative", i)
		}
		seen := make(map[string]bool, len(stage.ReviewerIDs))
		for _, id := range stage.ReviewerIDs {
			if strings.TrimSpace(id) == "" {
				return NewValidationError("stages[%d]: reviewerId cannot be empty", i)
			}
			if seen[id] {
				return NewValidationError("stages[%d]: duplicate reviewer %s", i, id)
			}
			seen[id] = true
		}
	}
	return nil
}

func (v *Validator) ValidateUserInput(in *UserInput) error {
	return v.validateName("name", in.Name)
}

func (v *Validator) ValidateSettings(s *GlobalSettings) error {
	if strings.TrimSpace(s.ServiceDomain) == "" {
		return NewValidationError("serviceDomain cannot be empty")
	}
	if s.DefaultReviewerCount < 1 {
		return NewValidationError("defaultReviewerCount must be at least 1")
	}
	return nil
}

func (v *Validator) validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError("%s cannot be empty", field)
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return NewValidationError("%s too long (max %d characters)", field, maxNameLength)
	}
	return nil
}
