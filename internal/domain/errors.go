package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("current user is not resolved")
)

var (
	ErrReviewNotFound     = fmt.Errorf("review %w", ErrNotFound)
	ErrStageNotFound      = fmt.Errorf("stage %w", ErrNotFound)
	ErrAssignmentNotFound = fmt.Errorf("assignment %w", ErrNotFound)
	ErrCommentNotFound    = fmt.Errorf("comment %w", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrTemplateNotFound   = fmt.Errorf("template %w", ErrNotFound)
	ErrSettingsNotFound   = fmt.Errorf("settings %w", ErrNotFound)
)

// NewValidationError оборачивает ErrValidation, сохраняя исходное сообщение.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
