package repository

import (
	"context"

	"github.com/T1mof/review-tracker/internal/domain"
)

type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindMissingUsers(ctx context.Context, userIDs []string) ([]string, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, userID string) error
}

type ReviewRepository interface {
	GetReview(ctx context.Context, reviewID string) (*domain.ReviewRequest, error)
	ListReviews(ctx context.Context) ([]domain.ReviewRequest, error)
	InsertReview(ctx context.Context, review *domain.ReviewRequest) error
	UpdateReviewFields(ctx context.Context, reviewID, title, url string) error
	DeleteReviewStages(ctx context.Context, reviewID string) error
	InsertStage(ctx context.Context, stage *domain.ReviewStage) error
	GetStage(ctx context.Context, reviewID, stageID string) (*domain.ReviewStage, error)
	GetAssignment(ctx context.Context, stageID, reviewerID string) (*domain.ReviewAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, stageID, reviewerID string, status domain.ReviewStatus) error
	CommentExists(ctx context.Context, stageID, commentID string) (bool, error)
	InsertComment(ctx context.Context, comment *domain.Comment) error
	InsertActivityLog(ctx context.Context, log *domain.ActivityLog) error
}

type TemplateRepository interface {
	ListTemplates(ctx context.Context) ([]domain.StageTemplate, error)
	GetTemplate(ctx context.Context, templateID string) (*domain.StageTemplate, error)
	InsertTemplate(ctx context.Context, template *domain.StageTemplate) error
	UpdateTemplate(ctx context.Context, template *domain.StageTemplate) error
	DeleteTemplate(ctx context.Context, templateID string) error
	ClearDefaultTemplates(ctx context.Context, exceptID string) error
	SetTemplateDefault(ctx context.Context, templateID string) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.GlobalSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.GlobalSettings) error
}

type StatsRepository interface {
	GetAssignmentStatusCounts(ctx context.Context) ([]domain.StatusCount, error)
	GetReviewerWorkload(ctx context.Context) ([]domain.ReviewerWorkload, error)
	CountReviews(ctx context.Context) (int, error)
	CountUsers(ctx context.Context) (int, error)
	CountTemplates(ctx context.Context) (int, error)
}

// RepositoryInterface объединяет все интерфейсы.
type RepositoryInterface interface {
	TxManager
	UserRepository
	ReviewRepository
	TemplateRepository
	SettingsRepository
	StatsRepository
}
