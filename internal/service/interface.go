package service

import (
	"context"

	"github.com/T1mof/review-tracker/internal/domain"
)

// ServiceInterface определяет методы бизнес-логики.
type ServiceInterface interface {
	ListReviews(ctx context.Context, filter domain.ReviewFilter) ([]domain.ReviewRequest, error)
	GetReview(ctx context.Context, reviewID string) (*domain.ReviewRequest, error)
	ListMyReviews(ctx context.Context, userID string) ([]domain.MyReview, error)
	ShareReview(ctx context.Context, reviewID string) (*domain.ShareLink, error)
	CreateReview(ctx context.Context, actor *domain.User, in *domain.ReviewInput) (*domain.ReviewRequest, error)
	UpdateReview(ctx context.Context, reviewID string, in *domain.ReviewInput) (*domain.ReviewRequest, error)
	ChangeAssignmentStatus(ctx context.Context, actor *domain.User, reviewID, stageID, reviewerID string, status domain.ReviewStatus) (*domain.ReviewRequest, error)
	AddComment(ctx context.Context, actor *domain.User, reviewID, stageID string, in *domain.CommentInput) (*domain.ReviewRequest, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	CreateUser(ctx context.Context, in *domain.UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, in *domain.UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error

	ListTemplates(ctx context.Context) ([]domain.StageTemplate, error)
	GetTemplate(ctx context.Context, templateID string) (*domain.StageTemplate, error)
	CreateTemplate(ctx context.Context, in *domain.TemplateInput) (*domain.StageTemplate, error)
	UpdateTemplate(ctx context.Context, templateID string, in *domain.TemplateInput) (*domain.StageTemplate, error)
	DeleteTemplate(ctx context.Context, templateID string) error
	SetDefaultTemplate(ctx context.Context, templateID string) (*domain.StageTemplate, error)

	GetSettings(ctx context.Context) (*domain.GlobalSettings, error)
	UpdateSettings(ctx context.Context, settings *domain.GlobalSettings) (*domain.GlobalSettings, error)

	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}

// Compile-time проверка.
var _ ServiceInterface = (*ReviewerService)(nil)
