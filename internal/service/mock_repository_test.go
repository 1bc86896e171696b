package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/T1mof/review-tracker/internal/domain"
)

// ========================================
// Mock Repository
// ========================================

type MockRepository struct {
	mock.Mock
}

// WithTx выполняет fn без транзакции и возвращает её ошибку как есть.
func (m *MockRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// UserRepository methods.
func (m *MockRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) FindMissingUsers(ctx context.Context, userIDs []string) ([]string, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// ReviewRepository methods.
func (m *MockRepository) GetReview(ctx context.Context, reviewID string) (*domain.ReviewRequest, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewRequest), args.Error(1)
}

func (m *MockRepository) ListReviews(ctx context.Context) ([]domain.ReviewRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewRequest), args.Error(1)
}

func (m *MockRepository) InsertReview(ctx context.Context, review *domain.ReviewRequest) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockRepository) UpdateReviewFields(ctx context.Context, reviewID, title, url string) error {
	args := m.Called(ctx, reviewID, title, url)
	return args.Error(0)
}

func (m *MockRepository) DeleteReviewStages(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockRepository) InsertStage(ctx context.Context, stage *domain.ReviewStage) error {
	args := m.Called(ctx, stage)
	return args.Error(0)
}

func (m *MockRepository) GetStage(ctx context.Context, reviewID, stageID string) (*domain.ReviewStage, error) {
	args := m.Called(ctx, reviewID, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewStage), args.Error(1)
}

func (m *MockRepository) GetAssignment(ctx context.Context, stageID, reviewerID string) (*domain.ReviewAssignment, error) {
	args := m.Called(ctx, stageID, reviewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewAssignment), args.Error(1)
}

func (m *MockRepository) UpdateAssignmentStatus(ctx context.Context, stageID, reviewerID string, status domain.ReviewStatus) error {
	args := m.Called(ctx, stageID, reviewerID, status)
	return args.Error(0)
}

func (m *MockRepository) CommentExists(ctx context.Context, stageID, commentID string) (bool, error) {
	args := m.Called(ctx, stageID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) InsertComment(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockRepository) InsertActivityLog(ctx context.Context, log *domain.ActivityLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// TemplateRepository methods.
func (m *MockRepository) ListTemplates(ctx context.Context) ([]domain.StageTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StageTemplate), args.Error(1)
}

func (m *MockRepository) GetTemplate(ctx context.Context, templateID string) (*domain.StageTemplate, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StageTemplate), args.Error(1)
}

func (m *MockRepository) InsertTemplate(ctx context.Context, template *domain.StageTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockRepository) UpdateTemplate(ctx context.Context, template *domain.StageTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockRepository) DeleteTemplate(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

func (m *MockRepository) ClearDefaultTemplates(ctx context.Context, exceptID string) error {
	args := m.Called(ctx, exceptID)
	return args.Error(0)
}

func (m *MockRepository) SetTemplateDefault(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

// SettingsRepository methods.
func (m *MockRepository) GetSettings(ctx context.Context) (*domain.GlobalSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GlobalSettings), args.Error(1)
}

func (m *MockRepository) UpsertSettings(ctx context.Context, settings *domain.GlobalSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// StatsRepository methods.
func (m *MockRepository) GetAssignmentStatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusCount), args.Error(1)
}

func (m *MockRepository) GetReviewerWorkload(ctx context.Context) ([]domain.ReviewerWorkload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewerWorkload), args.Error(1)
}

func (m *MockRepository) CountReviews(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CountTemplates(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
