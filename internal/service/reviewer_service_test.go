package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/T1mof/review-tracker/internal/domain"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestService возвращает сервис с детерминированными временем и id.
func newTestService(repo *MockRepository) *ReviewerService {
	svc := NewReviewerService(repo)
	svc.now = func() time.Time { return fixedNow }
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc
}

var (
	alice = domain.User{ID: "alice", Name: "Alice", AvatarURL: "https://a/alice"}
	bob   = domain.User{ID: "bob", Name: "Bob", AvatarURL: "https://a/bob"}
)

func reviewInput() *domain.ReviewInput {
	return &domain.ReviewInput{
		Title: "Add payments API",
		URL:   "https://git.example.com/pr/1",
		Stages: []domain.StageInput{
			{
				Name:          "Backend",
				RepositoryURL: "https://git.example.com/api",
				ReviewerCount: 1,
				Assignments:   []domain.AssignmentInput{{ReviewerID: "bob"}},
			},
		},
	}
}

// ========================================
// CreateReview
// ========================================

func TestCreateReview_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	created := &domain.ReviewRequest{ID: "id-1", Title: "Add payments API"}

	mockRepo.On("FindMissingUsers", mock.Anything, []string{"bob"}).Return([]string{}, nil)
	mockRepo.On("InsertReview", mock.Anything, mock.MatchedBy(func(r *domain.ReviewRequest) bool {
		return r.ID == "id-1" && r.Author.ID() == "alice" && r.CreatedAt.Equal(fixedNow)
	})).Return(nil)
	mockRepo.On("InsertStage", mock.Anything, mock.MatchedBy(func(s *domain.ReviewStage) bool {
		return s.ReviewID == "id-1" &&
			s.Order == 0 &&
			s.Name == "Backend" &&
			len(s.Assignments) == 1 &&
			s.Assignments[0].Reviewer.ID() == "bob" &&
			s.Assignments[0].Status == domain.StatusPending
	})).Return(nil)
	mockRepo.On("InsertActivityLog", mock.Anything, mock.MatchedBy(func(l *domain.ActivityLog) bool {
		return l.Type == domain.ActivityCreate &&
			l.ReviewID == "id-1" &&
			l.User.ID() == "alice" &&
			l.Details == `Created review request "Add payments API".`
	})).Return(nil)
	mockRepo.On("GetReview", mock.Anything, "id-1").Return(created, nil)

	review, err := service.CreateReview(context.Background(), &alice, reviewInput())

	require.NoError(t, err)
	assert.Equal(t, created, review)
	mockRepo.AssertExpectations(t)
}

func TestCreateReview_Anonymous(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	review, err := service.CreateReview(context.Background(), nil, reviewInput())

	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	mockRepo.AssertNotCalled(t, "InsertReview", mock.Anything, mock.Anything)
}

func TestCreateReview_EmptyTitle(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	in := reviewInput()
	in.Title = ""

	_, err := service.CreateReview(context.Background(), &alice, in)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "title cannot be empty")
	mockRepo.AssertNotCalled(t, "FindMissingUsers", mock.Anything, mock.Anything)
}

func TestCreateReview_UnknownReviewer(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("FindMissingUsers", mock.Anything, []string{"bob"}).Return([]string{"bob"}, nil)

	_, err := service.CreateReview(context.Background(), &alice, reviewInput())

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "unknown reviewer: bob")
	mockRepo.AssertNotCalled(t, "InsertReview", mock.Anything, mock.Anything)
}

func TestCreateReview_StageInsertFails(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("FindMissingUsers", mock.Anything, mock.Anything).Return([]string{}, nil)
	mockRepo.On("InsertReview", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("InsertStage", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := service.CreateReview(context.Background(), &alice, reviewInput())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create review")
	mockRepo.AssertNotCalled(t, "InsertActivityLog", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "GetReview", mock.Anything, mock.Anything)
}

// ========================================
// UpdateReview
// ========================================

func TestUpdateReview_ReplacesStages(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	in := reviewInput()
	in.Stages = append(in.Stages, domain.StageInput{Name: "Frontend"})
	updated := &domain.ReviewRequest{ID: "r1"}

	mockRepo.On("FindMissingUsers", mock.Anything, []string{"bob"}).Return([]string{}, nil)
	mockRepo.On("UpdateReviewFields", mock.Anything, "r1", in.Title, in.URL).Return(nil)
	mockRepo.On("DeleteReviewStages", mock.Anything, "r1").Return(nil)
	mockRepo.On("InsertStage", mock.Anything, mock.MatchedBy(func(s *domain.ReviewStage) bool {
		return s.ReviewID == "r1" && s.Order == 0 && s.Name == "Backend"
	})).Return(nil).Once()
	mockRepo.On("InsertStage", mock.Anything, mock.MatchedBy(func(s *domain.ReviewStage) bool {
		return s.ReviewID == "r1" && s.Order == 1 && s.Name == "Frontend" && len(s.Assignments) == 0
	})).Return(nil).Once()
	mockRepo.On("GetReview", mock.Anything, "r1").Return(updated, nil)

	review, err := service.UpdateReview(context.Background(), "r1", in)

	require.NoError(t, err)
	assert.Equal(t, updated, review)
	mockRepo.AssertExpectations(t)
}

func TestUpdateReview_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("FindMissingUsers", mock.Anything, mock.Anything).Return([]string{}, nil)
	mockRepo.On("UpdateReviewFields", mock.Anything, "missing", mock.Anything, mock.Anything).Return(domain.ErrReviewNotFound)

	_, err := service.UpdateReview(context.Background(), "missing", reviewInput())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockRepo.AssertNotCalled(t, "DeleteReviewStages", mock.Anything, mock.Anything)
}

// ========================================
// ChangeAssignmentStatus
// ========================================

func TestChangeAssignmentStatus_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	stage := &domain.ReviewStage{ID: "s1", ReviewID: "r1", Name: "Backend"}
	assignment := &domain.ReviewAssignment{StageID: "s1", Reviewer: domain.KnownUser(bob), Status: domain.StatusPending}
	updated := &domain.ReviewRequest{ID: "r1"}

	mockRepo.On("GetStage", mock.Anything, "r1", "s1").Return(stage, nil)
	mockRepo.On("GetAssignment", mock.Anything, "s1", "bob").Return(assignment, nil)
	mockRepo.On("UpdateAssignmentStatus", mock.Anything, "s1", "bob", domain.StatusLGTM).Return(nil)
	mockRepo.On("InsertActivityLog", mock.Anything, mock.MatchedBy(func(l *domain.ActivityLog) bool {
		return l.Type == domain.ActivityStatusChange &&
			l.User.ID() == "alice" &&
			l.Details == `Bob changed status from "pending" to "lgtm" (stage: Backend).`
	})).Return(nil)
	mockRepo.On("GetReview", mock.Anything, "r1").Return(updated, nil)

	review, err := service.ChangeAssignmentStatus(context.Background(), &alice, "r1", "s1", "bob", domain.StatusLGTM)

	require.NoError(t, err)
	assert.Equal(t, updated, review)
	mockRepo.AssertExpectations(t)
}

func TestChangeAssignmentStatus_DeletedReviewerNamedByID(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("GetStage", mock.Anything, "r1", "s1").Return(&domain.ReviewStage{ID: "s1", Name: "Backend"}, nil)
	mockRepo.On("GetAssignment", mock.Anything, "s1", "ghost").Return(&domain.ReviewAssignment{
		Reviewer: domain.UnknownUser("ghost"),
		Status:   domain.StatusCommented,
	}, nil)
	mockRepo.On("UpdateAssignmentStatus", mock.Anything, "s1", "ghost", domain.StatusAnswered).Return(nil)
	mockRepo.On("InsertActivityLog", mock.Anything, mock.MatchedBy(func(l *domain.ActivityLog) bool {
		return l.Details == `ghost changed status from "commented" to "answered" (stage: Backend).`
	})).Return(nil)
	mockRepo.On("GetReview", mock.Anything, "r1").Return(&domain.ReviewRequest{ID: "r1"}, nil)

	_, err := service.ChangeAssignmentStatus(context.Background(), &alice, "r1", "s1", "ghost", domain.StatusAnswered)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestChangeAssignmentStatus_InvalidStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.ChangeAssignmentStatus(context.Background(), &alice, "r1", "s1", "bob", "approved")

	assert.ErrorIs(t, err, domain.ErrValidation)
	mockRepo.AssertNotCalled(t, "GetStage", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeAssignmentStatus_StageNotInReview(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("GetStage", mock.Anything, "r1", "other").Return(nil, domain.ErrStageNotFound)

	_, err := service.ChangeAssignmentStatus(context.Background(), &alice, "r1", "other", "bob", domain.StatusLGTM)

	assert.ErrorIs(t, err, domain.ErrStageNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangeAssignmentStatus_AssignmentNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("GetStage", mock.Anything, "r1", "s1").Return(&domain.ReviewStage{ID: "s1"}, nil)
	mockRepo.On("GetAssignment", mock.Anything, "s1", "carol").Return(nil, domain.ErrAssignmentNotFound)

	_, err := service.ChangeAssignmentStatus(context.Background(), &alice, "r1", "s1", "carol", domain.StatusLGTM)

	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
	mockRepo.AssertNotCalled(t, "UpdateAssignmentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// ========================================
// AddComment
// ========================================

func TestAddComment_Reply(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	parent := "c1"
	line := 42
	in := &domain.CommentInput{Content: "Agreed, fixing", LineNumber: &line, ParentCommentID: &parent}

	mockRepo.On("GetStage", mock.Anything, "r1", "s1").Return(&domain.ReviewStage{ID: "s1", Name: "Backend"}, nil)
	mockRepo.On("CommentExists", mock.Anything, "s1", "c1").Return(true, nil)
	mockRepo.On("InsertComment", mock.Anything, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.StageID == "s1" &&
			c.Author.ID() == "alice" &&
			*c.ParentCommentID == "c1" &&
			*c.LineNumber == 42 &&
			c.CreatedAt.Equal(fixedNow)
	})).Return(nil)
	mockRepo.On("InsertActivityLog", mock.Anything, mock.MatchedBy(func(l *domain.ActivityLog) bool {
		return l.Type == domain.ActivityComment && l.Details == `Added a comment (stage: Backend): "Agreed, fixing"`
	})).Return(nil)
	mockRepo.On("GetReview", mock.Anything, "r1").Return(&domain.ReviewRequest{ID: "r1"}, nil)

	_, err := service.AddComment(context.Background(), &alice, "r1", "s1", in)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAddComment_ParentMissing(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	parent := "gone"

	mockRepo.On("GetStage", mock.Anything, "r1", "s1").Return(&domain.ReviewStage{ID: "s1"}, nil)
	mockRepo.On("CommentExists", mock.Anything, "s1", "gone").Return(false, nil)

	_, err := service.AddComment(context.Background(), &alice, "r1", "s1", &domain.CommentInput{Content: "hi", ParentCommentID: &parent})

	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	mockRepo.AssertNotCalled(t, "InsertComment", mock.Anything, mock.Anything)
}

func TestAddComment_EmptyContent(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.AddComment(context.Background(), &alice, "r1", "s1", &domain.CommentInput{Content: "  "})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddComment_Anonymous(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.AddComment(context.Background(), nil, "r1", "s1", &domain.CommentInput{Content: "hi"})

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// ========================================
// Read methods
// ========================================

func TestListReviews_FilterAndSort(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	soon := fixedNow.Add(24 * time.Hour)
	later := fixedNow.Add(72 * time.Hour)
	withBob := []domain.ReviewStage{{Assignments: []domain.ReviewAssignment{{Reviewer: domain.KnownUser(bob)}}}}

	reviews := []domain.ReviewRequest{
		{ID: "r1", Author: domain.KnownUser(alice), CreatedAt: fixedNow, Stages: append(withBob, domain.ReviewStage{DueDate: &later})},
		{ID: "r2", Author: domain.KnownUser(alice), CreatedAt: fixedNow.Add(-time.Hour), Stages: append(withBob, domain.ReviewStage{DueDate: &soon})},
		{ID: "r3", Author: domain.KnownUser(bob), CreatedAt: fixedNow},
	}
	mockRepo.On("ListReviews", mock.Anything).Return(reviews, nil)

	result, err := service.ListReviews(context.Background(), domain.ReviewFilter{
		ReviewerID: "bob",
		AuthorID:   "alice",
		Sort:       domain.SortByDue,
	})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "r2", result[0].ID)
	assert.Equal(t, "r1", result[1].ID)
}

func TestListMyReviews(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("ListReviews", mock.Anything).Return([]domain.ReviewRequest{
		{ID: "r1", Stages: []domain.ReviewStage{{ID: "s1", Assignments: []domain.ReviewAssignment{{Reviewer: domain.KnownUser(bob), Status: domain.StatusLGTM}}}}},
		{ID: "r2", Stages: []domain.ReviewStage{{ID: "s2", Assignments: []domain.ReviewAssignment{{Reviewer: domain.KnownUser(alice), Status: domain.StatusPending}}}}},
	}, nil)

	mine, err := service.ListMyReviews(context.Background(), "bob")

	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "r1", mine[0].Review.ID)
	assert.Equal(t, domain.StatusLGTM, mine[0].EffectiveStatus)
}

func TestGetReview_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("GetReview", mock.Anything, "missing").Return(nil, domain.ErrReviewNotFound)

	_, err := service.GetReview(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareReview_UsesDefaultSettingsWhenUnset(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	mockRepo.On("GetReview", mock.Anything, "r1").Return(&domain.ReviewRequest{
		ID:     "r1",
		Title:  "Add payments",
		Author: domain.KnownUser(alice),
	}, nil)
	mockRepo.On("GetSettings", mock.Anything).Return(nil, domain.ErrSettingsNotFound)

	link, err := service.ShareReview(context.Background(), "r1")

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5174/reviews/r1", link.URL)
	assert.Equal(t, "Review requested: Add payments by Alice\nhttp://localhost:5174/reviews/r1", link.Message)
}
