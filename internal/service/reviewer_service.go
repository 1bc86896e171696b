package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/T1mof/review-tracker/internal/domain"
	"github.com/T1mof/review-tracker/internal/repository"
)

type ReviewerService struct {
	repo      repository.RepositoryInterface
	validator *domain.Validator
	now       func() time.Time
	newID     func() string
}

func NewReviewerService(repo repository.RepositoryInterface) *ReviewerService {
	return &ReviewerService{
		repo:      repo,
		validator: domain.NewValidator(),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// ========================================
// Review read methods
// ========================================

func (s *ReviewerService) ListReviews(ctx context.Context, filter domain.ReviewFilter) ([]domain.ReviewRequest, error) {
	reviews, err := s.repo.ListReviews(ctx)
	if err != nil {
		slog.Error("Failed to list reviews", "error", err)
		return nil, err
	}

	if filter.ReviewerID != "" {
		reviews = domain.FilterByReviewer(reviews, filter.ReviewerID)
	}
	if filter.AuthorID != "" {
		reviews = domain.FilterByAuthor(reviews, filter.AuthorID)
	}
	domain.SortReviews(reviews, filter.Sort)

	return reviews, nil
}

func (s *ReviewerService) GetReview(ctx context.Context, reviewID string) (*domain.ReviewRequest, error) {
	if reviewID == "" {
		return nil, domain.NewValidationError("review id cannot be empty")
	}

	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		slog.Error("Failed to get review", "review_id", reviewID, "error", err)
		return nil, err
	}
	return review, nil
}

// ListMyReviews ревью, где пользователь назначен ревьюером, в порядке приоритета.
func (s *ReviewerService) ListMyReviews(ctx context.Context, userID string) ([]domain.MyReview, error) {
	if userID == "" {
		return nil, domain.NewValidationError("user id cannot be empty")
	}

	reviews, err := s.repo.ListReviews(ctx)
	if err != nil {
		slog.Error("Failed to list reviews", "user_id", userID, "error", err)
		return nil, err
	}

	return domain.CollectMyReviews(reviews, userID), nil
}

func (s *ReviewerService) ShareReview(ctx context.Context, reviewID string) (*domain.ShareLink, error) {
	review, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	link := domain.ShareReview(*settings, review)
	return &link, nil
}

// ========================================
// Review write methods
// ========================================

func (s *ReviewerService) CreateReview(ctx context.Context, actor *domain.User, in *domain.ReviewInput) (*domain.ReviewRequest, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validateReviewInput(ctx, in); err != nil {
		return nil, err
	}

	review := &domain.ReviewRequest{
		ID:        s.newID(),
		Title:     in.Title,
		URL:       in.URL,
		Author:    domain.KnownUser(*actor),
		CreatedAt: s.now(),
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.InsertReview(ctx, review); err != nil {
			return err
		}
		if err := s.insertStages(ctx, review.ID, in.Stages); err != nil {
			return err
		}
		return s.repo.InsertActivityLog(ctx, &domain.ActivityLog{
			ID:        s.newID(),
			ReviewID:  review.ID,
			Type:      domain.ActivityCreate,
			User:      domain.KnownUser(*actor),
			Details:   domain.CreateDetails(review.Title),
			CreatedAt: review.CreatedAt,
		})
	})
	if err != nil {
		slog.Error("Failed to create review", "title", in.Title, "author_id", actor.ID, "error", err)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	slog.Info("Review created", "review_id", review.ID, "stages_count", len(in.Stages))
	return s.repo.GetReview(ctx, review.ID)
}

// UpdateReview заменяет ревью целиком: стадии, назначения и все комментарии
// удаляются и создаются заново из запроса. Журнал активности сохраняется.
func (s *ReviewerService) UpdateReview(ctx context.Context, reviewID string, in *domain.ReviewInput) (*domain.ReviewRequest, error) {
	if err := s.validateReviewInput(ctx, in); err != nil {
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateReviewFields(ctx, reviewID, in.Title, in.URL); err != nil {
			return err
		}
		if err := s.repo.DeleteReviewStages(ctx, reviewID); err != nil {
			return err
		}
		return s.insertStages(ctx, reviewID, in.Stages)
	})
	if err != nil {
		slog.Error("Failed to update review", "review_id", reviewID, "error", err)
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	slog.Info("Review replaced", "review_id", reviewID, "stages_count", len(in.Stages))
	return s.repo.GetReview(ctx, reviewID)
}

func (s *ReviewerService) ChangeAssignmentStatus(
	ctx context.Context,
	actor *domain.User,
	reviewID, stageID, reviewerID string,
	status domain.ReviewStatus,
) (*domain.ReviewRequest, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validator.ValidateStatus(status); err != nil {
		slog.Warn("Status validation failed", "status", status, "error", err)
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		stage, err := s.repo.GetStage(ctx, reviewID, stageID)
		if err != nil {
			return err
		}

		assignment, err := s.repo.GetAssignment(ctx, stageID, reviewerID)
		if err != nil {
			return err
		}

		if err := s.repo.UpdateAssignmentStatus(ctx, stageID, reviewerID, status); err != nil {
			return err
		}

		reviewerName := reviewerID
		if u, ok := assignment.Reviewer.User(); ok {
			reviewerName = u.Name
		}

		return s.repo.InsertActivityLog(ctx, &domain.ActivityLog{
			ID:        s.newID(),
			ReviewID:  reviewID,
			Type:      domain.ActivityStatusChange,
			User:      domain.KnownUser(*actor),
			Details:   domain.StatusChangeDetails(reviewerName, assignment.Status, status, stage.Name),
			CreatedAt: s.now(),
		})
	})
	if err != nil {
		slog.Error("Failed to change assignment status",
			"review_id", reviewID,
			"stage_id", stageID,
			"reviewer_id", reviewerID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to change status: %w", err)
	}

	slog.Info("Assignment status changed", "review_id", reviewID, "stage_id", stageID, "reviewer_id", reviewerID, "status", status)
	return s.repo.GetReview(ctx, reviewID)
}

func (s *ReviewerService) AddComment(
	ctx context.Context,
	actor *domain.User,
	reviewID, stageID string,
	in *domain.CommentInput,
) (*domain.ReviewRequest, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := s.validator.ValidateCommentInput(in); err != nil {
		slog.Warn("Comment validation failed", "review_id", reviewID, "error", err)
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context) error {
		stage, err := s.repo.GetStage(ctx, reviewID, stageID)
		if err != nil {
			return err
		}

		if in.ParentCommentID != nil {
			exists, err := s.repo.CommentExists(ctx, stageID, *in.ParentCommentID)
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrCommentNotFound
			}
		}

		comment := &domain.Comment{
			ID:              s.newID(),
			StageID:         stageID,
			Author:          domain.KnownUser(*actor),
			Content:         in.Content,
			LineNumber:      in.LineNumber,
			ParentCommentID: in.ParentCommentID,
			CreatedAt:       s.now(),
		}
		if err := s.repo.InsertComment(ctx, comment); err != nil {
			return err
		}

		return s.repo.InsertActivityLog(ctx, &domain.ActivityLog{
			ID:        s.newID(),
			ReviewID:  reviewID,
			Type:      domain.ActivityComment,
			User:      domain.KnownUser(*actor),
			Details:   domain.CommentDetails(stage.Name, in.Content),
			CreatedAt: comment.CreatedAt,
		})
	})
	if err != nil {
		slog.Error("Failed to add comment", "review_id", reviewID, "stage_id", stageID, "error", err)
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	slog.Info("Comment added", "review_id", reviewID, "stage_id", stageID, "reply", in.ParentCommentID != nil)
	return s.repo.GetReview(ctx, reviewID)
}

// ========================================
// Helper Methods
// ========================================

func (s *ReviewerService) validateReviewInput(ctx context.Context, in *domain.ReviewInput) error {
	if err := s.validator.ValidateReviewInput(in); err != nil {
		slog.Warn("Review validation failed", "title", in.Title, "error", err)
		return err
	}

	var reviewerIDs []string
	seen := make(map[string]bool)
	for _, stage := range in.Stages {
		for _, a := range stage.Assignments {
			if !seen[a.ReviewerID] {
				seen[a.ReviewerID] = true
				reviewerIDs = append(reviewerIDs, a.ReviewerID)
			}
		}
	}

	missing, err := s.repo.FindMissingUsers(ctx, reviewerIDs)
	if err != nil {
		slog.Error("Failed to check reviewers", "error", err)
		return err
	}
	if len(missing) > 0 {
		slog.Warn("Unknown reviewers in review input", "missing", missing)
		return domain.NewValidationError("unknown reviewer: %s", missing[0])
	}
	return nil
}

func (s *ReviewerService) insertStages(ctx context.Context, reviewID string, stages []domain.StageInput) error {
	for i, in := range stages {
		stage := &domain.ReviewStage{
			ID:            s.newID(),
			ReviewID:      reviewID,
			Name:          in.Name,
			Order:         i,
			RepositoryURL: in.RepositoryURL,
			ReviewerCount: in.ReviewerCount,
			DueDate:       in.DueDate,
		}
		for _, a := range in.Assignments {
			status := a.Status
			if status == "" {
				status = domain.StatusPending
			}
			stage.Assignments = append(stage.Assignments, domain.ReviewAssignment{
				ID:       s.newID(),
				StageID:  stage.ID,
				Reviewer: domain.UnknownUser(a.ReviewerID),
				Status:   status,
			})
		}
		if err := s.repo.InsertStage(ctx, stage); err != nil {
			return err
		}
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
