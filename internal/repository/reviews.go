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

// ========================================
// Review Aggregate Loader
// ========================================

// GetReview собирает ревью целиком: автор, стадии с назначениями
// и деревом комментариев, журнал активности (от новых к старым).
func (r *Repository) GetReview(ctx context.Context, reviewID string) (*domain.ReviewRequest, error) {
	q := r.ext(ctx)

	var row reviewRow
	err := sqlx.GetContext(ctx, q, &row, `
		SELECT id, title, url, author_id, created_at
		FROM review_requests
		WHERE id = $1
	`, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	author, err := r.resolveUser(ctx, row.AuthorID)
	if err != nil {
		return nil, err
	}

	stages, err := r.loadStages(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	logs, err := r.loadActivityLogs(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return &domain.ReviewRequest{
		ID:           row.ID,
		Title:        row.Title,
		URL:          row.URL,
		Author:       author,
		CreatedAt:    row.CreatedAt,
		Stages:       stages,
		ActivityLogs: logs,
	}, nil
}

// ListReviews загружает все ревью от новых к старым, каждое отдельным GetReview.
func (r *Repository) ListReviews(ctx context.Context) ([]domain.ReviewRequest, error) {
	var ids []string
	err := sqlx.SelectContext(ctx, r.ext(ctx), &ids, `
		SELECT id FROM review_requests ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]domain.ReviewRequest, 0, len(ids))
	for _, id := range ids {
		review, err := r.GetReview(ctx, id)
		if err != nil {
			// ревью могло быть удалено между запросами
			if errors.Is(err, domain.ErrReviewNotFound) {
				continue
			}
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, nil
}

// resolveUser никогда не возвращает ошибку для отсутствующего пользователя.
func (r *Repository) resolveUser(ctx context.Context, userID string) (domain.UserRef, error) {
	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.UnknownUser(userID), nil
		}
		return domain.UserRef{}, err
	}
	return domain.KnownUser(*user), nil
}

func (r *Repository) loadStages(ctx context.Context, reviewID string) ([]domain.ReviewStage, error) {
	q := r.ext(ctx)

	var rows []stageRow
	err := sqlx.SelectContext(ctx, q, &rows, `
		SELECT id, review_request_id, name, stage_order, repository_url, reviewer_count, due_date
		FROM review_stages
		WHERE review_request_id = $1
		ORDER BY stage_order, name
	`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stages: %w", err)
	}

	stages := make([]domain.ReviewStage, 0, len(rows))
	for _, row := range rows {
		stage := row.toDomain()

		var assignments []assignmentRow
		err := sqlx.SelectContext(ctx, q, &assignments, `
			SELECT a.id, a.review_stage_id, a.reviewer_id, a.status,
			       u.name AS user_name, u.avatar_url AS user_avatar_url
			FROM review_assignments a
			LEFT JOIN users u ON u.id = a.reviewer_id
			WHERE a.review_stage_id = $1
			ORDER BY u.name NULLS LAST, a.reviewer_id
		`, stage.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get assignments: %w", err)
		}
		for _, a := range assignments {
			stage.Assignments = append(stage.Assignments, a.toDomain())
		}

		var comments []commentRow
		err = sqlx.SelectContext(ctx, q, &comments, `
			SELECT c.id, c.review_stage_id, c.author_id, c.content, c.line_number,
			       c.parent_comment_id, c.created_at,
			       u.name AS user_name, u.avatar_url AS user_avatar_url
			FROM comments c
			LEFT JOIN users u ON u.id = c.author_id
			WHERE c.review_stage_id = $1
			ORDER BY c.created_at
		`, stage.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get comments: %w", err)
		}
		flat := make([]domain.Comment, 0, len(comments))
		for _, c := range comments {
			flat = append(flat, c.toDomain())
		}
		stage.Comments = domain.BuildCommentTree(flat)

		stages = append(stages, stage)
	}
	return stages, nil
}

func (r *Repository) loadActivityLogs(ctx context.Context, reviewID string) ([]domain.ActivityLog, error) {
	var rows []activityRow
	err := sqlx.SelectContext(ctx, r.ext(ctx), &rows, `
		SELECT l.id, l.review_request_id, l.type, l.user_id, l.details, l.created_at,
		       u.name AS user_name, u.avatar_url AS user_avatar_url
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.review_request_id = $1
		ORDER BY l.created_at DESC
	`, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity logs: %w", err)
	}

	logs := make([]domain.ActivityLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, row.toDomain())
	}
	domain.SortActivityLogs(logs)
	return logs, nil
}

// ========================================
// Review Aggregate Writer
// ========================================

func (r *Repository) InsertReview(ctx context.Context, review *domain.ReviewRequest) error {
	_, err := r.ext(ctx).ExecContext(ctx, `
		INSERT INTO review_requests (id, title, url, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, review.ID, review.Title, review.URL, review.Author.ID(), review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	slog.Info("Review inserted", "review_id", review.ID)
	return nil
}

func (r *Repository) UpdateReviewFields(ctx context.Context, reviewID, title, url string) error {
	res, err := r.ext(ctx).ExecContext(ctx, `
		UPDATE review_requests
		SET title = $1, url = $2, updated_at = NOW()
		WHERE id = $3
	`, title, url, reviewID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return rowsAffected(res, domain.ErrReviewNotFound)
}

// DeleteReviewStages удаляет комментарии, назначения и стадии ревью.
func (r *Repository) DeleteReviewStages(ctx context.Context, reviewID string) error {
	q := r.ext(ctx)

	if _, err := q.ExecContext(ctx, `
		DELETE FROM comments
		WHERE review_stage_id IN (SELECT id FROM review_stages WHERE review_request_id = $1)
	`, reviewID); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	if _, err := q.ExecContext(ctx, `
		DELETE FROM review_assignments
		WHERE review_stage_id IN (SELECT id FROM review_stages WHERE review_request_id = $1)
	`, reviewID); err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	if _, err := q.ExecContext(ctx, `
		DELETE FROM review_stages WHERE review_request_id = $1
	`, reviewID); err != nil {
		return fmt.Errorf("failed to delete stages: %w", err)
	}

	slog.Info("Review stages deleted", "review_id", reviewID)
	return nil
}

// InsertStage вставляет стадию вместе с её назначениями.
func (r *Repository) InsertStage(ctx context.Context, stage *domain.ReviewStage) error {
	q := r.ext(ctx)

	_, err := q.ExecContext(ctx, `
		INSERT INTO review_stages (id, review_request_id, name, stage_order, repository_url, reviewer_count, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, stage.ID, stage.ReviewID, stage.Name, stage.Order, stage.RepositoryURL, stage.ReviewerCount, nullTime(stage.DueDate))
	if err != nil {
		return fmt.Errorf("failed to insert stage: %w", err)
	}

	for _, a := range stage.Assignments {
		_, err = q.ExecContext(ctx, `
			INSERT INTO review_assignments (id, review_stage_id, reviewer_id, status)
			VALUES ($1, $2, $3, $4)
		`, a.ID, stage.ID, a.Reviewer.ID(), string(a.Status))
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}
	return nil
}

// GetStage возвращает стадию без назначений и комментариев.
func (r *Repository) GetStage(ctx context.Context, reviewID, stageID string) (*domain.ReviewStage, error) {
	var row stageRow
	err := sqlx.GetContext(ctx, r.ext(ctx), &row, `
		SELECT id, review_request_id, name, stage_order, repository_url, reviewer_count, due_date
		FROM review_stages
		WHERE id = $1 AND review_request_id = $2
	`, stageID, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStageNotFound
		}
		return nil, fmt.Errorf("failed to get stage: %w", err)
	}

	stage := row.toDomain()
	return &stage, nil
}

func (r *Repository) GetAssignment(ctx context.Context, stageID, reviewerID string) (*domain.ReviewAssignment, error) {
	var row assignmentRow
	err := sqlx.GetContext(ctx, r.ext(ctx), &row, `
		SELECT a.id, a.review_stage_id, a.reviewer_id, a.status,
		       u.name AS user_name, u.avatar_url AS user_avatar_url
		FROM review_assignments a
		LEFT JOIN users u ON u.id = a.reviewer_id
		WHERE a.review_stage_id = $1 AND a.reviewer_id = $2
	`, stageID, reviewerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	assignment := row.toDomain()
	return &assignment, nil
}

func (r *Repository) UpdateAssignmentStatus(ctx context.Context, stageID, reviewerID string, status domain.ReviewStatus) error {
	res, err := r.ext(ctx).ExecContext(ctx, `
		UPDATE review_assignments
		SET status = $1, updated_at = NOW()
		WHERE review_stage_id = $2 AND reviewer_id = $3
	`, string(status), stageID, reviewerID)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	if err := rowsAffected(res, domain.ErrAssignmentNotFound); err != nil {
		return err
	}

	slog.Info("Assignment status updated", "stage_id", stageID, "reviewer_id", reviewerID, "status", status)
	return nil
}

func (r *Repository) CommentExists(ctx context.Context, stageID, commentID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.ext(ctx), &exists, `
		SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1 AND review_stage_id = $2)
	`, commentID, stageID)
	if err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}
	return exists, nil
}

func (r *Repository) InsertComment(ctx context.Context, comment *domain.Comment) error {
	_, err := r.ext(ctx).ExecContext(ctx, `
		INSERT INTO comments (id, review_stage_id, author_id, content, line_number, parent_comment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, comment.ID, comment.StageID, comment.Author.ID(), comment.Content,
		nullInt(comment.LineNumber), nullString(comment.ParentCommentID), comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *Repository) InsertActivityLog(ctx context.Context, log *domain.ActivityLog) error {
	_, err := r.ext(ctx).ExecContext(ctx, `
		INSERT INTO activity_logs (id, review_request_id, type, user_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, log.ID, log.ReviewID, string(log.Type), log.User.ID(), log.Details, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}
