package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/T1mof/review-tracker/internal/domain"
)

// GetAssignmentStatusCounts количество назначений в каждом встречающемся статусе.
func (r *Repository) GetAssignmentStatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	var counts []domain.StatusCount
	err := sqlx.SelectContext(ctx, r.ext(ctx), &counts, `
		SELECT status, COUNT(*) AS count
		FROM review_assignments
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment status counts: %w", err)
	}
	return counts, nil
}

// GetReviewerWorkload нагрузка по пользователям; открытые назначения это всё, кроме lgtm.
func (r *Repository) GetReviewerWorkload(ctx context.Context) ([]domain.ReviewerWorkload, error) {
	workload := make([]domain.ReviewerWorkload, 0)
	err := sqlx.SelectContext(ctx, r.ext(ctx), &workload, `
		SELECT
			u.id AS user_id,
			u.name,
			COUNT(a.id) AS total_assignments,
			COUNT(a.id) FILTER (WHERE a.status <> 'lgtm') AS open_assignments
		FROM users u
		LEFT JOIN review_assignments a ON a.reviewer_id = u.id
		GROUP BY u.id, u.name
		ORDER BY open_assignments DESC, u.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviewer workload: %w", err)
	}
	return workload, nil
}

func (r *Repository) CountReviews(ctx context.Context) (int, error) {
	return r.count(ctx, "review_requests")
}

func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "users")
}

func (r *Repository) CountTemplates(ctx context.Context) (int, error) {
	return r.count(ctx, "stage_templates")
}

// count table всегда константа из этого файла.
func (r *Repository) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.ext(ctx), &n, `SELECT COUNT(*) FROM `+table); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}
