package service

import (
	"context"
	"log/slog"

	"github.com/T1mof/review-tracker/internal/domain"
)

var statusOrder = []domain.ReviewStatus{
	domain.StatusPending,
	domain.StatusAnswered,
	domain.StatusCommented,
	domain.StatusLGTM,
}

func (s *ReviewerService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{}

	var err error
	if stats.TotalReviews, err = s.repo.CountReviews(ctx); err != nil {
		slog.Error("Failed to count reviews", "error", err)
		return nil, err
	}
	if stats.TotalUsers, err = s.repo.CountUsers(ctx); err != nil {
		slog.Error("Failed to count users", "error", err)
		return nil, err
	}
	if stats.TotalTemplates, err = s.repo.CountTemplates(ctx); err != nil {
		slog.Error("Failed to count templates", "error", err)
		return nil, err
	}

	counts, err := s.repo.GetAssignmentStatusCounts(ctx)
	if err != nil {
		slog.Error("Failed to get assignment status counts", "error", err)
		return nil, err
	}
	stats.AssignmentsByStatus = zeroFillStatuses(counts)

	stats.Workload, err = s.repo.GetReviewerWorkload(ctx)
	if err != nil {
		slog.Error("Failed to get reviewer workload", "error", err)
		return nil, err
	}

	return stats, nil
}

// zeroFillStatuses все статусы в порядке ранга, отсутствующие с нулём.
func zeroFillStatuses(counts []domain.StatusCount) []domain.StatusCount {
	byStatus := make(map[domain.ReviewStatus]int, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	result := make([]domain.StatusCount, 0, len(statusOrder))
	for _, status := range statusOrder {
		result = append(result, domain.StatusCount{Status: status, Count: byStatus[status]})
	}
	return result
}
