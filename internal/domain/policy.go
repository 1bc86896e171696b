package domain

import (
	"slices"
	"time"
)

// NearestDueDate возвращает самый ранний срок среди стадий ревью.
// Стадии без срока не учитываются; false, если сроков нет вовсе.
func NearestDueDate(r *ReviewRequest) (time.Time, bool) {
	var nearest time.Time
	found := false
	for _, s := range r.Stages {
		if s.DueDate == nil {
			continue
		}
		if !found || s.DueDate.Before(nearest) {
			nearest = *s.DueDate
			found = true
		}
	}
	return nearest, found
}

// SortByCreatedAt сортирует ревью от новых к старым.
func SortByCreatedAt(reviews []ReviewRequest) {
	slices.SortStableFunc(reviews, func(a, b ReviewRequest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// SortByDueDate ставит первыми ревью с ближайшим сроком.
// Ревью без сроков идут в конце, между собой от новых к старым.
func SortByDueDate(reviews []ReviewRequest) {
	slices.SortStableFunc(reviews, func(a, b ReviewRequest) int {
		da, okA := NearestDueDate(&a)
		db, okB := NearestDueDate(&b)
		switch {
		case okA && okB:
			if c := da.Compare(db); c != 0 {
				return c
			}
		case okA:
			return -1
		case okB:
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// SortReviews применяет сортировку по имени из ReviewFilter.Sort.
func SortReviews(reviews []ReviewRequest, sortBy string) {
	if sortBy == SortByDue {
		SortByDueDate(reviews)
		return
	}
	SortByCreatedAt(reviews)
}

// EffectiveStatus "худший" (наименее продвинутый) статус из набора.
func EffectiveStatus(statuses []ReviewStatus) (ReviewStatus, bool) {
	if len(statuses) == 0 {
		return "", false
	}
	worst := statuses[0]
	for _, s := range statuses[1:] {
		if s.Rank() < worst.Rank() {
			worst = s
		}
	}
	return worst, true
}

// CollectMyReviews группирует назначения пользователя по ревью
// и сортирует: сначала по рангу эффективного статуса, затем от новых к старым.
func CollectMyReviews(reviews []ReviewRequest, userID string) []MyReview {
	result := make([]MyReview, 0)
	for _, r := range reviews {
		var mine []MyAssignment
		var statuses []ReviewStatus
		for _, s := range r.Stages {
			for _, a := range s.Assignments {
				if a.Reviewer.ID() != userID {
					continue
				}
				mine = append(mine, MyAssignment{
					StageID:       s.ID,
					StageName:     s.Name,
					RepositoryURL: s.RepositoryURL,
					Status:        a.Status,
				})
				statuses = append(statuses, a.Status)
			}
		}
		if len(mine) == 0 {
			continue
		}
		effective, _ := EffectiveStatus(statuses)
		result = append(result, MyReview{
			Review:          r,
			Assignments:     mine,
			EffectiveStatus: effective,
		})
	}

	slices.SortStableFunc(result, func(a, b MyReview) int {
		if ra, rb := a.EffectiveStatus.Rank(), b.EffectiveStatus.Rank(); ra != rb {
			return ra - rb
		}
		return b.Review.CreatedAt.Compare(a.Review.CreatedAt)
	})
	return result
}

func FilterByReviewer(reviews []ReviewRequest, userID string) []ReviewRequest {
	return slices.DeleteFunc(reviews, func(r ReviewRequest) bool {
		for _, s := range r.Stages {
			for _, a := range s.Assignments {
				if a.Reviewer.ID() == userID {
					return false
				}
			}
		}
		return true
	})
}

func FilterByAuthor(reviews []ReviewRequest, userID string) []ReviewRequest {
	return slices.DeleteFunc(reviews, func(r ReviewRequest) bool {
		return r.Author.ID() != userID
	})
}
