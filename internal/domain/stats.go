package domain

// ReviewerWorkload статистика назначений по ревьюеру.
type ReviewerWorkload struct {
	UserID           string `json:"userId" db:"user_id"`
	Name             string `json:"name" db:"name"`
	TotalAssignments int    `json:"totalAssignments" db:"total_assignments"`
	OpenAssignments  int    `json:"openAssignments" db:"open_assignments"`
}

// StatusCount количество назначений в одном статусе.
type StatusCount struct {
	Status ReviewStatus `json:"status" db:"status"`
	Count  int          `json:"count" db:"count"`
}

// Statistics общая статистика сервиса.
type Statistics struct {
	TotalReviews        int                `json:"totalReviews"`
	TotalUsers          int                `json:"totalUsers"`
	TotalTemplates      int                `json:"totalTemplates"`
	AssignmentsByStatus []StatusCount      `json:"assignmentsByStatus"`
	Workload            []ReviewerWorkload `json:"workload"`
}
