package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/T1mof/review-tracker/internal/domain"
)

// Строки таблиц и их перевод в доменные типы.

type reviewRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	AuthorID  string    `db:"author_id"`
	CreatedAt time.Time `db:"created_at"`
}

type stageRow struct {
	ID            string       `db:"id"`
	ReviewID      string       `db:"review_request_id"`
	Name          string       `db:"name"`
	Order         int          `db:"stage_order"`
	RepositoryURL string       `db:"repository_url"`
	ReviewerCount int          `db:"reviewer_count"`
	DueDate       sql.NullTime `db:"due_date"`
}

func (s stageRow) toDomain() domain.ReviewStage {
	stage := domain.ReviewStage{
		ID:            s.ID,
		ReviewID:      s.ReviewID,
		Name:          s.Name,
		Order:         s.Order,
		RepositoryURL: s.RepositoryURL,
		ReviewerCount: s.ReviewerCount,
		Assignments:   []domain.ReviewAssignment{},
		Comments:      []domain.Comment{},
	}
	if s.DueDate.Valid {
		due := s.DueDate.Time
		stage.DueDate = &due
	}
	return stage
}

// userColumns поля пользователя из LEFT JOIN; пустые, если строки нет.
type userColumns struct {
	UserName      sql.NullString `db:"user_name"`
	UserAvatarURL sql.NullString `db:"user_avatar_url"`
}

func (u userColumns) ref(id string) domain.UserRef {
	if !u.UserName.Valid {
		return domain.UnknownUser(id)
	}
	return domain.KnownUser(domain.User{ID: id, Name: u.UserName.String, AvatarURL: u.UserAvatarURL.String})
}

type assignmentRow struct {
	ID         string `db:"id"`
	StageID    string `db:"review_stage_id"`
	ReviewerID string `db:"reviewer_id"`
	Status     string `db:"status"`
	userColumns
}

func (a assignmentRow) toDomain() domain.ReviewAssignment {
	return domain.ReviewAssignment{
		ID:       a.ID,
		StageID:  a.StageID,
		Reviewer: a.ref(a.ReviewerID),
		Status:   domain.ReviewStatus(a.Status),
	}
}

type commentRow struct {
	ID              string         `db:"id"`
	StageID         string         `db:"review_stage_id"`
	AuthorID        string         `db:"author_id"`
	Content         string         `db:"content"`
	LineNumber      sql.NullInt64  `db:"line_number"`
	ParentCommentID sql.NullString `db:"parent_comment_id"`
	CreatedAt       time.Time      `db:"created_at"`
	userColumns
}

func (c commentRow) toDomain() domain.Comment {
	comment := domain.Comment{
		ID:        c.ID,
		StageID:   c.StageID,
		Author:    c.ref(c.AuthorID),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Replies:   []domain.Comment{},
	}
	if c.LineNumber.Valid {
		line := int(c.LineNumber.Int64)
		comment.LineNumber = &line
	}
	if c.ParentCommentID.Valid {
		parent := c.ParentCommentID.String
		comment.ParentCommentID = &parent
	}
	return comment
}

type activityRow struct {
	ID        string    `db:"id"`
	ReviewID  string    `db:"review_request_id"`
	Type      string    `db:"type"`
	UserID    string    `db:"user_id"`
	Details   string    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
	userColumns
}

func (l activityRow) toDomain() domain.ActivityLog {
	return domain.ActivityLog{
		ID:        l.ID,
		ReviewID:  l.ReviewID,
		Type:      domain.ActivityType(l.Type),
		User:      l.ref(l.UserID),
		Details:   l.Details,
		CreatedAt: l.CreatedAt,
	}
}

type templateRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	IsDefault bool   `db:"is_default"`
}

type templateStageRow struct {
	TemplateID    string         `db:"stage_template_id"`
	Name          string         `db:"name"`
	ReviewerIDs   pq.StringArray `db:"reviewer_ids"`
	ReviewerCount int            `db:"reviewer_count"`
}

func (t templateStageRow) toDomain() domain.TemplateStage {
	ids := []string(t.ReviewerIDs)
	if ids == nil {
		ids = []string{}
	}
	return domain.TemplateStage{
		Name:          t.Name,
		ReviewerIDs:   ids,
		ReviewerCount: t.ReviewerCount,
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
