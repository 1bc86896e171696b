package domain

import (
	"time"
)

type User struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	AvatarURL string `db:"avatar_url" json:"avatarUrl"`
}

// ReviewStatus статус ревьюера в рамках одной стадии.
type ReviewStatus string

const (
	StatusPending   ReviewStatus = "pending"
	StatusCommented ReviewStatus = "commented"
	StatusAnswered  ReviewStatus = "answered"
	StatusLGTM      ReviewStatus = "lgtm"
)

// statusRank задаёт порядок "прогресса": чем меньше, тем важнее показать ревьюеру.
var statusRank = map[ReviewStatus]int{
	StatusPending:   1,
	StatusAnswered:  2,
	StatusCommented: 3,
	StatusLGTM:      4,
}

func (s ReviewStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank возвращает позицию статуса в порядке сортировки, 0 для неизвестного.
func (s ReviewStatus) Rank() int {
	return statusRank[s]
}

type ActivityType string

const (
	ActivityCreate       ActivityType = "CREATE"
	ActivityStatusChange ActivityType = "STATUS_CHANGE"
	ActivityComment      ActivityType = "COMMENT"
)

type ReviewRequest struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	URL          string        `json:"url"`
	Author       UserRef       `json:"author"`
	CreatedAt    time.Time     `json:"createdAt"`
	Stages       []ReviewStage `json:"stages"`
	ActivityLogs []ActivityLog `json:"activityLogs"`
}

type ReviewStage struct {
	ID            string             `json:"id"`
	ReviewID      string             `json:"-"`
	Name          string             `json:"name"`
	Order         int                `json:"order"`
	RepositoryURL string             `json:"repositoryUrl"`
	ReviewerCount int                `json:"reviewerCount"`
	DueDate       *time.Time         `json:"dueDate,omitempty"`
	Assignments   []ReviewAssignment `json:"assignments"`
	Comments      []Comment          `json:"comments"`
}

type ReviewAssignment struct {
	ID       string       `json:"-"`
	StageID  string       `json:"-"`
	Reviewer UserRef      `json:"reviewer"`
	Status   ReviewStatus `json:"status"`
}

type Comment struct {
	ID              string    `json:"id"`
	StageID         string    `json:"-"`
	Author          UserRef   `json:"author"`
	Content         string    `json:"content"`
	LineNumber      *int      `json:"lineNumber,omitempty"`
	ParentCommentID *string   `json:"parentCommentId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	Replies         []Comment `json:"replies"`
}

type ActivityLog struct {
	ID        string       `json:"id"`
	ReviewID  string       `json:"-"`
	Type      ActivityType `json:"type"`
	User      UserRef      `json:"user"`
	Details   string       `json:"details"`
	CreatedAt time.Time    `json:"createdAt"`
}

type TemplateStage struct {
	Name          string   `json:"name"`
	ReviewerIDs   []string `json:"reviewerIds"`
	ReviewerCount int      `json:"reviewerCount"`
}

type StageTemplate struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Stages    []TemplateStage `json:"stages"`
	IsDefault bool            `json:"isDefault"`
}

type GlobalSettings struct {
	ServiceDomain        string `db:"service_domain" json:"serviceDomain"`
	DefaultReviewerCount int    `db:"default_reviewer_count" json:"defaultReviewerCount"`
	SlackMessageTemplate string `db:"slack_message_template" json:"slackMessageTemplate"`
}

const defaultSlackMessageTemplate = "Review requested: {title} by {author}\n{url}"

// DefaultGlobalSettings значения, которые отдаются, пока настройки не сохранены.
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		ServiceDomain:        "http://localhost:5174",
		DefaultReviewerCount: 3,
		SlackMessageTemplate: defaultSlackMessageTemplate,
	}
}

// ========================================
// Входные данные
// ========================================

type AssignmentInput struct {
	ReviewerID string       `json:"reviewerId"`
	Status     ReviewStatus `json:"status"`
}

type StageInput struct {
	Name          string            `json:"name"`
	RepositoryURL string            `json:"repositoryUrl"`
	ReviewerCount int               `json:"reviewerCount"`
	DueDate       *time.Time        `json:"dueDate"`
	Assignments   []AssignmentInput `json:"assignments"`
}

type ReviewInput struct {
	Title  string       `json:"title"`
	URL    string       `json:"url"`
	Stages []StageInput `json:"stages"`
}

type CommentInput struct {
	Content         string  `json:"content"`
	LineNumber      *int    `json:"lineNumber"`
	ParentCommentID *string `json:"parentCommentId"`
}

type TemplateInput struct {
	Name      string          `json:"name"`
	Stages    []TemplateStage `json:"stages"`
	IsDefault bool            `json:"isDefault"`
}

type UserInput struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// ReviewFilter параметры выборки списка ревью.
type ReviewFilter struct {
	ReviewerID string
	AuthorID   string
	Sort       string
}

const (
	SortByCreated = "createdAt"
	SortByDue     = "dueDate"
)

// MyAssignment одно назначение пользователя внутри ревью.
type MyAssignment struct {
	StageID       string       `json:"stageId"`
	StageName     string       `json:"stageName"`
	RepositoryURL string       `json:"repositoryUrl"`
	Status        ReviewStatus `json:"status"`
}

// MyReview ревью с назначениями конкретного пользователя.
type MyReview struct {
	Review          ReviewRequest  `json:"review"`
	Assignments     []MyAssignment `json:"myAssignments"`
	EffectiveStatus ReviewStatus   `json:"effectiveStatus"`
}

type ShareLink struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}
