package domain

import (
	"fmt"
	"strings"
)

const commentPreviewLength = 50

func CreateDetails(title string) string {
	return fmt.Sprintf("Created review request %q.", title)
}

func StatusChangeDetails(reviewer string, from, to ReviewStatus, stage string) string {
	return fmt.Sprintf("%s changed status from %q to %q (stage: %s).", reviewer, from, to, stage)
}

func CommentDetails(stage, content string) string {
	return fmt.Sprintf("Added a comment (stage: %s): %q", stage, commentPreview(content))
}

// commentPreview первые 50 символов текста, "..." только при обрезке.
func commentPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= commentPreviewLength {
		return content
	}
	return string(runes[:commentPreviewLength]) + "..."
}

// ShareReview строит ссылку на ревью и сообщение для Slack по шаблону настроек.
// Поддерживаются плейсхолдеры {title}, {url} и {author}.
func ShareReview(settings GlobalSettings, review *ReviewRequest) ShareLink {
	url := strings.TrimRight(settings.ServiceDomain, "/") + "/reviews/" + review.ID

	tmpl := settings.SlackMessageTemplate
	if strings.TrimSpace(tmpl) == "" {
		tmpl = defaultSlackMessageTemplate
	}

	message := strings.NewReplacer(
		"{title}", review.Title,
		"{url}", url,
		"{author}", authorName(review.Author),
	).Replace(tmpl)

	return ShareLink{URL: url, Message: message}
}

// authorName имя автора или его id, если пользователя уже нет.
func authorName(ref UserRef) string {
	if u, ok := ref.User(); ok {
		return u.Name
	}
	return ref.ID()
}
