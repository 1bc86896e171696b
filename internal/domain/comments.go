package domain

import "slices"

// BuildCommentTree собирает плоский список комментариев стадии в дерево.
// Ответы прикрепляются к родителю на любой глубине, соседние комментарии
// упорядочены по времени создания. Комментарий с отсутствующим родителем
// считается корневым.
func BuildCommentTree(flat []Comment) []Comment {
	known := make(map[string]bool, len(flat))
	for _, c := range flat {
		known[c.ID] = true
	}

	children := make(map[string][]Comment)
	roots := make([]Comment, 0)
	for _, c := range flat {
		if c.ParentCommentID != nil && known[*c.ParentCommentID] && *c.ParentCommentID != c.ID {
			children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c)
			continue
		}
		roots = append(roots, c)
	}

	return attachReplies(roots, children, make(map[string]bool))
}

func attachReplies(level []Comment, children map[string][]Comment, visited map[string]bool) []Comment {
	if level == nil {
		return []Comment{}
	}
	sortCommentsByTime(level)
	for i := range level {
		id := level[i].ID
		if visited[id] {
			level[i].Replies = []Comment{}
			continue
		}
		visited[id] = true
		level[i].Replies = attachReplies(slices.Clone(children[id]), children, visited)
	}
	return level
}

func sortCommentsByTime(comments []Comment) {
	slices.SortStableFunc(comments, func(a, b Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// SortActivityLogs сортирует журнал от новых записей к старым.
func SortActivityLogs(logs []ActivityLog) {
	slices.SortStableFunc(logs, func(a, b ActivityLog) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
