package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskInReview   TaskStatus = "in-review"
	TaskDone       TaskStatus = "done"
)

// ParseTaskStatus maps user input onto the canonical status set. The
// unhyphenated spellings older clients send are accepted as aliases.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return TaskTodo, true
	case "in-progress", "inprogress", "in_progress":
		return TaskInProgress, true
	case "in-review", "inreview", "in_review":
		return TaskInReview, true
	case "done":
		return TaskDone, true
	}
	return "", false
}

type Task struct {
	ID          string
	ProjectID   string // immutable after creation
	Title       string
	Description string
	Status      TaskStatus
	AssigneeIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentDetails is a comment with its author resolved.
type CommentDetails struct {
	Comment
	Author UserSummary
}

// TaskDetails is a task with assignees and comments resolved for display.
type TaskDetails struct {
	Task
	Assignees []UserSummary
	Comments  []CommentDetails
}

// TaskPatch carries the fields of a partial task update. Nil means unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	AssigneeIDs *[]string
}

// TaskFilter narrows ListTasksByProject. Empty fields do not filter.
type TaskFilter struct {
	Search     string // case-insensitive substring of title or description
	Status     TaskStatus
	AssigneeID string
}
