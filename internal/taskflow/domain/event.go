package domain

// EventKind names a real-time task event.
type EventKind string

const (
	EventTaskCreated EventKind = "task.created"
	EventTaskUpdated EventKind = "task.updated"
	EventTaskDeleted EventKind = "task.deleted"
)

// TaskEvent is published after a task mutation. Task is nil for deletions,
// where only TaskID is meaningful.
type TaskEvent struct {
	Kind      EventKind
	ProjectID string
	TaskID    string
	Task      *TaskDetails
}
