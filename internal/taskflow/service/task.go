package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

// NewTask is the input of TaskService.Create. An empty status means todo.
type NewTask struct {
	Title       string
	Description string
	Status      string
	AssigneeIDs []string
}

// TaskListFilter is the raw filter of TaskService.List.
type TaskListFilter struct {
	Search     string
	Status     string
	AssigneeID string
}

// TaskService manages tasks and their comments. Every mutation is logged to
// the project's activity log in the same transaction and then published.
type TaskService struct {
	Store  store.Store
	Events Publisher
}

func (s *TaskService) events() Publisher {
	if s.Events == nil {
		return nopPublisher{}
	}
	return s.Events
}

func (s *TaskService) Create(ctx context.Context, projectID, actorID string, in NewTask) (domain.TaskDetails, error) {
	title, err := validateText("title", in.Title)
	if err != nil {
		return domain.TaskDetails{}, err
	}
	status, err := parseStatus(in.Status, domain.TaskTodo)
	if err != nil {
		return domain.TaskDetails{}, err
	}

	now := time.Now().UTC()
	t := domain.Task{
		ID:          idx.New().String(),
		ProjectID:   projectID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := loadMemberProject(ctx, tx, projectID, actorID)
		if err != nil {
			return err
		}
		if t.AssigneeIDs, err = checkAssignees(p, in.AssigneeIDs); err != nil {
			return err
		}
		if err := tx.Tasks().CreateTask(ctx, t); err != nil {
			return err
		}
		return record(ctx, tx, projectID, actorID, domain.ActionTaskCreated, domain.ActivityMeta{
			"task_id": t.ID,
			"title":   t.Title,
		})
	})
	if err != nil {
		return domain.TaskDetails{}, err
	}

	slogx.FromContext(ctx).Info("task created", slog.String("task_id", t.ID), slog.String("project_id", projectID))
	return s.publishDetails(ctx, domain.EventTaskCreated, t)
}

// Get returns one task with assignees and comments resolved.
func (s *TaskService) Get(ctx context.Context, id, actorID string) (domain.TaskDetails, error) {
	t, _, err := loadMemberTask(ctx, s.Store, id, actorID)
	if err != nil {
		return domain.TaskDetails{}, err
	}
	return taskDetails(ctx, s.Store, t, true)
}

// List returns the project's tasks newest first. Filters combine with AND.
func (s *TaskService) List(ctx context.Context, projectID, actorID string, f TaskListFilter) ([]domain.TaskDetails, error) {
	if _, err := loadMemberProject(ctx, s.Store, projectID, actorID); err != nil {
		return nil, err
	}

	filter := domain.TaskFilter{
		Search:     strings.TrimSpace(f.Search),
		AssigneeID: strings.TrimSpace(f.AssigneeID),
	}
	if f.Status != "" {
		status, err := parseStatus(f.Status, "")
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	tasks, err := s.Store.Tasks().ListByProject(ctx, projectID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TaskDetails, 0, len(tasks))
	for _, t := range tasks {
		d, err := taskDetails(ctx, s.Store, t, false)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Update overwrites only the fields present in patch.
func (s *TaskService) Update(ctx context.Context, id, actorID string, patch domain.TaskPatch) (domain.TaskDetails, error) {
	var t domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var (
			p   domain.Project
			err error
		)
		t, p, err = loadMemberTask(ctx, tx, id, actorID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			if t.Title, err = validateText("title", *patch.Title); err != nil {
				return err
			}
		}
		if patch.Description != nil {
			t.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Status != nil {
			if t.Status, err = parseStatus(*patch.Status, ""); err != nil {
				return err
			}
		}
		if patch.AssigneeIDs != nil {
			if t.AssigneeIDs, err = checkAssignees(p, *patch.AssigneeIDs); err != nil {
				return err
			}
		}
		t.UpdatedAt = time.Now().UTC()

		if err := tx.Tasks().UpdateTask(ctx, t); err != nil {
			return err
		}
		return record(ctx, tx, t.ProjectID, actorID, domain.ActionTaskUpdated, domain.ActivityMeta{
			"task_id": t.ID,
			"title":   t.Title,
		})
	})
	if err != nil {
		return domain.TaskDetails{}, err
	}
	return s.publishDetails(ctx, domain.EventTaskUpdated, t)
}

// Move sets the status. Any status may follow any other.
func (s *TaskService) Move(ctx context.Context, id, actorID, status string) (domain.TaskDetails, error) {
	to, err := parseStatus(status, "")
	if err != nil {
		return domain.TaskDetails{}, err
	}

	var t domain.Task
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		t, _, err = loadMemberTask(ctx, tx, id, actorID)
		if err != nil {
			return err
		}
		if err := tx.Tasks().UpdateStatus(ctx, id, to); err != nil {
			return err
		}
		t.Status = to
		return record(ctx, tx, t.ProjectID, actorID, domain.ActionTaskMoved, domain.ActivityMeta{
			"task_id": t.ID,
			"status":  string(to),
		})
	})
	if err != nil {
		return domain.TaskDetails{}, err
	}

	slogx.FromContext(ctx).Info("task moved", slog.String("task_id", id), slog.String("status", string(to)))
	return s.publishDetails(ctx, domain.EventTaskUpdated, t)
}

// Comment appends a comment by authorID and returns the full task.
func (s *TaskService) Comment(ctx context.Context, id, authorID, text string) (domain.TaskDetails, error) {
	text, err := validateText("text", text)
	if err != nil {
		return domain.TaskDetails{}, err
	}

	var t domain.Task
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		t, _, err = loadMemberTask(ctx, tx, id, authorID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		c := domain.Comment{
			ID:        idx.New().String(),
			TaskID:    id,
			AuthorID:  authorID,
			Text:      text,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Comments().CreateComment(ctx, c); err != nil {
			return err
		}
		if err := tx.Tasks().Touch(ctx, id); err != nil {
			return err
		}
		return record(ctx, tx, t.ProjectID, authorID, domain.ActionTaskCommented, domain.ActivityMeta{
			"task_id":    id,
			"comment_id": c.ID,
		})
	})
	if err != nil {
		return domain.TaskDetails{}, err
	}
	return s.publishDetails(ctx, domain.EventTaskUpdated, t)
}

// EditComment replaces the text of a comment. Only its author may edit it.
func (s *TaskService) EditComment(ctx context.Context, taskID, commentID, actorID, text string) (domain.TaskDetails, error) {
	text, err := validateText("text", text)
	if err != nil {
		return domain.TaskDetails{}, err
	}
	return s.mutateComment(ctx, taskID, commentID, actorID, domain.ActionCommentEdited, func(tx store.Tx) error {
		return tx.Comments().UpdateText(ctx, commentID, text)
	})
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *TaskService) DeleteComment(ctx context.Context, taskID, commentID, actorID string) (domain.TaskDetails, error) {
	return s.mutateComment(ctx, taskID, commentID, actorID, domain.ActionCommentDeleted, func(tx store.Tx) error {
		return tx.Comments().DeleteComment(ctx, commentID)
	})
}

func (s *TaskService) mutateComment(
	ctx context.Context,
	taskID, commentID, actorID string,
	action domain.ActivityAction,
	mutate func(tx store.Tx) error,
) (domain.TaskDetails, error) {
	var t domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		t, _, err = loadMemberTask(ctx, tx, taskID, actorID)
		if err != nil {
			return err
		}
		c, err := tx.Comments().GetComment(ctx, taskID, commentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if c.AuthorID != actorID {
			return ErrNotCommentAuthor
		}
		if err := mutate(tx); err != nil {
			return err
		}
		if err := tx.Tasks().Touch(ctx, taskID); err != nil {
			return err
		}
		return record(ctx, tx, t.ProjectID, actorID, action, domain.ActivityMeta{
			"task_id":    taskID,
			"comment_id": commentID,
		})
	})
	if err != nil {
		return domain.TaskDetails{}, err
	}
	return s.publishDetails(ctx, domain.EventTaskUpdated, t)
}

// Delete removes the task with its comments. The published event carries
// only the task id.
func (s *TaskService) Delete(ctx context.Context, id, actorID string) error {
	var t domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		t, _, err = loadMemberTask(ctx, tx, id, actorID)
		if err != nil {
			return err
		}
		if err := tx.Tasks().DeleteTask(ctx, id); err != nil {
			return err
		}
		return record(ctx, tx, t.ProjectID, actorID, domain.ActionTaskDeleted, domain.ActivityMeta{
			"task_id": t.ID,
			"title":   t.Title,
		})
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("task deleted", slog.String("task_id", id))
	s.events().Publish(domain.TaskEvent{
		Kind:      domain.EventTaskDeleted,
		ProjectID: t.ProjectID,
		TaskID:    t.ID,
	})
	return nil
}

// publishDetails re-reads the committed task and publishes it.
func (s *TaskService) publishDetails(ctx context.Context, kind domain.EventKind, t domain.Task) (domain.TaskDetails, error) {
	fresh, err := s.Store.Tasks().GetTaskByID(ctx, t.ID)
	if err != nil {
		return domain.TaskDetails{}, err
	}
	d, err := taskDetails(ctx, s.Store, fresh, true)
	if err != nil {
		return domain.TaskDetails{}, err
	}
	s.events().Publish(domain.TaskEvent{
		Kind:      kind,
		ProjectID: d.ProjectID,
		TaskID:    d.ID,
		Task:      &d,
	})
	return d, nil
}

// loadMemberTask loads a task and its project and requires userID to be a
// project member.
func loadMemberTask(ctx context.Context, st store.Store, id, userID string) (domain.Task, domain.Project, error) {
	t, err := st.Tasks().GetTaskByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, domain.Project{}, ErrTaskNotFound
		}
		return domain.Task{}, domain.Project{}, err
	}
	p, err := loadMemberProject(ctx, st, t.ProjectID, userID)
	if err != nil {
		return domain.Task{}, domain.Project{}, err
	}
	return t, p, nil
}

func taskDetails(ctx context.Context, st store.Store, t domain.Task, withComments bool) (domain.TaskDetails, error) {
	assignees, err := st.Tasks().ListAssignees(ctx, t.ID)
	if err != nil {
		return domain.TaskDetails{}, err
	}
	d := domain.TaskDetails{Task: t, Assignees: assignees, Comments: []domain.CommentDetails{}}
	if withComments {
		if d.Comments, err = st.Comments().ListForTask(ctx, t.ID); err != nil {
			return domain.TaskDetails{}, err
		}
	}
	return d, nil
}

// checkAssignees dedupes ids and requires each to be a project member.
func checkAssignees(p domain.Project, ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		if !p.HasMember(id) {
			return nil, validationf("assignee %q is not a member of this project", id)
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func parseStatus(s string, fallback domain.TaskStatus) (domain.TaskStatus, error) {
	if strings.TrimSpace(s) == "" && fallback != "" {
		return fallback, nil
	}
	status, ok := domain.ParseTaskStatus(s)
	if !ok {
		return "", validationf("invalid status %q (want todo, in-progress, in-review or done)", s)
	}
	return status, nil
}
