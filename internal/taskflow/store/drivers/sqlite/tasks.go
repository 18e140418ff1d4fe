package sqlite

import (
	"context"
	"strings"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite/gen"
)

type tasksRepo struct {
	q *gen.Queries
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	if err := r.q.CreateTask(ctx, gen.CreateTaskParams{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   toMillis(t.CreatedAt),
		UpdatedAt:   toMillis(t.UpdatedAt),
	}); err != nil {
		return mapConstraint(err)
	}
	return r.setAssignees(ctx, t.ID, t.AssigneeIDs)
}

func (r *tasksRepo) setAssignees(ctx context.Context, taskID string, userIDs []string) error {
	for i, userID := range userIDs {
		if err := r.q.AddTaskAssignee(ctx, gen.AddTaskAssigneeParams{
			TaskID:   taskID,
			UserID:   userID,
			Position: int64(i),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *tasksRepo) assigneeIDs(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.q.ListTaskAssignees(ctx, taskID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row, err := r.q.GetTaskByID(ctx, id)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}
	ids, err := r.assigneeIDs(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	return mapTask(row, ids), nil
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	if err := mapAffected(r.q.UpdateTask(ctx, gen.UpdateTaskParams{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		UpdatedAt:   toMillis(t.UpdatedAt),
		ID:          t.ID,
	})); err != nil {
		return err
	}
	if err := r.q.ClearTaskAssignees(ctx, t.ID); err != nil {
		return err
	}
	return r.setAssignees(ctx, t.ID, t.AssigneeIDs)
}

func (r *tasksRepo) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	return mapAffected(r.q.UpdateTaskStatus(ctx, gen.UpdateTaskStatusParams{
		Status:    string(status),
		UpdatedAt: nowMillis(),
		ID:        id,
	}))
}

func (r *tasksRepo) Touch(ctx context.Context, id string) error {
	return r.q.TouchTask(ctx, gen.TouchTaskParams{UpdatedAt: nowMillis(), ID: id})
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	return mapAffected(r.q.DeleteTask(ctx, id))
}

func (r *tasksRepo) ListByProject(ctx context.Context, projectID string, filter domain.TaskFilter) ([]domain.Task, error) {
	rows, err := r.q.ListTasksByProject(ctx, gen.ListTasksByProjectParams{
		ProjectID:  projectID,
		Status:     string(filter.Status),
		AssigneeID: filter.AssigneeID,
		Search:     strings.ToLower(strings.TrimSpace(filter.Search)),
	})
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		ids, err := r.assigneeIDs(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, mapTask(row, ids))
	}
	return tasks, nil
}

func (r *tasksRepo) ListAssignees(ctx context.Context, taskID string) ([]domain.UserSummary, error) {
	rows, err := r.q.ListTaskAssignees(ctx, taskID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.UserSummary{ID: row.ID, Name: row.Name, Email: row.Email})
	}
	return out, nil
}
