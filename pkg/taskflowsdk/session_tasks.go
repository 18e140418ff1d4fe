package taskflowsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (s *Session) CreateTask(ctx context.Context, projectID string, req CreateTaskRequest) (*Task, error) {
	t, err := call[Task](ctx, s, http.MethodPost, "/v1/projects/"+url.PathEscape(projectID)+"/tasks", req, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Session) ListTasks(ctx context.Context, projectID string, f TaskFilter) ([]Task, error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Assignee != "" {
		q.Set("assignee", f.Assignee)
	}
	path := "/v1/projects/" + url.PathEscape(projectID) + "/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return call[[]Task](ctx, s, http.MethodGet, path, nil, http.StatusOK)
}

func (s *Session) GetTask(ctx context.Context, id string) (*Task, error) {
	return s.taskCall(ctx, http.MethodGet, taskPath(id), nil)
}

func (s *Session) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) (*Task, error) {
	return s.taskCall(ctx, http.MethodPatch, taskPath(id), req)
}

func (s *Session) MoveTask(ctx context.Context, id, status string) (*Task, error) {
	return s.taskCall(ctx, http.MethodPatch, taskPath(id)+"/move", MoveTaskRequest{Status: status})
}

func (s *Session) DeleteTask(ctx context.Context, id string) error {
	_, err := call[any](ctx, s, http.MethodDelete, taskPath(id), nil, http.StatusOK)
	return err
}

// CommentTask adds a comment and returns the full task.
func (s *Session) CommentTask(ctx context.Context, id, text string) (*Task, error) {
	t, err := call[Task](ctx, s, http.MethodPost, taskPath(id)+"/comments", CommentRequest{Text: text}, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Session) EditComment(ctx context.Context, taskID, commentID, text string) (*Task, error) {
	return s.taskCall(ctx, http.MethodPatch, taskPath(taskID)+"/comments/"+url.PathEscape(commentID), CommentRequest{Text: text})
}

func (s *Session) DeleteComment(ctx context.Context, taskID, commentID string) (*Task, error) {
	return s.taskCall(ctx, http.MethodDelete, taskPath(taskID)+"/comments/"+url.PathEscape(commentID), nil)
}

func (s *Session) taskCall(ctx context.Context, method, path string, body any) (*Task, error) {
	t, err := call[Task](ctx, s, method, path, body, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func taskPath(id string) string {
	return "/v1/tasks/" + url.PathEscape(id)
}
