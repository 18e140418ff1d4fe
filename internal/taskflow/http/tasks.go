package http

import (
	"net/http"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
)

type TasksHandler struct {
	responder

	TaskService *service.TaskService
}

// HandleCreate adds a task to a project.
//
//	@Summary		Create task
//	@Description	Members only. Status defaults to todo; assignees must be project members.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Project ID"
//	@Param			request	body		taskflowsdk.CreateTaskRequest			true	"Task"
//	@Success		201		{object}	taskflowsdk.Envelope[taskflowsdk.Task]	"Created"
//	@Failure		400		{object}	httpx.Envelope				"Validation failed"
//	@Failure		403		{object}	httpx.Envelope				"Not a member"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id}/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.CreateTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}

	t, err := h.TaskService.Create(r.Context(), r.PathValue("id"), actor(r).UserID, service.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeIDs: req.Assignees,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Task created successfully", toTask(t))
}

// HandleList lists a project's tasks.
//
//	@Summary		List tasks
//	@Tags			Tasks
//	@Produce		json
//	@Param			id			path		string										true	"Project ID"
//	@Param			search		query		string										false	"Substring of title or description"
//	@Param			status		query		string										false	"todo, in-progress, in-review or done"
//	@Param			assignee	query		string										false	"Assignee user ID"
//	@Success		200			{object}	taskflowsdk.Envelope[[]taskflowsdk.Task]	"Tasks"
//	@Failure		403			{object}	httpx.Envelope					"Not a member"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id}/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ts, err := h.TaskService.List(r.Context(), r.PathValue("id"), actor(r).UserID, service.TaskListFilter{
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		AssigneeID: q.Get("assignee"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Tasks fetched successfully", toTasks(ts))
}

// HandleGet returns one task with its comments.
//
//	@Summary		Get task
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path		string									true	"Task ID"
//	@Success		200	{object}	taskflowsdk.Envelope[taskflowsdk.Task]	"Task"
//	@Failure		404	{object}	httpx.Envelope				"Not found"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	t, err := h.TaskService.Get(r.Context(), r.PathValue("id"), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Task fetched successfully", toTask(t))
}

// HandleUpdate applies a partial update. PUT and PATCH behave the same.
//
//	@Summary		Update task
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Task ID"
//	@Param			request	body		taskflowsdk.UpdateTaskRequest			true	"Patch"
//	@Success		200		{object}	taskflowsdk.Envelope[taskflowsdk.Task]	"Updated"
//	@Failure		400		{object}	httpx.Envelope				"Validation failed"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id} [patch].
//	@Router			/v1/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.UpdateTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}

	t, err := h.TaskService.Update(r.Context(), r.PathValue("id"), actor(r).UserID, domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeIDs: req.Assignees,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Task updated successfully", toTask(t))
}

// HandleMove changes a task's status.
//
//	@Summary		Move task
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Task ID"
//	@Param			request	body		taskflowsdk.MoveTaskRequest				true	"Target status"
//	@Success		200		{object}	taskflowsdk.Envelope[taskflowsdk.Task]	"Moved"
//	@Failure		400		{object}	httpx.Envelope				"Unknown status"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id}/move [patch].
func (h *TasksHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.MoveTaskRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}
	t, err := h.TaskService.Move(r.Context(), r.PathValue("id"), actor(r).UserID, req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Task moved successfully", toTask(t))
}

// HandleDelete deletes a task and its comments.
//
//	@Summary		Delete task
//	@Tags			Tasks
//	@Produce		json
//	@Param			id	path		string						true	"Task ID"
//	@Success		200	{object}	httpx.Envelope	"Deleted"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.Delete(r.Context(), r.PathValue("id"), actor(r).UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Task deleted successfully", nil)
}

// HandleComment adds a comment.
//
//	@Summary		Comment on task
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Task ID"
//	@Param			request	body		taskflowsdk.CommentRequest				true	"Comment"
//	@Success		201		{object}	taskflowsdk.Envelope[taskflowsdk.Task]	"Task with the new comment"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id}/comments [post].
func (h *TasksHandler) HandleComment(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.CommentRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}
	t, err := h.TaskService.Comment(r.Context(), r.PathValue("id"), actor(r).UserID, req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Comment added successfully", toTask(t))
}

// HandleEditComment rewrites a comment. Author only.
//
//	@Summary		Edit comment
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string									true	"Task ID"
//	@Param			commentID	path		string									true	"Comment ID"
//	@Param			request		body		taskflowsdk.CommentRequest				true	"New text"
//	@Success		200			{object}	taskflowsdk.Envelope[taskflowsdk.Task]	"Task"
//	@Failure		403			{object}	httpx.Envelope				"Not the author"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id}/comments/{commentID} [patch].
func (h *TasksHandler) HandleEditComment(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.CommentRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}
	t, err := h.TaskService.EditComment(r.Context(), r.PathValue("id"), r.PathValue("commentID"), actor(r).UserID, req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Comment updated successfully", toTask(t))
}

// HandleDeleteComment removes a comment. Author only.
//
//	@Summary		Delete comment
//	@Tags			Comments
//	@Produce		json
//	@Param			id			path		string									true	"Task ID"
//	@Param			commentID	path		string									true	"Comment ID"
//	@Success		200			{object}	taskflowsdk.Envelope[taskflowsdk.Task]	"Task"
//	@Failure		403			{object}	httpx.Envelope				"Not the author"
//	@Security		BearerAuth
//	@Router			/v1/tasks/{id}/comments/{commentID} [delete].
func (h *TasksHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	t, err := h.TaskService.DeleteComment(r.Context(), r.PathValue("id"), r.PathValue("commentID"), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Comment deleted successfully", toTask(t))
}
