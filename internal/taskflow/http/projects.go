package http

import (
	"encoding/json"
	"net/http"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
)

type ProjectsHandler struct {
	responder

	ProjectService *service.ProjectService
}

// HandleCreate creates a project owned by the caller.
//
//	@Summary		Create project
//	@Description	Creates a project owned by the caller. Listed members are added directly and must be existing users.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.CreateProjectRequest				true	"Project"
//	@Success		201		{object}	taskflowsdk.Envelope[taskflowsdk.Project]	"Created"
//	@Failure		400		{object}	httpx.Envelope					"Validation failed"
//	@Security		BearerAuth
//	@Router			/v1/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.CreateProjectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}

	p, err := h.ProjectService.Create(r.Context(), req.Name, req.Description, actor(r).UserID, req.Members)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Project created successfully", toProject(p))
}

// HandleList lists the caller's projects.
//
//	@Summary		List projects
//	@Description	Lists projects the caller owns or belongs to, newest first.
//	@Tags			Projects
//	@Produce		json
//	@Success		200	{object}	taskflowsdk.Envelope[[]taskflowsdk.Project]	"Projects"
//	@Security		BearerAuth
//	@Router			/v1/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.ProjectService.List(r.Context(), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Projects fetched successfully", toProjects(ps))
}

// HandleGet returns a project with its owner and members.
//
//	@Summary		Get project
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string										true	"Project ID"
//	@Success		200	{object}	taskflowsdk.Envelope[taskflowsdk.Project]	"Project"
//	@Failure		403	{object}	httpx.Envelope					"Not a member"
//	@Failure		404	{object}	httpx.Envelope					"Not found"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	d, err := h.ProjectService.Get(r.Context(), r.PathValue("id"), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Project fetched successfully", toProjectDetails(d))
}

// HandleUpdate patches name and description.
//
//	@Summary		Update project
//	@Description	Owner only. Absent fields are left unchanged.
//	@Tags			Projects
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string										true	"Project ID"
//	@Param			request	body		taskflowsdk.UpdateProjectRequest			true	"Patch"
//	@Success		200		{object}	taskflowsdk.Envelope[taskflowsdk.Project]	"Updated"
//	@Failure		403		{object}	httpx.Envelope					"Not the owner"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id} [patch].
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := httpx.DecodeJSON(w, r, &body); err != nil {
		h.badBody(w, err)
		return
	}
	var req taskflowsdk.UpdateProjectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.badBody(w, err)
		return
	}
	// The activity log keeps the patch exactly as sent.
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		h.badBody(w, err)
		return
	}

	d, err := h.ProjectService.Update(r.Context(), r.PathValue("id"), actor(r).UserID,
		domain.ProjectPatch{Name: req.Name, Description: req.Description}, raw)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Project updated successfully", toProjectDetails(d))
}

// HandleDelete deletes a project with its tasks, comments and invitations.
//
//	@Summary		Delete project
//	@Description	Owner only. The activity log of the project is kept.
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string						true	"Project ID"
//	@Success		200	{object}	httpx.Envelope	"Deleted"
//	@Failure		403	{object}	httpx.Envelope	"Not the owner"
//	@Failure		404	{object}	httpx.Envelope	"Not found"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id} [delete].
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ProjectService.Delete(r.Context(), r.PathValue("id"), actor(r).UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Project deleted successfully", nil)
}

// HandleSearchUsers finds users to invite.
//
//	@Summary		Search users to invite
//	@Description	Case-insensitive match on name or email among users who are not members yet.
//	@Tags			Projects
//	@Produce		json
//	@Param			id	path		string											true	"Project ID"
//	@Param			q	query		string											false	"Search text"
//	@Success		200	{object}	taskflowsdk.Envelope[[]taskflowsdk.UserSummary]	"Matches"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id}/search-users [get].
func (h *ProjectsHandler) HandleSearchUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.ProjectService.SearchUsersToInvite(r.Context(), r.PathValue("id"), r.URL.Query().Get("q"), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Users fetched successfully", toSummaries(users))
}

// HandleRemoveMember removes a member, or lets a member leave.
//
//	@Summary		Remove member
//	@Description	The owner may remove any member but themselves. A member may remove only themselves.
//	@Tags			Projects
//	@Produce		json
//	@Param			id		path		string						true	"Project ID"
//	@Param			userID	path		string						true	"Member user ID"
//	@Success		200		{object}	httpx.Envelope	"Removed"
//	@Failure		400		{object}	httpx.Envelope	"Owner cannot be removed"
//	@Failure		403		{object}	httpx.Envelope	"Not allowed"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id}/members/{userID} [delete].
func (h *ProjectsHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.ProjectService.RemoveMember(r.Context(), r.PathValue("id"), r.PathValue("userID"), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Member removed successfully", nil)
}
