package http

import (
	"net/http"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
)

type InvitationsHandler struct {
	responder

	InvitationService *service.InvitationService
}

// HandleSend invites a user to a project.
//
//	@Summary		Send invitation
//	@Description	Members only. Fails when the user is already a member or has a pending invitation.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskflowsdk.SendInvitationRequest				true	"Invitation"
//	@Success		201		{object}	taskflowsdk.Envelope[taskflowsdk.Invitation]	"Sent"
//	@Failure		409		{object}	httpx.Envelope						"Already member or invited"
//	@Security		BearerAuth
//	@Router			/v1/invitations/send [post].
func (h *InvitationsHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req taskflowsdk.SendInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		h.badBody(w, err)
		return
	}
	inv, err := h.InvitationService.Send(r.Context(), req.ProjectID, req.InvitedUserID, actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, "Invitation sent successfully", toInvitation(inv))
}

// HandleMine lists invitations addressed to the caller.
//
//	@Summary		My invitations
//	@Tags			Invitations
//	@Produce		json
//	@Param			status	query		string											false	"pending, approved or rejected"
//	@Success		200		{object}	taskflowsdk.Envelope[[]taskflowsdk.Invitation]	"Invitations"
//	@Security		BearerAuth
//	@Router			/v1/invitations/mine [get].
func (h *InvitationsHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	status := domain.InvitationStatus(r.URL.Query().Get("status"))
	invs, err := h.InvitationService.ListMine(r.Context(), actor(r).UserID, status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Invitations fetched successfully", toInvitationDetails(invs))
}

// HandleApprove accepts an invitation and joins the project.
//
//	@Summary		Approve invitation
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string											true	"Invitation ID"
//	@Success		200	{object}	taskflowsdk.Envelope[taskflowsdk.Invitation]	"Approved"
//	@Failure		403	{object}	httpx.Envelope						"Not the invitee"
//	@Failure		409	{object}	httpx.Envelope						"Already processed"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/approve [patch].
func (h *InvitationsHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	inv, err := h.InvitationService.Approve(r.Context(), r.PathValue("id"), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Invitation approved", toInvitation(inv))
}

// HandleReject declines an invitation.
//
//	@Summary		Reject invitation
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string											true	"Invitation ID"
//	@Success		200	{object}	taskflowsdk.Envelope[taskflowsdk.Invitation]	"Rejected"
//	@Failure		403	{object}	httpx.Envelope						"Not the invitee"
//	@Failure		409	{object}	httpx.Envelope						"Already processed"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/reject [patch].
func (h *InvitationsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	inv, err := h.InvitationService.Reject(r.Context(), r.PathValue("id"), actor(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Invitation rejected", toInvitation(inv))
}

type ActivitiesHandler struct {
	responder

	ActivityService *service.ActivityService
}

// ServeHTTP lists a project's activity log, newest first.
//
//	@Summary		Project activity
//	@Description	Members only; admins may read any log, including that of a deleted project.
//	@Tags			Activities
//	@Produce		json
//	@Param			projectID	path		string										true	"Project ID"
//	@Success		200			{object}	taskflowsdk.Envelope[[]taskflowsdk.Activity]	"Entries"
//	@Failure		403			{object}	httpx.Envelope					"Not a member"
//	@Security		BearerAuth
//	@Router			/v1/activities/{projectID} [get].
func (h *ActivitiesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries, err := h.ActivityService.ListForProject(r.Context(), r.PathValue("projectID"), actor(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, "Activities fetched successfully", toActivities(entries))
}
