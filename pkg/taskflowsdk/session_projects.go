package taskflowsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (s *Session) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	p, err := call[Project](ctx, s, http.MethodPost, "/v1/projects", req, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Session) ListProjects(ctx context.Context) ([]Project, error) {
	return call[[]Project](ctx, s, http.MethodGet, "/v1/projects", nil, http.StatusOK)
}

func (s *Session) GetProject(ctx context.Context, id string) (*Project, error) {
	p, err := call[Project](ctx, s, http.MethodGet, "/v1/projects/"+url.PathEscape(id), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Session) UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*Project, error) {
	p, err := call[Project](ctx, s, http.MethodPatch, "/v1/projects/"+url.PathEscape(id), req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Session) DeleteProject(ctx context.Context, id string) error {
	_, err := call[any](ctx, s, http.MethodDelete, "/v1/projects/"+url.PathEscape(id), nil, http.StatusOK)
	return err
}

// SearchUsersToInvite lists users outside the project matching query.
func (s *Session) SearchUsersToInvite(ctx context.Context, projectID, query string) ([]UserSummary, error) {
	path := "/v1/projects/" + url.PathEscape(projectID) + "/search-users?q=" + url.QueryEscape(query)
	return call[[]UserSummary](ctx, s, http.MethodGet, path, nil, http.StatusOK)
}

func (s *Session) RemoveMember(ctx context.Context, projectID, userID string) error {
	path := "/v1/projects/" + url.PathEscape(projectID) + "/members/" + url.PathEscape(userID)
	_, err := call[any](ctx, s, http.MethodDelete, path, nil, http.StatusOK)
	return err
}

func (s *Session) ListActivities(ctx context.Context, projectID string) ([]Activity, error) {
	return call[[]Activity](ctx, s, http.MethodGet, "/v1/activities/"+url.PathEscape(projectID), nil, http.StatusOK)
}

// ============================================================================
// Invitations
// ============================================================================

func (s *Session) SendInvitation(ctx context.Context, projectID, invitedUserID string) (*Invitation, error) {
	inv, err := call[Invitation](ctx, s, http.MethodPost, "/v1/invitations/send", SendInvitationRequest{
		ProjectID:     projectID,
		InvitedUserID: invitedUserID,
	}, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MyInvitations lists invitations addressed to the session user. An empty
// status lists all of them.
func (s *Session) MyInvitations(ctx context.Context, status string) ([]Invitation, error) {
	path := "/v1/invitations/mine"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	return call[[]Invitation](ctx, s, http.MethodGet, path, nil, http.StatusOK)
}

func (s *Session) ApproveInvitation(ctx context.Context, id string) (*Invitation, error) {
	return s.decideInvitation(ctx, id, "approve")
}

func (s *Session) RejectInvitation(ctx context.Context, id string) (*Invitation, error) {
	return s.decideInvitation(ctx, id, "reject")
}

func (s *Session) decideInvitation(ctx context.Context, id, decision string) (*Invitation, error) {
	path := "/v1/invitations/" + url.PathEscape(id) + "/" + decision
	inv, err := call[Invitation](ctx, s, http.MethodPatch, path, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
