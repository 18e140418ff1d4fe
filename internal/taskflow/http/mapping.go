package http

import (
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
)

func toUser(u domain.User) taskflowsdk.User {
	return taskflowsdk.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toSummary(u domain.UserSummary) taskflowsdk.UserSummary {
	return taskflowsdk.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toSummaries(us []domain.UserSummary) []taskflowsdk.UserSummary {
	out := make([]taskflowsdk.UserSummary, len(us))
	for i, u := range us {
		out[i] = toSummary(u)
	}
	return out
}

func toAuthResponse(u domain.User, p domain.TokenPair) taskflowsdk.AuthResponse {
	return taskflowsdk.AuthResponse{
		User:         toUser(u),
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    int(p.ExpiresIn.Seconds()),
	}
}

func toProject(p domain.Project) taskflowsdk.Project {
	members := p.MemberIDs
	if members == nil {
		members = []string{}
	}
	return taskflowsdk.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		MemberIDs:   members,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjects(ps []domain.Project) []taskflowsdk.Project {
	out := make([]taskflowsdk.Project, len(ps))
	for i, p := range ps {
		out[i] = toProject(p)
	}
	return out
}

func toProjectDetails(d domain.ProjectDetails) taskflowsdk.Project {
	p := toProject(d.Project)
	owner := toSummary(d.Owner)
	p.Owner = &owner
	p.Members = toSummaries(d.Members)
	return p
}

func toTask(d domain.TaskDetails) taskflowsdk.Task {
	t := taskflowsdk.Task{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		Title:       d.Title,
		Description: d.Description,
		Status:      string(d.Status),
		Assignees:   toSummaries(d.Assignees),
		Comments:    make([]taskflowsdk.Comment, len(d.Comments)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for i, c := range d.Comments {
		t.Comments[i] = taskflowsdk.Comment{
			ID:        c.ID,
			Text:      c.Text,
			Author:    toSummary(c.Author),
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		}
	}
	return t
}

func toTasks(ds []domain.TaskDetails) []taskflowsdk.Task {
	out := make([]taskflowsdk.Task, len(ds))
	for i, d := range ds {
		out[i] = toTask(d)
	}
	return out
}

func toInvitation(inv domain.Invitation) taskflowsdk.Invitation {
	return taskflowsdk.Invitation{
		ID:            inv.ID,
		ProjectID:     inv.ProjectID,
		InvitedByID:   inv.InvitedByID,
		InvitedUserID: inv.InvitedUserID,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func toInvitationDetails(ds []domain.InvitationDetails) []taskflowsdk.Invitation {
	out := make([]taskflowsdk.Invitation, len(ds))
	for i, d := range ds {
		inv := toInvitation(d.Invitation)
		inv.Project = &taskflowsdk.ProjectRef{
			ID:          d.ProjectID,
			Name:        d.ProjectName,
			Description: d.ProjectDescription,
		}
		by := toSummary(d.InvitedBy)
		inv.InvitedBy = &by
		out[i] = inv
	}
	return out
}

func toActivities(ds []domain.ActivityDetails) []taskflowsdk.Activity {
	out := make([]taskflowsdk.Activity, len(ds))
	for i, d := range ds {
		meta := map[string]any(d.Meta)
		if meta == nil {
			meta = map[string]any{}
		}
		out[i] = taskflowsdk.Activity{
			ID:        d.ID,
			ProjectID: d.ProjectID,
			Action:    string(d.Action),
			Meta:      meta,
			User:      toSummary(d.User),
			CreatedAt: d.CreatedAt,
		}
	}
	return out
}

// eventPayload is the data of one stream event: the full task, or a
// reference for deletions.
func eventPayload(ev domain.TaskEvent) any {
	if ev.Task != nil {
		return toTask(*ev.Task)
	}
	return taskflowsdk.TaskRef{ID: ev.TaskID, ProjectID: ev.ProjectID}
}
