package sqlite

import (
	"context"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite/gen"
)

type projectsRepo struct {
	q *gen.Queries
}

// CreateProject issues several statements; callers that need atomicity run it
// inside a transaction.
func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	created := toMillis(p.CreatedAt)
	if err := r.q.CreateProject(ctx, gen.CreateProjectParams{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   created,
		UpdatedAt:   toMillis(p.UpdatedAt),
	}); err != nil {
		return mapConstraint(err)
	}
	for _, userID := range p.MemberIDs {
		if err := r.q.AddProjectMember(ctx, gen.AddProjectMemberParams{
			ProjectID: p.ID,
			UserID:    userID,
			CreatedAt: created,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *projectsRepo) GetProjectByID(ctx context.Context, id string) (domain.Project, error) {
	row, err := r.q.GetProjectByID(ctx, id)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	memberIDs, err := r.q.ListProjectMemberIDs(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}
	return mapProject(row, memberIDs), nil
}

func (r *projectsRepo) ListProjectsForMember(ctx context.Context, userID string) ([]domain.Project, error) {
	rows, err := r.q.ListProjectsForMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		memberIDs, err := r.q.ListProjectMemberIDs(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		projects = append(projects, mapProject(row, memberIDs))
	}
	return projects, nil
}

func (r *projectsRepo) UpdateProject(ctx context.Context, p domain.Project) error {
	return mapAffected(r.q.UpdateProject(ctx, gen.UpdateProjectParams{
		Name:        p.Name,
		Description: p.Description,
		UpdatedAt:   toMillis(p.UpdatedAt),
		ID:          p.ID,
	}))
}

func (r *projectsRepo) DeleteProject(ctx context.Context, id string) error {
	return mapAffected(r.q.DeleteProject(ctx, id))
}

func (r *projectsRepo) AddMember(ctx context.Context, projectID, userID string) error {
	return r.q.AddProjectMember(ctx, gen.AddProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
		CreatedAt: nowMillis(),
	})
}

func (r *projectsRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	if err := mapAffected(r.q.RemoveProjectMember(ctx, gen.RemoveProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	})); err != nil {
		return err
	}
	return r.q.RemoveUserFromProjectAssignees(ctx, gen.RemoveUserFromProjectAssigneesParams{
		UserID:    userID,
		ProjectID: projectID,
	})
}

func (r *projectsRepo) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	n, err := r.q.IsProjectMember(ctx, gen.IsProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (r *projectsRepo) ListMembers(ctx context.Context, projectID string) ([]domain.UserSummary, error) {
	rows, err := r.q.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.UserSummary{ID: row.ID, Name: row.Name, Email: row.Email})
	}
	return out, nil
}
