package sqlite

import (
	"context"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite/gen"
)

type invitationsRepo struct {
	q *gen.Queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		ID:            inv.ID,
		ProjectID:     inv.ProjectID,
		InvitedByID:   inv.InvitedByID,
		InvitedUserID: inv.InvitedUserID,
		Status:        string(inv.Status),
		CreatedAt:     toMillis(inv.CreatedAt),
		UpdatedAt:     toMillis(inv.UpdatedAt),
	})
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByID(ctx, id)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) GetPendingInvitation(ctx context.Context, projectID, userID string) (domain.Invitation, error) {
	row, err := r.q.GetPendingInvitation(ctx, gen.GetPendingInvitationParams{
		ProjectID:     projectID,
		InvitedUserID: userID,
	})
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row), nil
}

func (r *invitationsRepo) TransitionPending(ctx context.Context, id string, status domain.InvitationStatus) error {
	return mapAffected(r.q.TransitionPendingInvitation(ctx, gen.TransitionPendingInvitationParams{
		Status:    string(status),
		UpdatedAt: nowMillis(),
		ID:        id,
	}))
}

func (r *invitationsRepo) ListForUser(
	ctx context.Context,
	userID string,
	status domain.InvitationStatus,
) ([]domain.InvitationDetails, error) {
	rows, err := r.q.ListInvitationsForUser(ctx, gen.ListInvitationsForUserParams{
		InvitedUserID: userID,
		Status:        string(status),
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.InvitationDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.InvitationDetails{
			Invitation: domain.Invitation{
				ID:            row.ID,
				ProjectID:     row.ProjectID,
				InvitedByID:   row.InvitedByID,
				InvitedUserID: row.InvitedUserID,
				Status:        domain.InvitationStatus(row.Status),
				CreatedAt:     fromMillis(row.CreatedAt),
				UpdatedAt:     fromMillis(row.UpdatedAt),
			},
			ProjectName:        row.ProjectName,
			ProjectDescription: row.ProjectDescription,
			InvitedBy: domain.UserSummary{
				ID:    row.InvitedByID,
				Name:  row.InviterName,
				Email: row.InviterEmail,
			},
		})
	}
	return out, nil
}
