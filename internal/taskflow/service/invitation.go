package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/mailer"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

type InvitationService struct {
	Store  store.Store
	Mailer mailer.Sender
}

// Send invites invitedUserID to the project. Membership does not change until
// the invitation is approved.
func (s *InvitationService) Send(ctx context.Context, projectID, invitedUserID, invitedByID string) (domain.Invitation, error) {
	l := slogx.FromContext(ctx)
	if projectID == "" || invitedUserID == "" {
		return domain.Invitation{}, validationf("projectId and invitedUserId are required")
	}

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:            idx.New().String(),
		ProjectID:     projectID,
		InvitedByID:   invitedByID,
		InvitedUserID: invitedUserID,
		Status:        domain.InvitationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var (
		project          domain.Project
		inviter, invitee domain.User
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		project, err = loadMemberProject(ctx, tx, projectID, invitedByID)
		if err != nil {
			return err
		}
		if inviter, err = loadUser(ctx, tx, invitedByID); err != nil {
			return err
		}
		if invitee, err = loadUser(ctx, tx, invitedUserID); err != nil {
			return err
		}
		if project.HasMember(invitedUserID) {
			return ErrAlreadyMember
		}

		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrInvitationExists
			}
			return err
		}
		return record(ctx, tx, projectID, invitedByID, domain.ActionInvitationSent, domain.ActivityMeta{
			"invitation_id":   inv.ID,
			"invited_user_id": invitedUserID,
		})
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	l.Info("invitation sent",
		slog.String("invitation_id", inv.ID),
		slog.String("project_id", projectID),
		slog.String("invited_user_id", invitedUserID),
	)

	msg, err := invitationMail(invitee.Email, invitee.Name, inviter.Name, project.Name)
	if err == nil {
		err = s.Mailer.Send(ctx, msg)
	}
	if err != nil {
		l.Warn("failed to send invitation mail", slog.String("invitation_id", inv.ID), slogx.Err(err))
	}
	return inv, nil
}

// ListMine returns invitations addressed to userID, newest first. An empty
// status lists all of them.
func (s *InvitationService) ListMine(ctx context.Context, userID string, status domain.InvitationStatus) ([]domain.InvitationDetails, error) {
	if status != "" && !status.Valid() {
		return nil, validationf("unknown invitation status %q", status)
	}
	return s.Store.Invitations().ListForUser(ctx, userID, status)
}

// Approve accepts the invitation and adds the invitee to the project.
func (s *InvitationService) Approve(ctx context.Context, id, actorID string) (domain.Invitation, error) {
	return s.transition(ctx, id, actorID, domain.InvitationApproved)
}

// Reject declines the invitation. Membership is unaffected.
func (s *InvitationService) Reject(ctx context.Context, id, actorID string) (domain.Invitation, error) {
	return s.transition(ctx, id, actorID, domain.InvitationRejected)
}

func (s *InvitationService) transition(
	ctx context.Context,
	id, actorID string,
	to domain.InvitationStatus,
) (domain.Invitation, error) {
	action := domain.ActionInvitationRejected
	if to == domain.InvitationApproved {
		action = domain.ActionInvitationApproved
	}

	var inv domain.Invitation
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		inv, err = tx.Invitations().GetInvitationByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationNotFound
			}
			return err
		}
		if inv.InvitedUserID != actorID {
			return ErrNotInvitee
		}
		if inv.Status != domain.InvitationPending {
			return ErrInvitationProcessed
		}

		if err := tx.Invitations().TransitionPending(ctx, id, to); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationProcessed
			}
			return err
		}
		if to == domain.InvitationApproved {
			if err := tx.Projects().AddMember(ctx, inv.ProjectID, inv.InvitedUserID); err != nil {
				return err
			}
		}
		if err := record(ctx, tx, inv.ProjectID, actorID, action, domain.ActivityMeta{"invitation_id": inv.ID}); err != nil {
			return err
		}

		inv, err = tx.Invitations().GetInvitationByID(ctx, id)
		return err
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	slogx.FromContext(ctx).Info("invitation "+string(to),
		slog.String("invitation_id", id),
		slog.String("project_id", inv.ProjectID),
	)
	return inv, nil
}
