package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/mailer"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

// SearchLimit caps SearchUsersToInvite results.
const SearchLimit = 20

type ProjectService struct {
	Store  store.Store
	Mailer mailer.Sender
}

// Create makes ownerID the owner of a new project. The owner is always a
// member, whether or not initialMembers lists them.
func (s *ProjectService) Create(
	ctx context.Context,
	name, description, ownerID string,
	initialMembers []string,
) (domain.Project, error) {
	name, err := validateText("name", name)
	if err != nil {
		return domain.Project{}, err
	}

	members := []string{ownerID}
	seen := map[string]bool{ownerID: true}
	for _, id := range initialMembers {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		members = append(members, id)
	}

	now := time.Now().UTC()
	p := domain.Project{
		ID:          idx.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
		MemberIDs:   members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, id := range members {
			if _, err := tx.Users().GetUserByID(ctx, id); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return validationf("unknown member %q", id)
				}
				return err
			}
		}
		if err := tx.Projects().CreateProject(ctx, p); err != nil {
			return err
		}
		return record(ctx, tx, p.ID, ownerID, domain.ActionProjectCreated, domain.ActivityMeta{"name": p.Name})
	})
	if err != nil {
		return domain.Project{}, err
	}

	slogx.FromContext(ctx).Info("project created", slog.String("project_id", p.ID))
	return p, nil
}

// List returns the projects userID belongs to, newest first.
func (s *ProjectService) List(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.Store.Projects().ListProjectsForMember(ctx, userID)
}

// Get resolves owner and members for display. Only members may read it.
func (s *ProjectService) Get(ctx context.Context, id, actorID string) (domain.ProjectDetails, error) {
	p, err := loadMemberProject(ctx, s.Store, id, actorID)
	if err != nil {
		return domain.ProjectDetails{}, err
	}
	return s.details(ctx, p)
}

// RequireMember fails unless userID belongs to the project.
func (s *ProjectService) RequireMember(ctx context.Context, id, userID string) error {
	_, err := loadMemberProject(ctx, s.Store, id, userID)
	return err
}

func (s *ProjectService) details(ctx context.Context, p domain.Project) (domain.ProjectDetails, error) {
	members, err := s.Store.Projects().ListMembers(ctx, p.ID)
	if err != nil {
		return domain.ProjectDetails{}, err
	}
	d := domain.ProjectDetails{Project: p, Members: members}
	for _, m := range members {
		if m.ID == p.OwnerID {
			d.Owner = m
		}
	}
	return d, nil
}

// Update merges patch into the project. raw is the patch as the caller sent
// it and is kept verbatim in the activity log.
func (s *ProjectService) Update(
	ctx context.Context,
	id, actorID string,
	patch domain.ProjectPatch,
	raw map[string]any,
) (domain.ProjectDetails, error) {
	var updated domain.Project
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := loadProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if p.OwnerID != actorID {
			if !p.HasMember(actorID) {
				return ErrNotMember
			}
			return ErrNotOwner
		}

		if patch.Name != nil {
			name, err := validateText("name", *patch.Name)
			if err != nil {
				return err
			}
			p.Name = name
		}
		if patch.Description != nil {
			p.Description = strings.TrimSpace(*patch.Description)
		}
		p.UpdatedAt = time.Now().UTC()

		if err := tx.Projects().UpdateProject(ctx, p); err != nil {
			return err
		}

		meta := domain.ActivityMeta(raw)
		if meta == nil {
			meta = domain.ActivityMeta{}
		}
		if err := record(ctx, tx, p.ID, actorID, domain.ActionProjectUpdated, meta); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return domain.ProjectDetails{}, err
	}
	return s.details(ctx, updated)
}

// Delete removes the project with its tasks and invitations. The activity
// log is kept and gains a project_deleted entry.
func (s *ProjectService) Delete(ctx context.Context, id, actorID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := loadProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if p.OwnerID != actorID {
			if !p.HasMember(actorID) {
				return ErrNotMember
			}
			return ErrNotOwner
		}
		if err := tx.Projects().DeleteProject(ctx, id); err != nil {
			return err
		}
		return record(ctx, tx, id, actorID, domain.ActionProjectDeleted, domain.ActivityMeta{"name": p.Name})
	})
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("project deleted", slog.String("project_id", id))
	return nil
}

// SearchUsersToInvite matches query against name and email, leaving out
// current members and the requester.
func (s *ProjectService) SearchUsersToInvite(ctx context.Context, projectID, query, requesterID string) ([]domain.UserSummary, error) {
	if _, err := loadMemberProject(ctx, s.Store, projectID, requesterID); err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []domain.UserSummary{}, nil
	}
	return s.Store.Users().SearchNotInProject(ctx, projectID, requesterID, query, SearchLimit)
}

// RemoveMember takes memberID out of the project and off every task in it.
// The owner may remove anyone but themselves; members may only leave.
func (s *ProjectService) RemoveMember(ctx context.Context, projectID, memberID, actorID string) error {
	l := slogx.FromContext(ctx)

	var (
		project domain.Project
		member  domain.User
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := loadProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		if !p.HasMember(actorID) {
			return ErrNotMember
		}
		if memberID == p.OwnerID {
			return ErrCannotRemoveOwner
		}
		if actorID != p.OwnerID && actorID != memberID {
			return ErrNotOwner
		}
		if !p.HasMember(memberID) {
			return newError(ErrNotFound, "User is not a member of this project")
		}

		member, err = loadUser(ctx, tx, memberID)
		if err != nil {
			return err
		}
		if err := tx.Projects().RemoveMember(ctx, projectID, memberID); err != nil {
			return err
		}
		project = p
		return record(ctx, tx, projectID, actorID, domain.ActionMemberRemoved, domain.ActivityMeta{"member_id": memberID})
	})
	if err != nil {
		return err
	}

	l.Info("member removed", slog.String("project_id", projectID), slog.String("member_id", memberID))

	msg, err := removalMail(member.Email, member.Name, project.Name)
	if err == nil {
		err = s.Mailer.Send(ctx, msg)
	}
	if err != nil {
		l.Warn("failed to send removal mail", slog.String("member_id", memberID), slogx.Err(err))
	}
	return nil
}
