package service

import (
	"context"
	"errors"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
)

type ActivityService struct {
	Store store.Store
}

// Record appends an entry to the project's log.
func (s *ActivityService) Record(
	ctx context.Context,
	projectID, userID string,
	action domain.ActivityAction,
	meta domain.ActivityMeta,
) error {
	return record(ctx, s.Store, projectID, userID, action, meta)
}

// ListForProject returns the project's log newest first. Members may read
// their project's log and admins may read any, deleted projects included.
func (s *ActivityService) ListForProject(ctx context.Context, projectID string, actor Actor) ([]domain.ActivityDetails, error) {
	if !actor.IsAdmin() {
		p, err := s.Store.Projects().GetProjectByID(ctx, projectID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, err
		}
		if !p.HasMember(actor.UserID) {
			return nil, ErrNotMember
		}
	}
	return s.Store.Activities().ListForProject(ctx, projectID)
}

// record writes through st so callers can log inside their transaction.
func record(
	ctx context.Context,
	st store.Store,
	projectID, userID string,
	action domain.ActivityAction,
	meta domain.ActivityMeta,
) error {
	return st.Activities().CreateActivity(ctx, domain.ActivityEntry{
		ID:        idx.New().String(),
		ProjectID: projectID,
		UserID:    userID,
		Action:    action,
		Meta:      meta,
		CreatedAt: time.Now().UTC(),
	})
}
