package sqlite

import (
	"context"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite/gen"
)

type activitiesRepo struct {
	q *gen.Queries
}

func (r *activitiesRepo) CreateActivity(ctx context.Context, e domain.ActivityEntry) error {
	meta, err := encodeMeta(e.Meta)
	if err != nil {
		return err
	}
	return r.q.CreateActivity(ctx, gen.CreateActivityParams{
		ID:        e.ID,
		ProjectID: e.ProjectID,
		UserID:    e.UserID,
		Action:    string(e.Action),
		Meta:      meta,
		CreatedAt: toMillis(e.CreatedAt),
	})
}

func (r *activitiesRepo) ListForProject(ctx context.Context, projectID string) ([]domain.ActivityDetails, error) {
	rows, err := r.q.ListActivitiesForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ActivityDetails, 0, len(rows))
	for _, row := range rows {
		details := domain.ActivityDetails{
			ActivityEntry: domain.ActivityEntry{
				ID:        row.ID,
				ProjectID: row.ProjectID,
				UserID:    row.UserID,
				Action:    domain.ActivityAction(row.Action),
				Meta:      decodeMeta(row.Meta),
				CreatedAt: fromMillis(row.CreatedAt),
			},
		}
		if row.UserName != "" || row.UserEmail != "" {
			details.User = domain.UserSummary{ID: row.UserID, Name: row.UserName, Email: row.UserEmail}
		}
		out = append(out, details)
	}
	return out, nil
}
