package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
)

func TestActivityRecord(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")

	p, err := env.projects.Create(ctx, "Roadmap", "", alice.ID, nil)
	require.NoError(t, err)

	require.NoError(t, env.activity.Record(ctx, p.ID, alice.ID, domain.ActionTaskMoved,
		domain.ActivityMeta{"task_id": "t1", "status": "done"}))
	require.NoError(t, env.activity.Record(ctx, p.ID, alice.ID, domain.ActionTaskDeleted, nil))

	log, err := env.activity.ListForProject(ctx, p.ID, Actor{UserID: alice.ID, Role: domain.RoleMember})
	require.NoError(t, err)

	byAction := make(map[domain.ActivityAction]domain.ActivityDetails, len(log))
	for _, e := range log {
		byAction[e.Action] = e
	}
	require.Contains(t, byAction, domain.ActionProjectCreated)

	moved, ok := byAction[domain.ActionTaskMoved]
	require.True(t, ok)
	require.Equal(t, p.ID, moved.ProjectID)
	require.Equal(t, "t1", moved.Meta["task_id"])
	require.Equal(t, "done", moved.Meta["status"])
	require.Equal(t, "Alice", moved.User.Name)

	deleted, ok := byAction[domain.ActionTaskDeleted]
	require.True(t, ok)
	require.Empty(t, deleted.Meta)

	_, err = env.activity.ListForProject(ctx, p.ID, Actor{UserID: bob.ID, Role: domain.RoleMember})
	require.ErrorIs(t, err, ErrNotMember)
}
