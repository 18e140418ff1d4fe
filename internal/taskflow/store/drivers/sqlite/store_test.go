package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedUser(t *testing.T, st *Store, name, email string) domain.User {
	t.Helper()
	now := time.Now()
	u := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Role:         domain.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	seedUser(t, st, "Alice", "alice@example.com")

	dup := domain.User{ID: idx.New().String(), Name: "Other", Email: "alice@example.com", PasswordHash: "x", Role: domain.RoleMember}
	err := st.Users().CreateUser(context.Background(), dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestProjectDeleteCascades(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	other := seedUser(t, st, "Other", "other@example.com")

	now := time.Now()
	p := domain.Project{ID: idx.New().String(), Name: "P", OwnerID: owner.ID, MemberIDs: []string{owner.ID}, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Projects().CreateProject(ctx, p))

	task := domain.Task{ID: idx.New().String(), ProjectID: p.ID, Title: "T", Status: domain.TaskTodo, AssigneeIDs: []string{owner.ID}, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Tasks().CreateTask(ctx, task))

	inv := domain.Invitation{ID: idx.New().String(), ProjectID: p.ID, InvitedByID: owner.ID, InvitedUserID: other.ID, Status: domain.InvitationPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Invitations().CreateInvitation(ctx, inv))

	entry := domain.ActivityEntry{ID: idx.New().String(), ProjectID: p.ID, UserID: owner.ID, Action: domain.ActionProjectDeleted, Meta: domain.ActivityMeta{"name": "P"}, CreatedAt: now}
	require.NoError(t, st.Activities().CreateActivity(ctx, entry))

	require.NoError(t, st.Projects().DeleteProject(ctx, p.ID))

	_, err := st.Tasks().GetTaskByID(ctx, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Invitations().GetInvitationByID(ctx, inv.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	entries, err := st.Activities().ListForProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "P", entries[0].Meta["name"])
	require.Equal(t, "Owner", entries[0].User.Name)
}

func TestSinglePendingInvitation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	other := seedUser(t, st, "Other", "other@example.com")

	now := time.Now()
	p := domain.Project{ID: idx.New().String(), Name: "P", OwnerID: owner.ID, MemberIDs: []string{owner.ID}, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Projects().CreateProject(ctx, p))

	first := domain.Invitation{ID: idx.New().String(), ProjectID: p.ID, InvitedByID: owner.ID, InvitedUserID: other.ID, Status: domain.InvitationPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Invitations().CreateInvitation(ctx, first))

	second := first
	second.ID = idx.New().String()
	require.ErrorIs(t, st.Invitations().CreateInvitation(ctx, second), store.ErrAlreadyExists)

	require.NoError(t, st.Invitations().TransitionPending(ctx, first.ID, domain.InvitationRejected))
	require.ErrorIs(t, st.Invitations().TransitionPending(ctx, first.ID, domain.InvitationApproved), store.ErrNotFound)

	// A processed invitation no longer blocks a new one.
	require.NoError(t, st.Invitations().CreateInvitation(ctx, second))
}

func TestListTasksFilters(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")

	base := time.Now()
	p := domain.Project{ID: idx.New().String(), Name: "P", OwnerID: owner.ID, MemberIDs: []string{owner.ID, bob.ID}, CreatedAt: base, UpdatedAt: base}
	require.NoError(t, st.Projects().CreateProject(ctx, p))

	mk := func(title, desc string, status domain.TaskStatus, offset time.Duration, assignees ...string) domain.Task {
		task := domain.Task{ID: idx.New().String(), ProjectID: p.ID, Title: title, Description: desc, Status: status, AssigneeIDs: assignees, CreatedAt: base.Add(offset), UpdatedAt: base.Add(offset)}
		require.NoError(t, st.Tasks().CreateTask(ctx, task))
		return task
	}
	login := mk("Fix Login", "", domain.TaskTodo, time.Second, bob.ID)
	mk("Docs", "mention LOGIN flow", domain.TaskDone, 2*time.Second)
	mk("Other", "", domain.TaskTodo, 3*time.Second)
	eclair := mk("Éclair recipe", "", domain.TaskTodo, 4*time.Second)

	all, err := st.Tasks().ListByProject(ctx, p.ID, domain.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	require.Equal(t, "Éclair recipe", all[0].Title)

	for _, q := range []string{"Éclair", "éclair", "ÉCLAIR", "clair"} {
		found, err := st.Tasks().ListByProject(ctx, p.ID, domain.TaskFilter{Search: q})
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		require.Equal(t, eclair.ID, found[0].ID)
	}

	found, err := st.Tasks().ListByProject(ctx, p.ID, domain.TaskFilter{Search: "LoGiN"})
	require.NoError(t, err)
	require.Len(t, found, 2)

	found, err = st.Tasks().ListByProject(ctx, p.ID, domain.TaskFilter{Search: "login", Status: domain.TaskTodo, AssigneeID: bob.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, login.ID, found[0].ID)
	require.Equal(t, []string{bob.ID}, found[0].AssigneeIDs)

	// Removing a member strips them from assignee sets.
	require.NoError(t, st.Projects().RemoveMember(ctx, p.ID, bob.ID))
	got, err := st.Tasks().GetTaskByID(ctx, login.ID)
	require.NoError(t, err)
	require.Empty(t, got.AssigneeIDs)
}

func TestSearchNotInProject(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	owner := seedUser(t, st, "Owner", "owner@example.com")
	member := seedUser(t, st, "Ann Member", "ann@example.com")
	outsider := seedUser(t, st, "Annabel", "annabel@example.com")
	emile := seedUser(t, st, "Émile Zola", "zola@example.com")

	now := time.Now()
	p := domain.Project{ID: idx.New().String(), Name: "P", OwnerID: owner.ID, MemberIDs: []string{owner.ID, member.ID}, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Projects().CreateProject(ctx, p))

	found, err := st.Users().SearchNotInProject(ctx, p.ID, owner.ID, "ann", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, outsider.ID, found[0].ID)

	for _, q := range []string{"émile", "ÉMILE", "Émile"} {
		found, err = st.Users().SearchNotInProject(ctx, p.ID, owner.ID, q, 20)
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		require.Equal(t, emile.ID, found[0].ID)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	u := seedUser(t, st, "Alice", "alice@example.com")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().UpdateName(ctx, u.ID, "Changed"))
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)
}
