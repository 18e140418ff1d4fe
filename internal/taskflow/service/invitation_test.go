package service

import (
	"context"
	"testing"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestInvitationApprove(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")

	p, err := env.projects.Create(ctx, "Roadmap", "", alice.ID, nil)
	require.NoError(t, err)

	inv, err := env.invitations.Send(ctx, p.ID, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPending, inv.Status)

	msg, ok := env.mail.Last()
	require.True(t, ok)
	require.Equal(t, "bob@x.com", msg.To)
	require.Contains(t, msg.HTML, "Roadmap")

	// membership is untouched until approval
	got, err := env.store.Projects().GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, []string{alice.ID}, got.MemberIDs)

	mine, err := env.invitations.ListMine(ctx, bob.ID, domain.InvitationPending)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Roadmap", mine[0].ProjectName)
	require.Equal(t, alice.Summary(), mine[0].InvitedBy)

	approved, err := env.invitations.Approve(ctx, inv.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationApproved, approved.Status)

	got, err = env.store.Projects().GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, []string{alice.ID, bob.ID}, got.MemberIDs)

	_, err = env.invitations.Approve(ctx, inv.ID, bob.ID)
	require.ErrorIs(t, err, ErrInvitationProcessed)

	got, err = env.store.Projects().GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.MemberIDs, 2, "approving again must not duplicate the member")

	log, err := env.activity.ListForProject(ctx, p.ID, Actor{UserID: bob.ID})
	require.NoError(t, err)
	require.Equal(t, domain.ActionInvitationApproved, log[0].Action)
	require.Equal(t, bob.ID, log[0].UserID)
}

func TestInvitationSendRules(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")
	carol := env.register(t, "Carol", "carol@x.com")

	p, err := env.projects.Create(ctx, "Roadmap", "", alice.ID, []string{carol.ID})
	require.NoError(t, err)

	_, err = env.invitations.Send(ctx, p.ID, bob.ID, alice.ID)
	require.NoError(t, err)

	t.Run("one pending per pair", func(t *testing.T) {
		_, err := env.invitations.Send(ctx, p.ID, bob.ID, carol.ID)
		require.ErrorIs(t, err, ErrInvitationExists)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("already a member", func(t *testing.T) {
		_, err := env.invitations.Send(ctx, p.ID, carol.ID, alice.ID)
		require.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("inviter must be a member", func(t *testing.T) {
		_, err := env.invitations.Send(ctx, p.ID, carol.ID, bob.ID)
		require.ErrorIs(t, err, ErrNotMember)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.invitations.Send(ctx, p.ID, idx.New().String(), alice.ID)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := env.invitations.Send(ctx, idx.New().String(), bob.ID, alice.ID)
		require.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestInvitationReject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")

	p, err := env.projects.Create(ctx, "Roadmap", "", alice.ID, nil)
	require.NoError(t, err)
	inv, err := env.invitations.Send(ctx, p.ID, bob.ID, alice.ID)
	require.NoError(t, err)

	_, err = env.invitations.Reject(ctx, inv.ID, alice.ID)
	require.ErrorIs(t, err, ErrNotInvitee)

	rejected, err := env.invitations.Reject(ctx, inv.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationRejected, rejected.Status)

	got, err := env.store.Projects().GetProjectByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, []string{alice.ID}, got.MemberIDs)

	_, err = env.invitations.Approve(ctx, inv.ID, bob.ID)
	require.ErrorIs(t, err, ErrInvitationProcessed)

	_, err = env.invitations.Approve(ctx, idx.New().String(), bob.ID)
	require.ErrorIs(t, err, ErrInvitationNotFound)

	// a rejected invitation no longer blocks a new one
	_, err = env.invitations.Send(ctx, p.ID, bob.ID, alice.ID)
	require.NoError(t, err)

	all, err := env.invitations.ListMine(ctx, bob.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = env.invitations.ListMine(ctx, bob.ID, "maybe")
	require.ErrorIs(t, err, ErrValidation)
}

func TestInvitationMailFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")

	p, err := env.projects.Create(ctx, "Roadmap", "", alice.ID, nil)
	require.NoError(t, err)

	env.mail.Err = ErrUpstream
	inv, err := env.invitations.Send(ctx, p.ID, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotEmpty(t, inv.ID)
}
