package taskflow_test

import (
	"testing"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
	"github.com/stretchr/testify/require"
)

// TestProjectCollaboration walks two users through a shared project: invite,
// approve, task work, comments and the activity log.
func TestProjectCollaboration(t *testing.T) {
	svc := setupService(t)
	ctx := t.Context()

	owner := svc.register(t, "Owner", "owner@example.com")
	bob := svc.register(t, "Bob", "bob@example.com")

	project, err := owner.CreateProject(ctx, taskflowsdk.CreateProjectRequest{
		Name:        "Launch",
		Description: "Ship it",
	})
	require.NoError(t, err)
	require.Equal(t, owner.User().ID, project.OwnerID)
	require.Equal(t, []string{owner.User().ID}, project.MemberIDs)

	// Outsiders cannot see the project.
	_, err = bob.GetProject(ctx, project.ID)
	require.True(t, taskflowsdk.IsForbidden(err), "got %v", err)

	candidates, err := owner.SearchUsersToInvite(ctx, project.ID, "BOB")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, bob.User().ID, candidates[0].ID)

	inv, err := owner.SendInvitation(ctx, project.ID, bob.User().ID)
	require.NoError(t, err)
	require.Equal(t, "pending", inv.Status)

	_, err = owner.SendInvitation(ctx, project.ID, bob.User().ID)
	require.True(t, taskflowsdk.IsConflict(err), "duplicate pending invitation, got %v", err)

	pending, err := bob.MyInvitations(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Project)
	require.Equal(t, "Launch", pending[0].Project.Name)
	require.NotNil(t, pending[0].InvitedBy)
	require.Equal(t, "Owner", pending[0].InvitedBy.Name)

	// Only the invitee decides.
	_, err = owner.ApproveInvitation(ctx, inv.ID)
	require.True(t, taskflowsdk.IsForbidden(err), "got %v", err)

	approved, err := bob.ApproveInvitation(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, "approved", approved.Status)

	_, err = bob.RejectInvitation(ctx, inv.ID)
	require.Error(t, err, "a decided invitation cannot change")

	project, err = bob.GetProject(ctx, project.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{owner.User().ID, bob.User().ID}, project.MemberIDs)

	// Task work.
	task, err := owner.CreateTask(ctx, project.ID, taskflowsdk.CreateTaskRequest{
		Title:     "Write release notes",
		Assignees: []string{bob.User().ID},
	})
	require.NoError(t, err)
	require.Equal(t, taskflowsdk.StatusTodo, task.Status)
	require.Len(t, task.Assignees, 1)

	_, err = owner.CreateTask(ctx, project.ID, taskflowsdk.CreateTaskRequest{Title: "Tag build"})
	require.NoError(t, err)

	moved, err := bob.MoveTask(ctx, task.ID, "inprogress")
	require.NoError(t, err)
	require.Equal(t, taskflowsdk.StatusInProgress, moved.Status)

	_, err = bob.MoveTask(ctx, task.ID, "blocked")
	require.Error(t, err)
	require.Equal(t, 400, taskflowsdk.StatusCode(err))

	updated, err := owner.UpdateTask(ctx, task.ID, taskflowsdk.UpdateTaskRequest{
		Description: ptr("Cover the API changes"),
	})
	require.NoError(t, err)
	require.Equal(t, "Cover the API changes", updated.Description)
	require.Equal(t, taskflowsdk.StatusInProgress, updated.Status)

	mine, err := owner.ListTasks(ctx, project.ID, taskflowsdk.TaskFilter{Assignee: bob.User().ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)

	found, err := owner.ListTasks(ctx, project.ID, taskflowsdk.TaskFilter{Search: "TAG"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Tag build", found[0].Title)

	// Comments.
	withComment, err := bob.CommentTask(ctx, task.ID, "Draft is up")
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	comment := withComment.Comments[0]
	require.Equal(t, bob.User().ID, comment.Author.ID)

	_, err = owner.EditComment(ctx, task.ID, comment.ID, "Hijacked")
	require.True(t, taskflowsdk.IsForbidden(err), "got %v", err)

	edited, err := bob.EditComment(ctx, task.ID, comment.ID, "Draft is ready for review")
	require.NoError(t, err)
	require.Equal(t, "Draft is ready for review", edited.Comments[0].Text)

	afterDelete, err := bob.DeleteComment(ctx, task.ID, comment.ID)
	require.NoError(t, err)
	require.Empty(t, afterDelete.Comments)

	require.NoError(t, owner.DeleteTask(ctx, task.ID))
	_, err = owner.GetTask(ctx, task.ID)
	require.True(t, taskflowsdk.IsNotFound(err), "got %v", err)

	// The log is newest first.
	activities, err := bob.ListActivities(ctx, project.ID)
	require.NoError(t, err)
	require.NotEmpty(t, activities)
	require.Equal(t, "task_deleted", activities[0].Action)
	require.Equal(t, "project_created", activities[len(activities)-1].Action)

	actions := map[string]bool{}
	for _, a := range activities {
		actions[a.Action] = true
	}
	for _, want := range []string{"invitation_sent", "invitation_approved", "task_created", "task_moved", "task_updated", "task_commented"} {
		require.True(t, actions[want], "missing %s", want)
	}
}

func TestOwnerOnlyProjectOperations(t *testing.T) {
	svc := setupService(t)
	ctx := t.Context()

	owner := svc.register(t, "Owner", "owner@example.com")
	carol := svc.register(t, "Carol", "carol@example.com")

	project, err := owner.CreateProject(ctx, taskflowsdk.CreateProjectRequest{
		Name:    "Roadmap",
		Members: []string{carol.User().ID},
	})
	require.NoError(t, err)
	require.Len(t, project.MemberIDs, 2)

	_, err = carol.UpdateProject(ctx, project.ID, taskflowsdk.UpdateProjectRequest{Name: ptr("Mine now")})
	require.True(t, taskflowsdk.IsForbidden(err), "got %v", err)

	renamed, err := owner.UpdateProject(ctx, project.ID, taskflowsdk.UpdateProjectRequest{Name: ptr("Roadmap 2027")})
	require.NoError(t, err)
	require.Equal(t, "Roadmap 2027", renamed.Name)

	// Nobody can remove the owner.
	err = carol.RemoveMember(ctx, project.ID, owner.User().ID)
	require.Equal(t, 400, taskflowsdk.StatusCode(err))
	err = owner.RemoveMember(ctx, project.ID, owner.User().ID)
	require.Equal(t, 400, taskflowsdk.StatusCode(err))

	require.NoError(t, owner.RemoveMember(ctx, project.ID, carol.User().ID))
	_, err = carol.GetProject(ctx, project.ID)
	require.True(t, taskflowsdk.IsForbidden(err), "got %v", err)

	projects, err := carol.ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, projects)

	require.NoError(t, owner.DeleteProject(ctx, project.ID))
	_, err = owner.GetProject(ctx, project.ID)
	require.True(t, taskflowsdk.IsNotFound(err), "got %v", err)
}
