package domain

import "time"

type ActivityAction string

// Activity actions and the shape of the meta each one records.
const (
	ActionProjectCreated     ActivityAction = "project_created"     // {name}
	ActionProjectUpdated     ActivityAction = "project_updated"     // the raw patch as sent
	ActionProjectDeleted     ActivityAction = "project_deleted"     // {name}
	ActionMemberRemoved      ActivityAction = "member_removed"      // {member_id}
	ActionInvitationSent     ActivityAction = "invitation_sent"     // {invitation_id, invited_user_id}
	ActionInvitationApproved ActivityAction = "invitation_approved" // {invitation_id}
	ActionInvitationRejected ActivityAction = "invitation_rejected" // {invitation_id}
	ActionTaskCreated        ActivityAction = "task_created"        // {task_id, title}
	ActionTaskUpdated        ActivityAction = "task_updated"        // {task_id, title}
	ActionTaskMoved          ActivityAction = "task_moved"          // {task_id, status}
	ActionTaskCommented      ActivityAction = "task_commented"      // {task_id, comment_id}
	ActionCommentEdited      ActivityAction = "comment_edited"      // {task_id, comment_id}
	ActionCommentDeleted     ActivityAction = "comment_deleted"     // {task_id, comment_id}
	ActionTaskDeleted        ActivityAction = "task_deleted"        // {task_id, title}
)

// ActivityMeta is the JSON object stored alongside an entry.
type ActivityMeta map[string]any

// ActivityEntry is an append-only audit record. ProjectID is kept even after
// the project is deleted.
type ActivityEntry struct {
	ID        string
	ProjectID string
	UserID    string
	Action    ActivityAction
	Meta      ActivityMeta
	CreatedAt time.Time
}

// ActivityDetails is an entry with its actor resolved. User is zero when the
// actor no longer exists.
type ActivityDetails struct {
	ActivityEntry
	User UserSummary
}
