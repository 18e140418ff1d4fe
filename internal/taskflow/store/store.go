package store

import (
	"context"
	"errors"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories, so a transaction scoped Store hands out the same
// repositories bound to the transaction.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	PasswordResetCodes() PasswordResetCodes
	Projects() Projects
	Invitations() Invitations
	Tasks() Tasks
	Comments() Comments
	Activities() Activities

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail expects an already normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	UpdateName(ctx context.Context, userID, name string) error
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error
	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	// ListUsers returns every user ordered by creation date.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// SearchNotInProject matches query as a lower-cased substring of name or
	// email, excluding project members and the requester.
	SearchNotInProject(ctx context.Context, projectID, requesterID, query string, limit int) ([]domain.UserSummary, error)

	IsEmpty(ctx context.Context) (bool, error)
}

type RefreshTokens interface {
	// UpsertRefreshToken replaces the user's single refresh token row.
	UpsertRefreshToken(ctx context.Context, t domain.RefreshToken) error

	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteRefreshTokenByHash is a no-op when no row matches.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	DeleteUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens returns the number of rows removed.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type PasswordResetCodes interface {
	// UpsertCode replaces any code already issued for the email.
	UpsertCode(ctx context.Context, c domain.PasswordResetCode) error
	GetCodeByEmail(ctx context.Context, email string) (domain.PasswordResetCode, error)
	DeleteCodesByEmail(ctx context.Context, email string) error
	DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error)
}

type Projects interface {
	// CreateProject inserts the project and every id in p.MemberIDs as a member.
	CreateProject(ctx context.Context, p domain.Project) error

	// GetProjectByID returns the project with MemberIDs populated.
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)

	// ListProjectsForMember returns projects the user belongs to, newest first.
	ListProjectsForMember(ctx context.Context, userID string) ([]domain.Project, error)

	// UpdateProject writes name and description and bumps updated_at.
	UpdateProject(ctx context.Context, p domain.Project) error

	// DeleteProject cascades to members, invitations and tasks.
	DeleteProject(ctx context.Context, id string) error

	// AddMember is a no-op when the user is already a member.
	AddMember(ctx context.Context, projectID, userID string) error

	// RemoveMember also strips the user from the assignees of the project's tasks.
	RemoveMember(ctx context.Context, projectID, userID string) error

	IsMember(ctx context.Context, projectID, userID string) (bool, error)
	ListMembers(ctx context.Context, projectID string) ([]domain.UserSummary, error)
}

type Invitations interface {
	// CreateInvitation returns ErrAlreadyExists when a pending invitation for
	// the same project and user exists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)
	GetPendingInvitation(ctx context.Context, projectID, userID string) (domain.Invitation, error)

	// TransitionPending moves a pending invitation to status. It returns
	// ErrNotFound when the invitation is no longer pending.
	TransitionPending(ctx context.Context, id string, status domain.InvitationStatus) error

	// ListForUser returns invitations addressed to the user, newest first.
	// An empty status does not filter.
	ListForUser(ctx context.Context, userID string, status domain.InvitationStatus) ([]domain.InvitationDetails, error)
}

type Tasks interface {
	// CreateTask inserts the task and its ordered assignees.
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTaskByID returns the task with AssigneeIDs populated.
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// UpdateTask overwrites every mutable field including the assignee set.
	UpdateTask(ctx context.Context, t domain.Task) error

	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error

	// Touch bumps updated_at, used when comments change.
	Touch(ctx context.Context, id string) error

	DeleteTask(ctx context.Context, id string) error

	// ListByProject returns tasks newest first with AssigneeIDs populated.
	ListByProject(ctx context.Context, projectID string, filter domain.TaskFilter) ([]domain.Task, error)

	ListAssignees(ctx context.Context, taskID string) ([]domain.UserSummary, error)
}

type Comments interface {
	CreateComment(ctx context.Context, c domain.Comment) error

	// GetComment scopes the lookup to the task.
	GetComment(ctx context.Context, taskID, commentID string) (domain.Comment, error)

	UpdateText(ctx context.Context, commentID, text string) error
	DeleteComment(ctx context.Context, commentID string) error

	// ListForTask returns comments oldest first with authors resolved.
	ListForTask(ctx context.Context, taskID string) ([]domain.CommentDetails, error)
}

type Activities interface {
	CreateActivity(ctx context.Context, e domain.ActivityEntry) error

	// ListForProject returns entries newest first with actors resolved.
	ListForProject(ctx context.Context, projectID string) ([]domain.ActivityDetails, error)
}
