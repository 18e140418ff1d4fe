package taskflowsdk

import (
	"encoding/json"
	"time"
)

// Envelope wraps every API response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`

	// Error carries failure detail outside production deployments.
	Error string `json:"error,omitempty"`
}

// ============================================================================
// Users & auth
// ============================================================================

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is how other resources embed a user.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login. The refresh token is also
// set as an HttpOnly cookie.
type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // seconds
}

// RefreshRequest is optional; browsers send the cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPResponse struct {
	ResetToken string `json:"resetToken"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// ============================================================================
// Projects
// ============================================================================

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OwnerID     string        `json:"ownerId"`
	MemberIDs   []string      `json:"memberIds"`
	Owner       *UserSummary  `json:"owner,omitempty"`
	Members     []UserSummary `json:"members,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     []string `json:"members,omitempty"`
}

// UpdateProjectRequest is a merge patch; nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ============================================================================
// Tasks
// ============================================================================

// Task statuses. Legacy spellings such as "inprogress" are accepted on input.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusInReview   = "in-review"
	StatusDone       = "done"
)

type Task struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"projectId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Assignees   []UserSummary `json:"assignees"`
	Comments    []Comment     `json:"comments,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Comment struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
	Assignees   []string `json:"assignees,omitempty"`
}

// UpdateTaskRequest is a partial update; nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Assignees   *[]string `json:"assignees,omitempty"`
}

type MoveTaskRequest struct {
	Status string `json:"status"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

// TaskFilter narrows ListTasks. Empty fields do not filter.
type TaskFilter struct {
	Search   string
	Status   string
	Assignee string
}

// ============================================================================
// Invitations
// ============================================================================

type Invitation struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"projectId"`
	InvitedByID   string       `json:"invitedById"`
	InvitedUserID string       `json:"invitedUserId"`
	Status        string       `json:"status"`
	Project       *ProjectRef  `json:"project,omitempty"`
	InvitedBy     *UserSummary `json:"invitedBy,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type ProjectRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SendInvitationRequest struct {
	ProjectID     string `json:"projectId"`
	InvitedUserID string `json:"invitedUserId"`
}

// ============================================================================
// Activity & events
// ============================================================================

type Activity struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"projectId"`
	Action    string         `json:"action"`
	Meta      map[string]any `json:"meta"`
	User      UserSummary    `json:"user"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Event kinds on the real-time stream.
const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)

// Event is one message from the real-time stream. Data holds a Task for
// created and updated events and a TaskRef for deletions.
type Event struct {
	Kind string
	Data json.RawMessage
}

type TaskRef struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
}

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
