package domain

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationApproved InvitationStatus = "approved"
	InvitationRejected InvitationStatus = "rejected"
)

// Valid reports whether s is a known invitation status.
func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationPending, InvitationApproved, InvitationRejected:
		return true
	}
	return false
}

// Invitation moves pending -> approved | rejected exactly once.
type Invitation struct {
	ID            string
	ProjectID     string
	InvitedByID   string
	InvitedUserID string
	Status        InvitationStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvitationDetails resolves the project and inviter for the invitee's inbox.
type InvitationDetails struct {
	Invitation
	ProjectName        string
	ProjectDescription string
	InvitedBy          UserSummary
}
