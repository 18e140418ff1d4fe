package domain

import "time"

type Project struct {
	ID          string
	Name        string
	Description string
	OwnerID     string   // immutable after creation
	MemberIDs   []string // always contains OwnerID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasMember reports whether userID belongs to the project.
func (p Project) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ProjectDetails is a project with owner and members resolved for display.
type ProjectDetails struct {
	Project
	Owner   UserSummary
	Members []UserSummary
}

// ProjectPatch carries the mutable fields of a project. Nil means unchanged.
type ProjectPatch struct {
	Name        *string
	Description *string
}
