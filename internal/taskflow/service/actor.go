package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
)

// Actor is the authenticated user a service call acts on behalf of.
type Actor struct {
	UserID string
	Role   domain.Role
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

const (
	minNameLength     = 2
	minPasswordLength = 6
	maxTextLength     = 10_000
)

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLength {
		return "", validationf("name must be at least %d characters", minNameLength)
	}
	return name, nil
}

func validateEmail(email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", validationf("Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationf("email must be a valid email")
	}
	return email, nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return validationf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func validateText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", validationf("%s is required", field)
	}
	if len(s) > maxTextLength {
		return "", validationf("%s is too long", field)
	}
	return s, nil
}

// loadProject maps a missing project onto ErrProjectNotFound.
func loadProject(ctx context.Context, st store.Store, id string) (domain.Project, error) {
	p, err := st.Projects().GetProjectByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Project{}, ErrProjectNotFound
	}
	return p, err
}

// loadMemberProject loads a project and requires userID to be a member.
func loadMemberProject(ctx context.Context, st store.Store, id, userID string) (domain.Project, error) {
	p, err := loadProject(ctx, st, id)
	if err != nil {
		return domain.Project{}, err
	}
	if !p.HasMember(userID) {
		return domain.Project{}, ErrNotMember
	}
	return p, nil
}

func loadUser(ctx context.Context, st store.Store, id string) (domain.User, error) {
	u, err := st.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}
