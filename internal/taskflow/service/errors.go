package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service wraps exactly one of these,
// so the transport layer can pick a status code with errors.Is.
var (
	ErrValidation      = errors.New("validation")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not_found")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream")
)

// Error is a kind plus a message that is safe to show to the caller.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func validationf(format string, args ...any) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

var (
	ErrInvalidCredentials = newError(ErrUnauthenticated, "Invalid email or password")
	ErrInvalidRefresh     = newError(ErrUnauthenticated, "Invalid or expired refresh token")
	ErrInvalidResetToken  = newError(ErrUnauthenticated, "Invalid or expired reset token")
	ErrEmailTaken         = newError(ErrConflict, "User already exists")

	ErrOTPNotFound = newError(ErrNotFound, "OTP not found or expired")
	ErrOTPExpired  = newError(ErrValidation, "OTP expired")
	ErrOTPInvalid  = newError(ErrValidation, "Invalid OTP")
	ErrMailFailed  = newError(ErrUpstream, "Failed to send email")

	ErrUserNotFound       = newError(ErrNotFound, "User not found")
	ErrProjectNotFound    = newError(ErrNotFound, "Project not found")
	ErrTaskNotFound       = newError(ErrNotFound, "Task not found")
	ErrCommentNotFound    = newError(ErrNotFound, "Comment not found")
	ErrInvitationNotFound = newError(ErrNotFound, "Invitation not found")

	ErrNotMember        = newError(ErrForbidden, "You are not a member of this project")
	ErrNotOwner         = newError(ErrForbidden, "Only the project owner can do this")
	ErrNotCommentAuthor = newError(ErrForbidden, "Only the comment author can do this")
	ErrNotInvitee       = newError(ErrForbidden, "This invitation is addressed to another user")

	ErrCannotRemoveOwner   = newError(ErrValidation, "The project owner cannot be removed")
	ErrAlreadyMember       = newError(ErrConflict, "User is already a member of this project")
	ErrInvitationExists    = newError(ErrConflict, "Invitation already exists")
	ErrInvitationProcessed = newError(ErrConflict, "Invitation already processed")
)

// Message returns the caller-safe message of err, or "" when err carries none.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Msg
	}
	return ""
}
