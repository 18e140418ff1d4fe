package http

import (
	"errors"
	"net/http"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

// responder writes failure envelopes. Detail adds the underlying error text
// to each failure and must stay off in production.
type responder struct {
	Detail bool
}

// statusFor maps a service error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := service.Message(err)
	if code == http.StatusInternalServerError || msg == "" {
		slogx.FromContext(r.Context()).Error("request failed", slogx.Err(err))
		msg = "Internal server error"
	} else if code == http.StatusBadGateway {
		slogx.FromContext(r.Context()).Warn("upstream failure", slogx.Err(err))
	}

	detail := ""
	if rs.Detail {
		detail = err.Error()
	}
	httpx.WriteError(w, code, msg, detail)
}

func (rs responder) badBody(w http.ResponseWriter, err error) {
	detail := ""
	if rs.Detail {
		detail = err.Error()
	}
	httpx.WriteError(w, http.StatusBadRequest, "Invalid request body", detail)
}

// actor is the caller set by the authentication middleware. Routes that call
// it are always behind httpx.AuthnMiddleware.
func actor(r *http.Request) service.Actor {
	id, _ := httpx.IdentityFromContext(r.Context())
	return service.Actor{UserID: id.UserID, Role: domain.Role(id.Role)}
}
