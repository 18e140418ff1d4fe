package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/realtime"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"

	_ "github.com/Jaymin-PCA240/Task-Management-BE/api/taskflow" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions tune transport behaviour that is not owned by a service.
type RouterOptions struct {
	// ErrorDetail adds the underlying error to failure envelopes. Keep it off
	// in production.
	ErrorDetail bool

	CookieSecure  bool
	RefreshMaxAge time.Duration

	// Heartbeat is the keep-alive interval of event streams.
	Heartbeat time.Duration
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys     *jwtx.KeySet
	verifier jwtx.Verifier
	store    store.Store
	hub      *realtime.Hub
	logger   *slog.Logger
	opts     RouterOptions

	AuthService          *service.AuthService
	PasswordResetService *service.PasswordResetService
	ProjectService       *service.ProjectService
	InvitationService    *service.InvitationService
	TaskService          *service.TaskService
	ActivityService      *service.ActivityService
}

func NewRouter(
	km *jwtx.KeyManager,
	st store.Store,
	hub *realtime.Hub,
	logger *slog.Logger,
	opts RouterOptions,
) *Router {
	r := &Router{
		Mux:      http.NewServeMux(),
		keys:     km.KeySet,
		verifier: km.Verifier,
		store:    st,
		hub:      hub,
		logger:   logger,
		opts:     opts,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recoverer,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProjects()
	r.registerTasks()
	r.registerInvitations()
	r.registerActivities()
	r.registerEvents()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TaskFlow API
//	@version		1.0.0
//	@description	Project and task collaboration service. Every response is wrapped in an envelope {success, status, message, data}.
//	@description
//	@description				Access tokens are short-lived JWTs; refresh tokens rotate on every use and are also sent as an HttpOnly cookie.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) responder() responder {
	return responder{Detail: r.opts.ErrorDetail}
}

// secured authenticates the caller and applies a per-user rate limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		responder:            r.responder(),
		AuthService:          r.AuthService,
		PasswordResetService: r.PasswordResetService,
		CookieSecure:         r.opts.CookieSecure,
		CookieMaxAge:         r.opts.RefreshMaxAge,
	}

	// Credential endpoints share one strict per-IP limit.
	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.AuthLimit))
	}

	r.Mux.Handle("POST /v1/auth/register", public(h.HandleRegister))
	r.Mux.Handle("POST /v1/auth/login", public(h.HandleLogin))
	r.Mux.Handle("POST /v1/auth/refresh", public(h.HandleRefresh))
	r.Mux.Handle("POST /v1/auth/logout", public(h.HandleLogout))
	r.Mux.Handle("POST /v1/auth/forgot-password", public(h.HandleForgotPassword))
	r.Mux.Handle("POST /v1/auth/verify-otp", public(h.HandleVerifyOTP))
	r.Mux.Handle("POST /v1/auth/reset-password", public(h.HandleResetPassword))

	r.Mux.Handle("GET /v1/auth/me", r.secured(h.HandleMe, httpx.ReadLimit))
	r.Mux.Handle("PUT /v1/auth/update-profile", r.secured(h.HandleUpdateProfile, httpx.WriteLimit))
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{
		responder:      r.responder(),
		ProjectService: r.ProjectService,
	}

	r.Mux.Handle("GET /v1/projects", r.secured(h.HandleList, httpx.ReadLimit))
	r.Mux.Handle("POST /v1/projects", r.secured(h.HandleCreate, httpx.WriteLimit))
	r.Mux.Handle("GET /v1/projects/{id}", r.secured(h.HandleGet, httpx.ReadLimit))
	r.Mux.Handle("PATCH /v1/projects/{id}", r.secured(h.HandleUpdate, httpx.WriteLimit))
	r.Mux.Handle("DELETE /v1/projects/{id}", r.secured(h.HandleDelete, httpx.WriteLimit))
	r.Mux.Handle("GET /v1/projects/{id}/search-users", r.secured(h.HandleSearchUsers, httpx.ReadLimit))
	r.Mux.Handle("DELETE /v1/projects/{id}/members/{userID}", r.secured(h.HandleRemoveMember, httpx.WriteLimit))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{
		responder:   r.responder(),
		TaskService: r.TaskService,
	}

	r.Mux.Handle("GET /v1/projects/{id}/tasks", r.secured(h.HandleList, httpx.ReadLimit))
	r.Mux.Handle("POST /v1/projects/{id}/tasks", r.secured(h.HandleCreate, httpx.WriteLimit))

	r.Mux.Handle("GET /v1/tasks/{id}", r.secured(h.HandleGet, httpx.ReadLimit))
	r.Mux.Handle("PUT /v1/tasks/{id}", r.secured(h.HandleUpdate, httpx.WriteLimit))
	r.Mux.Handle("PATCH /v1/tasks/{id}", r.secured(h.HandleUpdate, httpx.WriteLimit))
	r.Mux.Handle("DELETE /v1/tasks/{id}", r.secured(h.HandleDelete, httpx.WriteLimit))
	r.Mux.Handle("PATCH /v1/tasks/{id}/move", r.secured(h.HandleMove, httpx.WriteLimit))

	r.Mux.Handle("POST /v1/tasks/{id}/comments", r.secured(h.HandleComment, httpx.WriteLimit))
	r.Mux.Handle("PATCH /v1/tasks/{id}/comments/{commentID}", r.secured(h.HandleEditComment, httpx.WriteLimit))
	r.Mux.Handle("DELETE /v1/tasks/{id}/comments/{commentID}", r.secured(h.HandleDeleteComment, httpx.WriteLimit))
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{
		responder:         r.responder(),
		InvitationService: r.InvitationService,
	}

	r.Mux.Handle("POST /v1/invitations/send", r.secured(h.HandleSend, httpx.WriteLimit))
	r.Mux.Handle("GET /v1/invitations/mine", r.secured(h.HandleMine, httpx.ReadLimit))
	r.Mux.Handle("PATCH /v1/invitations/{id}/approve", r.secured(h.HandleApprove, httpx.WriteLimit))
	r.Mux.Handle("PATCH /v1/invitations/{id}/reject", r.secured(h.HandleReject, httpx.WriteLimit))
}

func (r *Router) registerActivities() {
	h := &ActivitiesHandler{
		responder:       r.responder(),
		ActivityService: r.ActivityService,
	}
	r.Mux.Handle("GET /v1/activities/{projectID}", r.secured(h.ServeHTTP, httpx.ReadLimit))
}

func (r *Router) registerEvents() {
	h := &EventsHandler{
		responder:      r.responder(),
		Hub:            r.hub,
		ProjectService: r.ProjectService,
		Heartbeat:      r.opts.Heartbeat,
	}

	// EventSource clients cannot set headers, so streams also accept the
	// token as a query parameter.
	stream := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.StreamAuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ReadLimit),
		)
	}

	r.Mux.Handle("GET /v1/events", stream(h.HandleAll))
	r.Mux.Handle("GET /v1/projects/{id}/events", stream(h.HandleProject))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler())
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.store, r.keys))
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.ReadLimit),
		),
	)
}
