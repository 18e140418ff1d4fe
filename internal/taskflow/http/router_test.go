package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/realtime"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/mailer"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/taskflowsdk"
	"github.com/stretchr/testify/require"
)

const testIssuer = "taskflow-test"

type testServer struct {
	*httptest.Server
	client *taskflowsdk.Client
	mail   *mailer.Recorder
	hub    *realtime.Hub
}

func newTestServer(t *testing.T, opts RouterOptions) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    testIssuer,
	})
	require.NoError(t, err)
	resetTokens, err := jwtx.NewPurposeSigner([]byte("0123456789abcdef0123456789abcdef"), testIssuer)
	require.NoError(t, err)

	rec := &mailer.Recorder{}
	hub := realtime.NewHub(0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter(km, st, hub, logger, opts)
	r.AuthService = &service.AuthService{
		KeyManager: km,
		Store:      st,
		Issuer:     testIssuer,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	r.PasswordResetService = &service.PasswordResetService{
		Store:    st,
		Mailer:   rec,
		Tokens:   resetTokens,
		OTPKey:   []byte("otp-test-key"),
		OTPTTL:   service.DefaultOTPTTL,
		ResetTTL: service.DefaultResetTokenTTL,
	}
	r.ProjectService = &service.ProjectService{Store: st, Mailer: rec}
	r.InvitationService = &service.InvitationService{Store: st, Mailer: rec}
	r.TaskService = &service.TaskService{Store: st, Events: hub}
	r.ActivityService = &service.ActivityService{Store: st}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{
		Server: srv,
		client: taskflowsdk.NewClient(srv.URL),
		mail:   rec,
		hub:    hub,
	}
}

func (s *testServer) register(t *testing.T, name, email string) *taskflowsdk.Session {
	t.Helper()
	sess, err := s.client.Register(context.Background(), name, email, "secret1")
	require.NoError(t, err)
	return sess
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func TestRegisterSetsRefreshCookie(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{})

	body := `{"name":"Ada","email":"Ada@Example.com","password":"secret1"}`
	resp, err := http.Post(s.URL+"/v1/auth/register", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "refreshToken" {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, "/v1/auth", cookie.Path)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, 7*24*3600, cookie.MaxAge)

	env := decodeEnvelope(t, resp)
	require.Equal(t, true, env["success"])
	require.EqualValues(t, http.StatusCreated, env["status"])
	data := env["data"].(map[string]any)
	require.Equal(t, "ada@example.com", data["user"].(map[string]any)["email"])
	require.Equal(t, cookie.Value, data["refreshToken"])

	// The cookie alone is enough to refresh.
	req, err := http.NewRequest(http.MethodPost, s.URL+"/v1/auth/refresh", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	require.NotEqual(t, cookie.Value, env["data"].(map[string]any)["refreshToken"])

	// The rotated-out token is dead.
	req, err = http.NewRequest(http.MethodPost, s.URL+"/v1/auth/refresh", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthErrors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{})
	ctx := context.Background()

	s.register(t, "Ada", "ada@example.com")

	_, err := s.client.Register(ctx, "Ada", "ADA@example.com", "secret1")
	require.True(t, taskflowsdk.IsConflict(err))

	_, err = s.client.Login(ctx, "ada@example.com", "wrong-password")
	require.True(t, taskflowsdk.IsUnauthorized(err))

	_, err = s.client.Register(ctx, "Bo", "bo@example.com", "123")
	require.Equal(t, http.StatusBadRequest, taskflowsdk.StatusCode(err))

	resp, err := http.Get(s.URL + "/v1/auth/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	env := decodeEnvelope(t, resp)
	require.Equal(t, false, env["success"])
	require.Equal(t, "Authentication required", env["message"])
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{})
	ctx := context.Background()

	sess := s.register(t, "Ada", "ada@example.com")
	refresh := sess.RefreshToken()
	require.NoError(t, sess.Logout(ctx))

	_, err := s.client.Refresh(ctx, refresh)
	require.True(t, taskflowsdk.IsUnauthorized(err))

	// Logging out twice is fine.
	require.NoError(t, s.client.Logout(ctx, refresh))
}

func TestErrorDetailOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	for _, detail := range []bool{false, true} {
		s := newTestServer(t, RouterOptions{ErrorDetail: detail})
		resp, err := http.Post(s.URL+"/v1/auth/login", "application/json", strings.NewReader("{not json"))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		require.Equal(t, "Invalid request body", env["message"])
		_, hasDetail := env["error"]
		require.Equal(t, detail, hasDetail)
	}
}

func TestProjectLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{})
	ctx := context.Background()

	owner := s.register(t, "Owner", "owner@example.com")
	member := s.register(t, "Member", "member@example.com")

	p, err := owner.CreateProject(ctx, taskflowsdk.CreateProjectRequest{Name: "Roadmap", Description: "Q3"})
	require.NoError(t, err)
	require.Equal(t, []string{owner.User().ID}, p.MemberIDs)

	_, err = member.GetProject(ctx, p.ID)
	require.True(t, taskflowsdk.IsForbidden(err))

	found, err := owner.SearchUsersToInvite(ctx, p.ID, "MEMBER")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, member.User().ID, found[0].ID)

	inv, err := owner.SendInvitation(ctx, p.ID, member.User().ID)
	require.NoError(t, err)
	require.Equal(t, "pending", inv.Status)

	_, err = owner.SendInvitation(ctx, p.ID, member.User().ID)
	require.True(t, taskflowsdk.IsConflict(err))

	mine, err := member.MyInvitations(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Roadmap", mine[0].Project.Name)
	require.Equal(t, "Owner", mine[0].InvitedBy.Name)

	_, err = owner.ApproveInvitation(ctx, inv.ID)
	require.True(t, taskflowsdk.IsForbidden(err))

	approved, err := member.ApproveInvitation(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, "approved", approved.Status)

	_, err = member.RejectInvitation(ctx, inv.ID)
	require.True(t, taskflowsdk.IsConflict(err))

	details, err := member.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Owner", details.Owner.Name)
	require.Len(t, details.Members, 2)

	name := "Roadmap 2"
	_, err = member.UpdateProject(ctx, p.ID, taskflowsdk.UpdateProjectRequest{Name: &name})
	require.True(t, taskflowsdk.IsForbidden(err))
	updated, err := owner.UpdateProject(ctx, p.ID, taskflowsdk.UpdateProjectRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Roadmap 2", updated.Name)
	require.Equal(t, "Q3", updated.Description)

	err = owner.RemoveMember(ctx, p.ID, owner.User().ID)
	require.Equal(t, http.StatusBadRequest, taskflowsdk.StatusCode(err))

	acts, err := owner.ListActivities(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "project_updated", acts[0].Action)
	require.Equal(t, "Roadmap 2", acts[0].Meta["name"])
	require.Equal(t, "project_created", acts[len(acts)-1].Action)

	require.NoError(t, member.RemoveMember(ctx, p.ID, member.User().ID))
	list, err := member.ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, owner.DeleteProject(ctx, p.ID))
	_, err = owner.GetProject(ctx, p.ID)
	require.True(t, taskflowsdk.IsNotFound(err))
}

func TestTaskBoard(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{})
	ctx := context.Background()

	owner := s.register(t, "Owner", "owner@example.com")
	other := s.register(t, "Other", "other@example.com")

	p, err := owner.CreateProject(ctx, taskflowsdk.CreateProjectRequest{Name: "Board"})
	require.NoError(t, err)

	_, err = owner.CreateTask(ctx, p.ID, taskflowsdk.CreateTaskRequest{Title: "X", Assignees: []string{other.User().ID}})
	require.Equal(t, http.StatusBadRequest, taskflowsdk.StatusCode(err))

	task, err := owner.CreateTask(ctx, p.ID, taskflowsdk.CreateTaskRequest{
		Title:     "Draft plan",
		Assignees: []string{owner.User().ID},
	})
	require.NoError(t, err)
	require.Equal(t, taskflowsdk.StatusTodo, task.Status)
	require.Len(t, task.Assignees, 1)

	_, err = owner.CreateTask(ctx, p.ID, taskflowsdk.CreateTaskRequest{Title: "Review budget"})
	require.NoError(t, err)

	moved, err := owner.MoveTask(ctx, task.ID, "inprogress")
	require.NoError(t, err)
	require.Equal(t, taskflowsdk.StatusInProgress, moved.Status)

	_, err = owner.MoveTask(ctx, task.ID, "blocked")
	require.Equal(t, http.StatusBadRequest, taskflowsdk.StatusCode(err))

	tasks, err := owner.ListTasks(ctx, p.ID, taskflowsdk.TaskFilter{Search: "PLAN"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	tasks, err = owner.ListTasks(ctx, p.ID, taskflowsdk.TaskFilter{Status: taskflowsdk.StatusTodo})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Review budget", tasks[0].Title)

	_, err = other.GetTask(ctx, task.ID)
	require.True(t, taskflowsdk.IsForbidden(err))

	withComment, err := owner.CommentTask(ctx, task.ID, "first pass")
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	commentID := withComment.Comments[0].ID

	edited, err := owner.EditComment(ctx, task.ID, commentID, "second pass")
	require.NoError(t, err)
	require.Equal(t, "second pass", edited.Comments[0].Text)

	desc := "now with detail"
	patched, err := owner.UpdateTask(ctx, task.ID, taskflowsdk.UpdateTaskRequest{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, "Draft plan", patched.Title)
	require.Equal(t, desc, patched.Description)

	afterDelete, err := owner.DeleteComment(ctx, task.ID, commentID)
	require.NoError(t, err)
	require.Empty(t, afterDelete.Comments)

	require.NoError(t, owner.DeleteTask(ctx, task.ID))
	_, err = owner.GetTask(ctx, task.ID)
	require.True(t, taskflowsdk.IsNotFound(err))
}

func TestProjectEventStream(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{Heartbeat: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	owner := s.register(t, "Owner", "owner@example.com")
	outsider := s.register(t, "Outsider", "outsider@example.com")

	p, err := owner.CreateProject(ctx, taskflowsdk.CreateProjectRequest{Name: "Live"})
	require.NoError(t, err)

	_, err = outsider.Subscribe(ctx, p.ID)
	require.True(t, taskflowsdk.IsForbidden(err))

	stream, err := owner.Subscribe(ctx, p.ID)
	require.NoError(t, err)
	defer stream.Close()

	topic := realtime.ProjectTopic(p.ID)
	require.Eventually(t, func() bool { return s.hub.Subscribers(topic) == 1 }, 5*time.Second, 10*time.Millisecond)

	task, err := owner.CreateTask(ctx, p.ID, taskflowsdk.CreateTaskRequest{Title: "Ship it"})
	require.NoError(t, err)
	require.NoError(t, owner.DeleteTask(ctx, task.ID))

	ev, err := stream.Next()
	require.NoError(t, err)
	require.Equal(t, taskflowsdk.EventTaskCreated, ev.Kind)
	created, err := ev.Task()
	require.NoError(t, err)
	require.Equal(t, "Ship it", created.Title)

	ev, err = stream.Next()
	require.NoError(t, err)
	require.Equal(t, taskflowsdk.EventTaskDeleted, ev.Kind)
	ref, err := ev.Ref()
	require.NoError(t, err)
	require.Equal(t, task.ID, ref.ID)
	require.Equal(t, p.ID, ref.ProjectID)
}

func TestEventStreamAcceptsQueryToken(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{Heartbeat: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess := s.register(t, "Ada", "ada@example.com")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL+"/v1/events?access_token="+sess.AccessToken(), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	buf := make([]byte, len(": connected\n\n"))
	_, err = io.ReadFull(resp.Body, buf)
	require.NoError(t, err)
	require.Equal(t, ": connected\n\n", string(buf))
}

var otpPattern = regexp.MustCompile(`<strong>(\d{6})</strong>`)

func TestPasswordResetFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{})
	ctx := context.Background()

	sess := s.register(t, "Ada", "ada@example.com")

	// Unknown addresses look the same to the caller.
	require.NoError(t, s.client.ForgotPassword(ctx, "nobody@example.com"))
	require.Empty(t, s.mail.Sent())

	require.NoError(t, s.client.ForgotPassword(ctx, "ada@example.com"))
	msg, ok := s.mail.Last()
	require.True(t, ok)
	m := otpPattern.FindStringSubmatch(msg.HTML)
	require.Len(t, m, 2)

	resetToken, err := s.client.VerifyOTP(ctx, "ada@example.com", m[1])
	require.NoError(t, err)

	_, err = s.client.VerifyOTP(ctx, "ada@example.com", m[1])
	require.True(t, taskflowsdk.IsNotFound(err))

	require.NoError(t, s.client.ResetPassword(ctx, resetToken, "brand-new"))
	err = s.client.ResetPassword(ctx, resetToken, "again-new")
	require.True(t, taskflowsdk.IsUnauthorized(err))

	_, err = s.client.Refresh(ctx, sess.RefreshToken())
	require.True(t, taskflowsdk.IsUnauthorized(err))

	_, err = s.client.Login(ctx, "ada@example.com", "brand-new")
	require.NoError(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, RouterOptions{})
	ctx := context.Background()

	live, err := s.client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := s.client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks["database"])

	raw, err := s.client.JWKS(ctx)
	require.NoError(t, err)
	var set jwtx.JWKS
	require.NoError(t, json.Unmarshal(raw, &set))
	require.Len(t, set.Keys, 1)
}
