package taskflowsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, code int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": code < 400,
		"status":  code,
		"message": msg,
		"data":    data,
	})
}

func TestDecodeAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid email or password", nil)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.co", "nope")
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))
	require.False(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestDecodeNonJSONError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Livez(context.Background())
	require.Equal(t, http.StatusBadGateway, StatusCode(err))
}

func TestSessionRefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	var refreshes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			// expiresIn below the refresh buffer forces a refresh on first use.
			writeEnvelope(w, http.StatusOK, "Login successful", AuthResponse{
				User:         User{ID: "u1", Email: "a@b.co"},
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
				ExpiresIn:    1,
			})
		case "/v1/auth/refresh":
			var req RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "refresh-1", req.RefreshToken)
			refreshes.Add(1)
			writeEnvelope(w, http.StatusOK, "Token refreshed", TokenResponse{
				AccessToken:  "access-2",
				RefreshToken: "refresh-2",
				ExpiresIn:    900,
			})
		case "/v1/auth/me":
			require.Equal(t, "Bearer access-2", r.Header.Get("Authorization"))
			writeEnvelope(w, http.StatusOK, "Profile", User{ID: "u1", Name: "Ada"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	session, err := NewClient(srv.URL).Login(ctx, "a@b.co", "secret1")
	require.NoError(t, err)
	require.Equal(t, "u1", session.User().ID)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ada", me.Name)
	require.Equal(t, "refresh-2", session.RefreshToken())

	_, err = session.Me(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, refreshes.Load())
}

func TestListTasksQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/projects/p1/tasks", r.URL.Path)
		require.Equal(t, "plan", r.URL.Query().Get("search"))
		require.Equal(t, StatusDone, r.URL.Query().Get("status"))
		require.Empty(t, r.URL.Query().Get("assignee"))
		writeEnvelope(w, http.StatusOK, "Tasks", []Task{{ID: "t1", Status: StatusDone}})
	}))
	defer srv.Close()

	session := NewClient(srv.URL).NewSessionFromTokens("a", "r", 900)
	tasks, err := session.ListTasks(context.Background(), "p1", TaskFilter{Search: "plan", Status: StatusDone})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
}

func TestEventStream(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/projects/p1/events", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, ": connected\n\n")
		fmt.Fprint(w, "id: 1\nevent: task.created\ndata: {\"id\":\"t1\",\"projectId\":\"p1\",\"title\":\"A\"}\n\n")
		fmt.Fprint(w, "event: task.deleted\ndata: {\"id\":\"t1\",\"projectId\":\"p1\"}\n\n")
	}))
	defer srv.Close()

	session := NewClient(srv.URL).NewSessionFromTokens("a", "r", 900)
	stream, err := session.Subscribe(context.Background(), "p1")
	require.NoError(t, err)
	defer stream.Close()

	ev, err := stream.Next()
	require.NoError(t, err)
	require.Equal(t, EventTaskCreated, ev.Kind)
	task, err := ev.Task()
	require.NoError(t, err)
	require.Equal(t, "A", task.Title)

	ev, err = stream.Next()
	require.NoError(t, err)
	require.Equal(t, EventTaskDeleted, ev.Kind)
	ref, err := ev.Ref()
	require.NoError(t, err)
	require.Equal(t, "t1", ref.ID)

	_, err = stream.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestSubscribeForbidden(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusForbidden, "You are not a member of this project", nil)
	}))
	defer srv.Close()

	session := NewClient(srv.URL).NewSessionFromTokens("a", "r", 900)
	_, err := session.Subscribe(context.Background(), "p1")
	require.True(t, IsForbidden(err))
	require.True(t, strings.Contains(err.Error(), "not a member"))
}
