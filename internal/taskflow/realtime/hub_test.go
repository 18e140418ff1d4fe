package realtime

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/stretchr/testify/require"
)

func TestPublishRoutesByTopic(t *testing.T) {
	hub := NewHub(4)
	all := hub.Subscribe(TopicAll)
	p1 := hub.Subscribe(ProjectTopic("p1"))
	p2 := hub.Subscribe(ProjectTopic("p2"))
	defer all.Close()
	defer p1.Close()
	defer p2.Close()

	ev := domain.TaskEvent{Kind: domain.EventTaskCreated, ProjectID: "p1", TaskID: "t1"}
	hub.Publish(ev)

	require.Equal(t, ev, <-all.C)
	require.Equal(t, ev, <-p1.C)
	require.Empty(t, p2.C)
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub(1)
	sub := hub.Subscribe(TopicAll)
	defer sub.Close()

	hub.Publish(domain.TaskEvent{Kind: domain.EventTaskCreated, TaskID: "a"})
	hub.Publish(domain.TaskEvent{Kind: domain.EventTaskCreated, TaskID: "b"})

	got := <-sub.C
	require.Equal(t, "a", got.TaskID)
	require.Equal(t, uint64(1), hub.Dropped())
}

func TestSubscriptionClose(t *testing.T) {
	hub := NewHub(0)
	sub := hub.Subscribe(ProjectTopic("p1"))
	require.Equal(t, "project:p1", sub.Topic())
	require.Equal(t, 1, hub.Subscribers(ProjectTopic("p1")))

	sub.Close()
	sub.Close()
	require.Equal(t, 0, hub.Subscribers(ProjectTopic("p1")))

	_, open := <-sub.C
	require.False(t, open)

	// publishing after close must not panic
	hub.Publish(domain.TaskEvent{Kind: domain.EventTaskDeleted, ProjectID: "p1"})
}

func TestLateSubscriberGetsNoReplay(t *testing.T) {
	hub := NewHub(4)
	hub.Publish(domain.TaskEvent{Kind: domain.EventTaskCreated, TaskID: "early"})

	sub := hub.Subscribe(TopicAll)
	defer sub.Close()
	require.Empty(t, sub.C)
}

func TestSSEWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, w.Event("task.deleted", "1", map[string]string{"id": "t1"}))
	require.NoError(t, w.Comment("ping"))

	require.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	require.True(t, strings.Contains(body, "id: 1\nevent: task.deleted\ndata: {\"id\":\"t1\"}\n\n"), body)
	require.True(t, strings.HasSuffix(body, ": ping\n\n"))
}

func TestHubCloseEndsSubscriptions(t *testing.T) {
	hub := NewHub(0)
	a := hub.Subscribe(TopicAll)
	b := hub.Subscribe(ProjectTopic("p1"))

	hub.Close()

	_, ok := <-a.C
	require.False(t, ok)
	_, ok = <-b.C
	require.False(t, ok)
	require.Equal(t, 0, hub.Subscribers(TopicAll))

	late := hub.Subscribe(TopicAll)
	_, ok = <-late.C
	require.False(t, ok)
	late.Close()
}
