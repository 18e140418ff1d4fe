package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/realtime"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/service"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/httpx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

const defaultHeartbeat = 25 * time.Second

// EventsHandler streams task events as Server-Sent Events.
type EventsHandler struct {
	responder

	Hub            *realtime.Hub
	ProjectService *service.ProjectService

	// Heartbeat is the interval of keep-alive comments.
	Heartbeat time.Duration
}

// HandleAll streams every task event.
//
//	@Summary		Event stream
//	@Description	Server-Sent Events carrying task.created, task.updated and task.deleted for every project.
//	@Description	Browsers may pass the access token in the access_token query parameter.
//	@Tags			Events
//	@Produce		text/event-stream
//	@Success		200	{string}	string						"Event stream"
//	@Failure		401	{object}	httpx.Envelope	"Unauthorized"
//	@Security		BearerAuth
//	@Router			/v1/events [get].
func (h *EventsHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	h.stream(w, r, realtime.TopicAll)
}

// HandleProject streams one project's task events. Members only.
//
//	@Summary		Project event stream
//	@Tags			Events
//	@Produce		text/event-stream
//	@Param			id	path		string						true	"Project ID"
//	@Success		200	{string}	string						"Event stream"
//	@Failure		403	{object}	httpx.Envelope	"Not a member"
//	@Security		BearerAuth
//	@Router			/v1/projects/{id}/events [get].
func (h *EventsHandler) HandleProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.ProjectService.RequireMember(r.Context(), id, actor(r).UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.stream(w, r, realtime.ProjectTopic(id))
}

func (h *EventsHandler) stream(w http.ResponseWriter, r *http.Request, topic string) {
	ctx := r.Context()
	log := slogx.FromContext(ctx).With("topic", topic)

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	sub := h.Hub.Subscribe(topic)
	defer sub.Close()

	sse, err := realtime.NewSSEWriter(w)
	if err != nil {
		log.Error("event stream unavailable", slogx.Err(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Streaming unsupported", "")
		return
	}
	if err := sse.Comment("connected"); err != nil {
		return
	}
	log.Debug("event stream opened")
	defer log.Debug("event stream closed")

	interval := h.Heartbeat
	if interval <= 0 {
		interval = defaultHeartbeat
	}
	heartbeat := time.NewTicker(interval)
	defer heartbeat.Stop()

	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if err := sse.Comment("ping"); err != nil {
				return
			}
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			seq++
			if err := sse.Event(string(ev.Kind), strconv.FormatUint(seq, 10), eventPayload(ev)); err != nil {
				log.Debug("event write failed", slogx.Err(err))
				return
			}
		}
	}
}
