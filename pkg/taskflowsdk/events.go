package taskflowsdk

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// EventStream reads task events from a Server-Sent Events connection.
// Not safe for concurrent use.
type EventStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
}

// Subscribe opens the event stream. An empty projectID subscribes to every
// task event; otherwise only that project's events arrive and the caller must
// be a member. The stream ends when ctx is cancelled or Close is called.
func (s *Session) Subscribe(ctx context.Context, projectID string) (*EventStream, error) {
	token, err := s.validToken(ctx)
	if err != nil {
		return nil, err
	}
	path := "/v1/events"
	if projectID != "" {
		path = "/v1/projects/" + url.PathEscape(projectID) + "/events"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.client.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+token)

	// The client timeout would cut long-lived streams.
	hc := *s.client.HTTPClient
	hc.Timeout = 0
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_, err := decode[any](resp, http.StatusOK)
		return nil, err
	}
	return &EventStream{body: resp.Body, reader: bufio.NewReader(resp.Body)}, nil
}

// Next blocks until the next event. Comment lines are skipped. It returns
// io.EOF when the server closes the stream.
func (es *EventStream) Next() (Event, error) {
	var (
		ev   Event
		data strings.Builder
	)
	for {
		line, err := es.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				return Event{}, io.EOF
			}
			if err != io.EOF {
				return Event{}, err
			}
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if data.Len() == 0 && ev.Kind == "" {
				continue
			}
			ev.Data = json.RawMessage(data.String())
			return ev, nil
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			ev.Kind = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
}

func (es *EventStream) Close() error {
	return es.body.Close()
}

// Task decodes the payload of a created or updated event.
func (e Event) Task() (*Task, error) {
	var t Task
	if err := json.Unmarshal(e.Data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode task event: %w", err)
	}
	return &t, nil
}

// Ref decodes the payload of a deleted event.
func (e Event) Ref() (*TaskRef, error) {
	var r TaskRef
	if err := json.Unmarshal(e.Data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode task event: %w", err)
	}
	return &r, nil
}
