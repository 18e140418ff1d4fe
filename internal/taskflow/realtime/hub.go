// Package realtime fans task events out to connected observers. Delivery is
// fire-and-forget: a subscriber whose buffer is full misses the event, and
// nothing is replayed on reconnect.
package realtime

import (
	"sync"
	"sync/atomic"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
)

// TopicAll receives every event regardless of project.
const TopicAll = "*"

const DefaultBuffer = 16

// ProjectTopic names the topic carrying one project's events.
func ProjectTopic(projectID string) string {
	return "project:" + projectID
}

type Hub struct {
	mu      sync.RWMutex
	topics  map[string]map[*Subscription]struct{}
	buffer  int
	closed  bool
	dropped atomic.Uint64
}

// NewHub returns a hub whose subscriptions buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		topics: make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

type Subscription struct {
	C <-chan domain.TaskEvent

	topic string
	ch    chan domain.TaskEvent
	hub   *Hub
	once  sync.Once
}

func (s *Subscription) Topic() string { return s.topic }

// Close detaches the subscription and closes C. It is safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if subs, ok := s.hub.topics[s.topic]; ok {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.hub.topics, s.topic)
			}
		}
		close(s.ch)
	})
}

func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan domain.TaskEvent, h.buffer)
	sub := &Subscription{C: ch, topic: topic, ch: ch, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		sub.once.Do(func() { close(ch) })
		return sub
	}
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	return sub
}

// Publish delivers ev to its project topic and to TopicAll. It never blocks.
func (h *Hub) Publish(ev domain.TaskEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if ev.ProjectID != "" {
		h.deliver(ProjectTopic(ev.ProjectID), ev)
	}
	h.deliver(TopicAll, ev)
}

// deliver runs under the read lock, so Close cannot race the send.
func (h *Hub) deliver(topic string, ev domain.TaskEvent) {
	for sub := range h.topics[topic] {
		select {
		case sub.ch <- ev:
		default:
			h.dropped.Add(1)
		}
	}
}

// Close ends every subscription. Later subscriptions are closed on arrival.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	var subs []*Subscription
	for _, topic := range h.topics {
		for sub := range topic {
			subs = append(subs, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

// Subscribers returns the number of live subscriptions on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Dropped returns how many deliveries were skipped because a buffer was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}
