// Package mailer delivers transactional email through SMTP, the Resend HTTP
// API, or the log when no provider is configured.
package mailer

import (
	"context"
	"errors"
	"sync"

	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/slogx"
)

var ErrNoRecipient = errors.New("mailer: message has no recipient")

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message. Implementations do not retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the request logger instead of delivering
// them. It is the development default.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	slogx.FromContext(ctx).Info("mail (log driver)",
		"to", msg.To,
		"subject", msg.Subject,
		"html", msg.HTML,
	)
	return nil
}

// Recorder keeps sent messages in memory. Err, when set, is returned instead
// of recording.
type Recorder struct {
	mu   sync.Mutex
	sent []Message
	Err  error
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages.
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}

// Last returns the most recent message.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return Message{}, false
	}
	return r.sent[len(r.sent)-1], true
}
