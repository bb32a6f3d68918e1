// Package notify delivers transient user-facing notifications. The session
// and resource stores emit one on every mutating operation; frontends decide
// how to surface them (the CLI prints them, the API server logs them).
package notify

import (
	"context"
	"sync"

	"github.com/ametova/finkeeper/internal/logging"
)

// Notifier receives success/error/info messages aimed at the user.
// Implementations must not block.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
	Info(ctx context.Context, msg string)
}

// LogNotifier routes notifications to a structured logger.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(ctx context.Context, msg string) {
	n.log.Info(ctx, msg, "kind", "success")
}

func (n *LogNotifier) Error(ctx context.Context, msg string) {
	n.log.Warn(ctx, msg, "kind", "error")
}

func (n *LogNotifier) Info(ctx context.Context, msg string) {
	n.log.Info(ctx, msg, "kind", "info")
}

// Message is one recorded notification.
type Message struct {
	Kind string // "success", "error", "info"
	Text string
}

// Recorder accumulates notifications for inspection in tests.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(_ context.Context, msg string) { r.record("success", msg) }
func (r *Recorder) Error(_ context.Context, msg string)   { r.record("error", msg) }
func (r *Recorder) Info(_ context.Context, msg string)    { r.record("info", msg) }

func (r *Recorder) record(kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Kind: kind, Text: text})
}

// Messages returns a snapshot of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent message, or a zero Message if none.
func (r *Recorder) Last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}
	}
	return r.messages[len(r.messages)-1]
}
