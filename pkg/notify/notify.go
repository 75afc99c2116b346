package notify

import (
	"context"
	"time"
)

// Notification is the payload delivered to a user.
type Notification struct {
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier defines the interface for the fire-and-forget notification sink.
// Delivery is best-effort: a failure here must never roll back the financial
// mutation it describes, so callers log and move on.
type Notifier interface {
	// Notify enqueues a notification for asynchronous delivery.
	Notify(ctx context.Context, notification Notification) error
}

// NoOpNotifier is a notifier that does nothing. Used in tests and in
// entrypoints that run without a delivery queue.
type NoOpNotifier struct{}

// Make sure we conform to the interface
var _ Notifier = NoOpNotifier{}

// Notify does nothing.
func (n NoOpNotifier) Notify(ctx context.Context, notification Notification) error {
	return nil
}
