package notification

import "context"

// Notification is a message for clinic staff
type Notification struct {
	Title   string
	Message string
	Level   string
}

// Notifier delivers notifications to staff. Implementations may log,
// email, or push to a message channel.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
