package ports

import "context"

// AlertSender pushes a short operational message to the operators'
// channel. Delivery is best effort; callers only log failures.
type AlertSender interface {
	Send(ctx context.Context, text string) error
}
