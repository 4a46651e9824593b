// Package notify defines the alerting collaborator used for break-glass
// events.
package notify

import "context"

// Notifier publishes alert payloads to a topic. Implementations own their
// transport timeouts; the lifecycle manager treats a notification failure
// like any other adapter failure on a best-effort path.
type Notifier interface {
	Notify(ctx context.Context, topic, subject string, payload map[string]string) error
}
