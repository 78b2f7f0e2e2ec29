// Package notify delivers "a story was added" notifications to other open
// clients. It is best-effort: a failure to notify never fails the operation
// that triggered it.
package notify

import (
	"context"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

const PushNotificationType = "PUSH_NOTIFICATION"

// Message is the wire frame exchanged over the websocket.
type Message struct {
	Type         string              `json:"type"`
	Notification models.Notification `json:"notification"`
}

type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(context.Context, models.Notification) error { return nil }
