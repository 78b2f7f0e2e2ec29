package models

import "time"

// QueueState is the attempt state of a pending create operation.
type QueueState string

const (
	QueueStatePending   QueueState = "pending"
	QueueStateInFlight  QueueState = "in_flight"
	QueueStateFailed    QueueState = "failed"
	QueueStateAbandoned QueueState = "abandoned"
)

// QueueEntry is a story waiting to be created on the server.
// ID is assigned by the backing store and defines FIFO order.
type QueueEntry struct {
	ID         int64
	Story      Story
	EnqueuedAt time.Time
	State      QueueState
	Attempts   int
	LastError  string
}
