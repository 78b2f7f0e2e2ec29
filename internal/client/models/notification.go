package models

// Notification is broadcast to other open clients when a story is created.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
