// Package common defines shared constants and sentinel errors used across
// client layers of StoryShare. Callers should use errors.Is to match these
// values and errors.As to extract a *RemoteError.
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthenticated means there is no token, or the server rejected it.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNetworkUnavailable means the remote API could not be reached at all.
	ErrNetworkUnavailable = errors.New("network unavailable")

	// ErrRemoteFailure is matched by every *RemoteError.
	ErrRemoteFailure = errors.New("remote failure")

	// ErrStorage means a local store operation failed.
	ErrStorage = errors.New("storage failure")

	// ErrNotFound means the record exists neither remotely nor in the local store.
	ErrNotFound = errors.New("not found")

	// ErrNoDataAvailable means the network failed and the local cache is empty.
	ErrNoDataAvailable = errors.New("no data available")

	// ErrInvalidDraft is returned for story submissions missing required fields.
	ErrInvalidDraft = errors.New("invalid story draft")
)

// RemoteError is returned when the API answered with a non-success status.
// Message is the server-supplied text when the body carried one.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("remote error (%d): %s", e.StatusCode, msg)
}

// Is makes errors.Is(err, ErrRemoteFailure) true for any RemoteError.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteFailure
}

// Unauthorized reports whether the server rejected the credentials.
func (e *RemoteError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Permanent reports whether retrying the same request cannot succeed.
// Auth failures, timeouts and throttling are not considered permanent.
func (e *RemoteError) Permanent() bool {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// AsUnauthorized reports whether err wraps a 401 RemoteError.
func AsUnauthorized(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Unauthorized()
}

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n])
}
