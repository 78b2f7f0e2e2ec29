// Package client talks to the remote story API.
//
// The Client interface covers the story endpoints (list, fetch one, create)
// and the auth endpoints (login, register). HTTPClient implements it over
// HTTP/JSON, attaching "Authorization: Bearer <token>" whenever a token is
// given.
//
// # Error Handling
//
// Failures are reported in two distinguishable kinds:
//   - common.ErrNetworkUnavailable: no response was received at all.
//   - *common.RemoteError (matches common.ErrRemoteFailure): the server
//     answered with a non-success status. Message carries the server text.
//
// A 401 is reported as a RemoteError with Unauthorized() == true; acting on
// it (logging the user out) is left to the caller.
package client
