// Package common contains shared constants and sentinel errors used across
// StoryShare components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token
// on outbound API requests.
const AuthorizationHeaderName = "Authorization"

// OfflineIDPrefix marks story ids generated locally while offline. Server
// assigned ids never carry it.
const OfflineIDPrefix = "offline-"
