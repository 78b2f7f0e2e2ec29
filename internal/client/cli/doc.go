// Package cli provides the interactive StoryShare command-line client.
//
// It wires configuration, local storage, the story API client, the sync
// queue and an interactive REPL that keeps working while offline. Stories
// added without connectivity are stored locally and sent automatically when
// the API becomes reachable again.
//
// Key features:
//   - Register / Login / Logout
//   - List and show stories (served from the local cache when offline)
//   - Add stories with a photo and optional coordinates
//   - Inspect and flush the sync queue
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and errorMessage for details.
package cli
