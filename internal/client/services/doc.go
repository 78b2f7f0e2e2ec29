// Package services contains the application services used by the CLI.
//
// StoryService is the single entry point for story reads and writes. It
// composes the remote client, the local story cache and the sync queue so
// callers see the same interface whether the API is reachable or not:
//   - reads go to the API first and fall back to the cache;
//   - writes go straight to the API when online, or are stored locally and
//     queued for later when offline.
//
// Every error returned from this package carries one of the kinds in
// internal/common, matchable with errors.Is.
package services
