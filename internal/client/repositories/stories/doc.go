// Package stories is the local store of the client: a persistent mapping
// from story id to Story, used both as the read cache for server data and as
// the durable home of stories created while offline.
//
// Every method is a single statement, so each call is atomic on its own.
// PutAll is a loop over Put and gives no atomicity across the batch.
// Failures are reported wrapped in common.ErrStorage; a missing id is
// common.ErrNotFound.
//
//	repo := stories.NewSQLiteRepository(db)
//	_ = repo.PutAll(ctx, fetched)
//	cached, _ := repo.GetAll(ctx)
package stories
