// Package metadata is a small key/value store in the local database. The
// session token and the signed-in user live here.
package metadata

import (
	"context"
)

// Key names a metadata record.
type Key string

const (
	KeyToken Key = "token"
	KeyUser  Key = "user"
)

type Repository interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, keys ...Key) error
}
