// Package kvstore provides the durable key-value storage that backs every
// FinKeeper collection: the session identity, the credentials list, and the
// per-user resource partitions. Values are opaque byte blobs (JSON on the
// callers' side); a Get on a missing key returns (nil, nil).
//
// Backends: in-memory (tests, ephemeral runs), SQLite (the CLI's local
// store), Postgres (server deployments), and S3 (remote object storage).
package kvstore

import "context"

// Store is a durable string-keyed blob store.
//
// Contract:
//   - Get returns (nil, nil) when the key does not exist.
//   - Set overwrites unconditionally.
//   - Delete is a no-op on a missing key.
//   - List returns every key/value pair in the store.
//   - Clear removes everything.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
