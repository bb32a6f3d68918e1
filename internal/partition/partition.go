// Package partition implements the per-user collection persistence shared by
// every resource store: one JSON array blob per user per resource type,
// loaded wholesale when the active user changes and rewritten wholesale on
// every mutation.
package partition

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ametova/finkeeper/internal/kvstore"
)

// Key builds the storage key for a user's partition of a resource type,
// e.g. Key("expenses", "42") == "expenses/42".
func Key(resource, userID string) string {
	return resource + "/" + userID
}

// Load reads and decodes a user's partition. A missing key or a malformed
// blob yields (nil, false, nil): corruption is recovered locally by the
// caller writing a fresh fallback, never surfaced as a hard failure.
// Only storage-level errors are returned.
func Load[T any](ctx context.Context, kv kvstore.Store, key string) ([]T, bool, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("load partition %s: %w", key, err)
	}
	if raw == nil {
		return nil, false, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, nil
	}
	return items, true, nil
}

// Save encodes the whole collection and overwrites the user's partition.
// A nil slice is stored as an empty JSON array so subsequent reads are
// well-formed.
func Save[T any](ctx context.Context, kv kvstore.Store, key string, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode partition %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save partition %s: %w", key, err)
	}
	return nil
}
