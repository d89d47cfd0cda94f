package storage

import (
	"context"
	"errors"
)

// Well-known keys for the two persisted records.
const (
	KeyUser = "user"
	KeyCart = "cart"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is the durable local storage behind the session and cart stores.
// Values are raw JSON documents; the stores own (de)serialization so a
// corrupt record can be degraded to an absent one instead of failing the
// whole store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
