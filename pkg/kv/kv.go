package kv

import (
	"context"
	"encoding/json"
)

// Store loads/saves one JSON document for a single key.
type Store interface {
	// Get returns the raw document stored under key, or ok=false when the
	// key is absent.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	// Set serializes value as JSON and stores it under key, replacing any
	// previous document.
	Set(ctx context.Context, key string, value any) error
}
