package cache

import (
	"context"
	"time"
)

// NullCache drops every artifact. The runner falls back to it when no store
// is configured, and the CLI selects it for --no-cache or when no user cache
// directory can be resolved.
type NullCache struct{}

// NewNullCache returns a cache on which every lookup misses.
func NewNullCache() Cache {
	return NullCache{}
}

// Get reports a miss so the halftone is always rendered.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the artifact.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
