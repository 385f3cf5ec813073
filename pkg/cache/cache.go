// Package cache stores rendered halftone artifacts.
//
// Rendering is a pure function of the source bytes and the halftone
// parameters, so an artifact can be reused whenever both match. Keys are
// built by a [Keyer] from the SHA-256 of the source and the options; values
// are the encoded artifact bytes.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry below a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (used by the HTTP server)
//   - [NullCache]: never stores anything (--no-cache)
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a rendered artifact stays valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts lists every input besides the source that changes the
// rendered artifact.
type ArtifactKeyOpts struct {
	Radius    int    `json:"radius"`
	Threshold int    `json:"threshold"`
	ColorMode bool   `json:"color_mode"`
	Format    string `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for the artifact rendered from the source
	// with hash sourceHash.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key components into "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}
