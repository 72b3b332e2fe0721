// Package cache provides pluggable caching for export pipeline and server
// results.
//
// Backends:
//   - FileCache: persistent cache for CLI usage
//   - RedisCache: shared cache for multi-instance serve deployments
//   - NullCache: caching disabled
//
// Keys come from a Keyer so every consumer agrees on the key vocabulary.
// ScopedKeyer prefixes keys when callers need isolated namespaces, for
// example one namespace per stored snapshot.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A non-positive TTL stores the value
	// without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per artifact class. Export and render keys embed the graph
// content hash, so a changed graph produces new keys rather than stale
// hits and long TTLs are safe.
const (
	// TTLGraph is the lifetime of cached graph documents.
	TTLGraph = 24 * time.Hour

	// TTLExport is the lifetime of cached textual export artifacts.
	TTLExport = 7 * 24 * time.Hour

	// TTLRender is the lifetime of cached rendered images.
	TTLRender = 7 * 24 * time.Hour
)

// Keyer generates cache keys for the artifact classes the engine caches.
type Keyer interface {
	// GraphKey identifies a serialized graph document by name and version.
	GraphKey(name string, opts GraphKeyOpts) string

	// ExportKey identifies a textual export artifact by graph content hash.
	ExportKey(graphHash string, opts ExportKeyOpts) string

	// RenderKey identifies a rendered image artifact by the content hash of
	// the DOT source it was rasterized from.
	RenderKey(dotHash string, opts RenderKeyOpts) string
}

// GraphKeyOpts are the options that distinguish cached graph documents.
type GraphKeyOpts struct {
	Version uint64
}

// ExportKeyOpts are the options that affect a textual export.
type ExportKeyOpts struct {
	Format string
	Style  string // style fingerprint, empty for the default palette
}

// RenderKeyOpts are the options that affect a rendered image.
type RenderKeyOpts struct {
	Format string
	Scale  float64
}

// DefaultKeyer generates hash-based keys with a class prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a serialized graph document.
func (k *DefaultKeyer) GraphKey(name string, opts GraphKeyOpts) string {
	return hashKey("graph", name, opts)
}

// ExportKey generates a key for a textual export artifact.
func (k *DefaultKeyer) ExportKey(graphHash string, opts ExportKeyOpts) string {
	return hashKey("export", graphHash, opts)
}

// RenderKey generates a key for a rendered image artifact.
func (k *DefaultKeyer) RenderKey(dotHash string, opts RenderKeyOpts) string {
	return hashKey("render", dotHash, opts)
}
