package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live (TTL).
//
// The cached data still exists on disk but is considered stale. Callers
// should fetch fresh data from the source and update the cache with
// [Cache.Set].
//
// Use errors.Is to check for this error:
//
//	ok, err := cache.Get(url, &doc)
//	if errors.Is(err, httputil.ErrExpired) {
//	    // Fetch a fresh copy and update the cache
//	}
var ErrExpired = errors.New("cache entry expired")

// Cache provides file-based caching of arbitrary JSON-marshalable data.
//
// Each entry is stored as a JSON file in the cache directory, with the
// filename derived from a SHA-256 hash of the cache key. Hashing keeps
// filenames safe regardless of what the key contains, so URLs can be used
// as keys directly.
//
// Cache operations are not goroutine-safe. If multiple goroutines access
// the same Cache instance, the caller must synchronize access. Multiple
// Cache instances (even in different processes) can safely share the same
// directory, as the filesystem provides atomic file operations.
//
// Entries expire based on file modification time. A TTL of 0 means entries
// never expire.
//
// Use [Cache.Namespace] to create scoped views that automatically prefix
// keys, keeping different consumers out of each other's way:
//
//	docs := cache.Namespace("docs:")
//	docs.Set(url, content)  // key becomes "docs:" + url
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache that stores entries in dir with the given TTL.
//
// If dir is empty, NewCache uses the default directory ~/.cache/archscope/.
// The directory is created with mode 0755 if it doesn't exist; directory
// creation errors are the only possible source of failure.
//
// A ttl of 0 disables expiration.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "archscope")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl, prefix: ""}, nil
}

// Dir returns the absolute path to the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live duration for cache entries.
// A TTL of 0 means cache entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a cached value by key and unmarshals it into v.
//
// Return values indicate three distinct outcomes:
//   - (true, nil): cache hit; the value was found, is fresh, and was unmarshaled into v.
//   - (false, nil): cache miss; no entry exists for this key. v is unchanged.
//   - (false, ErrExpired): entry exists but exceeded its TTL. v is unchanged.
//   - (false, other error): I/O error, JSON unmarshal error, etc.
//
// The value v must be a pointer to a type compatible with json.Unmarshal.
// Get does not modify the cache; reads never refresh an entry's TTL.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores a value in the cache under the given key.
//
// The value is marshaled with encoding/json and written to disk. Setting a
// key that already exists overwrites the entry and resets its modification
// time, which effectively refreshes the TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a new Cache that automatically prefixes all keys with prefix.
//
// The returned Cache shares the underlying directory and TTL with its
// parent; only key construction changes. Namespace calls can be chained to
// build hierarchical key spaces:
//
//	cache.Namespace("docs:").Namespace("remote:")  // prefix: "docs:remote:"
//
// An empty prefix is valid and results in no key transformation.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
