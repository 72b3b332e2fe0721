// Package httputil provides HTTP fetching with caching and retry.
//
// # Overview
//
// This package carries the plumbing for everything that leaves the
// process over HTTP, most notably remote documentation sources for agent
// packs:
//
//   - [Cache]: file-based response caching with TTL
//   - [Retry]: automatic retry with exponential backoff
//   - [Client]: GET requests combining both
//
// # Caching
//
// [Cache] stores entries in the filesystem (~/.cache/archscope/ by
// default) with a configurable TTL, so repeated exports don't refetch
// unchanged documents.
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	client := httputil.NewClient(cache, nil)
//	text, err := client.GetText(ctx, docURL)
//
// Cache keys are hashed, so raw URLs are safe keys. Use [Cache.Namespace]
// to keep different consumers separate.
//
// # Retry
//
// [Retry] re-runs an operation for transient failures only: network
// errors and 5xx responses are wrapped in [RetryableError] by [Client],
// anything else fails fast. Backoff doubles after each attempt.
//
// # Defaults
//
//   - Cache directory: ~/.cache/archscope/
//   - Request timeout: 10 seconds
//   - Max retries: 3, base backoff 1 second
//
// The cache can be cleared by deleting the cache directory.
package httputil
