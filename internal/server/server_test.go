package server

import (
	"context"
	"testing"

	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/config"
)

func TestNewCacheBackendNone(t *testing.T) {
	cfg := config.Default()
	cfg.Server.CacheBackend = config.CacheBackendNone

	c, err := newCache(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("cache type = %T, want *cache.NullCache", c)
	}
}

func TestNewCacheBackendFile(t *testing.T) {
	cfg := config.Default()
	cfg.Server.CacheBackend = config.CacheBackendFile
	cfg.Server.CacheDir = t.TempDir()

	c, err := newCache(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("cache type = %T, want *cache.FileCache", c)
	}
}

func TestNewServerDefaults(t *testing.T) {
	s, err := New(context.Background(), config.Default(), staticSource(buildShopGraph()), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.logger == nil {
		t.Error("logger should default to log.Default")
	}
	if s.runner == nil || s.handlers == nil {
		t.Error("runner and handlers should be assembled")
	}
}
