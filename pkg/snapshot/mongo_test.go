package snapshot

import (
	"context"
	"errors"
	"os"
	"testing"
)

// newTestMongo connects to the MongoDB named by ARCHSCOPE_TEST_MONGO, or
// skips the test when the variable is unset. Tests use a throwaway
// collection so parallel runs don't interfere.
func newTestMongo(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("ARCHSCOPE_TEST_MONGO")
	if uri == "" {
		t.Skip("set ARCHSCOPE_TEST_MONGO to run mongo snapshot tests")
	}

	store, err := NewMongoStore(context.Background(), MongoConfig{
		URI:        uri,
		Database:   "archscope_test",
		Collection: "snapshots_" + t.Name(),
	})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	t.Cleanup(func() {
		_ = store.collection.Drop(context.Background())
		_ = store.Close()
	})
	return store
}

func TestMongoStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestMongo(t)

	snap, err := New("before-refactor", buildShopGraph())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "before-refactor" || got.NodeCount() != 3 {
		t.Errorf("Get = %s with %d nodes, want before-refactor with 3", got.Name, got.NodeCount())
	}

	snaps, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("len(snaps) = %d, want 1", len(snaps))
	}

	if err := store.Delete(ctx, snap.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
