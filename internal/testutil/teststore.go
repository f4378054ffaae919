package testutil

import (
	"testing"

	"github.com/zeppex/zeppex/internal/cache"
)

// NewTestStore creates an in-memory cache store with the schema applied.
// The store is closed when the test completes.
func NewTestStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test cache store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
