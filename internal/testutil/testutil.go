package testutil

import (
	"testing"

	"github.com/vodintech/caragecarcare/internal/store"
)

// NewTestStore creates a fresh in-memory session store for testing.
// Each call gets its own database with migrations applied.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}
