package sqlite

import (
	"context"
	"testing"
)

// NewTestStorage creates a fresh in-memory SQLite database with the schema applied.
func NewTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := s.EnsureSchema(context.Background()); err != nil {
		s.Stop()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(s.Stop)

	return s
}
