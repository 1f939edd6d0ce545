package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tablelog/tablelog-server/internal/store"
	"github.com/tablelog/tablelog-server/internal/validation"
)

// testClock returns a clock that advances one millisecond per call.
func testClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Millisecond)
		return current
	}
}

type testServices struct {
	store    *store.Store
	backend  store.Backend
	identity *IdentityService
	lists    *ListService
}

func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	backend, err := store.OpenBadgerInMemory()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := store.New(backend, logger)
	t.Cleanup(func() { s.Close() })

	identity := NewIdentityService(s, validation.New(), logger)
	lists := NewListService(s, identity, logger)

	return &testServices{store: s, backend: backend, identity: identity, lists: lists}
}

func (ts *testServices) signup(t *testing.T, username, email string) string {
	t.Helper()
	user, err := ts.identity.CreateUser(context.Background(), NewUser{
		Username: username,
		Email:    email,
		Name:     username + " Name",
	})
	require.NoError(t, err)
	return user.ID
}
