package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablelog/tablelog-server/internal/domain"
	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
	"github.com/tablelog/tablelog-server/internal/store"
)

func cafeX() domain.StoredRestaurant {
	return domain.StoredRestaurant{ID: "r1", PlaceID: "p1", Name: "Cafe X"}
}

func TestCreateUserList_RoundTrip(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	list, err := ts.lists.CreateUserList(ctx, "Favorites", "", "⭐", "u1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(list.ID, "list-"))

	lists := ts.lists.GetUserLists(ctx, "u1")
	require.Len(t, lists, 1)
	assert.Equal(t, "Favorites", lists[0].Name)
	assert.Equal(t, "u1", lists[0].UserID)
	assert.Empty(t, lists[0].Restaurants)
	assert.Equal(t, lists[0].CreatedAt, lists[0].UpdatedAt)
}

func TestCreateUserList_DuplicateNamesAllowed(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	_, err := ts.lists.CreateUserList(ctx, "Favorites", "", "⭐", "u1")
	require.NoError(t, err)
	_, err = ts.lists.CreateUserList(ctx, "Favorites", "again", "⭐", "u1")
	require.NoError(t, err)

	assert.Len(t, ts.lists.GetUserLists(ctx, "u1"), 2)
}

func TestCreateUserList_Errors(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	_, err := ts.lists.CreateUserList(ctx, "Favorites", "", "⭐", "")
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)

	_, err = ts.lists.CreateUserList(ctx, "  ", "", "⭐", "u1")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	require.NoError(t, ts.backend.Set(ctx, store.UserListsKey("u2"), []byte("{")))
	_, err = ts.lists.CreateUserList(ctx, "Favorites", "", "⭐", "u2")
	assert.Error(t, err, "persistence failures surface to the caller")
}

func TestGetUserLists_ResolvesIdentity(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	assert.Empty(t, ts.lists.GetUserLists(ctx, ""), "no identity, no lists")

	aliceID := ts.signup(t, "alice", "a@x.com")
	_, err := ts.lists.CreateUserList(ctx, "Mine", "", "🍜", "")
	require.NoError(t, err)

	assert.Len(t, ts.lists.GetUserLists(ctx, ""), 1)
	assert.Len(t, ts.lists.GetUserLists(ctx, aliceID), 1)
	assert.Empty(t, ts.lists.GetUserLists(WithUserID(ctx, "someone-else"), ""))
}

func TestUpdateUserList(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	list, err := ts.lists.CreateUserList(ctx, "Favorites", "", "⭐", "u1")
	require.NoError(t, err)

	name := "Date Night"
	assert.True(t, ts.lists.UpdateUserList(ctx, list.ID, domain.ListUpdate{Name: &name}, "u1"))
	assert.False(t, ts.lists.UpdateUserList(ctx, "list-missing", domain.ListUpdate{Name: &name}, "u1"))
	assert.False(t, ts.lists.UpdateUserList(ctx, list.ID, domain.ListUpdate{Name: &name}, ""), "fails closed without identity")

	got := ts.lists.GetUserList(ctx, list.ID, "u1")
	require.NotNil(t, got)
	assert.Equal(t, "Date Night", got.Name)
	assert.Equal(t, "⭐", got.Icon)
	assert.Greater(t, got.UpdatedAt, got.CreatedAt)
}

func TestDeleteUserList(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	keep, err := ts.lists.CreateUserList(ctx, "Keep", "", "⭐", "u1")
	require.NoError(t, err)
	drop, err := ts.lists.CreateUserList(ctx, "Drop", "", "⭐", "u1")
	require.NoError(t, err)

	assert.True(t, ts.lists.DeleteUserList(ctx, drop.ID, "u1"))

	lists := ts.lists.GetUserLists(ctx, "u1")
	require.Len(t, lists, 1)
	assert.Equal(t, keep.ID, lists[0].ID)
}

func TestDeleteUserList_MissingIDIsSuccess(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	_, err := ts.lists.CreateUserList(ctx, "Keep", "", "⭐", "u1")
	require.NoError(t, err)
	before := ts.lists.GetUserLists(ctx, "u1")

	assert.True(t, ts.lists.DeleteUserList(ctx, "list-nope", "u1"))
	assert.Equal(t, before, ts.lists.GetUserLists(ctx, "u1"))

	assert.False(t, ts.lists.DeleteUserList(ctx, "list-nope", ""), "fails closed without identity")
}

func TestAddRestaurantToList_DuplicatePlaceIgnored(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	list, err := ts.lists.CreateUserList(ctx, "Favorites", "", "⭐", "u1")
	require.NoError(t, err)

	assert.True(t, ts.lists.AddRestaurantToList(ctx, list.ID, cafeX(), "u1"))
	dup := cafeX()
	dup.ID = "r-other"
	assert.False(t, ts.lists.AddRestaurantToList(ctx, list.ID, dup, "u1"))

	got := ts.lists.GetUserList(ctx, list.ID, "u1")
	require.NotNil(t, got)
	assert.Len(t, got.Restaurants, 1)
	assert.Equal(t, "r1", got.Restaurants[0].ID)
}

func TestAddRestaurantToList_MissingList(t *testing.T) {
	ts := setupTestServices(t)
	assert.False(t, ts.lists.AddRestaurantToList(context.Background(), "list-nope", cafeX(), "u1"))
}

func TestRemoveRestaurantFromList_NonMemberIsSuccess(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	list, err := ts.lists.CreateUserList(ctx, "Favorites", "", "⭐", "u1")
	require.NoError(t, err)
	require.True(t, ts.lists.AddRestaurantToList(ctx, list.ID, cafeX(), "u1"))

	assert.True(t, ts.lists.RemoveRestaurantFromList(ctx, list.ID, "p-unknown", "u1"))
	assert.Len(t, ts.lists.GetUserList(ctx, list.ID, "u1").Restaurants, 1)

	assert.False(t, ts.lists.RemoveRestaurantFromList(ctx, "list-nope", "p1", "u1"))
}

func TestWantToVisitScenario(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	// Freeze the clock: updatedAt must still advance strictly.
	frozen := time.UnixMilli(1_700_000_000_000)
	ts.lists.now = func() time.Time { return frozen }
	userID := ts.signup(t, "alice", "a@x.com")

	list, err := ts.lists.CreateUserList(ctx, "Want to Visit", "", "📍", userID)
	require.NoError(t, err)
	require.True(t, ts.lists.AddRestaurantToList(ctx, list.ID, cafeX(), ""))
	require.True(t, ts.lists.RemoveRestaurantFromList(ctx, list.ID, "p1", ""))

	got := ts.lists.GetUserList(ctx, list.ID, "")
	require.NotNil(t, got)
	assert.Empty(t, got.Restaurants)
	assert.Greater(t, got.UpdatedAt, got.CreatedAt)
}

func TestGetRestaurantLists(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	a, err := ts.lists.CreateUserList(ctx, "A", "", "⭐", "u1")
	require.NoError(t, err)
	_, err = ts.lists.CreateUserList(ctx, "B", "", "⭐", "u1")
	require.NoError(t, err)
	require.True(t, ts.lists.AddRestaurantToList(ctx, a.ID, cafeX(), "u1"))

	lists := ts.lists.GetRestaurantLists(ctx, "p1", "u1")
	require.Len(t, lists, 1)
	assert.Equal(t, a.ID, lists[0].ID)

	assert.Empty(t, ts.lists.GetRestaurantLists(ctx, "p1", "u2"))
	assert.Empty(t, ts.lists.GetRestaurantLists(ctx, "p1", ""))
}

func TestUserLists_CorruptPartitionDegrades(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	require.NoError(t, ts.backend.Set(ctx, store.UserListsKey("u1"), []byte("not json")))

	assert.Empty(t, ts.lists.GetUserLists(ctx, "u1"))
	assert.False(t, ts.lists.AddRestaurantToList(ctx, "list-1", cafeX(), "u1"))
	assert.False(t, ts.lists.DeleteUserList(ctx, "list-1", "u1"))
}
