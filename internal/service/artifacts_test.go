package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablelog/tablelog-server/internal/domain"
	"github.com/tablelog/tablelog-server/internal/store"
)

func TestStoreRestaurant_UpsertsByPlaceID(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	open := true
	ts.lists.StoreRestaurant(ctx, domain.StoredRestaurant{ID: "r1", PlaceID: "p1", Name: "Old", OpenNow: &open})
	ts.lists.StoreRestaurant(ctx, domain.StoredRestaurant{ID: "r2", PlaceID: "p2", Name: "Other"})
	ts.lists.StoreRestaurant(ctx, domain.StoredRestaurant{ID: "r1b", PlaceID: "p1", Name: "New", Rating: 4.2})

	stored := ts.lists.GetStoredRestaurants(ctx)
	require.Len(t, stored, 2)
	assert.Equal(t, "New", stored[0].Name)
	assert.Equal(t, "r1b", stored[0].ID)
	assert.Equal(t, 4.2, stored[0].Rating)
	require.NotNil(t, stored[0].OpenNow)
	assert.True(t, *stored[0].OpenNow)
}

func TestGetStoredRestaurants_CorruptIsEmpty(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	require.NoError(t, ts.backend.Set(ctx, store.KeyRestaurants, []byte("[{")))

	stored := ts.lists.GetStoredRestaurants(ctx)
	assert.NotNil(t, stored)
	assert.Empty(t, stored)
}

func TestToggleFavorite(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	ts.lists.StoreRestaurant(ctx, domain.StoredRestaurant{ID: "r1", PlaceID: "p1", Name: "Cafe X"})

	assert.True(t, ts.lists.ToggleFavorite(ctx, "p1"))
	favorites := ts.lists.GetFavoriteRestaurants(ctx)
	require.Len(t, favorites, 1)
	assert.Equal(t, "p1", favorites[0].PlaceID)

	assert.False(t, ts.lists.ToggleFavorite(ctx, "p1"))
	assert.Empty(t, ts.lists.GetFavoriteRestaurants(ctx))

	assert.False(t, ts.lists.ToggleFavorite(ctx, "p-missing"))
}

func TestSearchHistory_NewestFirstCapped(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	for i := range 12 {
		ts.lists.StoreSearchHistory(ctx, domain.SearchHistory{
			Query:     fmt.Sprintf("q%d", i),
			Location:  domain.LatLng{Lat: 13.08, Lng: 80.27},
			Radius:    5000,
			Timestamp: int64(i),
		})
	}

	history := ts.lists.GetSearchHistory(ctx)
	require.Len(t, history, domain.SearchHistoryLimit)
	assert.Equal(t, "q11", history[0].Query)
	assert.Equal(t, "q2", history[len(history)-1].Query)
}

func TestCuratedLists_FullOverwrite(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	ts.lists.StoreCuratedLists(ctx, []domain.CuratedList{{ID: "a"}, {ID: "b"}})
	ts.lists.StoreCuratedLists(ctx, []domain.CuratedList{{ID: "c"}})

	lists := ts.lists.GetCuratedLists(ctx)
	require.Len(t, lists, 1)
	assert.Equal(t, "c", lists[0].ID)
}

func TestUserReviews(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	ts.lists.StoreUserReview(ctx, "p1", json.RawMessage(`{"author":"a","rating":5}`))
	ts.lists.StoreUserReview(ctx, "p1", json.RawMessage(`{"author":"b","rating":3}`))
	ts.lists.StoreUserReview(ctx, "p2", json.RawMessage(`{"author":"c"}`))

	p1 := ts.lists.GetUserReviews(ctx, "p1")
	require.Len(t, p1, 2)
	assert.JSONEq(t, `{"author":"b","rating":3}`, string(p1[1]))

	assert.Len(t, ts.lists.GetAllUserReviews(ctx), 2)
	assert.NotNil(t, ts.lists.GetUserReviews(ctx, "p-none"))
	assert.Empty(t, ts.lists.GetUserReviews(ctx, "p-none"))
}

func TestUserReviews_CorruptHasRightShape(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	require.NoError(t, ts.backend.Set(ctx, store.KeyUserReviews, []byte("[1,2]")))

	assert.NotNil(t, ts.lists.GetAllUserReviews(ctx))
	assert.Empty(t, ts.lists.GetAllUserReviews(ctx))
	assert.NotNil(t, ts.lists.GetUserReviews(ctx, "p1"))
}

func TestClearAllData_KeepsUsersAndLists(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	userID := ts.signup(t, "alice", "a@x.com")
	_, err := ts.lists.CreateUserList(ctx, "Keep", "", "⭐", userID)
	require.NoError(t, err)
	ts.lists.StoreRestaurant(ctx, cafeX())
	ts.lists.StoreSearchHistory(ctx, domain.SearchHistory{Query: "pizza"})
	ts.lists.StoreCuratedLists(ctx, []domain.CuratedList{{ID: "fine-dining"}})
	ts.lists.StoreUserReview(ctx, "p1", json.RawMessage(`{}`))

	require.NoError(t, ts.lists.ClearAllData(ctx))

	assert.Empty(t, ts.lists.GetStoredRestaurants(ctx))
	assert.Empty(t, ts.lists.GetSearchHistory(ctx))
	assert.Empty(t, ts.lists.GetCuratedLists(ctx))
	assert.Empty(t, ts.lists.GetAllUserReviews(ctx))
	assert.Len(t, ts.identity.ListUsers(ctx), 1)
	assert.Len(t, ts.lists.GetUserLists(ctx, userID), 1)
}

func TestGetStorageInfo(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	empty := ts.lists.GetStorageInfo(ctx)
	assert.Zero(t, empty.Used)
	assert.Equal(t, StorageCapacity, empty.Total)
	assert.Zero(t, empty.Percentage)

	userID := ts.signup(t, "alice", "a@x.com")
	_, err := ts.lists.CreateUserList(ctx, "Keep", "", "⭐", userID)
	require.NoError(t, err)
	ts.lists.StoreRestaurant(ctx, cafeX())

	var expected int
	for _, key := range []string{store.KeyUsers, store.KeyCurrentUserID, store.KeyRestaurants, store.UserListsKey(userID)} {
		size, err := ts.store.Size(ctx, key)
		require.NoError(t, err)
		require.Positive(t, size, key)
		expected += size
	}

	info := ts.lists.GetStorageInfo(ctx)
	assert.Equal(t, expected, info.Used)
	assert.InDelta(t, float64(expected)/float64(StorageCapacity)*100, info.Percentage, 1e-9)
}
