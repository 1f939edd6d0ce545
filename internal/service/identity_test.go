package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
	"github.com/tablelog/tablelog-server/internal/store"
)

func TestCreateUser_SignsIn(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	user, err := ts.identity.CreateUser(ctx, NewUser{Username: "alice", Email: "a@x.com", Name: "Alice"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(user.ID, "user-"))
	assert.NotZero(t, user.CreatedAt)
	assert.Empty(t, user.Followers)
	assert.NotNil(t, user.Diary)

	current := ts.identity.CurrentUser(ctx)
	require.NotNil(t, current)
	assert.Equal(t, *user, *current)
}

func TestCreateUser_DuplicateUsernameAnyCase(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	ts.signup(t, "Alice", "a@x.com")

	for _, username := range []string{"alice", "ALICE", "aLiCe"} {
		_, err := ts.identity.CreateUser(ctx, NewUser{Username: username, Email: "other@x.com", Name: "Other"})
		assert.ErrorIs(t, err, domainerrors.ErrDuplicateUsername, username)
		assert.EqualError(t, err, "Username already taken")
	}
}

func TestCreateUser_DuplicateEmailAnyCase(t *testing.T) {
	ts := setupTestServices(t)
	ts.signup(t, "alice", "a@x.com")

	_, err := ts.identity.CreateUser(context.Background(), NewUser{Username: "bob", Email: "A@X.COM", Name: "Bob"})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
}

func TestCreateUser_Validation(t *testing.T) {
	ts := setupTestServices(t)

	_, err := ts.identity.CreateUser(context.Background(), NewUser{Username: " ", Email: "a@x.com", Name: "A"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = ts.identity.CreateUser(context.Background(), NewUser{Username: "a", Email: "nope", Name: "A"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	assert.Empty(t, ts.identity.ListUsers(context.Background()))
}

func TestCreateUser_CorruptCollectionIsNotOverwritten(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	require.NoError(t, ts.backend.Set(ctx, store.KeyUsers, []byte("garbage")))

	_, err := ts.identity.CreateUser(ctx, NewUser{Username: "alice", Email: "a@x.com", Name: "Alice"})
	assert.ErrorIs(t, err, domainerrors.ErrInternal)

	raw, err := ts.backend.Get(ctx, store.KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(raw))
}

func TestCreateUser_ConcurrentSignupsAllPersist(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ts.identity.CreateUser(ctx, NewUser{Username: name, Email: name + "@x.com", Name: name})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, ts.identity.ListUsers(ctx), 6)
}

func TestLogin(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	aliceID := ts.signup(t, "alice", "a@x.com")
	ts.signup(t, "bob", "b@x.com")

	user, err := ts.identity.Login(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, aliceID, user.ID)
	assert.Equal(t, aliceID, ts.identity.CurrentUser(ctx).ID)

	user, err = ts.identity.Login(ctx, "B@x.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	_, err = ts.identity.Login(ctx, "carol")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	assert.Equal(t, "bob", ts.identity.CurrentUser(ctx).Username, "failed login keeps the previous identity")
}

func TestLogout_Idempotent(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	ts.signup(t, "alice", "a@x.com")

	require.NoError(t, ts.identity.Logout(ctx))
	require.NoError(t, ts.identity.Logout(ctx))
	assert.Nil(t, ts.identity.CurrentUser(ctx))
}

func TestCurrentUser_DanglingPointer(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	require.NoError(t, ts.store.SetCurrentUserID(ctx, "user-gone"))

	assert.Nil(t, ts.identity.CurrentUser(ctx))
}

func TestCurrentUser_ContextIdentityWins(t *testing.T) {
	ts := setupTestServices(t)
	aliceID := ts.signup(t, "alice", "a@x.com")
	ts.signup(t, "bob", "b@x.com") // bob is signed in

	ctx := WithUserID(context.Background(), aliceID)
	assert.Equal(t, "alice", ts.identity.CurrentUser(ctx).Username)
	assert.Equal(t, "bob", ts.identity.CurrentUser(context.Background()).Username)
}

func TestSearchProfiles(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	_, err := ts.identity.CreateUser(ctx, NewUser{Username: "spicefan", Email: "s@x.com", Name: "Priya", Bio: "Biryani hunter"})
	require.NoError(t, err)
	ts.signup(t, "bob", "b@x.com")

	assert.Len(t, ts.identity.SearchProfiles(ctx, "BIRYANI"), 1)
	assert.Len(t, ts.identity.SearchProfiles(ctx, "priya"), 1)
	assert.Len(t, ts.identity.SearchProfiles(ctx, "name"), 1, "matches bob's generated name")
	assert.Empty(t, ts.identity.SearchProfiles(ctx, ""))
	assert.Empty(t, ts.identity.SearchProfiles(ctx, "   "))
	assert.NotNil(t, ts.identity.SearchProfiles(ctx, "zzz"))
}

func TestSendFollowRequest_Errors(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	assert.ErrorIs(t, ts.identity.SendFollowRequest(ctx, "user-x"), domainerrors.ErrNotAuthenticated)

	aliceID := ts.signup(t, "alice", "a@x.com")
	err := ts.identity.SendFollowRequest(ctx, aliceID)
	assert.ErrorIs(t, err, domainerrors.ErrSelfFollow)
	assert.EqualError(t, err, "Cannot follow yourself")

	assert.ErrorIs(t, ts.identity.SendFollowRequest(ctx, "user-missing"), domainerrors.ErrUserNotFound)
}

func TestSendFollowRequest_Idempotent(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	bobID := ts.signup(t, "bob", "b@x.com")
	aliceID := ts.signup(t, "alice", "a@x.com")

	require.NoError(t, ts.identity.SendFollowRequest(ctx, bobID))
	require.NoError(t, ts.identity.SendFollowRequest(ctx, bobID))

	alice := ts.identity.GetUser(ctx, aliceID)
	bob := ts.identity.GetUser(ctx, bobID)
	assert.Equal(t, []string{bobID}, alice.OutgoingRequests)
	assert.Equal(t, []string{aliceID}, bob.IncomingRequests)
}

func TestAcceptFollowRequest(t *testing.T) {
	ts := setupTestServices(t)
	bobID := ts.signup(t, "bob", "b@x.com")
	aliceID := ts.signup(t, "alice", "a@x.com")

	asAlice := WithUserID(context.Background(), aliceID)
	asBob := WithUserID(context.Background(), bobID)

	require.NoError(t, ts.identity.SendFollowRequest(asAlice, bobID))
	require.NoError(t, ts.identity.AcceptFollowRequest(asBob, aliceID))
	require.NoError(t, ts.identity.AcceptFollowRequest(asBob, aliceID), "repeat acceptance is a no-op")

	alice := ts.identity.GetUser(asAlice, aliceID)
	bob := ts.identity.GetUser(asBob, bobID)
	assert.Equal(t, []string{aliceID}, bob.Followers)
	assert.Equal(t, []string{bobID}, alice.Following)
	assert.Empty(t, bob.IncomingRequests)
	assert.Empty(t, alice.OutgoingRequests)
	assert.Empty(t, bob.Following)
}

func TestAcceptFollowRequest_Errors(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	assert.ErrorIs(t, ts.identity.AcceptFollowRequest(ctx, "user-x"), domainerrors.ErrNotAuthenticated)

	ts.signup(t, "bob", "b@x.com")
	assert.ErrorIs(t, ts.identity.AcceptFollowRequest(ctx, "user-missing"), domainerrors.ErrUserNotFound)
}

func TestLogVisit_AndDiary(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	ts.identity.now = testClock(time.UnixMilli(1_700_000_000_000))
	ts.signup(t, "alice", "a@x.com")

	rating := 4
	visit, err := ts.identity.LogVisit(ctx, NewVisit{PlaceID: "p1", Name: "Cafe X", Rating: &rating})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(visit.ID, "log-"))
	assert.NotZero(t, visit.Date)

	diary := ts.identity.GetDiary(ctx, "")
	require.Len(t, diary, 1)
	assert.Equal(t, "p1", diary[0].PlaceID)
	require.NotNil(t, diary[0].Rating)
	assert.Equal(t, 4, *diary[0].Rating)
}

func TestLogVisit_NewestFirstAndBackdated(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	aliceID := ts.signup(t, "alice", "a@x.com")

	_, err := ts.identity.LogVisit(ctx, NewVisit{PlaceID: "p1", Name: "First", Date: 1000})
	require.NoError(t, err)
	_, err = ts.identity.LogVisit(ctx, NewVisit{PlaceID: "p2", Name: "Second"})
	require.NoError(t, err)

	diary := ts.identity.GetDiary(ctx, aliceID)
	require.Len(t, diary, 2)
	assert.Equal(t, "p2", diary[0].PlaceID)
	assert.Equal(t, int64(1000), diary[1].Date)
}

func TestLogVisit_Errors(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	_, err := ts.identity.LogVisit(ctx, NewVisit{PlaceID: "p1", Name: "X"})
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
	assert.EqualError(t, err, "Not logged in")

	ts.signup(t, "alice", "a@x.com")
	bad := 6
	_, err = ts.identity.LogVisit(ctx, NewVisit{PlaceID: "p1", Name: "X", Rating: &bad})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestGetDiary_Unresolvable(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	assert.Empty(t, ts.identity.GetDiary(ctx, ""))
	assert.Empty(t, ts.identity.GetDiary(ctx, "user-unknown"))
	assert.NotNil(t, ts.identity.GetDiary(ctx, ""))
}

func TestGetByUsername(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()
	aliceID := ts.signup(t, "Alice", "a@x.com")

	user := ts.identity.GetByUsername(ctx, "ALICE")
	require.NotNil(t, user)
	assert.Equal(t, aliceID, user.ID)
	assert.Nil(t, ts.identity.GetByUsername(ctx, "bob"))
}

func TestActivityFeed(t *testing.T) {
	ts := setupTestServices(t)
	bobID := ts.signup(t, "bob", "b@x.com")
	asBob := WithUserID(context.Background(), bobID)
	for i := range 3 {
		_, err := ts.identity.LogVisit(asBob, NewVisit{PlaceID: "p", Name: "Spot", Date: int64(1000 + i)})
		require.NoError(t, err)
	}

	aliceID := ts.signup(t, "alice", "a@x.com")
	asAlice := WithUserID(context.Background(), aliceID)
	assert.Empty(t, ts.identity.ActivityFeed(asAlice, ""))

	require.NoError(t, ts.identity.SendFollowRequest(asAlice, bobID))
	require.NoError(t, ts.identity.AcceptFollowRequest(asBob, aliceID))

	feed := ts.identity.ActivityFeed(asAlice, "")
	require.Len(t, feed, 3)
	assert.Equal(t, bobID, feed[0].UserID)
	assert.Equal(t, int64(1002), feed[0].Date)
	assert.Equal(t, "b", feed[0].UserAvatar)
}
