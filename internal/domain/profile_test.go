package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_CaseInsensitiveIdentity(t *testing.T) {
	p := &UserProfile{Username: "Alice", Email: "A@X.com"}

	assert.True(t, p.HasUsername("alice"))
	assert.True(t, p.HasUsername("ALICE"))
	assert.False(t, p.HasUsername("alicia"))
	assert.True(t, p.HasEmail("a@x.COM"))
	assert.True(t, p.MatchesIdentifier("a@x.com"))
	assert.True(t, p.MatchesIdentifier("aLiCe"))
	assert.False(t, p.MatchesIdentifier("bob"))
}

func TestUserProfile_Matches(t *testing.T) {
	p := &UserProfile{Username: "spicefan", Name: "Priya Shah", Bio: "Biryani hunter"}

	assert.True(t, p.Matches(Fold("SPICE")))
	assert.True(t, p.Matches(Fold("shah")))
	assert.True(t, p.Matches(Fold("biryani")))
	assert.False(t, p.Matches(Fold("sushi")))
}

func TestUserProfile_DisplayAvatar(t *testing.T) {
	assert.Equal(t, "🍜", (&UserProfile{Name: "Ana", Avatar: "🍜"}).DisplayAvatar())
	assert.Equal(t, "É", (&UserProfile{Name: "Émile"}).DisplayAvatar())
	assert.Equal(t, "", (&UserProfile{}).DisplayAvatar())
}

func TestUserProfile_RequestFollow_Idempotent(t *testing.T) {
	a := &UserProfile{ID: "user-a"}
	b := &UserProfile{ID: "user-b"}

	a.RequestFollow(b)
	a.RequestFollow(b)

	assert.Equal(t, []string{"user-b"}, a.OutgoingRequests)
	assert.Equal(t, []string{"user-a"}, b.IncomingRequests)
}

func TestUserProfile_RequestFollow_NeverSelf(t *testing.T) {
	a := &UserProfile{ID: "user-a"}

	a.RequestFollow(a)

	assert.Empty(t, a.OutgoingRequests)
	assert.Empty(t, a.IncomingRequests)
}

func TestUserProfile_AcceptFollowFrom(t *testing.T) {
	a := &UserProfile{ID: "user-a"}
	b := &UserProfile{ID: "user-b"}
	a.RequestFollow(b)

	b.AcceptFollowFrom(a)
	b.AcceptFollowFrom(a)

	assert.Equal(t, []string{"user-a"}, b.Followers)
	assert.Equal(t, []string{"user-b"}, a.Following)
	assert.Empty(t, b.IncomingRequests)
	assert.Empty(t, a.OutgoingRequests)
	assert.True(t, a.IsFollowing("user-b"))
	assert.False(t, b.IsFollowing("user-a"))
}

func TestUserProfile_PrependVisit(t *testing.T) {
	p := &UserProfile{}
	p.PrependVisit(VisitLog{ID: "log-1"})
	p.PrependVisit(VisitLog{ID: "log-2"})

	assert.Equal(t, "log-2", p.Diary[0].ID)
	assert.Equal(t, "log-1", p.Diary[1].ID)
}

func TestUserProfile_Normalize(t *testing.T) {
	p := &UserProfile{Followers: []string{"user-x"}}
	p.Normalize()

	assert.Equal(t, []string{"user-x"}, p.Followers)
	assert.NotNil(t, p.Following)
	assert.NotNil(t, p.IncomingRequests)
	assert.NotNil(t, p.OutgoingRequests)
	assert.NotNil(t, p.Diary)
}
