package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newList() *UserList {
	return &UserList{
		ID:          "list-1",
		UserID:      "user-1",
		Name:        "Want to Visit",
		Restaurants: []StoredRestaurant{},
		CreatedAt:   1000,
		UpdatedAt:   1000,
	}
}

func TestUserList_AddRestaurant(t *testing.T) {
	l := newList()

	assert.True(t, l.AddRestaurant(StoredRestaurant{PlaceID: "p1", Name: "Cafe X"}, 2000))
	assert.Len(t, l.Restaurants, 1)
	assert.Equal(t, int64(2000), l.UpdatedAt)
	assert.True(t, l.ContainsRestaurant("p1"))
}

func TestUserList_AddRestaurant_IgnoresDuplicatePlace(t *testing.T) {
	l := newList()
	l.AddRestaurant(StoredRestaurant{PlaceID: "p1", Name: "Cafe X"}, 2000)

	added := l.AddRestaurant(StoredRestaurant{ID: "other", PlaceID: "p1", Name: "Cafe X again"}, 3000)

	assert.False(t, added)
	assert.Len(t, l.Restaurants, 1)
	assert.Equal(t, int64(2000), l.UpdatedAt)
}

func TestUserList_RemoveRestaurant_TouchesEvenWithoutMatch(t *testing.T) {
	l := newList()
	l.AddRestaurant(StoredRestaurant{PlaceID: "p1"}, 2000)

	l.RemoveRestaurant("missing", 3000)
	assert.Len(t, l.Restaurants, 1)
	assert.Equal(t, int64(3000), l.UpdatedAt)

	l.RemoveRestaurant("p1", 4000)
	assert.Empty(t, l.Restaurants)
	assert.NotNil(t, l.Restaurants)
}

func TestUserList_Touch_StrictlyIncreasing(t *testing.T) {
	l := newList()

	l.Touch(1000)
	assert.Equal(t, int64(1001), l.UpdatedAt)

	l.Touch(500)
	assert.Equal(t, int64(1002), l.UpdatedAt)
}

func TestUserList_Apply(t *testing.T) {
	l := newList()
	name := "Date Night"

	l.Apply(ListUpdate{Name: &name}, 5000)

	assert.Equal(t, "Date Night", l.Name)
	assert.Equal(t, "", l.Description)
	assert.Equal(t, int64(5000), l.UpdatedAt)
}
