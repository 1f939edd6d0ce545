package store

// Top-level keys. Each holds one whole JSON-encoded collection.
const (
	KeyUsers         = "users"
	KeyCurrentUserID = "currentUserId"
	KeyRestaurants   = "restaurants"
	KeySearchHistory = "searchHistory"
	KeyCuratedLists  = "curatedLists"
	KeyUserReviews   = "userReviews"

	userListsPrefix = "userLists_"
)

// CacheKeys are the gateway-derived collections removed by a cache clear.
var CacheKeys = []string{KeyRestaurants, KeySearchHistory, KeyCuratedLists, KeyUserReviews}

// UserListsKey returns the partition key holding userID's lists.
func UserListsKey(userID string) string {
	return userListsPrefix + userID
}
