package domain

import (
	"sort"
)

// Feed sizing: the newest visits per followed user, and the overall cap.
const (
	FeedVisitsPerUser = 5
	FeedLimit         = 20
)

// ActivityAction names what a feed item reports. Only logged visits exist today.
type ActivityAction string

// ActivityLogged is a visit logged to a diary.
const ActivityLogged ActivityAction = "logged"

// ActivityItem is one entry in a user's activity feed. Author info is
// denormalized so the feed renders without further lookups.
type ActivityItem struct {
	UserID          string         `json:"userId"`
	UserName        string         `json:"userName"`
	UserAvatar      string         `json:"userAvatar"`
	Action          ActivityAction `json:"action"`
	RestaurantName  string         `json:"restaurantName"`
	RestaurantID    string         `json:"restaurantId"`
	RestaurantPhoto *string        `json:"restaurantPhoto,omitempty"`
	Date            int64          `json:"date"`
	Rating          *int           `json:"rating,omitempty"`
}

// BuildFeed assembles the feed for viewer from the profiles it follows: each
// followed user's newest visits, merged newest first and capped at FeedLimit.
func BuildFeed(viewer *UserProfile, users []UserProfile) []ActivityItem {
	byID := make(map[string]*UserProfile, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	items := []ActivityItem{}
	for _, followedID := range viewer.Following {
		author, ok := byID[followedID]
		if !ok {
			continue
		}
		visits := author.Diary
		if len(visits) > FeedVisitsPerUser {
			visits = visits[:FeedVisitsPerUser]
		}
		for _, v := range visits {
			items = append(items, ActivityItem{
				UserID:          author.ID,
				UserName:        author.Name,
				UserAvatar:      author.DisplayAvatar(),
				Action:          ActivityLogged,
				RestaurantName:  v.Name,
				RestaurantID:    v.PlaceID,
				RestaurantPhoto: v.PhotoURL,
				Date:            v.Date,
				Rating:          v.Rating,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	if len(items) > FeedLimit {
		items = items[:FeedLimit]
	}
	return items
}
