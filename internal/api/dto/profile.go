package dto

import "github.com/tablelog/tablelog-server/internal/domain"

// Profile is a user profile as returned by the API. The diary is served
// separately.
type Profile struct {
	ID               string   `json:"id" doc:"User ID"`
	Username         string   `json:"username" doc:"Unique username"`
	Name             string   `json:"name" doc:"Display name"`
	Email            string   `json:"email" doc:"Email address"`
	Bio              string   `json:"bio,omitempty" doc:"Short biography"`
	Avatar           string   `json:"avatar" doc:"Avatar URL, or the name's initial"`
	CreatedAt        int64    `json:"created_at" doc:"Signup time (epoch ms)"`
	Followers        []string `json:"followers" doc:"IDs of followers"`
	Following        []string `json:"following" doc:"IDs of followed users"`
	IncomingRequests []string `json:"incoming_requests" doc:"IDs of users asking to follow"`
	OutgoingRequests []string `json:"outgoing_requests" doc:"IDs of users this user asked to follow"`
	VisitCount       int      `json:"visit_count" doc:"Number of diary entries"`
}

// FromProfile converts a domain profile.
func FromProfile(u *domain.UserProfile) Profile {
	return Profile{
		ID:               u.ID,
		Username:         u.Username,
		Name:             u.Name,
		Email:            u.Email,
		Bio:              u.Bio,
		Avatar:           u.DisplayAvatar(),
		CreatedAt:        u.CreatedAt,
		Followers:        nonNil(u.Followers),
		Following:        nonNil(u.Following),
		IncomingRequests: nonNil(u.IncomingRequests),
		OutgoingRequests: nonNil(u.OutgoingRequests),
		VisitCount:       len(u.Diary),
	}
}

// FromProfiles converts a slice of domain profiles.
func FromProfiles(us []domain.UserProfile) []Profile {
	out := make([]Profile, len(us))
	for i := range us {
		out[i] = FromProfile(&us[i])
	}
	return out
}

// Visit is one diary entry.
type Visit struct {
	ID       string  `json:"id" doc:"Visit ID"`
	PlaceID  string  `json:"place_id" doc:"Gateway place ID"`
	Name     string  `json:"name" doc:"Restaurant name"`
	PhotoURL *string `json:"photo_url,omitempty" doc:"Restaurant photo URL"`
	Date     int64   `json:"date" doc:"Visit time (epoch ms)"`
	Rating   *int    `json:"rating,omitempty" doc:"Rating from 1 to 5"`
}

// FromVisit converts a domain visit.
func FromVisit(v domain.VisitLog) Visit {
	return Visit{
		ID:       v.ID,
		PlaceID:  v.PlaceID,
		Name:     v.Name,
		PhotoURL: v.PhotoURL,
		Date:     v.Date,
		Rating:   v.Rating,
	}
}

// FromVisits converts a diary.
func FromVisits(vs []domain.VisitLog) []Visit {
	out := make([]Visit, len(vs))
	for i, v := range vs {
		out[i] = FromVisit(v)
	}
	return out
}

// Activity is one feed entry.
type Activity struct {
	UserID          string  `json:"user_id" doc:"Acting user ID"`
	UserName        string  `json:"user_name" doc:"Acting user display name"`
	UserAvatar      string  `json:"user_avatar" doc:"Acting user avatar"`
	Action          string  `json:"action" doc:"Activity kind"`
	RestaurantName  string  `json:"restaurant_name" doc:"Restaurant name"`
	RestaurantID    string  `json:"restaurant_id" doc:"Gateway place ID"`
	RestaurantPhoto *string `json:"restaurant_photo,omitempty" doc:"Restaurant photo URL"`
	Date            int64   `json:"date" doc:"Activity time (epoch ms)"`
	Rating          *int    `json:"rating,omitempty" doc:"Rating from 1 to 5"`
}

// FromActivity converts a feed.
func FromActivity(items []domain.ActivityItem) []Activity {
	out := make([]Activity, len(items))
	for i, a := range items {
		out[i] = Activity{
			UserID:          a.UserID,
			UserName:        a.UserName,
			UserAvatar:      a.UserAvatar,
			Action:          string(a.Action),
			RestaurantName:  a.RestaurantName,
			RestaurantID:    a.RestaurantID,
			RestaurantPhoto: a.RestaurantPhoto,
			Date:            a.Date,
			Rating:          a.Rating,
		}
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
