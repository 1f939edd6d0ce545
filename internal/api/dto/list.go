package dto

import "github.com/tablelog/tablelog-server/internal/domain"

// List is a user-owned restaurant list.
type List struct {
	ID          string       `json:"id" doc:"List ID"`
	UserID      string       `json:"user_id" doc:"Owner ID"`
	Name        string       `json:"name" doc:"List name"`
	Description string       `json:"description" doc:"List description"`
	Icon        string       `json:"icon" doc:"Emoji icon"`
	Restaurants []Restaurant `json:"restaurants" doc:"Restaurants in insertion order"`
	CreatedAt   int64        `json:"created_at" doc:"Creation time (epoch ms)"`
	UpdatedAt   int64        `json:"updated_at" doc:"Last change time (epoch ms)"`
}

// FromList converts a domain list.
func FromList(l domain.UserList) List {
	return List{
		ID:          l.ID,
		UserID:      l.UserID,
		Name:        l.Name,
		Description: l.Description,
		Icon:        l.Icon,
		Restaurants: FromRestaurants(l.Restaurants),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// FromLists converts a slice of domain lists.
func FromLists(ls []domain.UserList) []List {
	out := make([]List, len(ls))
	for i, l := range ls {
		out[i] = FromList(l)
	}
	return out
}
