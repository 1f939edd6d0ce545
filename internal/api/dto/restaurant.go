package dto

import (
	"encoding/json"

	"github.com/tablelog/tablelog-server/internal/domain"
)

// Restaurant is a restaurant snapshot as sent and received by the API.
type Restaurant struct {
	ID          string   `json:"id,omitempty" doc:"Restaurant ID; defaults to the place ID"`
	Name        string   `json:"name" doc:"Display name"`
	Address     string   `json:"address,omitempty" doc:"Formatted address"`
	Rating      float64  `json:"rating,omitempty" minimum:"0" maximum:"5" doc:"Gateway rating"`
	ReviewCount int      `json:"review_count,omitempty" minimum:"0" doc:"Gateway review count"`
	PhotoURL    *string  `json:"photo_url,omitempty" doc:"Photo URL"`
	OpenNow     *bool    `json:"open_now,omitempty" doc:"Whether the place is open now"`
	PlaceID     string   `json:"place_id" minLength:"1" doc:"Gateway place ID"`
	Types       []string `json:"types,omitempty" doc:"Gateway place types"`
	LastVisited *int64   `json:"last_visited,omitempty" doc:"Last visit time (epoch ms)"`
	IsFavorite  *bool    `json:"is_favorite,omitempty" doc:"Favorite flag"`
}

// FromRestaurant converts a domain snapshot.
func FromRestaurant(r domain.StoredRestaurant) Restaurant {
	return Restaurant{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		PhotoURL:    r.PhotoURL,
		OpenNow:     r.OpenNow,
		PlaceID:     r.PlaceID,
		Types:       r.Types,
		LastVisited: r.LastVisited,
		IsFavorite:  r.IsFavorite,
	}
}

// FromRestaurants converts a slice of domain snapshots, never returning nil.
func FromRestaurants(rs []domain.StoredRestaurant) []Restaurant {
	out := make([]Restaurant, len(rs))
	for i, r := range rs {
		out[i] = FromRestaurant(r)
	}
	return out
}

// ToDomain converts the DTO back to a domain snapshot. A missing ID takes
// the place ID.
func (r Restaurant) ToDomain() domain.StoredRestaurant {
	id := r.ID
	if id == "" {
		id = r.PlaceID
	}
	return domain.StoredRestaurant{
		ID:          id,
		Name:        r.Name,
		Address:     r.Address,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		PhotoURL:    r.PhotoURL,
		OpenNow:     r.OpenNow,
		PlaceID:     r.PlaceID,
		Types:       r.Types,
		LastVisited: r.LastVisited,
		IsFavorite:  r.IsFavorite,
	}
}

// ToDomainRestaurants converts a slice of DTOs.
func ToDomainRestaurants(rs []Restaurant) []domain.StoredRestaurant {
	out := make([]domain.StoredRestaurant, len(rs))
	for i, r := range rs {
		out[i] = r.ToDomain()
	}
	return out
}

// Review is a free-form review document. The server stores it verbatim.
type Review map[string]any

// FromReviews decodes stored reviews, skipping any that are not JSON objects.
func FromReviews(raw []json.RawMessage) []Review {
	out := make([]Review, 0, len(raw))
	for _, r := range raw {
		var review Review
		if err := json.Unmarshal(r, &review); err != nil || review == nil {
			continue
		}
		out = append(out, review)
	}
	return out
}

// SearchHistory is one recorded search.
type SearchHistory struct {
	Query     string       `json:"query" doc:"Search text"`
	Location  LatLng       `json:"location" doc:"Search center"`
	Radius    int          `json:"radius" minimum:"0" doc:"Search radius in meters"`
	Timestamp int64        `json:"timestamp,omitempty" doc:"Search time (epoch ms); defaults to now"`
	Results   []Restaurant `json:"results" required:"false" doc:"Result snapshot"`
}

// FromSearchHistory converts domain history entries.
func FromSearchHistory(hs []domain.SearchHistory) []SearchHistory {
	out := make([]SearchHistory, len(hs))
	for i, h := range hs {
		out[i] = SearchHistory{
			Query:     h.Query,
			Location:  LatLng{Lat: h.Location.Lat, Lng: h.Location.Lng},
			Radius:    h.Radius,
			Timestamp: h.Timestamp,
			Results:   FromRestaurants(h.Results),
		}
	}
	return out
}

// ToDomain converts the DTO to a domain entry.
func (h SearchHistory) ToDomain() domain.SearchHistory {
	return domain.SearchHistory{
		Query:     h.Query,
		Location:  domain.LatLng{Lat: h.Location.Lat, Lng: h.Location.Lng},
		Radius:    h.Radius,
		Timestamp: h.Timestamp,
		Results:   ToDomainRestaurants(h.Results),
	}
}

// CuratedList is an editorial list.
type CuratedList struct {
	ID          string       `json:"id" doc:"List slug"`
	Title       string       `json:"title" doc:"Display title"`
	Description string       `json:"description" doc:"Display description"`
	Icon        string       `json:"icon" doc:"Emoji icon"`
	Restaurants []Restaurant `json:"restaurants" doc:"Restaurants in the list"`
}

// FromCuratedLists converts domain curated lists.
func FromCuratedLists(ls []domain.CuratedList) []CuratedList {
	out := make([]CuratedList, len(ls))
	for i, l := range ls {
		out[i] = CuratedList{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Icon:        l.Icon,
			Restaurants: FromRestaurants(l.Restaurants),
		}
	}
	return out
}
