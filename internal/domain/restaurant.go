package domain

import "encoding/json"

// StoredRestaurant is a cached, possibly stale snapshot of a gateway place,
// keyed by PlaceID. Pointer and slice fields are optional: nil means unset.
type StoredRestaurant struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Rating      float64           `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	PhotoURL    *string           `json:"photoUrl"`
	OpenNow     *bool             `json:"openNow,omitempty"`
	PlaceID     string            `json:"placeId"`
	Types       []string          `json:"types,omitempty"`
	LastVisited *int64            `json:"lastVisited,omitempty"`
	IsFavorite  *bool             `json:"isFavorite,omitempty"`
	UserReviews []json.RawMessage `json:"userReviews,omitempty"`
}

// Merge shallow-overwrites r with next. Required fields always take next's
// value; optional fields are only overwritten when next sets them.
func (r *StoredRestaurant) Merge(next StoredRestaurant) {
	r.ID = next.ID
	r.Name = next.Name
	r.Address = next.Address
	r.Rating = next.Rating
	r.ReviewCount = next.ReviewCount
	r.PhotoURL = next.PhotoURL
	r.PlaceID = next.PlaceID

	if next.OpenNow != nil {
		r.OpenNow = next.OpenNow
	}
	if next.Types != nil {
		r.Types = next.Types
	}
	if next.LastVisited != nil {
		r.LastVisited = next.LastVisited
	}
	if next.IsFavorite != nil {
		r.IsFavorite = next.IsFavorite
	}
	if next.UserReviews != nil {
		r.UserReviews = next.UserReviews
	}
}

// Favorite reports whether the snapshot is marked favorite.
func (r *StoredRestaurant) Favorite() bool {
	return r.IsFavorite != nil && *r.IsFavorite
}

// SetFavorite marks or unmarks the snapshot as favorite.
func (r *StoredRestaurant) SetFavorite(favorite bool) {
	r.IsFavorite = &favorite
}

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SearchHistoryLimit caps the recent-search sequence.
const SearchHistoryLimit = 10

// SearchHistory records one search and the results it returned.
type SearchHistory struct {
	Query     string             `json:"query"`
	Location  LatLng             `json:"location"`
	Radius    int                `json:"radius"`
	Timestamp int64              `json:"timestamp"`
	Results   []StoredRestaurant `json:"results"`
}

// CuratedList is an editorial grouping produced by a category search.
// It is replaced wholesale on every regeneration.
type CuratedList struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	SearchQuery string             `json:"searchQuery,omitempty"`
	Restaurants []StoredRestaurant `json:"restaurants"`
}
