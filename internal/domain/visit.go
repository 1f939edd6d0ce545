package domain

// VisitLog is one diary entry: a user's visit to a restaurant.
// Entries are immutable once logged.
type VisitLog struct {
	ID       string  `json:"id"`
	PlaceID  string  `json:"placeId"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Date     int64   `json:"date"` // epoch ms
	Rating   *int    `json:"rating,omitempty"`
}
