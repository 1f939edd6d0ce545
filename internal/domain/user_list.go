package domain

import "slices"

// UserList is a named, user-owned collection of restaurants. Lists are stored
// per owner; a restaurant appears at most once per list, by PlaceID.
type UserList struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	Restaurants []StoredRestaurant `json:"restaurants"`
	CreatedAt   int64              `json:"createdAt"` // epoch ms
	UpdatedAt   int64              `json:"updatedAt"` // epoch ms
}

// ListUpdate is a partial edit of a list's descriptive fields. Nil fields are left alone.
type ListUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

// Touch advances UpdatedAt to nowMs. Two mutations within the same
// millisecond still leave UpdatedAt strictly increasing.
func (l *UserList) Touch(nowMs int64) {
	if nowMs <= l.UpdatedAt {
		nowMs = l.UpdatedAt + 1
	}
	l.UpdatedAt = nowMs
}

// ContainsRestaurant reports whether a restaurant with placeID is in the list.
func (l *UserList) ContainsRestaurant(placeID string) bool {
	return slices.ContainsFunc(l.Restaurants, func(r StoredRestaurant) bool {
		return r.PlaceID == placeID
	})
}

// AddRestaurant appends r unless its PlaceID is already present.
// Returns false, without touching the list, for a duplicate.
func (l *UserList) AddRestaurant(r StoredRestaurant, nowMs int64) bool {
	if l.ContainsRestaurant(r.PlaceID) {
		return false
	}
	l.Restaurants = append(l.Restaurants, r)
	l.Touch(nowMs)
	return true
}

// RemoveRestaurant drops any restaurant with placeID. The list is touched even
// when nothing matched.
func (l *UserList) RemoveRestaurant(placeID string, nowMs int64) {
	l.Restaurants = slices.DeleteFunc(l.Restaurants, func(r StoredRestaurant) bool {
		return r.PlaceID == placeID
	})
	if l.Restaurants == nil {
		l.Restaurants = []StoredRestaurant{}
	}
	l.Touch(nowMs)
}

// Apply merges u into the list and touches it.
func (l *UserList) Apply(u ListUpdate, nowMs int64) {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Icon != nil {
		l.Icon = *u.Icon
	}
	l.Touch(nowMs)
}
