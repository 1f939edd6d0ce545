package places

import (
	"slices"
	"strings"
)

// placeFilter drops lodging and wellness venues that the gateway returns
// alongside restaurants.
type placeFilter struct {
	excludeTypes    []string
	excludeKeywords []string
	requireTypes    []string // empty means any type passes
}

var (
	searchFilter = placeFilter{
		excludeTypes:    []string{"lodging", "resort", "hotel", "motel", "hostel", "campground", "spa", "beauty_salon"},
		excludeKeywords: []string{"resort", "hotel", "spa", "wellness", "accommodation", "beauty", "salon"},
		requireTypes:    []string{"restaurant", "food", "meal_takeaway", "meal_delivery", "cafe", "bakery", "bar"},
	}
	nearbyFilter = placeFilter{
		excludeTypes:    []string{"lodging", "resort", "hotel", "motel", "hostel", "campground"},
		excludeKeywords: []string{"resort", "hotel", "spa", "wellness", "accommodation"},
	}
)

func (f placeFilter) keep(p placeResult) bool {
	for _, t := range p.Types {
		if slices.Contains(f.excludeTypes, t) {
			return false
		}
	}

	name := strings.ToLower(p.Name)
	for _, kw := range f.excludeKeywords {
		if strings.Contains(name, kw) {
			return false
		}
	}

	if len(f.requireTypes) == 0 {
		return true
	}
	return slices.ContainsFunc(p.Types, func(t string) bool {
		return slices.Contains(f.requireTypes, t)
	})
}

func (f placeFilter) apply(results []placeResult, limit int) []placeResult {
	kept := make([]placeResult, 0, len(results))
	for _, p := range results {
		if f.keep(p) {
			kept = append(kept, p)
		}
	}
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
