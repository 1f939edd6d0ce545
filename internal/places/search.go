package places

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tablelog/tablelog-server/internal/domain"
)

const (
	DefaultSearchRadius = 50000
	DefaultNearbyRadius = 5000

	searchResultLimit = 50
	nearbyResultLimit = 30

	// detailConcurrency bounds parallel detail lookups; the rate limiter
	// still governs the request rate.
	detailConcurrency = 8

	// PhotoPath is the API route that proxies gateway photos.
	PhotoPath           = "/api/v1/places/photo"
	DefaultPhotoWidth   = 800
	summaryDetailFields = "name,formatted_address,rating,user_ratings_total,photos,opening_hours,price_level,types,geometry,website,formatted_phone_number"
)

// SearchParams is a free-text restaurant search.
type SearchParams struct {
	Query    string
	Location *domain.LatLng
	Radius   int
}

// NearbyParams is a proximity search around a point.
type NearbyParams struct {
	Location domain.LatLng
	Radius   int
	Keyword  string
}

// Search runs a text search restricted to restaurants, drops non-food and
// lodging venues, and enriches each remaining result with its details.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Restaurant, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return []Restaurant{}, nil
	}

	q := url.Values{}
	q.Set("query", query+" restaurant")
	q.Set("type", "restaurant")
	if params.Location != nil {
		q.Set("location", formatLocation(*params.Location))
		q.Set("radius", strconv.Itoa(radiusOr(params.Radius, DefaultSearchRadius)))
	}

	var resp searchResponse
	if err := c.getJSON(ctx, "/textsearch/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != statusOK && resp.Status != statusZeroResults {
		return nil, statusError(resp.Status, resp.ErrorMessage)
	}

	return c.enrich(ctx, searchFilter.apply(resp.Results, searchResultLimit))
}

// Nearby lists restaurants around a location, optionally narrowed by keyword.
func (c *Client) Nearby(ctx context.Context, params NearbyParams) ([]Restaurant, error) {
	q := url.Values{}
	q.Set("location", formatLocation(params.Location))
	q.Set("radius", strconv.Itoa(radiusOr(params.Radius, DefaultNearbyRadius)))
	q.Set("type", "restaurant")
	if kw := strings.TrimSpace(params.Keyword); kw != "" {
		q.Set("keyword", kw)
	}

	var resp searchResponse
	if err := c.getJSON(ctx, "/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != statusOK && resp.Status != statusZeroResults {
		return nil, statusError(resp.Status, resp.ErrorMessage)
	}

	return c.enrich(ctx, nearbyFilter.apply(resp.Results, nearbyResultLimit))
}

// TextSearch returns cacheable snapshots for a search. It is the form the
// curated list generator consumes.
func (c *Client) TextSearch(ctx context.Context, query string, location *domain.LatLng, radius int) ([]domain.StoredRestaurant, error) {
	results, err := c.Search(ctx, SearchParams{Query: query, Location: location, Radius: radius})
	if err != nil {
		return nil, err
	}
	out := make([]domain.StoredRestaurant, len(results))
	for i, r := range results {
		out[i] = r.StoredRestaurant
	}
	return out, nil
}

// enrich fetches details for each result, preserving order. Places whose
// details cannot be loaded are dropped.
func (c *Client) enrich(ctx context.Context, results []placeResult) ([]Restaurant, error) {
	enriched := make([]*Restaurant, len(results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, p := range results {
		g.Go(func() error {
			var resp detailsResponse
			q := url.Values{}
			q.Set("place_id", p.PlaceID)
			q.Set("fields", summaryDetailFields)
			if err := c.getJSON(gctx, "/details/json", q, &resp); err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.logger.Debug("skipping place without details", "place_id", p.PlaceID, "error", err)
				return nil
			}
			if resp.Status != statusOK {
				c.logger.Debug("skipping place without details", "place_id", p.PlaceID, "status", resp.Status)
				return nil
			}
			r := toRestaurant(p.PlaceID, resp.Result)
			enriched[i] = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load place details: %w", err)
	}

	out := make([]Restaurant, 0, len(enriched))
	for _, r := range enriched {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func toRestaurant(placeID string, d detailsResult) Restaurant {
	r := Restaurant{
		StoredRestaurant: domain.StoredRestaurant{
			ID:          placeID,
			Name:        d.Name,
			Address:     d.FormattedAddress,
			Rating:      d.Rating,
			ReviewCount: d.UserRatingsTotal,
			PlaceID:     placeID,
			Types:       d.Types,
		},
		PriceLevel: d.PriceLevel,
		Website:    d.Website,
		Phone:      d.FormattedPhoneNumber,
		Location:   d.Geometry.Location,
	}
	if len(d.Photos) > 0 {
		u := PhotoURL(d.Photos[0].PhotoReference, DefaultPhotoWidth)
		r.PhotoURL = &u
	}
	if d.OpeningHours != nil {
		r.OpenNow = d.OpeningHours.OpenNow
	}
	return r
}

// PhotoURL is the proxied URL for a photo reference.
func PhotoURL(reference string, maxWidth int) string {
	q := url.Values{}
	q.Set("photo_reference", reference)
	q.Set("maxwidth", strconv.Itoa(maxWidth))
	return PhotoPath + "?" + q.Encode()
}

func formatLocation(l domain.LatLng) string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

func radiusOr(radius, fallback int) int {
	if radius <= 0 {
		return fallback
	}
	return radius
}
