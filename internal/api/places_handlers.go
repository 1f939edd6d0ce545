package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablelog/tablelog-server/internal/api/dto"
	"github.com/tablelog/tablelog-server/internal/domain"
	"github.com/tablelog/tablelog-server/internal/http/response"
	"github.com/tablelog/tablelog-server/internal/places"
)

func (s *Server) registerPlacesRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchPlaces",
		Method:      http.MethodGet,
		Path:        "/api/v1/places/search",
		Summary:     "Search places",
		Description: "Text search for restaurants through the places gateway",
		Tags:        []string{tagPlaces},
		Middlewares: huma.Middlewares{s.rateLimitOperation},
	}, s.handleSearchPlaces)

	huma.Register(s.api, huma.Operation{
		OperationID: "nearbyPlaces",
		Method:      http.MethodGet,
		Path:        "/api/v1/places/nearby",
		Summary:     "Nearby places",
		Description: "Restaurants around a point through the places gateway",
		Tags:        []string{tagPlaces},
		Middlewares: huma.Middlewares{s.rateLimitOperation},
	}, s.handleNearbyPlaces)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPlaceDetails",
		Method:      http.MethodGet,
		Path:        "/api/v1/places/{placeId}",
		Summary:     "Get place details",
		Description: "Full details for one place, including reviews and photos",
		Tags:        []string{tagPlaces},
		Middlewares: huma.Middlewares{s.rateLimitOperation},
	}, s.handleGetPlaceDetails)

	// Photos are binary, so they bypass the JSON envelope.
	s.router.With(s.RateLimitMiddleware).Get(places.PhotoPath, s.handlePlacePhoto)
}

// === DTOs ===

// SearchPlacesInput contains parameters for a text search.
type SearchPlacesInput struct {
	Query  string  `query:"query" required:"true" minLength:"1" doc:"Search text"`
	Lat    float64 `query:"lat" minimum:"-90" maximum:"90" doc:"Latitude of the search center"`
	Lng    float64 `query:"lng" minimum:"-180" maximum:"180" doc:"Longitude of the search center"`
	Radius int     `query:"radius" minimum:"0" maximum:"50000" doc:"Radius in meters (default 50000)"`
}

// NearbyPlacesInput contains parameters for a nearby search.
type NearbyPlacesInput struct {
	Lat     float64 `query:"lat" required:"true" minimum:"-90" maximum:"90" doc:"Latitude"`
	Lng     float64 `query:"lng" required:"true" minimum:"-180" maximum:"180" doc:"Longitude"`
	Radius  int     `query:"radius" minimum:"0" maximum:"50000" doc:"Radius in meters (default 5000)"`
	Keyword string  `query:"keyword" doc:"Optional keyword filter"`
}

// PlaceResult is a gateway search result.
type PlaceResult struct {
	dto.Restaurant
	PriceLevel *int       `json:"price_level,omitempty" doc:"Price level 0-4"`
	Website    string     `json:"website,omitempty" doc:"Website URL"`
	Phone      string     `json:"phone,omitempty" doc:"Phone number"`
	Location   dto.LatLng `json:"location" doc:"Coordinates"`
}

// PlaceResultsResponse contains gateway search results.
type PlaceResultsResponse struct {
	Results []PlaceResult `json:"results" doc:"Matching restaurants"`
}

// PlaceResultsOutput wraps search results for Huma.
type PlaceResultsOutput struct {
	Body PlaceResultsResponse
}

// PlaceDetailsResponse is the full view of one place.
type PlaceDetailsResponse struct {
	PlaceID          string          `json:"place_id" doc:"Gateway place ID"`
	Name             string          `json:"name" doc:"Display name"`
	Address          string          `json:"address" doc:"Formatted address"`
	Rating           float64         `json:"rating" doc:"Gateway rating"`
	ReviewCount      int             `json:"review_count" doc:"Gateway review count"`
	OpenNow          *bool           `json:"open_now,omitempty" doc:"Whether the place is open now"`
	OpeningHours     []string        `json:"opening_hours,omitempty" doc:"Weekly hours"`
	PriceLevel       *int            `json:"price_level,omitempty" doc:"Price level 0-4"`
	Types            []string        `json:"types,omitempty" doc:"Gateway place types"`
	Location         dto.LatLng      `json:"location" doc:"Coordinates"`
	Website          string          `json:"website,omitempty" doc:"Website URL"`
	Phone            string          `json:"phone,omitempty" doc:"Phone number"`
	Photos           []places.Photo  `json:"photos" doc:"Photos"`
	Reviews          []places.Review `json:"reviews" doc:"Gateway reviews"`
	StoredUserReview []dto.Review    `json:"user_reviews" doc:"Reviews stored on this server"`
}

// PlaceDetailsOutput wraps place details for Huma.
type PlaceDetailsOutput struct {
	Body PlaceDetailsResponse
}

// === Handlers ===

func (s *Server) handleSearchPlaces(ctx context.Context, input *SearchPlacesInput) (*PlaceResultsOutput, error) {
	params := places.SearchParams{Query: input.Query, Radius: input.Radius}
	if input.Lat != 0 || input.Lng != 0 {
		params.Location = &domain.LatLng{Lat: input.Lat, Lng: input.Lng}
	}

	results, err := s.services.Places.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &PlaceResultsOutput{Body: PlaceResultsResponse{Results: toPlaceResults(results)}}, nil
}

func (s *Server) handleNearbyPlaces(ctx context.Context, input *NearbyPlacesInput) (*PlaceResultsOutput, error) {
	results, err := s.services.Places.Nearby(ctx, places.NearbyParams{
		Location: domain.LatLng{Lat: input.Lat, Lng: input.Lng},
		Radius:   input.Radius,
		Keyword:  input.Keyword,
	})
	if err != nil {
		return nil, err
	}
	return &PlaceResultsOutput{Body: PlaceResultsResponse{Results: toPlaceResults(results)}}, nil
}

func (s *Server) handleGetPlaceDetails(ctx context.Context, input *PlaceIDInput) (*PlaceDetailsOutput, error) {
	d, err := s.services.Places.Details(ctx, input.PlaceID)
	if err != nil {
		return nil, err
	}

	return &PlaceDetailsOutput{Body: PlaceDetailsResponse{
		PlaceID:          d.PlaceID,
		Name:             d.Name,
		Address:          d.FormattedAddress,
		Rating:           d.Rating,
		ReviewCount:      d.UserRatingsTotal,
		OpenNow:          d.OpenNow,
		OpeningHours:     d.WeekdayText,
		PriceLevel:       d.PriceLevel,
		Types:            d.Types,
		Location:         dto.LatLng{Lat: d.Location.Lat, Lng: d.Location.Lng},
		Website:          d.Website,
		Phone:            d.Phone,
		Photos:           d.Photos,
		Reviews:          d.Reviews,
		StoredUserReview: dto.FromReviews(s.services.Lists.GetUserReviews(ctx, d.PlaceID)),
	}}, nil
}

// handlePlacePhoto proxies a gateway photo so the API key never reaches clients.
// GET /api/v1/places/photo?photo_reference=REF&maxwidth=800
func (s *Server) handlePlacePhoto(w http.ResponseWriter, r *http.Request) {
	ref := r.URL.Query().Get("photo_reference")
	if ref == "" {
		response.BadRequest(w, "photo_reference is required", s.logger)
		return
	}

	maxWidth := places.DefaultPhotoWidth
	if raw := r.URL.Query().Get("maxwidth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1600 {
			response.BadRequest(w, "maxwidth must be between 1 and 1600", s.logger)
			return
		}
		maxWidth = n
	}

	photo, err := s.services.Places.Photo(r.Context(), ref, maxWidth)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", photo.ContentType)
	w.Header().Set("Cache-Control", CacheOneDay)
	w.Header().Set("Content-Length", strconv.Itoa(len(photo.Body)))
	if _, err := w.Write(photo.Body); err != nil {
		s.logger.Debug("photo write failed", "error", err)
	}
}

func toPlaceResults(rs []places.Restaurant) []PlaceResult {
	out := make([]PlaceResult, len(rs))
	for i, r := range rs {
		out[i] = PlaceResult{
			Restaurant: dto.FromRestaurant(r.StoredRestaurant),
			PriceLevel: r.PriceLevel,
			Website:    r.Website,
			Phone:      r.Phone,
			Location:   dto.LatLng{Lat: r.Location.Lat, Lng: r.Location.Lng},
		}
	}
	return out
}
