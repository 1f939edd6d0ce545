package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablelog/tablelog-server/internal/api/dto"
	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
)

func (s *Server) registerRestaurantRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listRestaurants",
		Method:      http.MethodGet,
		Path:        "/api/v1/restaurants",
		Summary:     "List cached restaurants",
		Description: "Returns every cached restaurant snapshot",
		Tags:        []string{tagRestaurants},
	}, s.handleListRestaurants)

	huma.Register(s.api, huma.Operation{
		OperationID: "storeRestaurant",
		Method:      http.MethodPost,
		Path:        "/api/v1/restaurants",
		Summary:     "Cache restaurant",
		Description: "Stores a snapshot, merging over an existing one with the same place ID",
		Tags:        []string{tagRestaurants},
	}, s.handleStoreRestaurant)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/restaurants/{placeId}/favorite",
		Summary:     "Toggle favorite",
		Description: "Flips the favorite mark on a cached restaurant",
		Tags:        []string{tagRestaurants},
	}, s.handleToggleFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns cached restaurants marked favorite",
		Tags:        []string{tagRestaurants},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/restaurants/{placeId}/reviews",
		Summary:     "List reviews",
		Description: "Returns the reviews stored for a place",
		Tags:        []string{tagRestaurants},
	}, s.handleListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID:   "storeReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/restaurants/{placeId}/reviews",
		Summary:       "Store review",
		Description:   "Appends a free-form review document to a place",
		Tags:          []string{tagRestaurants},
		DefaultStatus: http.StatusCreated,
	}, s.handleStoreReview)
}

// === DTOs ===

// RestaurantsResponse contains restaurant snapshots.
type RestaurantsResponse struct {
	Restaurants []dto.Restaurant `json:"restaurants" doc:"Cached restaurants"`
}

// RestaurantsOutput wraps the restaurants response for Huma.
type RestaurantsOutput struct {
	Body RestaurantsResponse
}

// StoreRestaurantInput wraps a restaurant snapshot for Huma.
type StoreRestaurantInput struct {
	Body dto.Restaurant
}

// FavoriteResponse reports the favorite mark after a toggle.
type FavoriteResponse struct {
	PlaceID    string `json:"place_id" doc:"Gateway place ID"`
	IsFavorite bool   `json:"is_favorite" doc:"Favorite mark after the toggle; false for unknown places"`
}

// FavoriteOutput wraps the favorite response for Huma.
type FavoriteOutput struct {
	Body FavoriteResponse
}

// ReviewsResponse contains stored reviews.
type ReviewsResponse struct {
	Reviews []dto.Review `json:"reviews" doc:"Reviews in insertion order"`
}

// ReviewsOutput wraps the reviews response for Huma.
type ReviewsOutput struct {
	Body ReviewsResponse
}

// StoreReviewInput wraps a review document for Huma.
type StoreReviewInput struct {
	PlaceID string `path:"placeId" doc:"Gateway place ID"`
	Body    dto.Review
}

// === Handlers ===

func (s *Server) handleListRestaurants(ctx context.Context, _ *struct{}) (*RestaurantsOutput, error) {
	restaurants := s.services.Lists.GetStoredRestaurants(ctx)
	return &RestaurantsOutput{Body: RestaurantsResponse{Restaurants: dto.FromRestaurants(restaurants)}}, nil
}

func (s *Server) handleStoreRestaurant(ctx context.Context, input *StoreRestaurantInput) (*dto.MessageOutput, error) {
	s.services.Lists.StoreRestaurant(ctx, input.Body.ToDomain())
	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Restaurant stored"}}, nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, input *PlaceIDInput) (*FavoriteOutput, error) {
	favorite := s.services.Lists.ToggleFavorite(ctx, input.PlaceID)
	return &FavoriteOutput{Body: FavoriteResponse{PlaceID: input.PlaceID, IsFavorite: favorite}}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, _ *struct{}) (*RestaurantsOutput, error) {
	favorites := s.services.Lists.GetFavoriteRestaurants(ctx)
	return &RestaurantsOutput{Body: RestaurantsResponse{Restaurants: dto.FromRestaurants(favorites)}}, nil
}

func (s *Server) handleListReviews(ctx context.Context, input *PlaceIDInput) (*ReviewsOutput, error) {
	reviews := s.services.Lists.GetUserReviews(ctx, input.PlaceID)
	return &ReviewsOutput{Body: ReviewsResponse{Reviews: dto.FromReviews(reviews)}}, nil
}

func (s *Server) handleStoreReview(ctx context.Context, input *StoreReviewInput) (*dto.MessageOutput, error) {
	raw, err := json.Marshal(input.Body)
	if err != nil {
		return nil, domainerrors.Validation("review must be a JSON object")
	}
	s.services.Lists.StoreUserReview(ctx, input.PlaceID, raw)
	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Review stored"}}, nil
}
