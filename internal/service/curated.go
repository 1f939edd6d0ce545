package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tablelog/tablelog-server/internal/domain"
)

// Curated list generation parameters.
const (
	CuratedRestaurantsPerList = 3
	CuratedSearchRadius       = 15000 // meters
)

// PlaceSearcher finds restaurants matching a free-text query near a location.
type PlaceSearcher interface {
	TextSearch(ctx context.Context, query string, location *domain.LatLng, radius int) ([]domain.StoredRestaurant, error)
}

// CuratedCategory describes one editorial list.
type CuratedCategory struct {
	ID          string
	Title       string
	Description string
	Icon        string
	SearchQuery string
}

// DefaultCuratedCategories are the editorial lists regenerated on refresh.
var DefaultCuratedCategories = []CuratedCategory{
	{
		ID:          "biryani-spots",
		Title:       "Favorite Biryani Spots",
		Description: "The best places for authentic biryani nearby",
		Icon:        "🍛",
		SearchQuery: "biryani restaurant",
	},
	{
		ID:          "night-cafes",
		Title:       "Best Night Cafes",
		Description: "Perfect spots for late-night coffee and conversations",
		Icon:        "☕",
		SearchQuery: "coffee shop cafe",
	},
	{
		ID:          "fine-dining",
		Title:       "Fine Dining Experiences",
		Description: "Upscale restaurants for special occasions",
		Icon:        "🍽️",
		SearchQuery: "fine dining restaurant",
	},
}

// CuratedService regenerates the editorial list snapshot from the gateway.
type CuratedService struct {
	places     PlaceSearcher
	lists      *ListService
	categories []CuratedCategory
	logger     *slog.Logger
}

// NewCuratedService creates a curated list service for the default categories.
func NewCuratedService(places PlaceSearcher, lists *ListService, logger *slog.Logger) *CuratedService {
	return &CuratedService{
		places:     places,
		lists:      lists,
		categories: DefaultCuratedCategories,
		logger:     logger,
	}
}

// Refresh queries every category concurrently and replaces the stored
// snapshot. A category whose search fails comes back empty; cancellation
// aborts the whole refresh and leaves the stored snapshot untouched.
func (s *CuratedService) Refresh(ctx context.Context, location *domain.LatLng) ([]domain.CuratedList, error) {
	lists := make([]domain.CuratedList, len(s.categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range s.categories {
		g.Go(func() error {
			restaurants, err := s.fetch(gctx, c, location)
			if err != nil {
				return err
			}
			lists[i] = domain.CuratedList{
				ID:          c.ID,
				Title:       c.Title,
				Description: c.Description,
				Icon:        c.Icon,
				SearchQuery: c.SearchQuery,
				Restaurants: restaurants,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.lists.StoreCuratedLists(ctx, lists)
	s.logger.Info("curated lists refreshed", "lists", len(lists))
	return lists, nil
}

// fetch returns at most CuratedRestaurantsPerList results for c. Only a
// context error is returned; other search failures yield an empty list.
func (s *CuratedService) fetch(ctx context.Context, c CuratedCategory, location *domain.LatLng) ([]domain.StoredRestaurant, error) {
	results, err := s.places.TextSearch(ctx, c.SearchQuery, location, CuratedSearchRadius)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("curated category search failed", "category", c.ID, "error", err)
		return []domain.StoredRestaurant{}, nil
	}
	if len(results) > CuratedRestaurantsPerList {
		results = results[:CuratedRestaurantsPerList]
	}
	if results == nil {
		results = []domain.StoredRestaurant{}
	}
	return results, nil
}
