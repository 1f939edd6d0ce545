package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablelog/tablelog-server/internal/api/dto"
	"github.com/tablelog/tablelog-server/internal/domain"
	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
)

func (s *Server) registerArtifactRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSearchHistory",
		Method:      http.MethodGet,
		Path:        "/api/v1/search-history",
		Summary:     "Get search history",
		Description: "Returns the ten most recent searches, newest first",
		Tags:        []string{tagCache},
	}, s.handleGetSearchHistory)

	huma.Register(s.api, huma.Operation{
		OperationID:   "storeSearchHistory",
		Method:        http.MethodPost,
		Path:          "/api/v1/search-history",
		Summary:       "Record search",
		Description:   "Records a search at the front of the history",
		Tags:          []string{tagCache},
		DefaultStatus: http.StatusCreated,
	}, s.handleStoreSearchHistory)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCuratedLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/curated-lists",
		Summary:     "Get curated lists",
		Description: "Returns the stored editorial lists",
		Tags:        []string{tagCache},
	}, s.handleGetCuratedLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "refreshCuratedLists",
		Method:      http.MethodPost,
		Path:        "/api/v1/curated-lists/refresh",
		Summary:     "Refresh curated lists",
		Description: "Regenerates the editorial lists from the places gateway",
		Tags:        []string{tagCache},
		Middlewares: huma.Middlewares{s.rateLimitOperation},
	}, s.handleRefreshCuratedLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStorageInfo",
		Method:      http.MethodGet,
		Path:        "/api/v1/storage",
		Summary:     "Get storage usage",
		Description: "Returns an estimate of stored bytes against the quota",
		Tags:        []string{tagCache},
	}, s.handleGetStorageInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCache",
		Method:      http.MethodDelete,
		Path:        "/api/v1/storage",
		Summary:     "Clear cached data",
		Description: "Removes cached restaurants, search history, curated lists and reviews. Profiles and lists are kept.",
		Tags:        []string{tagCache},
	}, s.handleClearCache)
}

// === DTOs ===

// SearchHistoryResponse contains recent searches.
type SearchHistoryResponse struct {
	History []dto.SearchHistory `json:"history" doc:"Recent searches, newest first"`
}

// SearchHistoryOutput wraps the search history response for Huma.
type SearchHistoryOutput struct {
	Body SearchHistoryResponse
}

// StoreSearchHistoryInput wraps a search entry for Huma.
type StoreSearchHistoryInput struct {
	Body dto.SearchHistory
}

// CuratedListsResponse contains editorial lists.
type CuratedListsResponse struct {
	Lists []dto.CuratedList `json:"lists" doc:"Editorial lists"`
}

// CuratedListsOutput wraps the curated lists response for Huma.
type CuratedListsOutput struct {
	Body CuratedListsResponse
}

// RefreshCuratedRequest is the request body for regenerating curated lists.
type RefreshCuratedRequest struct {
	Location *dto.LatLng `json:"location,omitempty" doc:"Bias results toward this point"`
}

// RefreshCuratedInput wraps the refresh request for Huma.
type RefreshCuratedInput struct {
	Body *RefreshCuratedRequest
}

// StorageResponse reports storage usage.
type StorageResponse struct {
	Used       int     `json:"used" doc:"Bytes stored"`
	Total      int     `json:"total" doc:"Assumed quota in bytes"`
	Percentage float64 `json:"percentage" doc:"Used share of the quota, 0-100"`
}

// StorageOutput wraps the storage response for Huma.
type StorageOutput struct {
	Body StorageResponse
}

// === Handlers ===

func (s *Server) handleGetSearchHistory(ctx context.Context, _ *struct{}) (*SearchHistoryOutput, error) {
	history := s.services.Lists.GetSearchHistory(ctx)
	return &SearchHistoryOutput{Body: SearchHistoryResponse{History: dto.FromSearchHistory(history)}}, nil
}

func (s *Server) handleStoreSearchHistory(ctx context.Context, input *StoreSearchHistoryInput) (*dto.MessageOutput, error) {
	entry := input.Body.ToDomain()
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().UnixMilli()
	}
	s.services.Lists.StoreSearchHistory(ctx, entry)
	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Search recorded"}}, nil
}

func (s *Server) handleGetCuratedLists(ctx context.Context, _ *struct{}) (*CuratedListsOutput, error) {
	lists := s.services.Lists.GetCuratedLists(ctx)
	return &CuratedListsOutput{Body: CuratedListsResponse{Lists: dto.FromCuratedLists(lists)}}, nil
}

func (s *Server) handleRefreshCuratedLists(ctx context.Context, input *RefreshCuratedInput) (*CuratedListsOutput, error) {
	if !s.services.Places.Configured() {
		return nil, domainerrors.NotConfigured("Google Places API key is not configured")
	}

	var location *domain.LatLng
	if input.Body != nil && input.Body.Location != nil {
		l := input.Body.Location
		location = &domain.LatLng{Lat: l.Lat, Lng: l.Lng}
	}

	lists, err := s.services.Curated.Refresh(ctx, location)
	if err != nil {
		return nil, err
	}
	return &CuratedListsOutput{Body: CuratedListsResponse{Lists: dto.FromCuratedLists(lists)}}, nil
}

func (s *Server) handleGetStorageInfo(ctx context.Context, _ *struct{}) (*StorageOutput, error) {
	info := s.services.Lists.GetStorageInfo(ctx)
	return &StorageOutput{Body: StorageResponse{
		Used:       info.Used,
		Total:      info.Total,
		Percentage: info.Percentage,
	}}, nil
}

func (s *Server) handleClearCache(ctx context.Context, _ *struct{}) (*dto.MessageOutput, error) {
	if err := s.services.Lists.ClearAllData(ctx); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to clear cached data")
	}
	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Cached data cleared"}}, nil
}
