package service

import (
	"context"
	"encoding/json"

	"github.com/tablelog/tablelog-server/internal/domain"
	"github.com/tablelog/tablelog-server/internal/store"
)

// StorageCapacity is the assumed total capacity reported by GetStorageInfo.
const StorageCapacity = 5 * 1024 * 1024

// StorageInfo is a best-effort estimate of stored bytes.
type StorageInfo struct {
	Used       int     `json:"used"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// StoreRestaurant upserts a snapshot by place ID, merging over an existing one.
func (s *ListService) StoreRestaurant(ctx context.Context, r domain.StoredRestaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.storeRestaurantLocked(ctx, r)
}

func (s *ListService) storeRestaurantLocked(ctx context.Context, r domain.StoredRestaurant) {
	stored, err := s.store.Restaurants(ctx)
	if err != nil {
		s.logger.Warn("failed to read restaurants", "error", err)
		stored = []domain.StoredRestaurant{}
	}

	merged := false
	for i := range stored {
		if stored[i].PlaceID == r.PlaceID {
			stored[i].Merge(r)
			merged = true
			break
		}
	}
	if !merged {
		stored = append(stored, r)
	}

	if err := s.store.SaveRestaurants(ctx, stored); err != nil {
		s.logger.Warn("failed to store restaurant", "place_id", r.PlaceID, "error", err)
	}
}

// GetStoredRestaurants returns every cached snapshot.
func (s *ListService) GetStoredRestaurants(ctx context.Context) []domain.StoredRestaurant {
	stored, err := s.store.Restaurants(ctx)
	if err != nil {
		s.logger.Warn("failed to read restaurants", "error", err)
		return []domain.StoredRestaurant{}
	}
	return stored
}

// ToggleFavorite flips the favorite mark on the snapshot for placeID and
// returns the new state. Unknown places return false.
func (s *ListService) ToggleFavorite(ctx context.Context, placeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.GetStoredRestaurants(ctx) {
		if r.PlaceID != placeID {
			continue
		}
		r.SetFavorite(!r.Favorite())
		s.storeRestaurantLocked(ctx, r)
		return r.Favorite()
	}
	return false
}

// GetFavoriteRestaurants returns the snapshots marked favorite.
func (s *ListService) GetFavoriteRestaurants(ctx context.Context) []domain.StoredRestaurant {
	favorites := []domain.StoredRestaurant{}
	for _, r := range s.GetStoredRestaurants(ctx) {
		if r.Favorite() {
			favorites = append(favorites, r)
		}
	}
	return favorites
}

// StoreSearchHistory records a search at the front of the history, evicting
// the oldest beyond domain.SearchHistoryLimit.
func (s *ListService) StoreSearchHistory(ctx context.Context, entry domain.SearchHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append([]domain.SearchHistory{entry}, s.GetSearchHistory(ctx)...)
	if len(history) > domain.SearchHistoryLimit {
		history = history[:domain.SearchHistoryLimit]
	}

	if err := s.store.SaveSearchHistory(ctx, history); err != nil {
		s.logger.Warn("failed to store search history", "query", entry.Query, "error", err)
	}
}

// GetSearchHistory returns recent searches, newest first.
func (s *ListService) GetSearchHistory(ctx context.Context) []domain.SearchHistory {
	history, err := s.store.SearchHistory(ctx)
	if err != nil {
		s.logger.Warn("failed to read search history", "error", err)
		return []domain.SearchHistory{}
	}
	return history
}

// StoreCuratedLists replaces the editorial snapshot.
func (s *ListService) StoreCuratedLists(ctx context.Context, lists []domain.CuratedList) {
	if lists == nil {
		lists = []domain.CuratedList{}
	}
	if err := s.store.SaveCuratedLists(ctx, lists); err != nil {
		s.logger.Warn("failed to store curated lists", "error", err)
	}
}

// GetCuratedLists returns the editorial snapshot.
func (s *ListService) GetCuratedLists(ctx context.Context) []domain.CuratedList {
	lists, err := s.store.CuratedLists(ctx)
	if err != nil {
		s.logger.Warn("failed to read curated lists", "error", err)
		return []domain.CuratedList{}
	}
	return lists
}

// StoreUserReview appends review to placeID's cached reviews.
func (s *ListService) StoreUserReview(ctx context.Context, placeID string, review json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := s.GetAllUserReviews(ctx)
	reviews[placeID] = append(reviews[placeID], review)

	if err := s.store.SaveUserReviews(ctx, reviews); err != nil {
		s.logger.Warn("failed to store user review", "place_id", placeID, "error", err)
	}
}

// GetUserReviews returns placeID's cached reviews.
func (s *ListService) GetUserReviews(ctx context.Context, placeID string) []json.RawMessage {
	reviews := s.GetAllUserReviews(ctx)[placeID]
	if reviews == nil {
		return []json.RawMessage{}
	}
	return reviews
}

// GetAllUserReviews returns the whole placeID → reviews mapping.
func (s *ListService) GetAllUserReviews(ctx context.Context) map[string][]json.RawMessage {
	reviews, err := s.store.UserReviews(ctx)
	if err != nil {
		s.logger.Warn("failed to read user reviews", "error", err)
		return map[string][]json.RawMessage{}
	}
	return reviews
}

// ClearAllData removes the cached gateway artifacts. User profiles and lists
// are kept.
func (s *ListService) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, store.CacheKeys...); err != nil {
		s.logger.Warn("failed to clear cached data", "error", err)
		return err
	}
	s.logger.Info("cached data cleared")
	return nil
}

// GetStorageInfo sums the stored size of every known key, including each
// known user's list partition, against StorageCapacity.
func (s *ListService) GetStorageInfo(ctx context.Context) StorageInfo {
	keys := []string{
		store.KeyUsers,
		store.KeyCurrentUserID,
		store.KeyRestaurants,
		store.KeySearchHistory,
		store.KeyCuratedLists,
		store.KeyUserReviews,
	}
	if users, err := s.store.Users(ctx); err == nil {
		for _, u := range users {
			keys = append(keys, store.UserListsKey(u.ID))
		}
	}

	used := 0
	for _, key := range keys {
		size, err := s.store.Size(ctx, key)
		if err != nil {
			s.logger.Debug("failed to size key", "key", key, "error", err)
			continue
		}
		used += size
	}

	return StorageInfo{
		Used:       used,
		Total:      StorageCapacity,
		Percentage: float64(used) / float64(StorageCapacity) * 100,
	}
}
