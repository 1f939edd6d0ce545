// Package store persists the application's collections as whole JSON documents
// over a pluggable key-value Backend. Every accessor reads or writes one full
// collection; callers perform their own read-modify-write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tablelog/tablelog-server/internal/domain"
)

// Store reads and writes JSON collections through a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// New creates a Store over backend.
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger}
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	s.logger.Info("Closing storage backend")
	return s.backend.Close()
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// load decodes the collection at key into a T. A missing key yields the zero
// value and no error; undecodable data is an error.
func load[T any](ctx context.Context, s *Store, key string) (T, error) {
	var out T
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// save encodes value and writes it to key.
func save(ctx context.Context, s *Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// loadSlice is load for list collections; a missing key yields an empty slice.
func loadSlice[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	items, err := load[[]T](ctx, s, key)
	if items == nil {
		items = []T{}
	}
	return items, err
}

// Users returns every user profile.
func (s *Store) Users(ctx context.Context) ([]domain.UserProfile, error) {
	users, err := loadSlice[domain.UserProfile](ctx, s, KeyUsers)
	for i := range users {
		users[i].Normalize()
	}
	return users, err
}

// SaveUsers replaces the user collection.
func (s *Store) SaveUsers(ctx context.Context, users []domain.UserProfile) error {
	return save(ctx, s, KeyUsers, users)
}

// CurrentUserID returns the persisted signed-in identity, or "" when unset.
// The pointer is stored as a raw string, not JSON.
func (s *Store) CurrentUserID(ctx context.Context) (string, error) {
	data, err := s.backend.Get(ctx, KeyCurrentUserID)
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", KeyCurrentUserID, err)
	}
	return string(data), nil
}

// SetCurrentUserID persists the signed-in identity.
func (s *Store) SetCurrentUserID(ctx context.Context, userID string) error {
	return s.backend.Set(ctx, KeyCurrentUserID, []byte(userID))
}

// ClearCurrentUserID removes the signed-in identity.
func (s *Store) ClearCurrentUserID(ctx context.Context) error {
	return s.backend.Delete(ctx, KeyCurrentUserID)
}

// UserLists returns the lists in userID's partition.
func (s *Store) UserLists(ctx context.Context, userID string) ([]domain.UserList, error) {
	lists, err := loadSlice[domain.UserList](ctx, s, UserListsKey(userID))
	for i := range lists {
		if lists[i].Restaurants == nil {
			lists[i].Restaurants = []domain.StoredRestaurant{}
		}
	}
	return lists, err
}

// SaveUserLists replaces userID's partition.
func (s *Store) SaveUserLists(ctx context.Context, userID string, lists []domain.UserList) error {
	return save(ctx, s, UserListsKey(userID), lists)
}

// Restaurants returns the cached restaurant snapshots.
func (s *Store) Restaurants(ctx context.Context) ([]domain.StoredRestaurant, error) {
	return loadSlice[domain.StoredRestaurant](ctx, s, KeyRestaurants)
}

// SaveRestaurants replaces the cached restaurant snapshots.
func (s *Store) SaveRestaurants(ctx context.Context, restaurants []domain.StoredRestaurant) error {
	return save(ctx, s, KeyRestaurants, restaurants)
}

// SearchHistory returns recent searches, newest first.
func (s *Store) SearchHistory(ctx context.Context) ([]domain.SearchHistory, error) {
	return loadSlice[domain.SearchHistory](ctx, s, KeySearchHistory)
}

// SaveSearchHistory replaces the recent-search sequence.
func (s *Store) SaveSearchHistory(ctx context.Context, history []domain.SearchHistory) error {
	return save(ctx, s, KeySearchHistory, history)
}

// CuratedLists returns the editorial list snapshot.
func (s *Store) CuratedLists(ctx context.Context) ([]domain.CuratedList, error) {
	return loadSlice[domain.CuratedList](ctx, s, KeyCuratedLists)
}

// SaveCuratedLists replaces the editorial list snapshot.
func (s *Store) SaveCuratedLists(ctx context.Context, lists []domain.CuratedList) error {
	return save(ctx, s, KeyCuratedLists, lists)
}

// UserReviews returns the placeId → reviews mapping.
func (s *Store) UserReviews(ctx context.Context) (map[string][]json.RawMessage, error) {
	reviews, err := load[map[string][]json.RawMessage](ctx, s, KeyUserReviews)
	if reviews == nil {
		reviews = map[string][]json.RawMessage{}
	}
	return reviews, err
}

// SaveUserReviews replaces the placeId → reviews mapping.
func (s *Store) SaveUserReviews(ctx context.Context, reviews map[string][]json.RawMessage) error {
	return save(ctx, s, KeyUserReviews, reviews)
}

// Size returns the stored byte length of key, 0 when absent.
func (s *Store) Size(ctx context.Context, key string) (int, error) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// Remove deletes keys, continuing past failures and returning them joined.
func (s *Store) Remove(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		if err := s.backend.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
