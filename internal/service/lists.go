package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tablelog/tablelog-server/internal/domain"
	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
	"github.com/tablelog/tablelog-server/internal/id"
	"github.com/tablelog/tablelog-server/internal/store"
)

// IdentityResolver resolves the acting user when a call names none.
type IdentityResolver interface {
	CurrentUserID(ctx context.Context) string
}

// ListService owns per-user restaurant lists and the cached gateway artifacts
// (restaurant snapshots, reviews, curated lists, search history).
//
// Lookups that miss return false or an empty collection, and storage failures
// are logged and degraded the same way. CreateUserList is the one operation
// that reports a persistence failure.
type ListService struct {
	mu       sync.Mutex
	store    *store.Store
	identity IdentityResolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewListService creates a new list service.
func NewListService(store *store.Store, identity IdentityResolver, logger *slog.Logger) *ListService {
	return &ListService{
		store:    store,
		identity: identity,
		logger:   logger,
		now:      time.Now,
	}
}

// resolveUserID returns userID when given, else the acting identity, else "".
func (s *ListService) resolveUserID(ctx context.Context, userID string) string {
	if userID != "" {
		return userID
	}
	return s.identity.CurrentUserID(ctx)
}

func (s *ListService) nowMs() int64 {
	return s.now().UnixMilli()
}

// CreateUserList creates an empty list in the owner's partition.
func (s *ListService) CreateUserList(ctx context.Context, name, description, icon, userID string) (*domain.UserList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userID = s.resolveUserID(ctx, userID)
	if userID == "" {
		return nil, domainerrors.ErrNotAuthenticated
	}
	if strings.TrimSpace(name) == "" {
		return nil, domainerrors.Validation("name is required")
	}

	listID, err := id.Generate(id.PrefixList)
	if err != nil {
		return nil, fmt.Errorf("generate list ID: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.UserLists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("create user list: %w", err)
	}

	now := s.nowMs()
	list := domain.UserList{
		ID:          listID,
		UserID:      userID,
		Name:        name,
		Description: description,
		Icon:        icon,
		Restaurants: []domain.StoredRestaurant{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.SaveUserLists(ctx, userID, append(lists, list)); err != nil {
		return nil, fmt.Errorf("create user list: %w", err)
	}

	s.logger.Info("user list created", "list_id", list.ID, "user_id", userID, "name", name)
	return &list, nil
}

// GetUserLists returns userID's lists, or the acting user's.
func (s *ListService) GetUserLists(ctx context.Context, userID string) []domain.UserList {
	userID = s.resolveUserID(ctx, userID)
	if userID == "" {
		return []domain.UserList{}
	}
	return s.userLists(ctx, userID)
}

// GetUserList returns one list from the resolved partition, or nil.
func (s *ListService) GetUserList(ctx context.Context, listID, userID string) *domain.UserList {
	for _, l := range s.GetUserLists(ctx, userID) {
		if l.ID == listID {
			return &l
		}
	}
	return nil
}

// UpdateUserList merges update into the list. Returns false when the list is
// not in the resolved partition.
func (s *ListService) UpdateUserList(ctx context.Context, listID string, update domain.ListUpdate, userID string) bool {
	return s.mutateList(ctx, listID, userID, "update", func(l *domain.UserList) bool {
		l.Apply(update, s.nowMs())
		return true
	})
}

// DeleteUserList removes the list. Deleting an absent list still succeeds;
// false means no identity resolved or storage failed.
func (s *ListService) DeleteUserList(ctx context.Context, listID, userID string) bool {
	userID = s.resolveUserID(ctx, userID)
	if userID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.UserLists(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to read user lists", "user_id", userID, "error", err)
		return false
	}

	kept := make([]domain.UserList, 0, len(lists))
	for _, l := range lists {
		if l.ID != listID {
			kept = append(kept, l)
		}
	}

	if err := s.store.SaveUserLists(ctx, userID, kept); err != nil {
		s.logger.Warn("failed to delete user list", "list_id", listID, "user_id", userID, "error", err)
		return false
	}
	return true
}

// AddRestaurantToList appends r to the list. Returns false when the list is
// missing or already holds a restaurant with the same place ID.
func (s *ListService) AddRestaurantToList(ctx context.Context, listID string, r domain.StoredRestaurant, userID string) bool {
	return s.mutateList(ctx, listID, userID, "add restaurant", func(l *domain.UserList) bool {
		if !l.AddRestaurant(r, s.nowMs()) {
			s.logger.Info("restaurant already in list", "list_id", listID, "place_id", r.PlaceID, "name", r.Name)
			return false
		}
		return true
	})
}

// RemoveRestaurantFromList drops placeID from the list. Returns true whenever
// the list exists, even if the restaurant was not in it.
func (s *ListService) RemoveRestaurantFromList(ctx context.Context, listID, placeID, userID string) bool {
	return s.mutateList(ctx, listID, userID, "remove restaurant", func(l *domain.UserList) bool {
		l.RemoveRestaurant(placeID, s.nowMs())
		return true
	})
}

// GetRestaurantLists returns the resolved user's lists that contain placeID.
func (s *ListService) GetRestaurantLists(ctx context.Context, placeID, userID string) []domain.UserList {
	matches := []domain.UserList{}
	for _, l := range s.GetUserLists(ctx, userID) {
		if l.ContainsRestaurant(placeID) {
			matches = append(matches, l)
		}
	}
	return matches
}

// mutateList runs apply on one list of the resolved partition and persists
// the partition when apply reports a change.
func (s *ListService) mutateList(ctx context.Context, listID, userID, op string, apply func(*domain.UserList) bool) bool {
	userID = s.resolveUserID(ctx, userID)
	if userID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.UserLists(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to read user lists", "user_id", userID, "error", err)
		return false
	}

	for i := range lists {
		if lists[i].ID != listID {
			continue
		}
		if !apply(&lists[i]) {
			return false
		}
		if err := s.store.SaveUserLists(ctx, userID, lists); err != nil {
			s.logger.Warn("failed to save user lists", "op", op, "list_id", listID, "user_id", userID, "error", err)
			return false
		}
		return true
	}
	return false
}

func (s *ListService) userLists(ctx context.Context, userID string) []domain.UserList {
	lists, err := s.store.UserLists(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to read user lists", "user_id", userID, "error", err)
		return []domain.UserList{}
	}
	return lists
}
