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
	"github.com/tablelog/tablelog-server/internal/validation"
)

// NewUser holds the fields supplied at signup.
type NewUser struct {
	Username string `json:"username" validate:"nonblank,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"nonblank,max=100"`
	Bio      string `json:"bio,omitempty" validate:"max=500"`
	Avatar   string `json:"avatar,omitempty" validate:"max=500"`
}

// NewVisit holds the fields of a diary entry. A zero Date means now.
type NewVisit struct {
	PlaceID  string  `json:"placeId" validate:"nonblank"`
	Name     string  `json:"name" validate:"nonblank"`
	PhotoURL *string `json:"photoUrl,omitempty"`
	Date     int64   `json:"date,omitempty" validate:"gte=0"`
	Rating   *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// IdentityService owns user profiles, the signed-in identity, follow requests
// and visit diaries. Every mutation rewrites the whole user collection.
type IdentityService struct {
	mu        sync.Mutex
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewIdentityService creates a new identity service.
func NewIdentityService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *IdentityService {
	return &IdentityService{
		store:     store,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateUser registers a profile and signs it in. Username and email must be
// unique ignoring case.
func (s *IdentityService) CreateUser(ctx context.Context, input NewUser) (*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to read users")
	}

	for i := range users {
		if users[i].HasUsername(input.Username) {
			return nil, domainerrors.ErrDuplicateUsername
		}
	}
	for i := range users {
		if users[i].HasEmail(input.Email) {
			return nil, domainerrors.ErrDuplicateEmail
		}
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := domain.UserProfile{
		ID:        userID,
		Username:  input.Username,
		Name:      input.Name,
		Email:     input.Email,
		Bio:       input.Bio,
		Avatar:    input.Avatar,
		CreatedAt: s.now().UnixMilli(),
	}
	user.Normalize()

	users = append(users, user)
	if err := s.store.SaveUsers(ctx, users); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save users")
	}
	if err := s.store.SetCurrentUserID(ctx, user.ID); err != nil {
		s.logger.Warn("failed to persist signed-in user", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "username", user.Username)
	return &user, nil
}

// Login signs in the user whose username or email matches identifier.
// There is no credential check.
func (s *IdentityService) Login(ctx context.Context, identifier string) (*domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	identifier = strings.TrimSpace(identifier)
	user := s.find(ctx, func(u *domain.UserProfile) bool { return u.MatchesIdentifier(identifier) })
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}

	if err := s.store.SetCurrentUserID(ctx, user.ID); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to persist signed-in user")
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, nil
}

// Logout clears the signed-in pointer. Logging out twice is fine.
func (s *IdentityService) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.ClearCurrentUserID(ctx); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to clear signed-in user")
	}
	return nil
}

// CurrentUserID resolves the acting identity: the identity asserted on ctx,
// else the persisted signed-in pointer. Returns "" when neither is set.
func (s *IdentityService) CurrentUserID(ctx context.Context) string {
	if userID, ok := UserIDFromContext(ctx); ok {
		return userID
	}
	userID, err := s.store.CurrentUserID(ctx)
	if err != nil {
		s.logger.Warn("failed to read signed-in user", "error", err)
		return ""
	}
	return userID
}

// CurrentUser returns the acting user's profile, or nil when no identity is
// set or it points at a user that no longer exists.
func (s *IdentityService) CurrentUser(ctx context.Context) *domain.UserProfile {
	userID := s.CurrentUserID(ctx)
	if userID == "" {
		return nil
	}
	return s.GetUser(ctx, userID)
}

// GetUser returns the profile with userID, or nil.
func (s *IdentityService) GetUser(ctx context.Context, userID string) *domain.UserProfile {
	return s.find(ctx, func(u *domain.UserProfile) bool { return u.ID == userID })
}

// GetByUsername returns the profile whose username matches ignoring case, or nil.
func (s *IdentityService) GetByUsername(ctx context.Context, username string) *domain.UserProfile {
	return s.find(ctx, func(u *domain.UserProfile) bool { return u.HasUsername(username) })
}

// ListUsers returns every profile.
func (s *IdentityService) ListUsers(ctx context.Context) []domain.UserProfile {
	return s.users(ctx)
}

// SearchProfiles returns profiles whose username, name or bio contains query,
// ignoring case. A blank query matches nothing.
func (s *IdentityService) SearchProfiles(ctx context.Context, query string) []domain.UserProfile {
	q := domain.Fold(strings.TrimSpace(query))
	if q == "" {
		return []domain.UserProfile{}
	}

	matches := []domain.UserProfile{}
	for _, u := range s.users(ctx) {
		if u.Matches(q) {
			matches = append(matches, u)
		}
	}
	return matches
}

// SendFollowRequest records a pending follow from the acting user to targetID.
func (s *IdentityService) SendFollowRequest(ctx context.Context, targetID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, me, err := s.loadActing(ctx)
	if err != nil {
		return err
	}
	if me.ID == targetID {
		return domainerrors.ErrSelfFollow
	}
	target := indexOf(users, targetID)
	if target < 0 {
		return domainerrors.ErrUserNotFound
	}

	me.RequestFollow(&users[target])

	if err := s.store.SaveUsers(ctx, users); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save users")
	}

	s.logger.Info("follow requested", "from", me.ID, "to", targetID)
	return nil
}

// AcceptFollowRequest turns requesterID's pending request into a follow edge:
// requesterID follows the acting user. Accepting a resolved request is a no-op.
func (s *IdentityService) AcceptFollowRequest(ctx context.Context, requesterID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, me, err := s.loadActing(ctx)
	if err != nil {
		return err
	}
	requester := indexOf(users, requesterID)
	if requester < 0 {
		return domainerrors.UserNotFound("Requesting user not found")
	}

	me.AcceptFollowFrom(&users[requester])

	if err := s.store.SaveUsers(ctx, users); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save users")
	}

	s.logger.Info("follow request accepted", "follower", requesterID, "followee", me.ID)
	return nil
}

// LogVisit prepends a visit to the acting user's diary.
func (s *IdentityService) LogVisit(ctx context.Context, input NewVisit) (*domain.VisitLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, me, err := s.loadActing(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	logID, err := id.Generate(id.PrefixVisit)
	if err != nil {
		return nil, fmt.Errorf("generate visit ID: %w", err)
	}

	visit := domain.VisitLog{
		ID:       logID,
		PlaceID:  input.PlaceID,
		Name:     input.Name,
		PhotoURL: input.PhotoURL,
		Date:     input.Date,
		Rating:   input.Rating,
	}
	if visit.Date == 0 {
		visit.Date = s.now().UnixMilli()
	}
	me.PrependVisit(visit)

	if err := s.store.SaveUsers(ctx, users); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save users")
	}

	s.logger.Debug("visit logged", "user_id", me.ID, "place_id", visit.PlaceID)
	return &visit, nil
}

// GetDiary returns userID's diary, or the acting user's when userID is empty.
// Unknown or unresolvable users have an empty diary.
func (s *IdentityService) GetDiary(ctx context.Context, userID string) []domain.VisitLog {
	if userID == "" {
		userID = s.CurrentUserID(ctx)
	}
	if userID == "" {
		return []domain.VisitLog{}
	}
	user := s.GetUser(ctx, userID)
	if user == nil {
		return []domain.VisitLog{}
	}
	return user.Diary
}

// ActivityFeed returns recent visits of the users that userID (or the acting
// user) follows, newest first.
func (s *IdentityService) ActivityFeed(ctx context.Context, userID string) []domain.ActivityItem {
	if userID == "" {
		userID = s.CurrentUserID(ctx)
	}
	users := s.users(ctx)
	viewer := indexOf(users, userID)
	if userID == "" || viewer < 0 {
		return []domain.ActivityItem{}
	}
	return domain.BuildFeed(&users[viewer], users)
}

// users reads the collection, degrading storage failures to an empty result.
func (s *IdentityService) users(ctx context.Context) []domain.UserProfile {
	users, err := s.store.Users(ctx)
	if err != nil {
		s.logger.Warn("failed to read users", "error", err)
		return []domain.UserProfile{}
	}
	return users
}

func (s *IdentityService) find(ctx context.Context, match func(*domain.UserProfile) bool) *domain.UserProfile {
	users := s.users(ctx)
	for i := range users {
		if match(&users[i]) {
			return &users[i]
		}
	}
	return nil
}

// loadActing reads the user collection for a mutation and locates the acting
// user in it. The returned pointer aliases the slice.
func (s *IdentityService) loadActing(ctx context.Context) ([]domain.UserProfile, *domain.UserProfile, error) {
	userID := s.CurrentUserID(ctx)
	if userID == "" {
		return nil, nil, domainerrors.ErrNotAuthenticated
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to read users")
	}

	i := indexOf(users, userID)
	if i < 0 {
		return nil, nil, domainerrors.ErrNotAuthenticated
	}
	return users, &users[i], nil
}

func indexOf(users []domain.UserProfile, userID string) int {
	for i := range users {
		if users[i].ID == userID {
			return i
		}
	}
	return -1
}
