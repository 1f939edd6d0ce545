package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablelog/tablelog-server/internal/api/dto"
	"github.com/tablelog/tablelog-server/internal/domain"
	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "Search users",
		Description: "Returns profiles whose username, name or bio contains q. Without q, returns every profile.",
		Tags:        []string{tagUsers},
	}, s.handleSearchUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserByUsername",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{username}",
		Summary:     "Get user by username",
		Description: "Looks up a profile by username, ignoring case",
		Tags:        []string{tagUsers},
	}, s.handleGetUserByUsername)

	huma.Register(s.api, huma.Operation{
		OperationID: "sendFollowRequest",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{id}/follow-requests",
		Summary:     "Send follow request",
		Description: "Asks to follow a user. Repeating the request is harmless.",
		Tags:        []string{tagUsers},
	}, s.handleSendFollowRequest)

	huma.Register(s.api, huma.Operation{
		OperationID: "acceptFollowRequest",
		Method:      http.MethodPost,
		Path:        "/api/v1/follow-requests/{requesterId}/accept",
		Summary:     "Accept follow request",
		Description: "Accepts a pending request from requesterId",
		Tags:        []string{tagUsers},
	}, s.handleAcceptFollowRequest)
}

// === DTOs ===

// SearchUsersInput contains parameters for searching users.
type SearchUsersInput struct {
	Query string `query:"q" doc:"Case-insensitive substring of username, name or bio"`
}

// UsersResponse contains a list of profiles.
type UsersResponse struct {
	Users []dto.Profile `json:"users" doc:"Matching profiles"`
}

// UsersOutput wraps the users response for Huma.
type UsersOutput struct {
	Body UsersResponse
}

// GetUserByUsernameInput contains parameters for a username lookup.
type GetUserByUsernameInput struct {
	Username string `path:"username" doc:"Username"`
}

// UserLookupResponse is a profile plus the caller's relationship to it.
type UserLookupResponse struct {
	dto.Profile
	IsFollowing bool `json:"is_following" doc:"Whether the signed-in user follows this profile"`
}

// UserLookupOutput wraps the user lookup response for Huma.
type UserLookupOutput struct {
	Body UserLookupResponse
}

// FollowRequestInput contains parameters for sending a follow request.
type FollowRequestInput struct {
	ID string `path:"id" doc:"User to follow"`
}

// AcceptFollowRequestInput contains parameters for accepting a follow request.
type AcceptFollowRequestInput struct {
	RequesterID string `path:"requesterId" doc:"User who asked to follow"`
}

// === Handlers ===

func (s *Server) handleSearchUsers(ctx context.Context, input *SearchUsersInput) (*UsersOutput, error) {
	var users []domain.UserProfile
	if strings.TrimSpace(input.Query) == "" {
		users = s.services.Identity.ListUsers(ctx)
	} else {
		users = s.services.Identity.SearchProfiles(ctx, input.Query)
	}
	return &UsersOutput{Body: UsersResponse{Users: dto.FromProfiles(users)}}, nil
}

func (s *Server) handleGetUserByUsername(ctx context.Context, input *GetUserByUsernameInput) (*UserLookupOutput, error) {
	user := s.services.Identity.GetByUsername(ctx, input.Username)
	if user == nil {
		return nil, domainerrors.ErrUserNotFound
	}
	resp := UserLookupResponse{Profile: dto.FromProfile(user)}
	if viewer := s.services.Identity.CurrentUser(ctx); viewer != nil {
		resp.IsFollowing = viewer.IsFollowing(user.ID)
	}
	return &UserLookupOutput{Body: resp}, nil
}

func (s *Server) handleSendFollowRequest(ctx context.Context, input *FollowRequestInput) (*dto.MessageOutput, error) {
	if err := s.services.Identity.SendFollowRequest(ctx, input.ID); err != nil {
		return nil, err
	}
	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Follow request sent"}}, nil
}

func (s *Server) handleAcceptFollowRequest(ctx context.Context, input *AcceptFollowRequestInput) (*dto.MessageOutput, error) {
	if err := s.services.Identity.AcceptFollowRequest(ctx, input.RequesterID); err != nil {
		return nil, err
	}
	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Follow request accepted"}}, nil
}
