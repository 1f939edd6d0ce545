package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablelog/tablelog-server/internal/api/dto"
	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
	"github.com/tablelog/tablelog-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/signup",
		Summary:       "Sign up",
		Description:   "Creates a profile and signs it in. Username and email must be unique ignoring case.",
		Tags:          []string{tagAuth},
		DefaultStatus: http.StatusCreated,
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Signs in the user matching a username or email. There is no password.",
		Tags:        []string{tagAuth},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Log out",
		Description: "Clears the signed-in user",
		Tags:        []string{tagAuth},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Get current user",
		Description: "Returns the acting user's profile",
		Tags:        []string{tagAuth},
	}, s.handleGetCurrentUser)
}

// === DTOs ===

// SignupRequest is the request body for creating a profile.
type SignupRequest struct {
	Username string `json:"username" minLength:"1" maxLength:"40" doc:"Unique username"`
	Email    string `json:"email" format:"email" doc:"Unique email address"`
	Name     string `json:"name" minLength:"1" maxLength:"100" doc:"Display name"`
	Bio      string `json:"bio,omitempty" maxLength:"500" doc:"Short biography"`
	Avatar   string `json:"avatar,omitempty" maxLength:"500" doc:"Avatar URL"`
}

// SignupInput wraps the signup request for Huma.
type SignupInput struct {
	Body SignupRequest
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Identifier string `json:"identifier" minLength:"1" doc:"Username or email"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// ProfileOutput wraps a profile response for Huma.
type ProfileOutput struct {
	Body dto.Profile
}

// === Handlers ===

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*ProfileOutput, error) {
	user, err := s.services.Identity.CreateUser(ctx, service.NewUser{
		Username: input.Body.Username,
		Email:    input.Body.Email,
		Name:     input.Body.Name,
		Bio:      input.Body.Bio,
		Avatar:   input.Body.Avatar,
	})
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: dto.FromProfile(user)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*ProfileOutput, error) {
	user, err := s.services.Identity.Login(ctx, input.Body.Identifier)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: dto.FromProfile(user)}, nil
}

func (s *Server) handleLogout(ctx context.Context, _ *struct{}) (*dto.MessageOutput, error) {
	if err := s.services.Identity.Logout(ctx); err != nil {
		return nil, err
	}
	return &dto.MessageOutput{Body: dto.MessageResponse{Message: "Logged out"}}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	user := s.services.Identity.CurrentUser(ctx)
	if user == nil {
		return nil, domainerrors.ErrNotAuthenticated
	}
	return &ProfileOutput{Body: dto.FromProfile(user)}, nil
}
