package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablelog/tablelog-server/internal/api/dto"
	"github.com/tablelog/tablelog-server/internal/service"
)

func (s *Server) registerDiaryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "logVisit",
		Method:        http.MethodPost,
		Path:          "/api/v1/diary",
		Summary:       "Log visit",
		Description:   "Adds a visit to the acting user's diary",
		Tags:          []string{tagDiary},
		DefaultStatus: http.StatusCreated,
	}, s.handleLogVisit)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDiary",
		Method:      http.MethodGet,
		Path:        "/api/v1/diary",
		Summary:     "Get diary",
		Description: "Returns a user's visits, newest first. Defaults to the acting user.",
		Tags:        []string{tagDiary},
	}, s.handleGetDiary)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFeed",
		Method:      http.MethodGet,
		Path:        "/api/v1/feed",
		Summary:     "Get activity feed",
		Description: "Returns recent visits of followed users, newest first",
		Tags:        []string{tagDiary},
	}, s.handleGetFeed)
}

// === DTOs ===

// LogVisitRequest is the request body for logging a visit.
type LogVisitRequest struct {
	PlaceID  string  `json:"place_id" minLength:"1" doc:"Gateway place ID"`
	Name     string  `json:"name" minLength:"1" doc:"Restaurant name"`
	PhotoURL *string `json:"photo_url,omitempty" doc:"Restaurant photo URL"`
	Date     int64   `json:"date,omitempty" minimum:"0" doc:"Visit time (epoch ms); defaults to now"`
	Rating   *int    `json:"rating,omitempty" minimum:"1" maximum:"5" doc:"Rating from 1 to 5"`
}

// LogVisitInput wraps the log visit request for Huma.
type LogVisitInput struct {
	Body LogVisitRequest
}

// VisitOutput wraps a visit response for Huma.
type VisitOutput struct {
	Body dto.Visit
}

// GetDiaryInput contains parameters for reading a diary.
type GetDiaryInput struct {
	UserID string `query:"userId" doc:"Diary owner; defaults to the acting user"`
}

// DiaryResponse contains a diary.
type DiaryResponse struct {
	Visits []dto.Visit `json:"visits" doc:"Visits, newest first"`
}

// DiaryOutput wraps the diary response for Huma.
type DiaryOutput struct {
	Body DiaryResponse
}

// FeedResponse contains the activity feed.
type FeedResponse struct {
	Activity []dto.Activity `json:"activity" doc:"Feed entries, newest first"`
}

// FeedOutput wraps the feed response for Huma.
type FeedOutput struct {
	Body FeedResponse
}

// === Handlers ===

func (s *Server) handleLogVisit(ctx context.Context, input *LogVisitInput) (*VisitOutput, error) {
	visit, err := s.services.Identity.LogVisit(ctx, service.NewVisit{
		PlaceID:  input.Body.PlaceID,
		Name:     input.Body.Name,
		PhotoURL: input.Body.PhotoURL,
		Date:     input.Body.Date,
		Rating:   input.Body.Rating,
	})
	if err != nil {
		return nil, err
	}
	return &VisitOutput{Body: dto.FromVisit(*visit)}, nil
}

func (s *Server) handleGetDiary(ctx context.Context, input *GetDiaryInput) (*DiaryOutput, error) {
	diary := s.services.Identity.GetDiary(ctx, input.UserID)
	return &DiaryOutput{Body: DiaryResponse{Visits: dto.FromVisits(diary)}}, nil
}

func (s *Server) handleGetFeed(ctx context.Context, _ *struct{}) (*FeedOutput, error) {
	feed := s.services.Identity.ActivityFeed(ctx, "")
	return &FeedOutput{Body: FeedResponse{Activity: dto.FromActivity(feed)}}, nil
}
