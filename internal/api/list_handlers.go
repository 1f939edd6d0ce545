package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tablelog/tablelog-server/internal/api/dto"
	"github.com/tablelog/tablelog-server/internal/domain"
	domainerrors "github.com/tablelog/tablelog-server/internal/errors"
)

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUserLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists",
		Summary:     "List user lists",
		Description: "Returns a user's restaurant lists. Defaults to the acting user.",
		Tags:        []string{tagLists},
	}, s.handleListUserLists)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createUserList",
		Method:        http.MethodPost,
		Path:          "/api/v1/lists",
		Summary:       "Create list",
		Description:   "Creates an empty list owned by the acting user",
		Tags:          []string{tagLists},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateUserList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserList",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Get list",
		Description: "Returns one of the acting user's lists",
		Tags:        []string{tagLists},
	}, s.handleGetUserList)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUserList",
		Method:      http.MethodPatch,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Update list",
		Description: "Changes a list's name, description or icon",
		Tags:        []string{tagLists},
	}, s.handleUpdateUserList)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUserList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/lists/{id}",
		Summary:     "Delete list",
		Description: "Deletes a list. Deleting a missing list succeeds.",
		Tags:        []string{tagLists},
	}, s.handleDeleteUserList)

	huma.Register(s.api, huma.Operation{
		OperationID: "addRestaurantToList",
		Method:      http.MethodPost,
		Path:        "/api/v1/lists/{id}/restaurants",
		Summary:     "Add restaurant to list",
		Description: "Appends a restaurant. Fails when the list is missing or already holds the place.",
		Tags:        []string{tagLists},
	}, s.handleAddRestaurantToList)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeRestaurantFromList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/lists/{id}/restaurants/{placeId}",
		Summary:     "Remove restaurant from list",
		Description: "Removes a restaurant by place ID",
		Tags:        []string{tagLists},
	}, s.handleRemoveRestaurantFromList)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRestaurantLists",
		Method:      http.MethodGet,
		Path:        "/api/v1/restaurants/{placeId}/lists",
		Summary:     "Get lists containing restaurant",
		Description: "Returns the acting user's lists that contain the place",
		Tags:        []string{tagLists},
	}, s.handleGetRestaurantLists)
}

// === DTOs ===

// ListUserListsInput contains parameters for listing lists.
type ListUserListsInput struct {
	UserID string `query:"userId" doc:"List owner; defaults to the acting user"`
}

// ListsResponse contains restaurant lists.
type ListsResponse struct {
	Lists []dto.List `json:"lists" doc:"Lists in creation order"`
}

// ListsOutput wraps the lists response for Huma.
type ListsOutput struct {
	Body ListsResponse
}

// CreateListRequest is the request body for creating a list.
type CreateListRequest struct {
	Name        string `json:"name" minLength:"1" maxLength:"100" doc:"List name"`
	Description string `json:"description,omitempty" maxLength:"500" doc:"List description"`
	Icon        string `json:"icon,omitempty" maxLength:"16" doc:"Emoji icon"`
}

// CreateListInput wraps the create list request for Huma.
type CreateListInput struct {
	Body CreateListRequest
}

// ListOutput wraps a list response for Huma.
type ListOutput struct {
	Body dto.List
}

// ListIDInput contains the list path parameter.
type ListIDInput struct {
	ID string `path:"id" doc:"List ID"`
}

// UpdateListRequest is the request body for updating a list.
type UpdateListRequest struct {
	Name        *string `json:"name,omitempty" minLength:"1" maxLength:"100" doc:"List name"`
	Description *string `json:"description,omitempty" maxLength:"500" doc:"List description"`
	Icon        *string `json:"icon,omitempty" maxLength:"16" doc:"Emoji icon"`
}

// UpdateListInput wraps the update list request for Huma.
type UpdateListInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body UpdateListRequest
}

// AddRestaurantInput wraps the add restaurant request for Huma.
type AddRestaurantInput struct {
	ID   string `path:"id" doc:"List ID"`
	Body dto.Restaurant
}

// RemoveRestaurantInput contains parameters for removing a restaurant.
type RemoveRestaurantInput struct {
	ID      string `path:"id" doc:"List ID"`
	PlaceID string `path:"placeId" doc:"Gateway place ID"`
}

// PlaceIDInput contains the place path parameter.
type PlaceIDInput struct {
	PlaceID string `path:"placeId" doc:"Gateway place ID"`
}

// === Handlers ===

func (s *Server) handleListUserLists(ctx context.Context, input *ListUserListsInput) (*ListsOutput, error) {
	lists := s.services.Lists.GetUserLists(ctx, input.UserID)
	return &ListsOutput{Body: ListsResponse{Lists: dto.FromLists(lists)}}, nil
}

func (s *Server) handleCreateUserList(ctx context.Context, input *CreateListInput) (*ListOutput, error) {
	list, err := s.services.Lists.CreateUserList(ctx, input.Body.Name, input.Body.Description, input.Body.Icon, "")
	if err != nil {
		return nil, err
	}
	return &ListOutput{Body: dto.FromList(*list)}, nil
}

func (s *Server) handleGetUserList(ctx context.Context, input *ListIDInput) (*ListOutput, error) {
	list := s.services.Lists.GetUserList(ctx, input.ID, "")
	if list == nil {
		return nil, domainerrors.NotFound("List not found")
	}
	return &ListOutput{Body: dto.FromList(*list)}, nil
}

func (s *Server) handleUpdateUserList(ctx context.Context, input *UpdateListInput) (*dto.ResultOutput, error) {
	ok := s.services.Lists.UpdateUserList(ctx, input.ID, domain.ListUpdate{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		Icon:        input.Body.Icon,
	}, "")
	return result(ok), nil
}

func (s *Server) handleDeleteUserList(ctx context.Context, input *ListIDInput) (*dto.ResultOutput, error) {
	return result(s.services.Lists.DeleteUserList(ctx, input.ID, "")), nil
}

func (s *Server) handleAddRestaurantToList(ctx context.Context, input *AddRestaurantInput) (*dto.ResultOutput, error) {
	return result(s.services.Lists.AddRestaurantToList(ctx, input.ID, input.Body.ToDomain(), "")), nil
}

func (s *Server) handleRemoveRestaurantFromList(ctx context.Context, input *RemoveRestaurantInput) (*dto.ResultOutput, error) {
	return result(s.services.Lists.RemoveRestaurantFromList(ctx, input.ID, input.PlaceID, "")), nil
}

func (s *Server) handleGetRestaurantLists(ctx context.Context, input *PlaceIDInput) (*ListsOutput, error) {
	lists := s.services.Lists.GetRestaurantLists(ctx, input.PlaceID, "")
	return &ListsOutput{Body: ListsResponse{Lists: dto.FromLists(lists)}}, nil
}

func result(ok bool) *dto.ResultOutput {
	return &dto.ResultOutput{Body: dto.ResultResponse{Success: ok}}
}
