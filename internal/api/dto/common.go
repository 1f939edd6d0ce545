// Package dto provides request and response types for the tablelog API.
// These types are used by huma to generate OpenAPI documentation and perform validation.
package dto

// MessageResponse is a simple success message response.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps a message response for huma.
type MessageOutput struct {
	Body MessageResponse
}

// ResultResponse reports whether a mutation found its target.
type ResultResponse struct {
	Success bool `json:"success" doc:"False when the target did not exist or the change was not saved"`
}

// ResultOutput wraps a result response for huma.
type ResultOutput struct {
	Body ResultResponse
}

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat" minimum:"-90" maximum:"90" doc:"Latitude"`
	Lng float64 `json:"lng" minimum:"-180" maximum:"180" doc:"Longitude"`
}
