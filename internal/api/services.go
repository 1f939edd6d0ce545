package api

import (
	"github.com/tablelog/tablelog-server/internal/places"
	"github.com/tablelog/tablelog-server/internal/service"
)

// Services groups the business logic used by the API server.
type Services struct {
	Identity *service.IdentityService
	Lists    *service.ListService
	Curated  *service.CuratedService
	Places   *places.Client // gateway proxy; may lack an API key
}
