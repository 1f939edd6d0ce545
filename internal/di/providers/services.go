package providers

import (
	"github.com/samber/do/v2"

	"github.com/tablelog/tablelog-server/internal/config"
	"github.com/tablelog/tablelog-server/internal/logger"
	"github.com/tablelog/tablelog-server/internal/places"
	"github.com/tablelog/tablelog-server/internal/service"
	"github.com/tablelog/tablelog-server/internal/validation"
)

// ProvideValidator provides the shared input validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideIdentityService provides the identity and social graph service.
func ProvideIdentityService(i do.Injector) (*service.IdentityService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewIdentityService(storeHandle.Store, validator, log.Component("identity")), nil
}

// ProvideListService provides the list and artifact service.
func ProvideListService(i do.Injector) (*service.ListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	identity := do.MustInvoke[*service.IdentityService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewListService(storeHandle.Store, identity, log.Component("lists")), nil
}

// PlacesClientHandle wraps the gateway client with Shutdownable.
type PlacesClientHandle struct {
	*places.Client
}

// Shutdown implements do.Shutdownable.
func (h *PlacesClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvidePlacesClient provides the places gateway client.
func ProvidePlacesClient(i do.Injector) (*PlacesClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := places.New(places.Config{
		APIKey:            cfg.Places.APIKey,
		BaseURL:           cfg.Places.BaseURL,
		RequestsPerSecond: cfg.Places.RequestsPerSecond,
	}, log.Component("places"))

	if !client.Configured() {
		log.Warn("Places API key not set; place lookups and curated refresh are disabled")
	}

	return &PlacesClientHandle{Client: client}, nil
}

// ProvideCuratedService provides the curated list generator.
func ProvideCuratedService(i do.Injector) (*service.CuratedService, error) {
	placesHandle := do.MustInvoke[*PlacesClientHandle](i)
	lists := do.MustInvoke[*service.ListService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCuratedService(placesHandle.Client, lists, log.Component("curated")), nil
}
