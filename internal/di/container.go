// Package di provides dependency injection configuration for the Tablelog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/tablelog/tablelog-server/internal/config"
	"github.com/tablelog/tablelog-server/internal/di/providers"
	"github.com/tablelog/tablelog-server/internal/logger"
	"github.com/tablelog/tablelog-server/internal/service"
	"github.com/tablelog/tablelog-server/internal/validation"
)

// NewContainer creates a container with configuration loaded from the
// process arguments, storage and business services, without the HTTP server.
func NewContainer() *do.RootScope {
	injector := do.New()
	do.Provide(injector, providers.ProvideConfig)
	registerCore(injector)
	return injector
}

// NewContainerWithConfig is NewContainer over an already loaded configuration.
func NewContainerWithConfig(cfg *config.Config) *do.RootScope {
	injector := do.New()
	do.ProvideValue(injector, cfg)
	registerCore(injector)
	return injector
}

func registerCore(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Gateway
	do.Provide(injector, providers.ProvidePlacesClient)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideIdentityService)
	do.Provide(injector, providers.ProvideListService)
	do.Provide(injector, providers.ProvideCuratedService)
}

// NewServerContainer adds the HTTP server to NewContainer.
func NewServerContainer() *do.RootScope {
	injector := NewContainer()
	do.Provide(injector, providers.ProvideHTTPServer)
	return injector
}

// Bootstrap initializes every service in a NewServerContainer, which starts
// the HTTP server. Errors from config, storage or the listener setup are returned.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.PlacesClientHandle](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.IdentityService](injector)
	_ = do.MustInvoke[*service.ListService](injector)
	_ = do.MustInvoke[*service.CuratedService](injector)

	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
