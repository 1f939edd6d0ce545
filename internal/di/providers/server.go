package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/tablelog/tablelog-server/internal/api"
	"github.com/tablelog/tablelog-server/internal/config"
	"github.com/tablelog/tablelog-server/internal/logger"
	"github.com/tablelog/tablelog-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer builds the API handler and starts serving in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	placesHandle := do.MustInvoke[*PlacesClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Identity: do.MustInvoke[*service.IdentityService](i),
		Lists:    do.MustInvoke[*service.ListService](i),
		Curated:  do.MustInvoke[*service.CuratedService](i),
		Places:   placesHandle.Client,
	}

	handler := api.NewServer(storeHandle.Store, services, cfg.Server, log.Component("api"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
