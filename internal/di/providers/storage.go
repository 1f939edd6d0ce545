package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/tablelog/tablelog-server/internal/config"
	"github.com/tablelog/tablelog-server/internal/logger"
	"github.com/tablelog/tablelog-server/internal/store"
	"github.com/tablelog/tablelog-server/internal/store/redis"
	"github.com/tablelog/tablelog-server/internal/store/sqlite"
)

// redisKeyPrefix namespaces every key when several apps share one Redis.
const redisKeyPrefix = "tablelog:"

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured key-value backend and wraps it in a store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	backend, err := OpenBackend(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: store.New(backend, log.Component("store"))}, nil
}

// OpenBackend opens the backend named by cfg.Backend.
func OpenBackend(cfg config.StorageConfig, log *logger.Logger) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		dir := filepath.Join(cfg.DataPath, "badger")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		backend, err := store.OpenBadger(dir)
		if err != nil {
			return nil, err
		}
		log.Info("Badger store opened", "path", dir)
		return backend, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataPath, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		backend, err := sqlite.Open(filepath.Join(cfg.DataPath, "tablelog.db"), log.Component("sqlite"))
		if err != nil {
			return nil, err
		}
		return backend, nil

	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		backend, err := redis.Open(ctx, cfg.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, err
		}
		log.Info("Redis store connected", "prefix", redisKeyPrefix)
		return backend, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
