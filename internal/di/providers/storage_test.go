package providers

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablelog/tablelog-server/internal/config"
	"github.com/tablelog/tablelog-server/internal/logger"
)

func TestOpenBackend(t *testing.T) {
	log := logger.New(logger.Config{Writer: io.Discard})

	for _, backend := range []string{config.BackendBadger, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			b, err := OpenBackend(config.StorageConfig{Backend: backend, DataPath: t.TempDir()}, log)
			require.NoError(t, err)
			t.Cleanup(func() { _ = b.Close() })

			ctx := context.Background()
			require.NoError(t, b.Set(ctx, "k", []byte(`"v"`)))
			got, err := b.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, `"v"`, string(got))
		})
	}
}

func TestOpenBackend_Unknown(t *testing.T) {
	log := logger.New(logger.Config{Writer: io.Discard})

	_, err := OpenBackend(config.StorageConfig{Backend: "etcd"}, log)
	assert.Error(t, err)
}
