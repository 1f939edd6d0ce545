package main

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/tablelog/tablelog-server/internal/config"
	"github.com/tablelog/tablelog-server/internal/di"
)

// options holds the persistent flags. Empty values fall through to the
// environment and .env file, the same way the server resolves them.
type options struct {
	storageBackend string
	dataPath       string
	redisURL       string
	envFile        string
	verbose        bool
}

func (o *options) configArgs() []string {
	args := []string{"-env-file", o.envFile}
	if o.storageBackend != "" {
		args = append(args, "-storage-backend", o.storageBackend)
	}
	if o.dataPath != "" {
		args = append(args, "-data-path", o.dataPath)
	}
	if o.redisURL != "" {
		args = append(args, "-redis-url", o.redisURL)
	}
	level := "error"
	if o.verbose {
		level = "debug"
	}
	return append(args, "-log-level", level)
}

// open loads configuration and returns a container over the configured store.
// Callers must Shutdown the container to close the store.
func (o *options) open() (*do.RootScope, error) {
	cfg, err := config.Load(o.configArgs())
	if err != nil {
		return nil, err
	}
	return di.NewContainerWithConfig(cfg), nil
}

// withContainer runs fn against a freshly opened container and shuts it down.
func (o *options) withContainer(fn func(injector do.Injector) error) error {
	injector, err := o.open()
	if err != nil {
		return err
	}
	runErr := fn(injector)
	if report := injector.Shutdown(); report != nil && len(report.Errors) > 0 && runErr == nil {
		return fmt.Errorf("close store: %w", report)
	}
	return runErr
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tablectl",
		Short: "Inspect and maintain a Tablelog store",
		Long: `tablectl works directly on the configured key-value store.

Storage settings come from flags, then STORAGE_BACKEND, DATA_PATH and
REDIS_URL, then the .env file. Stop the server before using a badger store;
badger allows a single process at a time.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.storageBackend, "storage-backend", "", "Key-value backend (badger, sqlite, redis)")
	flags.StringVar(&opts.dataPath, "data-path", "", "Directory for local storage files")
	flags.StringVar(&opts.redisURL, "redis-url", "", "Redis connection URL")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Path to .env file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")

	root.AddCommand(
		newStorageInfoCmd(opts),
		newClearCacheCmd(opts),
		newUsersCmd(opts),
		newListsCmd(opts),
		newCuratedCmd(opts),
	)

	return root
}
