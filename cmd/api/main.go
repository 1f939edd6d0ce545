// Package main provides the entry point for the Tablelog server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/tablelog/tablelog-server/internal/di"
	"github.com/tablelog/tablelog-server/internal/logger"
)

func main() {
	injector := di.NewServerContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// The container stops the HTTP server before closing the store it depends on.
	if report := injector.Shutdown(); report != nil && len(report.Errors) > 0 {
		log.WithError(report).Error("Shutdown error")
	}

	log.Info("Server stopped")
}
