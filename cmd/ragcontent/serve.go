package main

import (
	"context"
	"fmt"
	"time"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	deps.Logger.Info("starting server",
		"addr", deps.Config.ListenAddr,
		"ping_configured", deps.Config.PingConfigured(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- deps.Server.Start()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-deps.Ctx.Done():
	}

	deps.Logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := deps.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
