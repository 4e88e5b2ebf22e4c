package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/murzabaevb/levelplot/internal/server"
	"github.com/murzabaevb/levelplot/pkg/cache"
	"github.com/murzabaevb/levelplot/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP render API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the HTTP render API.

The serve command starts an HTTP server exposing the plotting pipeline.
POST /render accepts pipeline options with base64-encoded raw input and
returns the rendered artifacts; POST /inspect returns the parsed dataset
structure without rendering.

By default the server caches to the local filesystem. With --redis, a
shared Redis instance is used instead, so multiple server replicas can
share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address (host:port) for shared caching")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the cache, runner, and server, then blocks until shutdown.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	store, err := newServerCache(ctx, logger, redisAddr, noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:   addr,
		Runner: runner,
		Logger: logger,
	})
	return srv.Run(ctx)
}

// newServerCache picks the cache backend for server use.
func newServerCache(ctx context.Context, logger *log.Logger, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect to redis %s: %w", redisAddr, err)
		}
		logger.Info("using redis cache", "addr", redisAddr)
		return store, nil
	}
	return newCache(false)
}
