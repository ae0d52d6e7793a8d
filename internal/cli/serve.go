package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/internal/api"
	"github.com/matzehuels/barchart/pkg/cache"
	"github.com/matzehuels/barchart/pkg/pipeline"
	"github.com/matzehuels/barchart/pkg/store"
)

const (
	defaultAddr     = "localhost:8080"
	shutdownTimeout = 10 * time.Second
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	database string
	noCache  bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     defaultAddr,
		database: store.DefaultMongoDatabase,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart API over HTTP",
		Long: `Serve the chart API over HTTP.

Charts are kept in memory unless a MongoDB URI is given, and rendered
output is cached on disk unless a Redis URL is given. Both can be set
through the environment:

  ` + envRedisURL + `   redis://localhost:6379/0
  ` + envMongoURI + `   mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", os.Getenv(envRedisURL), "Redis URL for the render cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", os.Getenv(envMongoURI), "MongoDB URI for the chart store")
	cmd.Flags().StringVar(&opts.database, "database", opts.database, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	rc, cacheName, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, "api"), logger)
	defer runner.Close()

	st, storeName, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("close store", "err", err)
		}
	}()

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", opts.addr, err)
	}

	srv := &http.Server{
		Handler:           api.New(runner, st, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving chart API")
	printKeyValue("Address", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue("Store", storeName)
	printKeyValue("Cache", cacheName)
	printNewline()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	printInfo("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serveCache picks the render cache: Redis when configured, else the local
// file cache.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, string, error) {
	if opts.noCache {
		return cache.NewNullCache(), "disabled", nil
	}
	if opts.redisURL != "" {
		p := newProgress(loggerFromContext(ctx))
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, "", fmt.Errorf("connect redis: %w", err)
		}
		p.done("Connected to redis")
		return rc, "redis", nil
	}
	fc, err := newCache(false)
	if err != nil {
		return nil, "", fmt.Errorf("open cache: %w", err)
	}
	dir, _ := cacheDir()
	return fc, "file " + dir, nil
}

// serveStore picks the chart store: MongoDB when configured, else memory.
func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (store.Store, string, error) {
	if opts.mongoURI == "" {
		return store.NewMemoryStore(), "memory", nil
	}
	p := newProgress(loggerFromContext(ctx))
	st, err := store.NewMongoStore(ctx, opts.mongoURI, opts.database)
	if err != nil {
		return nil, "", fmt.Errorf("connect mongo: %w", err)
	}
	p.done("Connected to mongo")
	return st, "mongo " + opts.database, nil
}
