package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessellaviz/tessella/internal/server"
	"github.com/tessellaviz/tessella/pkg/cache"
	"github.com/tessellaviz/tessella/pkg/paint"
	"github.com/tessellaviz/tessella/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redis    string // Redis address for the shared result cache
	mongoURI string // MongoDB URI for the document store
	noCache  bool   // disable result caching entirely
}

// serveCommand creates the serve command, which runs the HTTP paint API.
//
// By default the server uses the local file cache and an in-memory document
// store, suitable for a single instance. With --redis and --mongo it shares
// cache and storage across instances.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP paint API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for a shared result cache (host:port)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the document store")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	resultCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer resultCache.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	runner := paint.NewRunner(resultCache, nil, c.Logger)
	handler := server.New(runner, st, c.Logger)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache selects the result cache backend from the serve flags.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redis != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redis})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", opts.redis)
		return rc, nil
	default:
		return newCache(false)
	}
}

// serveStore selects the document store backend from the serve flags.
func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return nil, fmt.Errorf("connect mongodb store: %w", err)
		}
		c.Logger.Info("using mongodb store")
		return store.WithHooks(ms), nil
	}
	c.Logger.Warn("using in-memory store, documents are lost on restart")
	return store.WithHooks(store.NewMemoryStore()), nil
}
