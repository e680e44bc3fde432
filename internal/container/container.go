package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"animedb/client/internal/client"
	"animedb/client/internal/config"
	"animedb/client/internal/fetcher"
	"animedb/client/internal/httpserver"
	"animedb/client/internal/service"
	"animedb/client/internal/state"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const pruneInterval = time.Minute

// Container holds all initialized components
type Container struct {
	Config    *config.Config
	Client    client.CatalogClient
	Store     state.Store
	Sequencer *fetcher.Sequencer

	Service *service.Service
	Server  *http.Server

	redis *redis.Client
	bolt  *state.BoltStore
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	sessionTTL := time.Duration(cfg.Session.TTL) * time.Second

	switch cfg.Session.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.Store = state.NewRedisStore(rdb, sessionTTL)
	case "bolt":
		store, err := state.NewBoltStore(cfg.Session.BoltPath, sessionTTL)
		if err != nil {
			return nil, err
		}
		log.Infof("✅ Session store opened at %s", cfg.Session.BoltPath)

		container.bolt = store
		container.Store = store
	default:
		container.Store = state.NewMemoryStore(sessionTTL)
	}

	container.Client = client.NewCatalogClient(cfg.API)
	container.Sequencer = fetcher.NewSequencer()

	container.Service = service.NewService(
		container.Client,
		container.Sequencer,
		container.Store,
	)

	container.Server = httpserver.New(httpserver.Config{
		Address:    cfg.Server.Address(),
		API:        cfg.API,
		Locale:     cfg.UI.Locale,
		CookieName: cfg.Session.CookieName,
		SessionTTL: sessionTTL,
	}, container.Service)

	return container, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Listening on http://%s", c.Server.Addr)
		if err := c.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("🛑 Shutting down HTTP server...")

		timeout := time.Duration(c.Config.Server.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return c.Server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		c.prune(ctx)
		return nil
	})

	return g.Wait()
}

// prune drops sequencer entries and expired in-memory sessions.
func (c *Container) prune(ctx context.Context) {
	maxAge := time.Duration(c.Config.Session.TTL) * time.Second
	if maxAge <= 0 {
		maxAge = time.Hour
	}

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sequences := c.Sequencer.Prune(maxAge)
			sessions := 0
			if p, ok := c.Store.(state.Pruner); ok {
				sessions = p.Prune()
			}
			if sequences > 0 || sessions > 0 {
				log.Debugf("Pruned %d sequence entries and %d sessions", sequences, sessions)
			}
		}
	}
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if err := client.Close(c.Client); err != nil {
		log.Warnf("⚠️ Failed to close API client: %v", err)
	}
	if c.bolt != nil {
		if err := c.bolt.Close(); err != nil {
			log.Warnf("⚠️ Failed to close session store: %v", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("⚠️ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
