// Package bootstrap assembles the process-wide dependencies shared by the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/config"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/db"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
	"github.com/aluiggi96/Doc-MYPE/internal/store"
	"github.com/aluiggi96/Doc-MYPE/migrations"
)

// Runtime is one opened store plus the application service built over it.
type Runtime struct {
	Store   *core.Store
	Service app.ApplicationService
	close   func()
}

// Close releases the backend connection, if any.
func (r *Runtime) Close() {
	if r.close != nil {
		r.close()
	}
}

// OpenBackend connects the backend selected by cfg.StoreDriver. The Postgres
// backend applies pending migrations before it is used. The returned func
// releases the connection.
func OpenBackend(ctx context.Context, cfg *config.Config) (store.Backend, func(), error) {
	log := logger.WithComponent("bootstrap")
	noop := func() {}

	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn().Msg("using the in-memory store, data is lost on exit")
		return store.NewMemoryBackend(), noop, nil

	case config.DriverFile:
		b, err := store.NewFileBackend(cfg.StoreDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("dir", cfg.StoreDir).Msg("using the file store")
		return b, noop, nil

	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		if err := db.Migrate(ctx, pool, migrations.FS); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info().Msg("using the postgres store")
		return store.NewPostgresBackend(pool), pool.Close, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("unable to ping redis at %s: %w", cfg.RedisAddr, err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("using the redis store")
		return store.NewRedisBackend(client), func() { client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// NewGenerator returns the insight collaborator, or nil when no credential is
// configured. A nil generator makes every insight request report the service
// as unavailable.
func NewGenerator(cfg *config.Config) ai.Generator {
	if !cfg.AIEnabled() {
		l := logger.WithComponent("bootstrap")
		l.Warn().Msg("AI_API_KEY is not set, insights are disabled")
		return nil
	}
	return ai.NewOpenAIGenerator(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AITimeout)
}

// New opens the configured store and wires the application service over it.
func New(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	backend, closeBackend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	st := core.OpenStore(ctx, backend, cfg.StoreNamespace)
	svc := app.NewFromStore(st, NewGenerator(cfg), ai.AdvisorConfig{
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	}, nil)

	return &Runtime{Store: st, Service: svc, close: closeBackend}, nil
}
