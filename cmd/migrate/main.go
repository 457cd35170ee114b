// migrate applies the embedded SQL migrations to DATABASE_URL.
// Only the postgres store needs it; the server also migrates on startup.
//
// Usage: go run ./cmd/migrate
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/aluiggi96/Doc-MYPE/internal/config"
	"github.com/aluiggi96/Doc-MYPE/internal/db"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
	"github.com/aluiggi96/Doc-MYPE/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	closeLog, err := logger.Setup(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("[CONNECT] failed")
	}
	defer pool.Close()
	log.Info().Msg("[CONNECT] success")

	if err := db.Migrate(ctx, pool, migrations.FS); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("[MIGRATE] failed")
	}
	log.Info().Msg("[DONE] All migrations processed.")
}
