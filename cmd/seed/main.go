// seed fills an empty store with demo clients, products, documents and
// sustainability data. It uses the store selected by STORE_DRIVER.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aluiggi96/Doc-MYPE/internal/bootstrap"
	"github.com/aluiggi96/Doc-MYPE/internal/config"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
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
	rt, err := bootstrap.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	report, err := bootstrap.Seed(ctx, rt.Service)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		rt.Close()
		os.Exit(1)
	}
	fmt.Printf("Seeded %d clients, %d products, %d documents and %d sustainability months.\n",
		report.Clients, report.Products, report.Documents, report.Sustainability)
}
