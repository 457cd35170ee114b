package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/aluiggi96/Doc-MYPE/internal/adapters/cli"
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

	// stdout carries command output.
	logCfg := cfg.LoggerConfig()
	if logCfg.Output == "" || logCfg.Output == "stdout" {
		logCfg.Output = "stderr"
	}
	closeLog, err := logger.Setup(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	// Ctrl-C cancels the running command.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rt, err := bootstrap.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open store: %v\n", err)
		os.Exit(1)
	}

	code := cli.Execute(ctx, rt.Service)

	rt.Close()
	stop()
	closeLog()
	os.Exit(code)
}
