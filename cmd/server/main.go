package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/teranga/cagnotte/infra/initializer"
	"github.com/teranga/cagnotte/infra/scheduler"
	"github.com/teranga/cagnotte/pkg/app"
	"github.com/teranga/cagnotte/pkg/config"
	"github.com/teranga/cagnotte/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	a := app.New(deps, cfg)

	sched := scheduler.New(a.SweepService, cfg.Sweep, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start sweep scheduler: %w", err)
	}
	defer func() { <-sched.Stop().Done() }()

	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return fiberApp.Listen(addr)
}
