package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/lawnchairsociety/towerclimb/internal/config"
	"github.com/lawnchairsociety/towerclimb/internal/engine"
	"github.com/lawnchairsociety/towerclimb/internal/logger"
	"github.com/lawnchairsociety/towerclimb/internal/save"
	"github.com/lawnchairsociety/towerclimb/internal/server"
)

func main() {
	configFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	saveSlot := flag.String("slot", save.DefaultSlot, "Save slot to load")
	seed := flag.Int64("seed", 0, "Drop RNG seed (default: random based on current time)")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting Tower Climb Server")

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Config load failed, using defaults", "path", *configFile, "error", err)
	}

	store, err := save.Open(saveConfig(cfg.Save))
	if err != nil {
		log.Fatalf("Failed to open save store: %v", err)
	}
	defer store.Close()

	state, err := store.Load(*saveSlot)
	if err != nil {
		log.Fatalf("Failed to load save slot %q: %v", *saveSlot, err)
	}
	logger.Info("Save loaded", "slot", *saveSlot, "floor", state.Player.Floor, "level", state.Player.Level)

	opts := engine.Options{BossTimeLimit: cfg.Game.BossTimeLimitSeconds}
	if *seed != 0 {
		opts.RNG = rand.New(rand.NewSource(*seed))
		logger.Info("RNG seed selected", "seed", *seed, "random", false)
	}
	eng := engine.New(opts)

	runner := engine.NewRunner(eng, state, cfg.Game.TickInterval(), func(g *engine.GameState) error {
		return store.Save(*saveSlot, g)
	}, func(err error) {
		logger.Error("Save failed", "slot", *saveSlot, "error", err)
	})

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runner.Run(ctx)
	}()

	srv := server.New(cfg, eng, runner)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Start(ctx); err != nil {
			logger.Error("Server stopped", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	// Cancelling the runner context forces a final save
	cancel()
	wg.Wait()

	logger.Info("Server shut down cleanly")
}

// saveConfig maps the YAML save section onto the store config.
func saveConfig(cfg config.SaveConfig) save.Config {
	return save.Config{
		Driver:     cfg.Driver,
		SQLitePath: cfg.SQLitePath,
		Postgres: save.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		},
	}
}
