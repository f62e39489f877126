// Package main is the entry point for VaultDelve.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/vaultdelve/internal/archive"
	"github.com/samdwyer/vaultdelve/internal/game"
	"github.com/samdwyer/vaultdelve/internal/gamedata"
	"github.com/samdwyer/vaultdelve/internal/logger"
	"github.com/samdwyer/vaultdelve/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "vaultdelve.yaml", "Path to config file")
	seed := flag.Int64("seed", 0, "Dungeon seed (overrides config, 0 = random)")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// The terminal belongs to the game while it runs.
	cfg.Logging.ConsoleEnabled = false
	if err := logger.Initialize(cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	registry, err := gamedata.LoadRegistry()
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}

	w := game.NewWorld(cfg.Seed, cfg.Dungeon, registry)
	if cfg.Archive.Enabled {
		store, err := archive.Open(cfg.Archive.Config)
		if err != nil {
			log.Fatalf("Failed to open level archive: %v", err)
		}
		defer store.Close()
		w.SetSaver(store)
	}

	logger.Info("starting run", "seed", cfg.Seed, "width", cfg.Dungeon.Width, "height", cfg.Dungeon.Height)

	g, err := game.New(w)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
	fmt.Printf("Seed %d, deepest floor %d\n", cfg.Seed, len(w.Floors))
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_VAULTDELVE_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_VAULTDELVE_DATASET")
	if dataset == "" {
		dataset = "vaultdelve"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
