// Package main is the entry point for Shadowspire.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/shadowspire/internal/game"
	"github.com/samdwyer/shadowspire/internal/logging"
	"github.com/samdwyer/shadowspire/internal/telemetry"
)

func main() {
	// Load .env for local development. Not fatal: env vars may be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	cfg, err := game.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, closeLog, err := logging.Open(cfg.LogPath)
	if err != nil {
		log.Printf("Warning: diagnostic log unavailable: %v", err)
	} else {
		defer func() {
			if err := closeLog(); err != nil {
				log.Printf("Error closing log file: %v", err)
			}
		}()
	}

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("telemetry setup failed, running without observability")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("error shutting down telemetry")
			}
		}()
	}

	g, err := game.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		g.Close()
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	apiKey := os.Getenv("HONEYCOMB_SHADOWSPIRE_API_KEY")
	dataset := os.Getenv("HONEYCOMB_SHADOWSPIRE_DATASET")
	if dataset == "" {
		dataset = "shadowspire"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
