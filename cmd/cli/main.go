package main

import (
	"context"
	"net/http"
	"os"

	"github.com/KirkDiggler/puppybowl/internal/clients/puppybowl"
	"github.com/KirkDiggler/puppybowl/internal/common/uuid"
	"github.com/KirkDiggler/puppybowl/internal/config"
	"github.com/KirkDiggler/puppybowl/internal/handlers/terminal"
	"github.com/KirkDiggler/puppybowl/internal/logging"
	"github.com/KirkDiggler/puppybowl/internal/services/messaging"
	"github.com/KirkDiggler/puppybowl/internal/services/roster"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Logs go to stderr so they do not interleave with the roster on stdout
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create logger")
	}

	client, err := puppybowl.New(&puppybowl.Config{
		BaseURL:       cfg.API.BaseURL,
		HTTPClient:    &http.Client{Timeout: cfg.API.Timeout},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create players client")
	}

	rosterSvc, err := roster.New(&roster.Config{
		Client: client,
		Logger: &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create roster")
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create messaging service")
	}

	handler, err := terminal.New(&terminal.Config{
		RosterService:    rosterSvc,
		MessagingService: messagingSvc,
		In:               os.Stdin,
		Out:              os.Stdout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create terminal handler")
	}

	// CTRL-C keeps its default behaviour since Run blocks reading stdin
	if err := handler.Run(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("terminal handler failed")
	}
}
