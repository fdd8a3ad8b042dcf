package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/puppybowl/internal/clients/puppybowl"
	"github.com/KirkDiggler/puppybowl/internal/common/uuid"
	"github.com/KirkDiggler/puppybowl/internal/config"
	"github.com/KirkDiggler/puppybowl/internal/handlers/discord"
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

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create logger")
	}

	if cfg.Discord.Token == "" {
		logger.Fatal().Msg("DISCORD_TOKEN environment variable is required")
	}

	// One API client is shared by every user's roster
	client, err := puppybowl.New(&puppybowl.Config{
		BaseURL:       cfg.API.BaseURL,
		HTTPClient:    &http.Client{Timeout: cfg.API.Timeout},
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create players client")
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create messaging service")
	}

	bot, err := discord.New(&discord.Config{
		Token:         cfg.Discord.Token,
		ApplicationID: cfg.Discord.ApplicationID,
		GuildID:       cfg.Discord.GuildID,
		NewRoster: func(userID string) (roster.Service, error) {
			userLogger := logger.With().Str("user_id", userID).Logger()
			return roster.New(&roster.Config{
				Client: client,
				Logger: &userLogger,
			})
		},
		MessagingService: messagingSvc,
		Logger:           &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start Discord bot")
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		logger.Error().Err(err).Msg("error stopping bot")
	}

	logger.Info().Msg("bot has been shut down")
}
