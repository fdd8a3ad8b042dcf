package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/puppybowl/internal/config"
	"github.com/KirkDiggler/puppybowl/internal/fakeapi"
	"github.com/KirkDiggler/puppybowl/internal/logging"
	"github.com/KirkDiggler/puppybowl/internal/repositories/player"
	"github.com/redis/go-redis/v9"
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

	var repo player.Repository = player.NewMemory()
	if cfg.FakeAPI.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.FakeAPI.RedisAddr,
			Password: cfg.FakeAPI.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()

		redisRepo, err := player.NewRedis(&player.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create player repository")
		}
		repo = redisRepo
		logger.Info().Str("redis_addr", cfg.FakeAPI.RedisAddr).Msg("storing players in Redis")
	}

	api, err := fakeapi.New(&fakeapi.Config{
		Repository: repo,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create fake API")
	}

	if cfg.FakeAPI.Seed {
		if err := api.Seed(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed players")
		}
	}

	srv := &http.Server{
		Addr:              cfg.FakeAPI.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("fake players API listening on /players")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("error shutting down server")
	}

	logger.Info().Msg("fake players API has been shut down")
}
