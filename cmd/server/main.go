package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/eventio/ticket-registry/internal/api"
	"github.com/eventio/ticket-registry/internal/core/service"
	"github.com/eventio/ticket-registry/internal/infrastructure/config"
	"github.com/eventio/ticket-registry/internal/infrastructure/db/postgres"
	redisdb "github.com/eventio/ticket-registry/internal/infrastructure/db/redis"
	"github.com/eventio/ticket-registry/migrations"
	"github.com/eventio/ticket-registry/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(startupCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	pool, err := postgres.Connect(startupCtx, postgres.Config{URL: cfg.Database.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	rdb, err := redisdb.Connect(startupCtx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	ticketRepo := postgres.NewTicketRepository(pool)
	countCache := redisdb.NewCountCache(rdb)
	tickets := service.NewTicketService(ticketRepo, countCache, cfg.BaseURL, log)
	identity := service.NewIdentityService(service.IdentityConfig{
		Domain:       cfg.Auth0.Domain,
		ClientID:     cfg.Auth0.ClientID,
		ClientSecret: cfg.Auth0.ClientSecret,
		CallbackURL:  cfg.Auth0.CallbackURL,
		BaseURL:      cfg.BaseURL,
	})

	var bearerKeyfunc jwt.Keyfunc
	if cfg.Auth0.Audience != "" {
		jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", cfg.Auth0.Domain)
		kf, err := keyfunc.NewDefault([]string{jwksURL})
		if err != nil {
			log.Fatal().Err(err).Str("jwks_url", jwksURL).Msg("failed to initialise JWKS keyfunc")
		}
		bearerKeyfunc = kf.Keyfunc
	} else {
		log.Warn().Msg("AUTH0_AUDIENCE not set, JSON API disabled")
	}

	e, err := api.NewRouter(api.Deps{
		Tickets:       tickets,
		Identity:      identity,
		Pool:          pool,
		Redis:         rdb,
		SessionSecret: cfg.SessionSecret,
		Logger:        log,
		BearerKeyfunc: bearerKeyfunc,
		Issuer:        fmt.Sprintf("https://%s/", cfg.Auth0.Domain),
		Audience:      cfg.Auth0.Audience,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("base_url", cfg.BaseURL).Msg("server listening")

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	case <-stopCtx.Done():
		log.Info().Msg("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
