package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lturcios/turicash-backend/internal/config"
	"github.com/lturcios/turicash-backend/internal/handler"
	"github.com/lturcios/turicash-backend/internal/infra"
	"github.com/lturcios/turicash-backend/internal/repository"
	"github.com/lturcios/turicash-backend/internal/router"
	"github.com/lturcios/turicash-backend/internal/service"
	"github.com/lturcios/turicash-backend/internal/token"
	"github.com/lturcios/turicash-backend/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title        TuriCash API
// @version      1.0
// @description  Backend del punto de venta TuriCash: autenticacion, sincronizacion de tickets offline y reportes.
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// The worker pool consumes post-sync cache-invalidation jobs.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.StartPool(ctx, rdb, cfg.WorkerPoolSize)

	issuer := token.NewIssuer(cfg.JWTSecret)
	dispatcher := worker.NewDispatcher(rdb)

	userRepo := repository.NewUserRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	itemRepo := repository.NewItemRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	authSvc := service.NewAuthService(userRepo, issuer)
	locationSvc := service.NewLocationService(locationRepo)
	itemSvc := service.NewItemService(itemRepo)
	ticketSvc := service.NewTicketService(ticketRepo, dispatcher)
	dashboardSvc := service.NewDashboardService(dashboardRepo, rdb)

	r := router.New(cfg, issuer, router.Handlers{
		Health:    handler.NewHealthHandler(db, rdb),
		Auth:      handler.NewAuthHandler(authSvc),
		Tickets:   handler.NewTicketHandler(ticketSvc),
		Locations: handler.NewLocationHandler(locationSvc),
		Items:     handler.NewItemHandler(itemSvc),
		Users:     handler.NewUserHandler(authSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("TuriCash backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
