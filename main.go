package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-storefront/apiclient"
	"food-storefront/cart"
	"food-storefront/catalog"
	"food-storefront/checkout"
	"food-storefront/config"
	"food-storefront/events"
	"food-storefront/handlers"
	"food-storefront/middleware"
	"food-storefront/routes"
	"food-storefront/storage"
	"food-storefront/tracking"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "food-storefront").Logger()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer closeStore()

	api, err := apiclient.New(cfg.APIURL, &http.Client{Timeout: cfg.APITimeout})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid API_URL")
	}

	var source catalog.Source = catalog.NewStatic()
	if cfg.CatalogSource == "api" {
		source = catalog.NewAPI(api)
	}

	var placer checkout.Placer = checkout.SimulatedPlacer{Delay: cfg.PlacementDelay}
	if cfg.PlacementMode == "api" {
		placer = checkout.APIPlacer{Client: api}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBroker != "" {
		publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBroker, cfg.KafkaTopic))
		log.Info().Str("broker", cfg.KafkaBroker).Str("topic", cfg.KafkaTopic).Msg("publishing order events to kafka")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("closing event publisher")
		}
	}()

	var status tracking.StatusSource = tracking.TickerSource{Interval: cfg.TrackingInterval}
	if cfg.TrackingSource == "poll" {
		status = tracking.PollSource{Client: api, Interval: cfg.TrackingInterval, Log: log}
	}
	registry := tracking.NewRegistry(status, log)
	defer registry.Close()

	carts := cart.NewService(store, cart.DefaultCatalog(), log)
	seq := checkout.New(carts, placer, publisher, log, checkout.WithPlacementLimit(cfg.PlacementConcurrency))
	h := &handlers.Handler{
		Store:     store,
		Carts:     carts,
		Checkout:  seq,
		Catalog:   source,
		API:       api,
		Tracking:  registry,
		PublicURL: cfg.PublicURL,
		Log:       log,
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	routes.SetupRoutes(r, h, cfg.JWTSecret, cfg.SessionTTL)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}).Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreDriver).
			Str("catalog", cfg.CatalogSource).Str("placement", cfg.PlacementMode).
			Str("tracking", cfg.TrackingSource).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	seq.Wait()
}

// openStore returns the configured profile store and a function releasing it.
func openStore(ctx context.Context, cfg config.Config) (storage.Store, func(), error) {
	if cfg.StoreDriver == "redis" {
		client, err := config.InitRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
	}
	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewGormStore(db), func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
