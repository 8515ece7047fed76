package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/RaikyD/stitch-storefront/internal/application"
	"github.com/RaikyD/stitch-storefront/internal/auth"
	"github.com/RaikyD/stitch-storefront/internal/backend"
	"github.com/RaikyD/stitch-storefront/internal/config"
	"github.com/RaikyD/stitch-storefront/internal/kafka"
	"github.com/RaikyD/stitch-storefront/internal/logger"
	"github.com/RaikyD/stitch-storefront/internal/migrate"
	"github.com/RaikyD/stitch-storefront/internal/presentation"
	"github.com/RaikyD/stitch-storefront/internal/repository"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init()
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		logger.InitProduction()
	} else {
		logger.Init()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Placed-order archive. Without a database it is cache-only.
	var repo repository.OrderRepo
	if cfg.DB_STRING != "" {
		if err := migrate.Up(cfg.DB_STRING); err != nil {
			logger.Error("migrations failed", "err", err)
			os.Exit(1)
		}
		pool, err := pgxpool.New(ctx, cfg.DB_STRING)
		if err != nil {
			logger.Error("pgxpool new failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("db ping failed", "err", err)
			os.Exit(1)
		}
		logger.Info("db connected")
		repo = repository.NewOrderRepository(pool)
	} else {
		logger.Warn("DB_STRING not set, placed orders are kept in memory only")
	}

	archive := application.NewOrdersService(repo)
	if err := archive.RestoreCache(ctx, 1000); err != nil {
		logger.Warn("restore cache failed", "err", err)
	}

	var publisher application.Publisher
	if cfg.KafkaEnabled() {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		publisher = prod

		_, _ = kafka.StartConsumer(ctx, archive, kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		})
	}

	api := backend.NewClient(cfg.API_BASE_URL, cfg.API_TIMEOUT)
	drafts := application.NewDrafts(cfg.DRAFT_IDLE_TTL)
	go drafts.Run(ctx, time.Minute)

	book := application.NewAddressBook(api)
	go book.Run(ctx, time.Minute, cfg.DRAFT_IDLE_TTL)
	checkout := application.NewCheckout(drafts, api, book, api, archive, publisher)
	sessions := auth.NewHolder([]byte(cfg.SESSION_KEY), cfg.COOKIE_SECURE)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h := presentation.NewHandler(checkout, api, book, api, archive, sessions)
	h.Register(r)
	presentation.MountStatic(r, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP_PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown failed", "err", err)
		}
	}()

	logger.Info("starting http", "addr", srv.Addr, "api", cfg.API_BASE_URL, "kafka", cfg.KafkaEnabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
	logger.Info("http stopped")
}
