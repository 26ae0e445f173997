package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"markethub/config"
	"markethub/internal/cache"
	"markethub/internal/hashing"
	"markethub/internal/middleware"
	"markethub/internal/producer"
	"markethub/internal/repository"
	"markethub/internal/router"
	"markethub/internal/service"
	"markethub/internal/token"
	"markethub/pkg/database"
	"markethub/pkg/logger"

	_ "markethub/docs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var rateCounter middleware.RateCounter
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to create redis client", zap.Error(err))
		}
		defer redisClient.Close()
		rateCounter = redisClient
		log.Info("Redis rate limiting enabled")
	} else {
		log.Info("Redis rate limiting disabled")
	}

	var events service.EventBus
	if cfg.Kafka.Enabled {
		p := producer.NewOrderEventsProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer p.Close()
		events = p
		log.Info("Kafka order events enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		log.Info("Kafka order events disabled")
	}

	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	authSvc := service.NewAuthService(repos, hasher, tokens, cfg.JWT.AccessExp, log)
	catalogSvc := service.NewCatalogService(repos, log)
	orderSvc := service.NewOrderService(repos, events, log)
	reviewSvc := service.NewReviewService(repos, log)

	r := router.Router(router.Deps{
		Auth:    authSvc,
		Catalog: catalogSvc,
		Orders:  orderSvc,
		Reviews: reviewSvc,
		Tokens:  tokens,
		Redis:   rateCounter,
		Limits: router.RateLimits{
			OrdersPerWindow:  cfg.Rate.OrdersPerWindow,
			ReviewsPerWindow: cfg.Rate.ReviewsPerWindow,
			Window:           cfg.Rate.Window,
		},
		Log: log,
	})

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	} else {
		log.Info("HTTP server stopped gracefully")
	}
}
