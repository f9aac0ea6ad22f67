package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mrfarooqui038501/Ecommerce/internal/auth"
	"github.com/Mrfarooqui038501/Ecommerce/internal/cache"
	"github.com/Mrfarooqui038501/Ecommerce/internal/config"
	h "github.com/Mrfarooqui038501/Ecommerce/internal/http"
	"github.com/Mrfarooqui038501/Ecommerce/internal/payments"
	"github.com/Mrfarooqui038501/Ecommerce/internal/repository"
	"github.com/Mrfarooqui038501/Ecommerce/internal/service"
	"github.com/Mrfarooqui038501/Ecommerce/internal/telemetry"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	telemetry.InitLogger()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTracer, err := telemetry.SetupTracer(ctx, cfg.ServiceName)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer shutdownTracer(context.Background())
	}

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(ctx)

	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		slog.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to MongoDB", "uri", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to Redis", "addr", cfg.RedisAddr)

	users := repository.NewUserRepository(mongoDB)
	products := repository.NewProductRepository(mongoDB)
	carts := repository.NewCartRepository(mongoDB)
	orders := repository.NewOrderRepository(mongoDB)
	tx := repository.NewTxRunner(mongoDB)

	cartCache := cache.NewRedisCache(redisClient)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	provider := payments.NewBreakerProvider(payments.NewStripeProvider(cfg.StripeKey))

	authService := service.NewAuthService(users, tokens)
	catalogService := service.NewCatalogService(products)
	cartService := service.NewCartService(products, carts, tx, cartCache)
	orderService := service.NewOrderService(orders, carts, products, users, tx, provider, cartCache, cfg.ClientURL)

	router := h.NewRouter(
		tokens,
		h.NewAuthHandler(authService),
		h.NewProductHandler(catalogService),
		h.NewCartHandler(cartService),
		h.NewOrdersHandler(orderService),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
