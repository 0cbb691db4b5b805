package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kislikjeka/osmotax/internal/addressbook"
	"github.com/kislikjeka/osmotax/internal/osmosis"
	"github.com/kislikjeka/osmotax/internal/transport/httpapi"
	"github.com/kislikjeka/osmotax/internal/transport/httpapi/handler"
	"github.com/kislikjeka/osmotax/pkg/config"
	"github.com/kislikjeka/osmotax/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting OsmoTax API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize Redis client for address book persistence
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Redis connection established")

	// Initialize the ledger client and establish the RPC connection
	ledgerClient := osmosis.NewClient(cfg.RPCURL, log)
	if err := ledgerClient.Connect(ctx); err != nil {
		log.Error("Failed to connect to Osmosis RPC", "error", err)
		os.Exit(1)
	}
	defer ledgerClient.Disconnect()

	// Initialize address book store
	bookStore := addressbook.NewStore(redisClient, log)

	// Initialize HTTP handlers
	healthHandler := handler.NewHealthHandler(redisPinger{redisClient}, ledgerClient)
	transactionHandler := handler.NewTransactionHandler(ledgerClient, cfg.FetchPageSize)
	addressBookHandler := handler.NewAddressBookHandler(bookStore)

	// Create HTTP router
	r := httpapi.NewRouter(httpapi.Config{
		Logger:             log,
		AllowedOrigins:     cfg.AllowedOrigins,
		HealthHandler:      healthHandler,
		TransactionHandler: transactionHandler,
		AddressBookHandler: addressBookHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}

// redisPinger adapts the Redis client to the health handler's probe shape,
// dropping go-redis' status return value.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
