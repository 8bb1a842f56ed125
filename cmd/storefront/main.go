package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/babyshop/storefront/internal/cart"
	"github.com/babyshop/storefront/internal/catalog"
	"github.com/babyshop/storefront/internal/db"
	"github.com/babyshop/storefront/internal/events"
	httpserver "github.com/babyshop/storefront/internal/http"
	"github.com/babyshop/storefront/internal/order"
)

func main() {
	port := getEnv("PORT", "8080")

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	dsn := db.GetDSN()
	if err := db.RunMigrations(dsn, logger); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	database := db.MustOpen()
	defer database.Close()

	catalogRepo := catalog.NewRepository(database)
	orderRepo := order.NewRepository(database)
	checkout := order.NewService(orderRepo)

	rabbitConn := events.MustDialRabbit()
	defer rabbitConn.Close()

	sequenceRepo := events.NewSequenceRepository(database)
	publisher, err := events.NewRabbitPublisher(rabbitConn, sequenceRepo)
	if err != nil {
		logger.Fatalf("create publisher: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := cart.NewSessionManager(2 * time.Hour)
	sessions.StartJanitor(ctx, 10*time.Minute)

	mux := httpserver.NewRouter(sessions, catalogRepo, orderRepo, checkout, publisher, logger)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("storefront listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown signal received")
	case err := <-errCh:
		logger.Fatalf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Printf("publisher close error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
