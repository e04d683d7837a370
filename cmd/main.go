package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peerlink/backend/internal/api/handler"
	"peerlink/backend/internal/chathub"
	"peerlink/backend/internal/config"
	"peerlink/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// setupPresenceMirror connects to Redis when configured. The server runs
// without it otherwise.
func setupPresenceMirror(ctx context.Context, cfg config.Config) chathub.PresencePublisher {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, presence mirror disabled.")
		return nil
	}

	s := storage.NewStorageService(storage.NewRedisClient(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Printf("Redis connection established at %s, presence mirror enabled.", cfg.RedisAddr)
	return s
}

func main() {
	log.Println("Starting peerlink signaling server...")

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Hub
	hub := chathub.NewManagerService(setupPresenceMirror(ctx, cfg))
	go hub.Run(ctx)

	// 2. Routing
	h := handler.NewHandler(hub)
	r := handler.NewRouter(h, cfg.StaticDir)

	server := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: server shutdown: %v", err)
	}
	<-hub.Done()
}
