package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventario/internal/api"
	"inventario/internal/app/service"
	"inventario/internal/common/security"
	"inventario/internal/domain/repository"
	"inventario/internal/platform/cache"
	"inventario/internal/platform/config"
	"inventario/internal/platform/database"
	"inventario/internal/platform/storage"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	tokens := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)

	// 3. Initialize Database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Migrations applied.")

	// 4. Initialize Redis (rate limiting); the API still works without it.
	rdb, err := cache.ConnectRedis(context.Background(), cfg)
	if err != nil {
		log.Printf("Redis unavailable, auth rate limiting disabled: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
		log.Println("Redis connected.")
	}

	// 5. Initialize Image Storage
	uploader, err := storage.NewS3Uploader(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Object storage init failed: %v", err)
	}

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	recordRepo := repository.NewPgRecordRepository(db)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, tokens)
	recordService := service.NewRecordService(recordRepo, uploader)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(cfg, tokens, rdb, authService, recordService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  60 * time.Second, // uploads can be large
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
