package main

import (
	"log"

	"user-management/config"
	"user-management/internal/handler"
	"user-management/internal/repository"
	"user-management/internal/server"
	"user-management/internal/services"
	"user-management/pkg/database"
	"user-management/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Schema bootstrap is idempotent, so running it on every start is safe.
	if err := database.ApplyRawMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, cfg)

	handlers := &server.Handlers{
		Auth: handler.NewAuthHandler(authService, l),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, db)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}
