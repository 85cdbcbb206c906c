package main

import (
	"log"
	"os"

	"github.com/vbonduro/brickinv/internal/auth"
	"github.com/vbonduro/brickinv/internal/config"
	"github.com/vbonduro/brickinv/internal/db"
	"github.com/vbonduro/brickinv/internal/logging"
	"github.com/vbonduro/brickinv/internal/service"
	"github.com/vbonduro/brickinv/internal/store"
	"github.com/vbonduro/brickinv/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	var remote *auth.Client
	if cfg.AuthURL != "" {
		remote = auth.NewClient(cfg.AuthURL, cfg.AuthAnonKey)
	}
	if cfg.JWTSecret == "" && remote == nil {
		logger.Warn("no SUPABASE_JWT_SECRET or SUPABASE_URL configured; every request will be rejected")
	}
	resolver := auth.NewTokenResolver(cfg.JWTSecret, remote, cfg.StrictAuth)

	setStore := store.NewSetStore(database)
	setService := service.NewSetService(setStore, logger)
	server := web.NewServer(setService, resolver, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
