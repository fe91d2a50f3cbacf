package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/eveplan/eveweb/internal/config"
	"github.com/eveplan/eveweb/internal/logger"
	"github.com/eveplan/eveweb/internal/router"
	"github.com/eveplan/eveweb/internal/setup"
)

const defaultConfigPath = "config/config.yaml"

func main() {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg := config.MustLoad(configPath)

	logger.Initialize(cfg.Log.Level, cfg.Log.JSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "error", err)
		os.Exit(1)
	}
	defer deps.Cleanup()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Listen.Port
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router.New(deps),
		ReadTimeout:  cfg.Listen.ReadTimeout,
		WriteTimeout: cfg.Listen.WriteTimeout,
	}

	logger.Log.Info("starting eveweb", "addr", server.Addr, "api", cfg.API.BaseURL)
	if err := server.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
