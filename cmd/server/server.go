package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/yichenlu/heygen-video-backend/internal/config"
	h "github.com/yichenlu/heygen-video-backend/internal/http"
	"github.com/yichenlu/heygen-video-backend/pkg/log"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := log.New(log.LevelInfo, os.Stdout)
	if cfg.LogFile != "" {
		logger = log.NewRotating(log.LevelInfo, cfg.LogFile)
	}

	if cfg.APIKey == "" {
		logger.Error("HEYGEN_API_KEY environment variable not set")
		os.Exit(1)
	}

	r := h.NewRouter(cfg, logger)
	logger.Info("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
