package main

import (
	"log"
	"time"

	"github.com/BerylCAtieno/business-dashboard/internal/api"
	"github.com/BerylCAtieno/business-dashboard/internal/config"
	"github.com/BerylCAtieno/business-dashboard/internal/headline"
	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer appLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var generator headline.Generator
	if cfg.Keys.GoogleGemini != "" {
		geminiClient, err := headline.NewGeminiClient(cfg.Keys.GoogleGemini, cfg.Keys.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		generator = geminiClient
		appLogger.Info("backend", "using Gemini headlines", map[string]interface{}{"model": cfg.Keys.GeminiModel})
	} else {
		generator = headline.NewTemplateGenerator(uint64(time.Now().UnixNano()))
		appLogger.Warn("backend", "GOOGLE_GEMINI_API_KEY not set, using template headlines", nil)
	}

	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLoggingMiddleware(appLogger))
	api.NewHandler(generator, appLogger, cfg.Backend.RequestTimeout).Register(router)

	appLogger.Info("backend", "business data backend starting", map[string]interface{}{
		"port":                cfg.Backend.Port,
		"business_data":       "POST /business-data",
		"regenerate_headline": "GET /regenerate-headline",
	})

	if err := router.Run(":" + cfg.Backend.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
