package main

import (
	"log"

	"github.com/BerylCAtieno/business-dashboard/internal/backend"
	"github.com/BerylCAtieno/business-dashboard/internal/config"
	"github.com/BerylCAtieno/business-dashboard/internal/form"
	"github.com/BerylCAtieno/business-dashboard/internal/logger"
	"github.com/BerylCAtieno/business-dashboard/internal/store"
	"github.com/BerylCAtieno/business-dashboard/internal/web"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer appLogger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.RequestTimeout, appLogger)
	dashboard := store.New(client, appLogger)
	handler := web.NewHandler(dashboard, form.New(), appLogger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(web.Templates())
	handler.Register(router)

	appLogger.Info("server", "business dashboard starting", map[string]interface{}{
		"port":        cfg.App.Port,
		"backend_url": cfg.Backend.URL,
		"dashboard":   "http://localhost:" + cfg.App.Port + "/",
	})

	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
