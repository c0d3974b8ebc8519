package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/restsoft-app/restsoft-pos/backend"
	"github.com/restsoft-app/restsoft-pos/config"
	"github.com/restsoft-app/restsoft-pos/events"
	"github.com/restsoft-app/restsoft-pos/router"
	"github.com/restsoft-app/restsoft-pos/services"
	"github.com/restsoft-app/restsoft-pos/store"
	"github.com/restsoft-app/restsoft-pos/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to open local store: %v", err)
	}

	client := backend.NewClient(cfg.BackendURL)

	app := services.NewApp(cfg, st, client, events.Broadcast)

	// First catalog load. A failure is not fatal, the error state is
	// visible and the operator can hit refresh.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := app.Catalog.Refresh(ctx); err != nil {
		utils.ErrorLogger.Printf("Initial catalog load failed: %v", err)
	}
	cancel()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.SetupRouter(app, client)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
