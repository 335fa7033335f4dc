package main

import (
	"log"
	"log/slog"
	"os"

	"vantage/internal/config"
	"vantage/internal/db"
	"vantage/internal/handlers"
	"vantage/internal/middleware"
	"vantage/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level := slog.LevelInfo
	if gin.Mode() == gin.DebugMode {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if cfg.OpenRouter.APIKey == "" {
		log.Println("⚠️ OPENROUTER_API_KEY is not set, AI generation will fail")
	}
	if cfg.Clerk.SecretKey == "" {
		log.Println("⚠️ CLERK_SECRET_KEY is not set, author profiles are disabled")
	}

	publicKey, err := middleware.ParsePublicKey(cfg.Clerk.JWTKey)
	if err != nil {
		log.Fatalf("Invalid CLERK_JWT_KEY: %v", err)
	}
	if publicKey == nil {
		log.Println("⚠️ CLERK_JWT_KEY is not set, every request is anonymous")
	}

	// Initialize Database
	db.Init(cfg.Database.URL)

	r := router.New(cfg, handlers.NewServices(db.DB, cfg), publicKey)

	log.Printf("Vantage server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
