package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/ponder/ponder-api/internal/config"
	"github.com/ponder/ponder-api/internal/database"
	"github.com/ponder/ponder-api/internal/middleware"
	"github.com/ponder/ponder-api/internal/routes"
	"github.com/ponder/ponder-api/internal/services"
)

func main() {
	// .env is optional; real deployments set env vars directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()
	middleware.Init(cfg.JWTSecret)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := services.InitAI(cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		log.Fatalf("Failed to initialize AI service: %v", err)
	}
	if err := services.InitPush(cfg.FCMServiceAccount); err != nil {
		log.Fatalf("Failed to initialize push service: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "ponder-api",
	})
	app.Use(recover.New())
	app.Use(logger.New())

	routes.Setup(app)

	log.Printf("Listening on :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
