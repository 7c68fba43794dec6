package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ponder/ponder-api/internal/handlers"
	"github.com/ponder/ponder-api/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Post("/google", handlers.GoogleLogin)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)

	decisions := protected.Group("/decisions")
	decisions.Get("/", handlers.GetDecisions)
	decisions.Post("/", handlers.CreateDecision)
	decisions.Post("/extract", handlers.ExtractDecision)
	decisions.Get("/:id", handlers.GetDecision)
	decisions.Put("/:id", handlers.UpdateDecision)
	decisions.Delete("/:id", handlers.DeleteDecision)

	decisions.Put("/:id/options/:optionId/select", handlers.SelectOption)
	decisions.Post("/:id/recommend", handlers.RecommendDecision)

	decisions.Get("/:id/reflection", handlers.GetReflection)
	decisions.Put("/:id/reflection", handlers.UpsertReflection)
	decisions.Delete("/:id/reflection", handlers.DeleteReflection)

	// Analytics
	protected.Get("/stats/reflections", handlers.GetReflectionStats)
	protected.Get("/dashboard", handlers.GetDashboard)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllRead)

	// Device token for push notifications
	protected.Post("/device-token", handlers.RegisterDeviceToken)
}
