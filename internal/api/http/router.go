package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/api/http/handlers"
	"github.com/siports/event-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Status         *handlers.StatusHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Packages       *handlers.PackageHandler
	Chat           *handlers.ChatHandler
	Messages       *handlers.MessageHandler
	Matching       *handlers.MatchHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/", cfg.Health.Root)
	api.Get("/health", cfg.Health.Health)
	api.Get("/chatbot/health", cfg.Health.ChatbotHealth)

	api.Get("/status", cfg.Status.List)
	api.Post("/status", cfg.Status.Create)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/verify", cfg.AuthMiddleware.Handle, cfg.Auth.Verify)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users/pending", cfg.Admin.ListPending)
	admin.Post("/users/:id/validate", cfg.Admin.Validate)
	admin.Post("/users/:id/reject", cfg.Admin.Reject)
	admin.Get("/dashboard/stats", cfg.Admin.DashboardStats)

	api.Get("/visitor-packages", cfg.Packages.VisitorCatalog)
	api.Get("/partnership-packages", cfg.Packages.PartnershipCatalog)
	api.Post("/visitor-packages/update", cfg.AuthMiddleware.Handle, cfg.Packages.UpdateVisitorPackage)
	api.Post("/partnership-packages/update", cfg.AuthMiddleware.Handle, cfg.Packages.UpdatePartnershipPackage)

	api.Post("/chat", cfg.Chat.Chat)
	api.Post("/chat/exhibitor", cfg.Chat.ExhibitorChat)
	api.Post("/chat/package", cfg.Chat.PackageChat)
	api.Post("/chat/event", cfg.Chat.EventChat)

	messages := api.Group("/messages", cfg.AuthMiddleware.Handle)
	messages.Post("/send", cfg.Messages.Send)
	messages.Get("/conversations", cfg.Messages.Conversations)
	messages.Get("/conversation/:contactID", cfg.Messages.Conversation)
	messages.Get("/unread/count", cfg.Messages.UnreadCount)

	matching := api.Group("/matching", cfg.AuthMiddleware.Handle)
	matching.Post("/find", cfg.Matching.Find)
	matching.Get("/recommendations/:userID", cfg.Matching.Recommendations)
	matching.Post("/profile", cfg.Matching.UpdateProfile)
	matching.Get("/profile/:userID", cfg.Matching.Profile)
	matching.Post("/feedback", cfg.Matching.Feedback)
}
