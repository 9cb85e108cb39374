package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/persistence"
	"github.com/siports/event-service/internal/service"
)

// HealthHandler responds to the health and welcome endpoints.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	chat        *service.ChatService
	timeout     time.Duration
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, chat *service.ChatService, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		postgres:    postgres,
		chat:        chat,
		timeout:     timeout,
	}
}

// Root handles GET /api/.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": h.serviceName + " API",
		"status":  "active",
		"version": h.version,
	})
}

// Health handles GET /api/health. The endpoint never fails: a database
// outage is reported as a status field so the frontend can render a
// reconnecting state instead of a hard error.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	status := "healthy"
	database := "connected"
	if err := h.postgres.Ping(ctx); err != nil {
		status = "error"
		database = "disconnected"
	}

	return c.JSON(fiber.Map{
		"status":    status,
		"database":  database,
		"timestamp": time.Now().UTC(),
	})
}

// ChatbotHealth handles GET /api/chatbot/health by running a probe message
// through the responder.
func (h *HealthHandler) ChatbotHealth(c *fiber.Ctx) error {
	response := h.chat.Probe("test health")
	return c.JSON(fiber.Map{
		"status":               "healthy",
		"service":              h.serviceName + "-chatbot",
		"version":              h.version,
		"mock_mode":            true,
		"test_response_length": len(response),
	})
}
