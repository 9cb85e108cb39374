package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/api/dto"
	"github.com/siports/event-service/internal/service"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// ChatHandler serves the simulated chatbot endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat handles POST /api/chat. The context tag in the body wins over the
// path-scoped variants below.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	return h.respond(c, "")
}

// ExhibitorChat handles POST /api/chat/exhibitor.
func (h *ChatHandler) ExhibitorChat(c *fiber.Ctx) error {
	return h.respond(c, "exhibitor")
}

// PackageChat handles POST /api/chat/package.
func (h *ChatHandler) PackageChat(c *fiber.Ctx) error {
	return h.respond(c, "package")
}

// EventChat handles POST /api/chat/event.
func (h *ChatHandler) EventChat(c *fiber.Ctx) error {
	return h.respond(c, "event")
}

func (h *ChatHandler) respond(c *fiber.Ctx, pathContext string) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	contextTag := req.Context
	if contextTag == "" {
		contextTag = pathContext
	}

	reply, err := h.chat.Respond(c.Context(), req.SessionID, req.Message, contextTag)
	if err != nil {
		return err
	}

	return c.JSON(dto.ChatResponse{
		Response:  reply.Response,
		SessionID: reply.SessionID,
		Context:   reply.Context,
		Timestamp: reply.Timestamp,
	})
}
