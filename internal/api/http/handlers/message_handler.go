package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/api/dto"
	"github.com/siports/event-service/internal/auth"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/service"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// MessageHandler serves direct messaging between validated accounts.
type MessageHandler struct {
	messages *service.MessageService
}

func NewMessageHandler(messages *service.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send handles POST /api/messages/send.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MessageSendRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	msgType := domain.MessageType(req.MessageType)
	if msgType == "" {
		msgType = domain.MessageTypeText
	}

	msg, err := h.messages.Send(c.Context(), principal.User.ID, req.RecipientID, req.Content, msgType)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": messageView(msg, principal.User.ID),
	})
}

// Conversations handles GET /api/messages/conversations.
func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	conversations, err := h.messages.Conversations(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}

	views := make([]dto.ConversationView, 0, len(conversations))
	for i := range conversations {
		views = append(views, conversationView(&conversations[i]))
	}
	return c.JSON(fiber.Map{"conversations": views})
}

// Conversation handles GET /api/messages/conversation/:contactID. Fetching
// a thread marks the contact's messages as read.
func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	messages, err := h.messages.Conversation(c.Context(), principal.User.ID, c.Params("contactID"))
	if err != nil {
		return err
	}

	views := make([]dto.MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, messageView(&messages[i], principal.User.ID))
	}
	return c.JSON(fiber.Map{"messages": views})
}

// UnreadCount handles GET /api/messages/unread/count.
func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	count, err := h.messages.UnreadCount(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"unread_count": count})
}
