package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/events"
	"github.com/siports/event-service/internal/repository"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// MessageService handles direct messaging between validated accounts.
type MessageService struct {
	messages   repository.MessageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewMessageService builds the service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, users: users, dispatcher: dispatcher}
}

// Send stores a message after checking the recipient exists and is validated.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID, content string, msgType domain.MessageType) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content is required", map[string]any{"field": "content"})
	}
	if msgType == "" {
		msgType = domain.MessageTypeText
	}

	recipient, err := s.users.GetByID(ctx, recipientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("recipient", map[string]any{"id": recipientID})
		}
		return nil, apperrors.MapError(err)
	}
	if recipient.ValidationState != domain.ValidationValidated {
		return nil, apperrors.NewNotFound("recipient", map[string]any{"id": recipientID})
	}

	msg := &domain.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		MessageType: msgType,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventMessageSent,
			UserID:    senderID,
			Timestamp: msg.CreatedAt,
			Payload: events.MessageSentPayload{
				MessageID:   msg.ID,
				RecipientID: recipientID,
				Preview:     preview(content),
			},
		})
	}
	return msg, nil
}

// Conversations lists the caller's message threads with unread counts.
func (s *MessageService) Conversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	conversations, err := s.messages.ListConversations(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return conversations, nil
}

// Conversation returns the full thread with one contact and marks the
// contact's messages as read.
func (s *MessageService) Conversation(ctx context.Context, userID, contactID string) ([]domain.Message, error) {
	if err := s.messages.MarkRead(ctx, contactID, userID); err != nil {
		return nil, apperrors.MapError(err)
	}
	msgs, err := s.messages.ListConversation(ctx, userID, contactID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return msgs, nil
}

// UnreadCount counts messages addressed to the caller not yet read.
func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.messages.UnreadCount(ctx, userID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

func preview(content string) string {
	const max = 80
	if len(content) <= max {
		return content
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}
