package dto

import "time"

// MessageSendRequest payload for a direct message.
type MessageSendRequest struct {
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type,omitempty"`
}

// MessageView is the wire form of a direct message.
type MessageView struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	RecipientID  string    `json:"recipient_id"`
	Content      string    `json:"content"`
	MessageType  string    `json:"message_type"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
	IsOwnMessage bool      `json:"is_own_message"`
}

// ConversationView summarizes one message thread.
type ConversationView struct {
	ContactID     string    `json:"contact_id"`
	ContactName   string    `json:"contact_name"`
	Company       string    `json:"company"`
	UserType      string    `json:"user_type"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int       `json:"unread_count"`
}
