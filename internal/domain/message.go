package domain

import "time"

// MessageType classifies user-to-user message payloads.
type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeImage    MessageType = "image"
	MessageTypeDocument MessageType = "document"
)

// Message is a direct message between two validated accounts.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Content     string
	MessageType MessageType
	IsRead      bool
	CreatedAt   time.Time
}

// Conversation summarizes a message thread with one contact.
type Conversation struct {
	ContactID     string
	ContactName   string
	Company       string
	ContactRole   Role
	LastMessage   string
	LastMessageAt time.Time
	UnreadCount   int
}
